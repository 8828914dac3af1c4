// Package json persists run transcripts as versioned JSON documents.
package json

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/passagecli/passage"
)

const version = 1

// envelope is the v1 wire format for a persisted transcript.
type envelope struct {
	Version    int               `json:"version"`
	Input      string            `json:"input"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Steps      []stepDTO         `json:"steps"`
	Memory     map[string]string `json:"memory"`
}

type stepDTO struct {
	Index      int         `json:"index"`
	Name       string      `json:"name,omitempty"`
	Mode       string      `json:"mode"`
	Provider   string      `json:"provider,omitempty"`
	Model      string      `json:"model,omitempty"`
	Message    string      `json:"message"`
	Response   string      `json:"response"`
	DurationMS int64       `json:"duration_ms"`
	Applied    []outputDTO `json:"applied"`
	Skipped    []outputDTO `json:"skipped,omitempty"`
}

type outputDTO struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Method string `json:"method,omitempty"`
}

// MarshalTranscript serializes a Transcript in v1 envelope format.
// Durations are stored in milliseconds.
func MarshalTranscript(t passage.Transcript) ([]byte, error) {
	env := envelope{
		Version:    version,
		Input:      t.Input,
		StartedAt:  t.StartedAt,
		FinishedAt: t.FinishedAt,
		Steps:      make([]stepDTO, len(t.Steps)),
		Memory:     t.Memory,
	}
	if env.Memory == nil {
		env.Memory = map[string]string{}
	}
	for i, s := range t.Steps {
		env.Steps[i] = stepDTO{
			Index:      s.Index,
			Name:       s.Name,
			Mode:       s.Mode,
			Provider:   s.Provider,
			Model:      s.Model,
			Message:    s.Message,
			Response:   s.Response,
			DurationMS: s.Duration.Milliseconds(),
			Applied:    marshalOutputs(s.Applied),
			Skipped:    marshalOutputs(s.Skipped),
		}
		if env.Steps[i].Applied == nil {
			env.Steps[i].Applied = []outputDTO{}
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalTranscript deserializes a Transcript from v1 envelope format.
func UnmarshalTranscript(data []byte) (passage.Transcript, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return passage.Transcript{}, errors.Wrap(err, "unmarshal envelope")
	}
	if env.Version != version {
		return passage.Transcript{}, errors.Newf("unsupported envelope version: %d", env.Version)
	}
	t := passage.Transcript{
		Input:      env.Input,
		StartedAt:  env.StartedAt,
		FinishedAt: env.FinishedAt,
		Memory:     env.Memory,
	}
	for _, s := range env.Steps {
		t.Steps = append(t.Steps, passage.Step{
			Index:    s.Index,
			Name:     s.Name,
			Mode:     s.Mode,
			Provider: s.Provider,
			Model:    s.Model,
			Message:  s.Message,
			Response: s.Response,
			Duration: time.Duration(s.DurationMS) * time.Millisecond,
			Applied:  unmarshalOutputs(s.Applied),
			Skipped:  unmarshalOutputs(s.Skipped),
		})
	}
	return t, nil
}

func marshalOutputs(outs []passage.Output) []outputDTO {
	if len(outs) == 0 {
		return nil
	}
	dtos := make([]outputDTO, len(outs))
	for i, o := range outs {
		dtos[i] = outputDTO{Type: string(o.Type), Name: o.Name, Method: string(o.Method)}
	}
	return dtos
}

func unmarshalOutputs(dtos []outputDTO) []passage.Output {
	if len(dtos) == 0 {
		return nil
	}
	outs := make([]passage.Output, len(dtos))
	for i, d := range dtos {
		outs[i] = passage.Output{Type: passage.OutputType(d.Type), Name: d.Name, Method: passage.Method(d.Method)}
	}
	return outs
}

// Save writes a Transcript to a JSON file, creating parent directories as
// needed. The file is replaced atomically.
func Save(path string, t passage.Transcript) error {
	data, err := MarshalTranscript(t)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create directories")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}

// Load reads a Transcript from a JSON file.
func Load(path string) (passage.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return passage.Transcript{}, errors.Wrap(err, "read file")
	}
	return UnmarshalTranscript(data)
}
