// Package yaml parses prompt files into [passage.Prompt] values.
//
// A prompt file is a YAML header followed by the template body. The header
// ends at the first line starting with "---"; everything after that line is
// the body. A file without such a line is all header and has an empty body.
package yaml

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/passagecli/passage"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotText indicates prompt content that is not valid UTF-8.
	ErrNotText = errors.New("prompt is not valid utf-8 text")

	// ErrNoOutputs indicates a header without an outputs key. An explicit
	// empty list is accepted.
	ErrNoOutputs = errors.New("prompt header has no outputs")
)

// separator marks the end of the header block.
const separator = "---"

// header is the YAML representation of prompt metadata.
type header struct {
	Name       string       `yaml:"name"`
	Provider   string       `yaml:"provider"`
	APIBaseURL string       `yaml:"apiBaseURL"`
	APIToken   string       `yaml:"apiToken"`
	Model      string       `yaml:"model"`
	Outputs    *[]outputDTO `yaml:"outputs"` // nil when the key is absent or null
}

type outputDTO struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	Method string `yaml:"method"`
}

// Split separates raw prompt content into its header and body.
func Split(content string) (head, body string) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, separator) {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return strings.Join(lines, "\n"), ""
}

// Parse decodes a prompt from raw file content.
func Parse(data []byte) (passage.Prompt, error) {
	if !utf8.Valid(data) {
		return passage.Prompt{}, ErrNotText
	}
	head, body := Split(string(data))

	var h header
	dec := yaml.NewDecoder(bytes.NewReader([]byte(head)))
	if err := dec.Decode(&h); err != nil {
		if errors.Is(err, io.EOF) {
			return passage.Prompt{}, passage.ErrEmptyHeader
		}
		return passage.Prompt{}, errors.Wrap(err, "decode header")
	}
	if h.Outputs == nil {
		return passage.Prompt{}, errors.WithHint(ErrNoOutputs, "add \"outputs: []\" to run a prompt without destinations")
	}

	p := passage.Prompt{
		Name:       h.Name,
		Provider:   h.Provider,
		APIBaseURL: h.APIBaseURL,
		APIToken:   h.APIToken,
		Model:      h.Model,
		Outputs:    make([]passage.Output, 0, len(*h.Outputs)),
		Text:       body,
	}
	for i, o := range *h.Outputs {
		out := passage.Output{
			Type:   passage.OutputType(o.Type),
			Name:   o.Name,
			Method: passage.Method(o.Method),
		}
		if err := out.Validate(); err != nil {
			return passage.Prompt{}, errors.Wrapf(err, "output %d", i)
		}
		p.Outputs = append(p.Outputs, out)
	}
	return p, nil
}

// Load reads and parses a prompt file.
func Load(path string) (passage.Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return passage.Prompt{}, errors.Wrap(err, "read prompt file")
	}
	p, err := Parse(data)
	if err != nil {
		return passage.Prompt{}, errors.Wrapf(err, "parse %s", path)
	}
	return p, nil
}
