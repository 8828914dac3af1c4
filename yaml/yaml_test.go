package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/passagecli/passage"
	"github.com/passagecli/passage/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("header and body", func(t *testing.T) {
		t.Parallel()
		head, body := yaml.Split("name: a\nmodel: m\n---\nline one\nline two")
		assert.Equal(t, "name: a\nmodel: m", head)
		assert.Equal(t, "line one\nline two", body)
	})

	t.Run("no separator is all header", func(t *testing.T) {
		t.Parallel()
		head, body := yaml.Split("name: a\noutputs: []")
		assert.Equal(t, "name: a\noutputs: []", head)
		assert.Empty(t, body)
	})

	t.Run("only the first separator splits", func(t *testing.T) {
		t.Parallel()
		_, body := yaml.Split("name: a\n---\nabove\n---\nbelow")
		assert.Equal(t, "above\n---\nbelow", body)
	})

	t.Run("separator line may carry trailing text", func(t *testing.T) {
		t.Parallel()
		head, body := yaml.Split("name: a\n-----  \nbody")
		assert.Equal(t, "name: a", head)
		assert.Equal(t, "body", body)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		t.Parallel()
		head, body := yaml.Split("name: a\r\n---\r\nx\r\ny")
		assert.Equal(t, "name: a", head)
		assert.Equal(t, "x\ny", body)
	})

	t.Run("trailing newline keeps an empty last line", func(t *testing.T) {
		t.Parallel()
		_, body := yaml.Split("name: a\n---\nbody\n")
		assert.Equal(t, "body\n", body)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("full header", func(t *testing.T) {
		t.Parallel()
		src := `name: summarize
model: llama-3
provider: openai
apiBaseURL: http://localhost:8080/v1
apiToken: secret
outputs:
  - type: stdout
  - type: variable
    name: summary
    method: append
  - type: file
    name: out.md
    method: prepend
---
Summarize {{input}}`

		p, err := yaml.Parse([]byte(src))
		require.NoError(t, err)

		assert.Equal(t, "summarize", p.Name)
		assert.Equal(t, "llama-3", p.Model)
		assert.Equal(t, "openai", p.Provider)
		assert.Equal(t, "http://localhost:8080/v1", p.APIBaseURL)
		assert.Equal(t, "secret", p.APIToken)
		assert.Equal(t, "Summarize {{input}}", p.Text)
		assert.Equal(t, []passage.Output{
			{Type: passage.OutputStdout},
			{Type: passage.OutputVariable, Name: "summary", Method: passage.MethodAppend},
			{Type: passage.OutputFile, Name: "out.md", Method: passage.MethodPrepend},
		}, p.Outputs)
	})

	t.Run("no model means pass-through", func(t *testing.T) {
		t.Parallel()
		p, err := yaml.Parse([]byte("outputs:\n  - type: stdout\n---\nhello"))
		require.NoError(t, err)
		assert.Equal(t, passage.PassThrough{}, p.Resolve(passage.DefaultDefaults()))
	})

	t.Run("missing outputs fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte("model: llama\n---\nsummarise {{input}}"))
		assert.ErrorIs(t, err, yaml.ErrNoOutputs)
	})

	t.Run("null outputs fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte("name: quiet\noutputs:\n---\nhello"))
		assert.ErrorIs(t, err, yaml.ErrNoOutputs)
	})

	t.Run("explicit empty outputs is valid", func(t *testing.T) {
		t.Parallel()
		p, err := yaml.Parse([]byte("name: quiet\noutputs: []\n---\nhello"))
		require.NoError(t, err)
		assert.NotNil(t, p.Outputs)
		assert.Empty(t, p.Outputs)
	})

	t.Run("output missing name still parses", func(t *testing.T) {
		t.Parallel()
		p, err := yaml.Parse([]byte("outputs:\n  - type: variable\n    method: replace\n---\nx"))
		require.NoError(t, err)
		require.Len(t, p.Outputs, 1)
		assert.False(t, p.Outputs[0].Routable())
	})

	t.Run("unknown output type fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte("outputs:\n  - type: email\n---\nx"))
		assert.ErrorIs(t, err, passage.ErrInvalidOutput)
	})

	t.Run("unknown method fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte("outputs:\n  - type: file\n    name: a\n    method: merge\n---\nx"))
		assert.ErrorIs(t, err, passage.ErrInvalidOutput)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte("outputs: [\n---\nx"))
		assert.Error(t, err)
	})

	t.Run("scalar header fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte("just some words\n---\nx"))
		assert.Error(t, err)
	})

	t.Run("empty header fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte("---\nbody only"))
		assert.ErrorIs(t, err, passage.ErrEmptyHeader)
	})

	t.Run("invalid utf-8 fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Parse([]byte{'n', ':', ' ', 0xff, 0xfe})
		assert.ErrorIs(t, err, yaml.ErrNotText)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads and parses a file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "01.md")
		require.NoError(t, os.WriteFile(path, []byte("name: one\noutputs: []\n---\nbody"), 0o644))

		p, err := yaml.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "one", p.Name)
		assert.Equal(t, "body", p.Text)
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()
		_, err := yaml.Load(filepath.Join(t.TempDir(), "nope.md"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
