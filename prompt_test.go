package passage_test

import (
	"testing"

	"github.com/passagecli/passage"
	"github.com/stretchr/testify/assert"
)

func TestPrompt_Resolve(t *testing.T) {
	t.Parallel()

	defaults := passage.Defaults{Provider: "openai", BaseURL: "http://default/v1", Token: "default-token"}

	t.Run("no model passes through", func(t *testing.T) {
		t.Parallel()
		p := passage.Prompt{APIBaseURL: "http://ignored", Provider: "anthropic"}
		assert.Equal(t, passage.PassThrough{}, p.Resolve(defaults))
	})

	t.Run("model uses defaults", func(t *testing.T) {
		t.Parallel()
		p := passage.Prompt{Model: "llama"}
		assert.Equal(t, passage.Invoke{
			Provider: "openai",
			Model:    "llama",
			BaseURL:  "http://default/v1",
			Token:    "default-token",
		}, p.Resolve(defaults))
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Parallel()
		p := passage.Prompt{Model: "llama", APIBaseURL: "http://mine/v1", APIToken: "mine"}
		assert.Equal(t, passage.Invoke{
			Provider: "openai",
			Model:    "llama",
			BaseURL:  "http://mine/v1",
			Token:    "mine",
		}, p.Resolve(defaults))
	})

	t.Run("other providers do not inherit defaults", func(t *testing.T) {
		t.Parallel()
		p := passage.Prompt{Model: "claude", Provider: "anthropic"}
		assert.Equal(t, passage.Invoke{Provider: "anthropic", Model: "claude"}, p.Resolve(defaults))
	})

	t.Run("non-openai default provider without settings leaves them empty", func(t *testing.T) {
		t.Parallel()
		p := passage.Prompt{Model: "claude-x"}
		got := p.Resolve(passage.Defaults{Provider: "anthropic"})
		assert.Equal(t, passage.Invoke{Provider: "anthropic", Model: "claude-x"}, got)
	})

	t.Run("naming the default provider keeps defaults", func(t *testing.T) {
		t.Parallel()
		p := passage.Prompt{Model: "llama", Provider: "openai"}
		inv, ok := p.Resolve(defaults).(passage.Invoke)
		assert.True(t, ok)
		assert.Equal(t, "http://default/v1", inv.BaseURL)
	})
}

func TestOutput_Routable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  passage.Output
		want bool
	}{
		{"stdout needs nothing", passage.Output{Type: passage.OutputStdout}, true},
		{"variable complete", passage.Output{Type: passage.OutputVariable, Name: "x", Method: passage.MethodReplace}, true},
		{"variable without name", passage.Output{Type: passage.OutputVariable, Method: passage.MethodReplace}, false},
		{"variable without method", passage.Output{Type: passage.OutputVariable, Name: "x"}, false},
		{"file complete", passage.Output{Type: passage.OutputFile, Name: "a.txt", Method: passage.MethodAppend}, true},
		{"file without method", passage.Output{Type: passage.OutputFile, Name: "a.txt"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.out.Routable())
		})
	}
}

func TestOutput_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, passage.Output{Type: passage.OutputStdout}.Validate())
	assert.NoError(t, passage.Output{Type: passage.OutputFile, Name: "a", Method: passage.MethodPrepend}.Validate())
	assert.ErrorIs(t, passage.Output{Type: "email"}.Validate(), passage.ErrInvalidOutput)
	assert.ErrorIs(t, passage.Output{Type: passage.OutputVariable, Method: "merge"}.Validate(), passage.ErrInvalidOutput)
}

func TestMethod_Merge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method passage.Method
		prior  string
		exists bool
		want   string
	}{
		{"replace without prior", passage.MethodReplace, "", false, "new"},
		{"replace discards prior", passage.MethodReplace, "old", true, "new"},
		{"append without prior", passage.MethodAppend, "", false, "new"},
		{"append with prior", passage.MethodAppend, "old", true, "old\nnew"},
		{"append to existing empty value", passage.MethodAppend, "", true, "\nnew"},
		{"prepend without prior", passage.MethodPrepend, "", false, "new"},
		{"prepend with prior", passage.MethodPrepend, "old", true, "new\nold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.method.Merge(tt.prior, tt.exists, "new"))
		})
	}
}

func TestDefaultDefaults(t *testing.T) {
	t.Parallel()

	d := passage.DefaultDefaults()
	assert.Equal(t, "openai", d.Provider)
	assert.Equal(t, "http://127.0.0.1:1234/v1", d.BaseURL)
	assert.Equal(t, "12345", d.Token)
}
