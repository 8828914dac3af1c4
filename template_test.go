package passage_test

import (
	"testing"

	"github.com/passagecli/passage"
	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	mem := func(kv ...string) *passage.Memory {
		var m passage.Memory
		for i := 0; i+1 < len(kv); i += 2 {
			m.Set(kv[i], kv[i+1])
		}
		return &m
	}

	tests := []struct {
		name  string
		text  string
		input string
		mem   *passage.Memory
		want  string
	}{
		{"input and variable", "{{input}} and {{x}}", "A", mem("x", "B"), "A and B"},
		{"every occurrence", "{{input}}{{input}} {{x}}{{x}}", "A", mem("x", "B"), "AA BB"},
		{"unknown token left verbatim", "{{input}} {{missing}}", "A", mem(), "A {{missing}}"},
		{"no tokens", "plain text", "A", mem("x", "B"), "plain text"},
		{"input value is not rescanned", "{{input}}", "{{x}}", mem("x", "B"), "{{x}}"},
		{"variable value is not rescanned", "{{a}}", "", mem("a", "{{b}}", "b", "B"), "{{b}}"},
		{"input token beats variable named input", "{{input}}", "A", mem("input", "shadow"), "A"},
		{"near misses stay", "{input} {{ x }} {{x}", "A", mem("x", "B"), "{input} {{ x }} {{x}"},
		{"empty template", "", "A", mem("x", "B"), ""},
		{"multiline values", "<{{x}}>", "", mem("x", "a\nb"), "<a\nb>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, passage.Substitute(tt.text, tt.input, tt.mem))
		})
	}
}
