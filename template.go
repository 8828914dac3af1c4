package passage

import "strings"

// InputToken is replaced with the run's initial input.
const InputToken = "{{input}}"

// Substitute resolves a prompt template against the initial input and the
// current memory. {{input}} takes precedence over a variable named "input";
// the remaining {{key}} tokens follow in sorted key order. Replacement is
// literal and happens in a single left-to-right pass, so inserted values are
// never scanned for further tokens. Unknown tokens are left as they are.
func Substitute(text, input string, mem *Memory) string {
	keys := mem.Keys()
	pairs := make([]string, 0, 2+2*len(keys))
	pairs = append(pairs, InputToken, input)
	for _, key := range keys {
		v, _ := mem.Get(key)
		pairs = append(pairs, "{{"+key+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
