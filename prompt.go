package passage

import "github.com/cockroachdb/errors"

// Prompt is one parsed unit of the chain. It is treated as immutable once
// loaded. Empty optional fields mean "use the process default".
type Prompt struct {
	Name       string
	Provider   string // completer name; empty = Defaults.Provider
	APIBaseURL string // empty = Defaults.BaseURL
	APIToken   string // empty = Defaults.Token
	Model      string // empty = pass the message through unchanged
	Outputs    []Output
	Text       string
}

// OutputType selects the destination of a prompt result.
type OutputType string

const (
	OutputStdout   OutputType = "stdout"
	OutputVariable OutputType = "variable"
	OutputFile     OutputType = "file"
)

// Method is the merge policy applied to a variable or file destination.
type Method string

const (
	MethodReplace Method = "replace"
	MethodAppend  Method = "append"
	MethodPrepend Method = "prepend"
)

// Output is a single destination of a prompt result.
// Name and Method are only meaningful for variable and file outputs.
type Output struct {
	Type   OutputType
	Name   string
	Method Method
}

// Validate reports whether the output's type and method are known values.
// An absent method is valid here; it is only required at routing time.
func (o Output) Validate() error {
	switch o.Type {
	case OutputStdout, OutputVariable, OutputFile:
	default:
		return errors.Wrapf(ErrInvalidOutput, "unknown type %q", string(o.Type))
	}
	switch o.Method {
	case "", MethodReplace, MethodAppend, MethodPrepend:
	default:
		return errors.Wrapf(ErrInvalidOutput, "unknown method %q", string(o.Method))
	}
	return nil
}

// Routable reports whether the output can be applied. Stdout needs nothing
// else; variable and file outputs need a name and a known method. Anything
// else is skipped.
func (o Output) Routable() bool {
	switch o.Type {
	case OutputStdout:
		return true
	case OutputVariable, OutputFile:
		switch o.Method {
		case MethodReplace, MethodAppend, MethodPrepend:
			return o.Name != ""
		}
	}
	return false
}

// Merge combines a new response with the current value of a destination.
// exists reports whether a prior value was present at all.
func (m Method) Merge(prior string, exists bool, response string) string {
	switch m {
	case MethodAppend:
		if !exists {
			return response
		}
		return prior + "\n" + response
	case MethodPrepend:
		if !exists {
			return response
		}
		return response + "\n" + prior
	default:
		return response
	}
}

// Defaults carries the process-wide backend settings used when a prompt does
// not override them. BaseURL and Token apply to Provider only; empty values
// leave the completer's own defaults in place.
type Defaults struct {
	Provider string
	BaseURL  string
	Token    string
}

const (
	DefaultProvider = "openai"
	DefaultBaseURL  = "http://127.0.0.1:1234/v1"
	DefaultToken    = "12345"
)

// DefaultDefaults returns the built-in backend settings: a local
// OpenAI-compatible server.
func DefaultDefaults() Defaults {
	return Defaults{
		Provider: DefaultProvider,
		BaseURL:  DefaultBaseURL,
		Token:    DefaultToken,
	}
}

// Resolution is a sealed interface describing how a prompt obtains its
// response. The unexported marker method prevents external implementations.
type Resolution interface {
	resolution()
}

// PassThrough uses the substituted message itself as the response.
type PassThrough struct{}

func (PassThrough) resolution() {}

// Invoke sends the substituted message to a completer.
type Invoke struct {
	Provider string
	Model    string
	BaseURL  string
	Token    string
}

func (Invoke) resolution() {}

// Interface compliance checks.
var (
	_ Resolution = PassThrough{}
	_ Resolution = Invoke{}
)

// Resolve decides how the prompt obtains its response. The presence of a
// model is the only discriminator. Missing overrides fall back to d only for
// the default provider; other providers receive them empty and apply their
// own defaults.
func (p Prompt) Resolve(d Defaults) Resolution {
	if p.Model == "" {
		return PassThrough{}
	}
	inv := Invoke{
		Provider: p.Provider,
		Model:    p.Model,
		BaseURL:  p.APIBaseURL,
		Token:    p.APIToken,
	}
	if inv.Provider == "" {
		inv.Provider = d.Provider
	}
	if inv.Provider != d.Provider {
		return inv
	}
	if inv.BaseURL == "" {
		inv.BaseURL = d.BaseURL
	}
	if inv.Token == "" {
		inv.Token = d.Token
	}
	return inv
}
