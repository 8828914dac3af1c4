package passage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Executor runs an ordered chain of prompts against a shared memory.
// It is not safe for concurrent use; a run is strictly sequential.
type Executor struct {
	input   string
	prompts []Prompt
	memory  Memory

	completers map[string]Completer
	files      FileStore
	stdout     io.Writer
	render     func(string) string
	defaults   Defaults
	logger     *slog.Logger
	onEvent    func(Event)
}

// Option configures an [Executor].
type Option func(*Executor)

// WithCompleter registers c under a provider name. Prompts resolve to a
// provider through their own header or Defaults.Provider.
func WithCompleter(provider string, c Completer) Option {
	return func(e *Executor) { e.completers[provider] = c }
}

// WithFileStore sets the store used by file outputs.
func WithFileStore(fs FileStore) Option {
	return func(e *Executor) { e.files = fs }
}

// WithStdout sets the writer used by stdout outputs. Default is os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(e *Executor) { e.stdout = w }
}

// WithStdoutRenderer transforms responses before they are written to stdout.
// Memory and files always receive the raw response.
func WithStdoutRenderer(fn func(string) string) Option {
	return func(e *Executor) { e.render = fn }
}

// WithDefaults sets the backend settings used when a prompt has no override.
func WithDefaults(d Defaults) Option {
	return func(e *Executor) { e.defaults = d }
}

// WithLogger sets the structured logger. Default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithEventHandler sets a callback that receives each run event. If nil or
// not set, events are silently discarded.
func WithEventHandler(h func(Event)) Option {
	return func(e *Executor) { e.onEvent = h }
}

// NewExecutor creates an Executor for the given initial input and prompts.
// The prompt order is fixed here; later changes to the caller's slice have no
// effect on the run.
func NewExecutor(input string, prompts []Prompt, opts ...Option) *Executor {
	e := &Executor{
		input:      input,
		prompts:    slices.Clone(prompts),
		completers: make(map[string]Completer),
		stdout:     os.Stdout,
		defaults:   DefaultDefaults(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Memory returns a copy of the current variable environment.
func (e *Executor) Memory() map[string]string {
	return e.memory.Snapshot()
}

// Run executes every prompt in order. Any returned error is fatal for the
// run: effects of prompts and outputs applied before it stay in place.
func (e *Executor) Run(ctx context.Context) error {
	for i, p := range e.prompts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runPrompt(ctx, i, p); err != nil {
			return errors.Wrapf(err, "prompt %d%s", i+1, label(p))
		}
	}
	return nil
}

func label(p Prompt) string {
	if p.Name == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", p.Name)
}

func (e *Executor) runPrompt(ctx context.Context, i int, p Prompt) error {
	msg := Substitute(p.Text, e.input, &e.memory)
	res := p.Resolve(e.defaults)
	e.emit(EventPromptStarted{Index: i, Name: p.Name, Message: msg, Resolution: res})

	start := time.Now()
	response, err := e.resolve(ctx, res, msg)
	if err != nil {
		return err
	}
	var elapsed time.Duration
	if inv, ok := res.(Invoke); ok {
		elapsed = time.Since(start)
		e.logger.Info("prompt completed",
			"index", i+1, "name", p.Name, "provider", inv.Provider, "model", inv.Model,
			"duration", elapsed)
	} else {
		e.logger.Debug("prompt passed through", "index", i+1, "name", p.Name)
	}
	e.emit(EventResponse{Index: i, Response: response, Duration: elapsed})

	for _, out := range p.Outputs {
		if err := e.route(i, out, response); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) resolve(ctx context.Context, res Resolution, msg string) (string, error) {
	switch r := res.(type) {
	case PassThrough:
		return msg, nil
	case Invoke:
		c, ok := e.completers[r.Provider]
		if !ok {
			err := errors.Wrapf(ErrUnknownProvider, "%q", r.Provider)
			return "", errors.WithHintf(err, "registered providers: %s",
				strings.Join(slices.Sorted(maps.Keys(e.completers)), ", "))
		}
		text, err := c.Complete(ctx, CompletionRequest{
			BaseURL: r.BaseURL,
			Token:   r.Token,
			Model:   r.Model,
			Message: msg,
		})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	default:
		return "", errors.AssertionFailedf("unhandled resolution %T", res)
	}
}

func (e *Executor) route(i int, out Output, response string) error {
	if !out.Routable() {
		e.logger.Warn("skipping output",
			"index", i+1, "type", string(out.Type), "name", out.Name, "method", string(out.Method))
		e.emit(EventOutputSkipped{Index: i, Output: out})
		return nil
	}

	var value string
	switch out.Type {
	case OutputStdout:
		text := response
		if e.render != nil {
			text = e.render(response)
		}
		if _, err := fmt.Fprintln(e.stdout, text); err != nil {
			return errors.Wrap(err, "write stdout")
		}
		value = response
	case OutputVariable:
		value = e.memory.Merge(out.Name, out.Method, response)
	case OutputFile:
		v, err := e.mergeFile(out.Name, out.Method, response)
		if err != nil {
			return err
		}
		value = v
	}
	e.emit(EventOutputApplied{Index: i, Output: out, Value: value})
	return nil
}

// mergeFile reads the current file content fresh on every call so that
// repeated outputs to the same file see each other's writes.
func (e *Executor) mergeFile(name string, method Method, response string) (string, error) {
	if e.files == nil {
		return "", errors.Newf("file output %q: no file store configured", name)
	}
	prior, exists, err := e.files.Read(name)
	if err != nil {
		e.logger.Warn("unreadable output file treated as empty", "file", name, "error", err)
		prior, exists = "", false
	}
	v := method.Merge(prior, exists, response)
	if err := e.files.Write(name, v); err != nil {
		err = errors.Wrapf(err, "write output file %q", name)
		return "", errors.WithHint(err, "output folders are not created automatically; check that it exists and is writable")
	}
	return v, nil
}

func (e *Executor) emit(evt Event) {
	if e.onEvent != nil {
		e.onEvent(evt)
	}
}
