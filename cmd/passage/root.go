package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/muesli/termenv"
	"github.com/passagecli/passage"
	"github.com/passagecli/passage/fs"
	"github.com/passagecli/passage/goldmark"
	pjson "github.com/passagecli/passage/json"
	"github.com/passagecli/passage/yaml"
	"github.com/spf13/cobra"
)

type options struct {
	inputFile    string
	outputFolder string
	transcript   string
	dryRun       bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options
	v := newViper()

	cmd := &cobra.Command{
		Use:           "passage <prompts-folder>",
		Short:         "Run a folder of prompt files as an ordered chain",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger := newLogger(stderr, cfg.logLevel)
			r := &runner{cfg: cfg, opts: opts, stdin: stdin, stdout: stdout, logger: logger}
			return r.run(cmd.Context(), args[0])
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.inputFile, "input-file", "i", "", "path to the initial input (default: stdin)")
	f.StringVarP(&opts.outputFolder, "output-folder", "o", "", "folder that file outputs are written to (default: working directory)")
	f.StringVar(&opts.transcript, "transcript", "", "write a JSON transcript of the run to this path")
	f.BoolVar(&opts.dryRun, "dry-run", false, "list the prompt chain without running it")
	f.String("provider", passage.DefaultProvider, "default provider for prompts that name none")
	f.Duration("timeout", 0, "per-request timeout for completion backends (0 = none)")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("render", renderNever, "render markdown on stdout: auto, always, never")
	return cmd
}

type runner struct {
	cfg    config
	opts   options
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
}

func (r *runner) run(ctx context.Context, folder string) error {
	paths, err := fs.Discover(folder)
	if err != nil {
		return err
	}
	prompts := r.load(paths)
	if r.opts.dryRun {
		return r.dryRun(paths, prompts)
	}

	input, err := r.readInput()
	if err != nil {
		return err
	}

	execOpts := append(completerOptions(r.cfg),
		passage.WithDefaults(r.cfg.defaults),
		passage.WithFileStore(fs.NewStore(r.opts.outputFolder)),
		passage.WithStdout(r.stdout),
		passage.WithLogger(r.logger),
	)
	if r.renderStdout() {
		execOpts = append(execOpts, passage.WithStdoutRenderer(goldmark.New().Render))
	}
	var rec *passage.Recorder
	if r.opts.transcript != "" {
		rec = passage.NewRecorder(input)
		execOpts = append(execOpts, passage.WithEventHandler(rec.Handle))
	}

	list := make([]passage.Prompt, 0, len(prompts))
	for _, lp := range prompts {
		if lp.err == nil {
			list = append(list, lp.prompt)
		}
	}
	r.logger.Debug("running chain", "folder", folder, "prompts", len(list))
	e := passage.NewExecutor(input, list, execOpts...)
	runErr := e.Run(ctx)

	// A transcript is written even for a failed run; it shows how far it got.
	if rec != nil {
		if err := pjson.Save(r.opts.transcript, rec.Transcript(e.Memory())); err != nil {
			if runErr == nil {
				return errors.Wrap(err, "save transcript")
			}
			r.logger.Error("save transcript", "error", err)
		}
	}
	return runErr
}

type loaded struct {
	path   string
	prompt passage.Prompt
	err    error
}

// load parses every prompt file. Files that fail to parse are dropped from
// the chain with a warning.
func (r *runner) load(paths []string) []loaded {
	out := make([]loaded, 0, len(paths))
	for _, p := range paths {
		prompt, err := yaml.Load(p)
		if err != nil {
			r.logger.Warn("skipping prompt file", "path", p, "error", err)
		}
		out = append(out, loaded{path: p, prompt: prompt, err: err})
	}
	return out
}

func (r *runner) dryRun(paths []string, prompts []loaded) error {
	w := r.stdout
	n := 0
	for _, lp := range prompts {
		if lp.err != nil {
			fmt.Fprintf(w, "-  %s: skipped: %v\n", lp.path, lp.err)
			continue
		}
		n++
		mode := "pass-through"
		if inv, ok := lp.prompt.Resolve(r.cfg.defaults).(passage.Invoke); ok {
			mode = fmt.Sprintf("invoke %s/%s", inv.Provider, inv.Model)
		}
		fmt.Fprintf(w, "%-2d %s: %s, %d output(s)\n", n, lp.path, mode, len(lp.prompt.Outputs))
	}
	if len(paths) == 0 {
		fmt.Fprintln(w, "no prompt files found")
	}
	return nil
}

func (r *runner) readInput() (string, error) {
	var (
		data []byte
		err  error
	)
	if r.opts.inputFile != "" {
		data, err = os.ReadFile(r.opts.inputFile)
		if err != nil {
			return "", errors.Wrap(err, "read input file")
		}
	} else {
		data, err = io.ReadAll(r.stdin)
		if err != nil {
			return "", errors.Wrap(err, "read stdin")
		}
	}
	if !utf8.Valid(data) {
		return "", errors.New("input is not valid UTF-8 text")
	}
	return string(data), nil
}

// renderStdout reports whether stdout outputs go through the markdown
// renderer. "always" also forces ANSI colours on non-terminals.
func (r *runner) renderStdout() bool {
	switch r.cfg.render {
	case renderAlways:
		lipgloss.SetColorProfile(termenv.ANSI)
		return true
	case renderAuto:
		return isTerminal(r.stdout)
	default:
		return false
	}
}
