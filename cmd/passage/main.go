// Command passage runs a folder of prompt files as an ordered chain.
//
// Usage:
//
//	passage <prompts-folder> [flags] < input.txt
//
// Each prompt file carries a YAML header, a line starting with "---", and a
// template body. Prompts with a model are sent to a completion backend;
// prompts without one pass their substituted text through unchanged.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		report(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// report prints err and any hints attached to it.
func report(w io.Writer, err error) {
	fmt.Fprintf(w, "passage: %v\n", err)
	for _, h := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", strings.ReplaceAll(h, "\n", "\n        "))
	}
}
