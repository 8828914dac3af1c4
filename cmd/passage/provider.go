package main

import (
	"maps"
	"net/http"
	"slices"

	"github.com/passagecli/passage"
	"github.com/passagecli/passage/anthropic"
	"github.com/passagecli/passage/gemini"
	"github.com/passagecli/passage/openai"
)

// providers builds every completer the executor can route to. All values
// are passed in through cfg; the environment is only read by viper.
var providers = map[string]func(cfg config) passage.Completer{
	"openai": func(cfg config) passage.Completer {
		return openai.New(openai.WithTimeout(cfg.timeout))
	},
	"anthropic": func(cfg config) passage.Completer {
		opts := []anthropic.Option{anthropic.WithHTTPClient(httpClient(cfg))}
		if cfg.anthropicKey != "" {
			opts = append(opts, anthropic.WithAPIKey(cfg.anthropicKey))
		}
		return anthropic.New(opts...)
	},
	"gemini": func(cfg config) passage.Completer {
		opts := []gemini.Option{gemini.WithHTTPClient(httpClient(cfg))}
		if cfg.geminiKey != "" {
			opts = append(opts, gemini.WithAPIKey(cfg.geminiKey))
		}
		return gemini.New(opts...)
	},
}

func providerNames() []string {
	return slices.Sorted(maps.Keys(providers))
}

func httpClient(cfg config) *http.Client {
	return &http.Client{Timeout: cfg.timeout}
}

// completerOptions registers every known provider with the executor.
func completerOptions(cfg config) []passage.Option {
	var opts []passage.Option
	for _, name := range providerNames() {
		opts = append(opts, passage.WithCompleter(name, providers[name](cfg)))
	}
	return opts
}
