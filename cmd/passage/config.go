package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/passagecli/passage"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PASSAGE"

// Configuration keys. Each can be set through PASSAGE_<KEY>; flags win.
// api_base_url and api_token have no defaults here: when unset, each
// completer uses its own (a local server for openai, the vendor API for
// anthropic and gemini).
const (
	keyBaseURL      = "api_base_url"
	keyToken        = "api_token"
	keyProvider     = "provider"
	keyTimeout      = "timeout"
	keyLogLevel     = "log_level"
	keyRender       = "render"
	keyAnthropicKey = "anthropic_api_key"
	keyGeminiKey    = "gemini_api_key"
)

// Render modes for stdout outputs.
const (
	renderAuto   = "auto"
	renderAlways = "always"
	renderNever  = "never"
)

type config struct {
	defaults     passage.Defaults
	anthropicKey string
	geminiKey    string
	timeout      time.Duration
	logLevel     slog.Level
	render       string
}

// newViper returns a viper instance reading PASSAGE_* variables. Provider
// keys also fall back to the variable names their SDKs use.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyProvider, passage.DefaultProvider)
	v.SetDefault(keyTimeout, time.Duration(0))
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyRender, renderNever)

	_ = v.BindEnv(keyAnthropicKey, envPrefix+"_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv(keyGeminiKey, envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	return v
}

// bindFlags lets explicitly set flags override environment values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range map[string]string{
		keyTimeout:  "timeout",
		keyLogLevel: "log-level",
		keyRender:   "render",
		keyProvider: "provider",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		defaults: passage.Defaults{
			Provider: v.GetString(keyProvider),
			BaseURL:  v.GetString(keyBaseURL),
			Token:    v.GetString(keyToken),
		},
		anthropicKey: v.GetString(keyAnthropicKey),
		geminiKey:    v.GetString(keyGeminiKey),
		timeout:      v.GetDuration(keyTimeout),
		render:       strings.ToLower(v.GetString(keyRender)),
	}
	if cfg.timeout < 0 {
		return config{}, errors.Newf("invalid timeout %s: must not be negative", cfg.timeout)
	}
	if err := cfg.logLevel.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return config{}, errors.WithHint(errors.Wrap(err, "log level"), "use one of debug, info, warn, error")
	}
	switch cfg.render {
	case renderAuto, renderAlways, renderNever:
	default:
		return config{}, errors.WithHintf(errors.Newf("invalid render mode %q", cfg.render),
			"use one of %s, %s, %s", renderAuto, renderAlways, renderNever)
	}
	if _, ok := providers[cfg.defaults.Provider]; !ok {
		return config{}, errors.WithHintf(errors.Wrapf(passage.ErrUnknownProvider, "%q", cfg.defaults.Provider),
			"known providers: %s", strings.Join(providerNames(), ", "))
	}
	return cfg, nil
}
