package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/freedict"
	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/mymemory"
	"github.com/heartmarshall/parla-dictionary/internal/app"
	"github.com/heartmarshall/parla-dictionary/internal/config"
	"github.com/heartmarshall/parla-dictionary/internal/service/lookup"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel string
	source   string
	target   string
}

// lookupFlags configure the external providers.
type lookupFlags struct {
	translationURL   string
	translationEmail string
	noTranslate      bool
	definitionURL    string
	timeout          time.Duration
	retries          int
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "dictctl",
		Short:         "Inspect and drive the Parla dictionary pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&g.source, "source", "en", "source language")
	root.PersistentFlags().StringVar(&g.target, "target", "it", "target language")

	root.AddCommand(newExtractCmd(), newLookupCmd(g), newSyncCmd(g))
	return root
}

func (l *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&l.translationURL, "translation-url", mymemory.DefaultBaseURL, "translation API base URL")
	cmd.Flags().StringVar(&l.translationEmail, "translation-email", "", "contact email sent to the translation API")
	cmd.Flags().BoolVar(&l.noTranslate, "no-translate", false, "skip translation lookups")
	cmd.Flags().StringVar(&l.definitionURL, "definition-url", freedict.DefaultBaseURL, "dictionary API base URL")
	cmd.Flags().DurationVar(&l.timeout, "timeout", 10*time.Second, "per-request timeout")
	cmd.Flags().IntVar(&l.retries, "retries", 1, "retries for transient failures")
}

// config maps the flags onto the server's configuration so the CLI wires
// providers exactly like the server.
func (l *lookupFlags) config(g *globalFlags) *config.Config {
	cfg := &config.Config{}
	cfg.Translation = config.TranslationConfig{
		Provider: config.TranslationMyMemory,
		BaseURL:  l.translationURL,
		Email:    l.translationEmail,
		Timeout:  l.timeout,
	}
	if l.noTranslate {
		cfg.Translation.Provider = config.TranslationNone
	}
	cfg.Definition = config.DefinitionConfig{BaseURL: l.definitionURL, Timeout: l.timeout}
	cfg.Sync = config.SyncConfig{
		SourceLanguage: g.source,
		TargetLanguage: g.target,
		MaxRetries:     l.retries,
		RetryWait:      500 * time.Millisecond,
	}
	return cfg
}

func (l *lookupFlags) service(g *globalFlags, logger *slog.Logger) *lookup.Service {
	return app.NewLookupService(l.config(g), logger)
}

func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(g.logLevel)}))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return level
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
