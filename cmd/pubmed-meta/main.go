// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-meta CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/pubmed-meta/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE. Tests replace it with zap.NewNop().
	logger = zap.NewNop()

	// loadedSecrets holds credentials read from .secrets/ at startup.
	loadedSecrets = secrets.Secrets{}
)

var rootCmd = &cobra.Command{
	Use:   "pubmed-meta",
	Short: "Fetch PubMed metadata for a list of IDs and export it as CSV and XLSX",
	Long: `pubmed-meta reads PubMed IDs (one per line) from a text file, looks up each
one through the NCBI E-utilities API, and writes PubMed ID, title, authors,
journal, and publication year to CSV and XLSX files next to the input.

PMC IDs, DOIs, and other free text are resolved to PubMed IDs by searching
PubMed. Set an NCBI API key in .secrets/ncbi-api-key or the config file to
raise the request rate from 3 to 10 per second.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pubmed-meta.yaml or ~/.config/pubmed-meta/config.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("secrets-dir", ".secrets", "directory holding ncbi-api-key and ncbi-email files")
	pf.String("email", "", "contact email sent to NCBI (default test@example.com)")
	pf.String("api-key", "", "NCBI API key")
	pf.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	pf.Int("max-retries", 0, "retries on HTTP 429/5xx (default 3)")
	pf.String("base-url", "", "E-utilities base URL")
	_ = pf.MarkHidden("base-url")

	for key, flag := range map[string]string{
		"verbose":            "verbose",
		"secrets_dir":        "secrets-dir",
		"entrez.email":       "email",
		"entrez.api_key":     "api-key",
		"entrez.timeout":     "timeout",
		"entrez.max_retries": "max-retries",
		"entrez.base_url":    "base-url",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-meta")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-meta"))
		}
	}

	viper.SetEnvPrefix("PUBMED_META")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a console logger on stderr with ISO8601 timestamps.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
