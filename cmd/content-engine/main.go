// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the content-engine CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/secrets"
	"github.com/pdiddy/content-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// creds holds the API keys resolved at startup.
var creds types.Credentials

// logger writes structured logs to stderr; stdout carries command output.
var logger = slog.Default()

// rootCmd is the base command for the content-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "content-engine",
	Short: "Generate and humanize blog and social articles",
	Long: `content-engine writes blog and social articles for a topic. It asks a
chain of text-generation backends for a draft, rewrites the draft under a
humanization style, places images from a chain of image providers, and
assembles HTML with a table of contents, SEO metadata and structured data.

generate reads one JSON request on stdin and writes one JSON article on
stdout. humanize rewrites existing text. bulk and serve wrap the same
pipeline for batches and HTTP clients.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(viper.GetString("log_level"), cmd.Name() == "serve")
		slog.SetDefault(logger)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info("using config file", "path", f)
		}

		return loadCredentials(cmd, viper.GetString("secrets_dir"), viper.GetString("env_file"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./content-engine.yaml or ~/.config/content-engine/content-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of API key files")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with API keys")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
	viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("content-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "content-engine"))
		}
	}

	configureViper(viper.GetViper())
	viper.ReadInConfig()
}

// configureViper installs defaults and the CONTENT_ENGINE_ environment
// binding, so CONTENT_ENGINE_IMAGES_SCRAPE_RATE sets images.scrape_rate.
func configureViper(v *viper.Viper) {
	setDefaults(v)
	v.SetEnvPrefix("CONTENT_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func newLogger(level string, asJSON bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadCredentials resolves API keys into creds. generate promises one
// JSON object on stdout, so its startup failures are reported there too.
func loadCredentials(cmd *cobra.Command, dir, envFile string) error {
	c, err := secrets.Credentials(dir, envFile)
	if err != nil {
		if cmd.Name() == "generate" {
			return writeError(cmd.OutOrStdout(), err)
		}
		return err
	}
	creds = c
	if names := credentialNames(c); len(names) > 0 {
		logger.Debug("loaded credentials", "keys", names)
	}
	return nil
}

// credentialNames lists which credentials are set, never their values.
func credentialNames(c types.Credentials) []string {
	var names []string
	for name, v := range map[string]string{
		"gemini":    c.GeminiAPIKey,
		"openai":    c.OpenAIAPIKey,
		"anthropic": c.AnthropicAPIKey,
		"pexels":    c.PexelsAPIKey,
		"serpapi":   c.SerpAPIKey,
	} {
		if v != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
