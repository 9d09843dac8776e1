// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/article"
)

var humanizeCmd = &cobra.Command{
	Use:   "humanize",
	Short: "Rewrite text from stdin under a humanization style",
	Long: `Humanize reads text from stdin, runs it through the humanization
pipeline of the chosen style, and writes the result to stdout. Markdown and
HTML headings are kept and written back as markdown headings.`,
	Example: `  content-engine humanize --style ultra < draft.md`,
	RunE:    runHumanize,
}

func init() {
	humanizeCmd.Flags().String("style", "", "humanization style (default from config)")
	humanizeCmd.Flags().Uint64("seed", 0, "random seed for reproducible output")

	rootCmd.AddCommand(humanizeCmd)
}

func runHumanize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	// Humanizing needs only the policies, not the network chains.
	w, err := policyWriter(cfg)
	if err != nil {
		return err
	}

	style, _ := cmd.Flags().GetString("style")
	var seed *uint64
	if cmd.Flags().Changed("seed") {
		s, _ := cmd.Flags().GetUint64("seed")
		seed = &s
	}
	return humanizeText(cmd.InOrStdin(), cmd.OutOrStdout(), w, style, seed)
}

func humanizeText(in io.Reader, out io.Writer, w *article.Writer, style string, seed *uint64) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	text, err := w.Humanize(string(data), style, seed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}
