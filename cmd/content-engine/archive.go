// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse articles stored in the archive",
	Long: `Archive reads the SQLite archive written by generate --archive, bulk
and serve when archive.enabled is set. The database path comes from
archive.path.`,
}

// --- list subcommand ---

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived articles, newest first",
	RunE:  runArchiveList,
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := archiveStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), listOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if entries == nil {
			entries = []archive.Entry{}
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	formatEntries(cmd.OutOrStdout(), entries)
	return nil
}

func formatEntries(w io.Writer, entries []archive.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-30s  %-12s  %-5s  %s\n", "ID", "Slug", "Style", "Words", "Created")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range entries {
		slug := e.Slug
		if len(slug) > 30 {
			slug = slug[:27] + "..."
		}
		fmt.Fprintf(w, "%-36s  %-30s  %-12s  %5d  %s\n",
			e.ID, slug, e.Style, e.WordCount, e.CreatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(w, "\n%d articles\n", len(entries))
}

// --- show subcommand ---

var archiveShowCmd = &cobra.Command{
	Use:   "show <id|slug>",
	Short: "Print an archived article as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	store, err := archiveStore()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), e.Article)
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archive metadata to YAML or JSON on stdout",
	RunE:  runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := archiveStore()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd)
	if !cmd.Flags().Changed("limit") {
		opts.Limit = -1
	}
	return store.Export(cmd.Context(), cmd.OutOrStdout(), format, opts)
}

// --- shared helpers ---

func archiveStore() (*archive.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return openArchive(cfg.Archive)
}

func listOptsFromFlags(cmd *cobra.Command) archive.ListOptions {
	query, _ := cmd.Flags().GetString("query")
	style, _ := cmd.Flags().GetString("style")
	limit, _ := cmd.Flags().GetInt("limit")
	return archive.ListOptions{Query: query, Style: style, Limit: limit}
}

func init() {
	// Shared filter flags on the parent command, inherited by subcommands.
	archiveCmd.PersistentFlags().String("query", "", "filter by title substring")
	archiveCmd.PersistentFlags().String("style", "", "filter by style")
	archiveCmd.PersistentFlags().Int("limit", 20, "maximum entries (negative = all)")

	archiveListCmd.Flags().Bool("json", false, "output entries as JSON")
	archiveExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}
