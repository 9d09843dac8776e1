// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/article"
	"github.com/pdiddy/content-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one article from a JSON request on stdin",
	Long: `Generate reads one JSON request from stdin and writes one JSON article
to stdout. Every request field is optional; the topic defaults to
"technology". When no text backend answers, the article is built from
fallback text, and when no image provider answers, placeholder images are
used. Missing or malformed JSON falls back to the default request, so the
command nearly always yields an article.

When no article can be produced the command writes {"error": "..."} to
stdout and exits with status 1.`,
	Example: `  echo '{"topic": "Iced Coffee", "hTags": ["Why It Matters", "How To Make It"]}' | content-engine generate`,
	RunE:    runGenerate,
}

func init() {
	generateCmd.Flags().String("style", "", "humanization style, overriding the request")
	generateCmd.Flags().Uint64("seed", 0, "random seed for reproducible output")
	generateCmd.Flags().Bool("archive", false, "store the article in the archive")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, w, err := setup()
	if err != nil {
		return writeError(out, err)
	}

	style, _ := cmd.Flags().GetString("style")
	var seed *uint64
	if cmd.Flags().Changed("seed") {
		s, _ := cmd.Flags().GetUint64("seed")
		seed = &s
	}

	art, err := generateArticle(cmd.Context(), cmd.InOrStdin(), out, w, style, seed)
	if err != nil {
		return err
	}

	if archiveFlag, _ := cmd.Flags().GetBool("archive"); archiveFlag || cfg.Archive.Enabled {
		archiveArticle(cmd.Context(), cfg.Archive, art)
	}
	return nil
}

// generateArticle decodes a request from in, writes the article or an
// error object to out, and returns the article.
func generateArticle(ctx context.Context, in io.Reader, out io.Writer, w *article.Writer, style string, seed *uint64) (types.Article, error) {
	req, err := readRequest(in)
	if err != nil {
		return types.Article{}, writeError(out, err)
	}
	if style != "" {
		req.Style = style
	}
	if seed != nil {
		req.Seed = seed
	}

	art, err := w.Write(ctx, req)
	if err != nil {
		return types.Article{}, writeError(out, err)
	}
	return art, writeJSON(out, art)
}

// readRequest decodes the request JSON. Absent or unparsable input
// yields the zero request, which Write fills with defaults; only a failed
// read is an error.
func readRequest(r io.Reader) (types.Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Request{}, fmt.Errorf("reading request: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		logger.Warn("no request on stdin, using defaults")
		return types.Request{}, nil
	}

	var req types.Request
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("malformed request, using defaults", "error", err)
		return types.Request{}, nil
	}
	return req, nil
}

func archiveArticle(ctx context.Context, cfg types.ArchiveConfig, art types.Article) {
	store, err := openArchive(cfg)
	if err != nil {
		logger.Warn("archive unavailable", "error", err)
		return
	}
	defer store.Close()

	e, err := store.Save(ctx, art)
	if err != nil {
		logger.Warn("archiving article failed", "slug", art.SEO.Slug, "error", err)
		return
	}
	logger.Info("archived article", "id", e.ID, "slug", e.Slug)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeError prints err as {"error": "..."} and returns it so the
// process exits non-zero.
func writeError(out io.Writer, err error) error {
	if werr := writeJSON(out, map[string]string{"error": err.Error()}); werr != nil {
		return werr
	}
	return err
}
