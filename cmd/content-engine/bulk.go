// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/article"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Generate one article per request in a YAML or JSON file",
	Long: `Bulk reads a list of requests and writes each article to
<out-dir>/<slug>.json. The input is either a list of topics or request
objects, or a mapping with "defaults" applied to every item of "requests":

  defaults:
    style: true-human
    numImages: 2
  requests:
    - Iced Coffee
    - topic: Cold Brew
      hTags: [Equipment, Steeping]

Requests run one at a time with --delay between them. Failed requests are
reported in the summary and make the command exit non-zero.`,
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().String("input", "", "request file, or - for stdin (required)")
	bulkCmd.Flags().String("out-dir", "out", "directory for article JSON files")
	bulkCmd.Flags().Duration("delay", 0, "pause between requests")
	bulkCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(bulkCmd)
}

func runBulk(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	outDir, _ := cmd.Flags().GetString("out-dir")
	delay, _ := cmd.Flags().GetDuration("delay")

	var r io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	reqs, err := article.LoadBatch(r)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return fmt.Errorf("no requests in %s", input)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	cfg, w, err := setup()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	bar := newProgressBar(stderr, len(reqs), "writing articles")
	names := make(map[string]int)
	var saveFailed int

	sum, err := w.WriteBatch(cmd.Context(), reqs, delay, func(it article.BatchItem) {
		defer bar.Add(1)
		if it.Err != nil {
			return
		}
		path := filepath.Join(outDir, uniqueName(names, it.Article.SEO.Slug)+".json")
		if err := writeJSONFile(path, it.Article); err != nil {
			logger.Error("saving article failed", "path", path, "error", err)
			saveFailed++
			return
		}
		if cfg.Archive.Enabled {
			archiveArticle(cmd.Context(), cfg.Archive, it.Article)
		}
	})
	bar.Finish()
	fmt.Fprintln(stderr)
	printBatchSummary(stderr, sum, saveFailed)

	if err != nil {
		return err
	}
	if n := sum.Failed + saveFailed; n > 0 {
		return fmt.Errorf("%d article(s) failed", n)
	}
	return nil
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("articles"),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func printBatchSummary(w io.Writer, sum article.BatchSummary, saveFailed int) {
	fmt.Fprintf(w, "%s %d  %s %d  %s %d\n",
		color.GreenString("written:"), sum.Written-saveFailed,
		color.YellowString("fallback:"), sum.Fallback,
		color.RedString("failed:"), sum.Failed+saveFailed,
	)
}

// uniqueName returns slug, or slug-N when slug was already used in this
// run. An empty slug becomes "article".
func uniqueName(used map[string]int, slug string) string {
	if slug == "" {
		slug = "article"
	}
	used[slug]++
	if n := used[slug]; n > 1 {
		return slug + "-" + strconv.Itoa(n)
	}
	return slug
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
