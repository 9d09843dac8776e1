// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/pkg/types"
)

// BatchSummary holds counts from a batch run.
type BatchSummary struct {
	Written  int
	Fallback int
	Failed   int
}

// Total returns the number of requests processed.
func (s BatchSummary) Total() int {
	return s.Written + s.Failed
}

// HasFailures reports whether any request failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// BatchItem is the outcome of one request in a batch.
type BatchItem struct {
	Index   int
	Request types.Request
	Article types.Article
	Err     error
}

// batchFile is the mapping form of a batch input file.
type batchFile struct {
	Defaults types.Request `yaml:"defaults"`
	Requests []yaml.Node   `yaml:"requests"`
}

// LoadBatch reads batch requests from YAML or JSON. The input is either
// a list, or a mapping with "defaults" and "requests". A list item is a
// topic string or a request mapping; mappings are laid over the defaults.
func LoadBatch(r io.Reader) ([]types.Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing batch input: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]

	var f batchFile
	switch doc.Kind {
	case yaml.SequenceNode:
		for _, n := range doc.Content {
			f.Requests = append(f.Requests, *n)
		}
	case yaml.MappingNode:
		if err := doc.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing batch input: %w", err)
		}
	default:
		return nil, fmt.Errorf("parsing batch input: expected a list or a mapping, got %s", nodeKind(doc))
	}

	reqs := make([]types.Request, 0, len(f.Requests))
	for i, n := range f.Requests {
		req := f.Defaults
		switch n.Kind {
		case yaml.ScalarNode:
			req.Topic = strings.TrimSpace(n.Value)
		case yaml.MappingNode:
			if err := n.Decode(&req); err != nil {
				return nil, fmt.Errorf("batch request %d: %w", i+1, err)
			}
		default:
			return nil, fmt.Errorf("batch request %d: expected a topic or a mapping, got %s", i+1, nodeKind(&n))
		}
		if req.Topic == "" {
			return nil, fmt.Errorf("batch request %d: topic is required", i+1)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "unknown node"
	}
}

// WriteBatch writes each request in order, waiting delay between
// requests, and reports every outcome to each. A cancelled context stops
// the batch; the summary so far is returned with ctx.Err().
func (w *Writer) WriteBatch(ctx context.Context, reqs []types.Request, delay time.Duration, each func(BatchItem)) (BatchSummary, error) {
	var sum BatchSummary
	for i, req := range reqs {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		art, err := w.Write(ctx, req)
		item := BatchItem{Index: i, Request: req, Article: art, Err: err}
		switch {
		case err != nil:
			sum.Failed++
			w.logger().Warn("batch request failed", "index", i, "topic", req.Topic, "error", err)
		case art.GeneratedBy == GeneratedByFallback:
			sum.Written++
			sum.Fallback++
		default:
			sum.Written++
		}
		if each != nil {
			each(item)
		}
	}
	return sum, nil
}
