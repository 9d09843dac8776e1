// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate calls text-generation backends. Backends are tried
// one at a time in priority order; the first non-empty answer wins and
// every failure is folded into a Failure result rather than an error.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/content-engine/pkg/types"
)

// ErrEmptyResponse is returned by a backend whose response carried no text.
var ErrEmptyResponse = errors.New("empty response")

// Request is one prompt with its sampling parameters.
type Request struct {
	Prompt   string
	Sampling types.Sampling
}

// Backend generates text from one provider and model. Implementations
// do all response parsing and return either text or an error.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Result is either a Success or a Failure.
type Result interface {
	isResult()
}

// Success carries the generated text and the backend that produced it.
type Success struct {
	Text    string
	Backend string
}

// Failure records why every backend failed.
type Failure struct {
	Reason   string
	Attempts []Attempt
}

// Attempt is one failed backend call.
type Attempt struct {
	Backend string
	Err     error
}

func (Success) isResult() {}
func (Failure) isResult() {}

// Chain tries backends strictly in order, never concurrently.
type Chain struct {
	Backends []Backend

	// Timeout bounds each backend call. Zero means no extra bound.
	Timeout time.Duration

	Logger *slog.Logger
}

// Generate returns the first successful backend answer, or a Failure
// listing every attempt. A cancelled ctx stops the chain early.
func (c *Chain) Generate(ctx context.Context, req Request) Result {
	log := c.logger()
	if len(c.Backends) == 0 {
		return Failure{Reason: "no generation backends configured"}
	}

	var attempts []Attempt
	for _, b := range c.Backends {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, Attempt{Backend: b.Name(), Err: err})
			break
		}
		log.Info("trying generation backend", "backend", b.Name())
		text, err := c.call(ctx, b, req)
		if err != nil {
			log.Warn("generation backend failed", "backend", b.Name(), "error", err)
			attempts = append(attempts, Attempt{Backend: b.Name(), Err: err})
			continue
		}
		log.Info("generated content", "backend", b.Name(), "chars", len(text))
		return Success{Text: text, Backend: b.Name()}
	}
	return Failure{
		Reason:   fmt.Sprintf("all %d generation backends failed", len(attempts)),
		Attempts: attempts,
	}
}

func (c *Chain) call(ctx context.Context, b Backend, req Request) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	text, err := b.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *Chain) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Error joins the attempt errors of a Failure.
func (f Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Reason)
	for _, a := range f.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Backend, a.Err)
	}
	return b.String()
}
