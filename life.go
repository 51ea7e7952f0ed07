// Package life prints paste-ready JSON fragments for game board squares.
package life

import (
	"context"
	"io"

	theme "github.com/goliatone/go-theme"

	"github.com/mikiera/Life/pkg/generator"
	"github.com/mikiera/Life/pkg/squares"
)

// Job aliases squares.Job for callers that only import the root package.
type Job = squares.Job

// Range aliases squares.Range.
type Range = squares.Range

// Request aliases generator.Request.
type Request = generator.Request

// EmitMapEntries writes one map entry per id in [begin, end] to w. The
// "right" field is left without a value.
func EmitMapEntries(w io.Writer, begin, end int) error {
	return squares.EmitMapEntries(w, begin, end)
}

// EmitSquareEntries writes one square entry per id in [begin, end] to w.
func EmitSquareEntries(w io.Writer, begin, end int) error {
	return squares.EmitSquareEntries(w, begin, end)
}

// NewGenerator exposes the generator constructor from the module root.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// WithThemeSelector forwards a go-theme selector to the generator.
func WithThemeSelector(selector theme.ThemeSelector) generator.Option {
	return generator.WithThemeSelector(selector)
}

// Generate runs req with the built-in templates and writes to w.
func Generate(ctx context.Context, w io.Writer, req Request, options ...generator.Option) error {
	return generator.New(options...).Generate(ctx, w, req)
}
