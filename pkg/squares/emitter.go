package squares

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mikiera/Life/pkg/render/template"
	"github.com/mikiera/Life/pkg/render/template/gotemplate"
)

// Option configures an Emitter.
type Option func(*Emitter)

// WithRenderer swaps the template renderer. The renderer must be able to
// resolve every template name the emitter is configured with.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(e *Emitter) {
		if renderer != nil {
			e.renderer = renderer
		}
	}
}

// WithTemplate points a kind at a different template name.
func WithTemplate(kind Kind, name string) Option {
	return func(e *Emitter) {
		name = strings.TrimSpace(name)
		if name != "" {
			e.templates[kind] = name
		}
	}
}

// WithPartials remaps kinds using theme partial keys (squares.map,
// squares.square). Unknown keys are ignored.
func WithPartials(partials map[string]string) Option {
	return func(e *Emitter) {
		for _, kind := range Kinds() {
			if name := strings.TrimSpace(partials[kind.Partial()]); name != "" {
				e.templates[kind] = name
			}
		}
	}
}

// Emitter renders one template per square id.
type Emitter struct {
	renderer  template.TemplateRenderer
	templates map[Kind]string
}

// New builds an emitter. Without WithRenderer it renders the built-in
// templates through a pongo2 engine.
func New(options ...Option) (*Emitter, error) {
	e := &Emitter{
		templates: map[Kind]string{
			KindMap:    KindMap.DefaultTemplate(),
			KindSquare: KindSquare.DefaultTemplate(),
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("squares: build template engine: %w", err)
		}
		e.renderer = engine
	}
	return e, nil
}

// Template returns the template name used for kind.
func (e *Emitter) Template(kind Kind) string {
	return e.templates[kind]
}

// Emit writes one entry per id in job.Range. An empty or reversed range
// writes nothing and returns nil. Errors come only from rendering or from w.
func (e *Emitter) Emit(ctx context.Context, w io.Writer, job Job) error {
	name, ok := e.templates[job.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, job.Kind)
	}

	var emitErr error
	job.Range.Each(func(id int) bool {
		if err := ctx.Err(); err != nil {
			emitErr = err
			return false
		}
		data := map[string]any{
			"square": map[string]any{
				"id":    id,
				"first": id == job.Range.Begin,
				"last":  id == job.Range.End,
			},
		}
		if _, err := e.renderer.RenderTemplate(name, data, w); err != nil {
			emitErr = fmt.Errorf("squares: emit %s entry %d: %w", job.Kind, id, err)
			return false
		}
		return true
	})
	return emitErr
}

// EmitMapEntries writes a map entry for every id in [begin, end].
func (e *Emitter) EmitMapEntries(w io.Writer, begin, end int) error {
	return e.Emit(context.Background(), w, Job{Kind: KindMap, Range: Range{Begin: begin, End: end}})
}

// EmitSquareEntries writes a square entry for every id in [begin, end].
func (e *Emitter) EmitSquareEntries(w io.Writer, begin, end int) error {
	return e.Emit(context.Background(), w, Job{Kind: KindSquare, Range: Range{Begin: begin, End: end}})
}

var (
	defaultOnce    sync.Once
	defaultEmitter *Emitter
	defaultErr     error
)

// Default returns a shared emitter over the built-in templates.
func Default() (*Emitter, error) {
	defaultOnce.Do(func() {
		defaultEmitter, defaultErr = New()
	})
	return defaultEmitter, defaultErr
}

// EmitMapEntries writes map entries for [begin, end] using the built-in
// templates.
func EmitMapEntries(w io.Writer, begin, end int) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.EmitMapEntries(w, begin, end)
}

// EmitSquareEntries writes square entries for [begin, end] using the built-in
// templates.
func EmitSquareEntries(w io.Writer, begin, end int) error {
	e, err := Default()
	if err != nil {
		return err
	}
	return e.EmitSquareEntries(w, begin, end)
}
