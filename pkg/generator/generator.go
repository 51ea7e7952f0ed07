package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/mikiera/Life/pkg/render/template"
	"github.com/mikiera/Life/pkg/render/template/gotemplate"
	"github.com/mikiera/Life/pkg/squares"
	"github.com/mikiera/Life/pkg/themes"
)

// ErrNoThemes is returned when a request names a theme but the generator has
// no theme selector.
var ErrNoThemes = errors.New("generator: no themes configured")

// Option customises the generator.
type Option func(*Generator)

// WithThemeSelector enables theme resolution.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(g *Generator) {
		g.selector = selector
	}
}

// WithTemplateDir loads templates from dir ahead of the built-in ones.
func WithTemplateDir(dir string) Option {
	return func(g *Generator) {
		g.templateDir = strings.TrimSpace(dir)
	}
}

// WithRenderer bypasses engine construction entirely. The generator never
// writes theme globals into a caller's renderer, so templates rendered this
// way do not see theme.name, theme.variant or theme.tokens.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(g *Generator) {
		g.renderer = renderer
	}
}

// Generator coordinates theme selection, template loading and emission.
type Generator struct {
	selector    theme.ThemeSelector
	templateDir string
	renderer    template.TemplateRenderer
}

// New constructs a Generator.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Request describes one generator run.
type Request struct {
	// Jobs run in order. Empty ranges are skipped silently.
	Jobs []squares.Job

	// ThemeName and ThemeVariant pick a theme; blanks use the selector
	// defaults. Ignored when no selector is configured and both are blank.
	ThemeName    string
	ThemeVariant string
}

// Generate writes every job in req to w.
func (g *Generator) Generate(ctx context.Context, w io.Writer, req Request) error {
	if w == nil {
		return errors.New("generator: writer is required")
	}

	selection, err := g.selectTheme(req)
	if err != nil {
		return err
	}

	renderer, err := g.buildRenderer(selection)
	if err != nil {
		return err
	}

	emitter, err := squares.New(
		squares.WithRenderer(renderer),
		squares.WithPartials(themes.Partials(selection, themes.DefaultPartials())),
	)
	if err != nil {
		return fmt.Errorf("generator: build emitter: %w", err)
	}
	if err := checkTemplates(renderer, emitter, req.Jobs); err != nil {
		return err
	}

	for i, job := range req.Jobs {
		if err := emitter.Emit(ctx, w, job); err != nil {
			return fmt.Errorf("generator: job %d (%s %s): %w", i, job.Kind, job.Range, err)
		}
	}
	return nil
}

// GenerateBytes runs Generate into a buffer.
func (g *Generator) GenerateBytes(ctx context.Context, req Request) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Generate(ctx, &buf, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) selectTheme(req Request) (*theme.Selection, error) {
	if g.selector == nil {
		if strings.TrimSpace(req.ThemeName) != "" || strings.TrimSpace(req.ThemeVariant) != "" {
			return nil, fmt.Errorf("%w: requested %q", ErrNoThemes, req.ThemeName)
		}
		return nil, nil
	}
	selection, err := g.selector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("generator: select theme: %w", err)
	}
	return selection, nil
}

func (g *Generator) buildRenderer(selection *theme.Selection) (template.TemplateRenderer, error) {
	if g.renderer != nil {
		return g.renderer, nil
	}

	opts := []gotemplate.Option{}
	if g.templateDir != "" {
		opts = append(opts, gotemplate.WithBaseDir(g.templateDir))
	}
	opts = append(opts, gotemplate.WithFS(squares.TemplatesFS()))
	if selection != nil {
		opts = append(opts, gotemplate.WithGlobalData(map[string]any{
			"theme": map[string]any{
				"name":    selection.Theme,
				"variant": selection.Variant,
				"tokens":  themes.Tokens(selection),
			},
		}))
	}

	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: build template engine: %w", err)
	}
	return engine, nil
}

// checkTemplates fails before any output is written when a job needs a
// template the renderer cannot load.
func checkTemplates(renderer template.TemplateRenderer, emitter *squares.Emitter, jobs []squares.Job) error {
	checker, ok := renderer.(interface{ Has(string) bool })
	if !ok {
		return nil
	}
	for _, job := range jobs {
		if job.Range.Empty() {
			continue
		}
		name := emitter.Template(job.Kind)
		if name == "" {
			return fmt.Errorf("generator: %w: %q", squares.ErrUnknownKind, job.Kind)
		}
		if !checker.Has(name) {
			return fmt.Errorf("generator: template %q for %s entries not found", name, job.Kind)
		}
	}
	return nil
}
