package generator_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/mikiera/Life/pkg/generator"
	"github.com/mikiera/Life/pkg/render/template/gotemplate"
	"github.com/mikiera/Life/pkg/squares"
	"github.com/mikiera/Life/pkg/testsupport"
	"github.com/mikiera/Life/pkg/themes"
)

func TestGenerate_BatchUsesBuiltinTemplates(t *testing.T) {
	gen := generator.New()

	out, err := gen.GenerateBytes(testsupport.Context(), generator.Request{
		Jobs: []squares.Job{
			{Kind: squares.KindMap, Range: squares.Range{Begin: 1, End: 2}},
			{Kind: squares.KindSquare, Range: squares.Range{Begin: 9, End: 4}},
			{Kind: squares.KindSquare, Range: squares.Range{Begin: 3, End: 3}},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "batch.golden"), out)
}

func TestGenerate_ThemeRemapsTemplatesAndExposesTokens(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{
		"board/square.tpl": `{{ square.id }}:{{ theme.tokens.event }}:{{ theme.variant }}` + "\n",
	})

	selector, err := themes.NewSelector(&theme.Manifest{
		Name: "board",
		Tokens: map[string]string{
			"event": "event",
		},
		Templates: map[string]string{
			squares.PartialSquare: "board/square",
		},
		Variants: map[string]theme.Variant{
			"chance": {
				Tokens: map[string]string{"event": "chance"},
			},
		},
	})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	gen := generator.New(
		generator.WithThemeSelector(selector),
		generator.WithTemplateDir(dir),
	)
	out, err := gen.GenerateBytes(testsupport.Context(), generator.Request{
		Jobs: []squares.Job{
			{Kind: squares.KindSquare, Range: squares.Range{Begin: 1, End: 2}},
			{Kind: squares.KindMap, Range: squares.Range{Begin: 1, End: 1}},
		},
		ThemeVariant: "chance",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := "1:chance:chance\n2:chance:chance\n{ \"squareid\": 1,\n  \"left\": 0,\n  \"right\": \n},\n"
	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("themed output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_ThemeWithoutSelector(t *testing.T) {
	_, err := generator.New().GenerateBytes(testsupport.Context(), generator.Request{ThemeName: "board"})
	if !errors.Is(err, generator.ErrNoThemes) {
		t.Fatalf("expected ErrNoThemes, got %v", err)
	}
}

func TestGenerate_UnknownThemeFromSelector(t *testing.T) {
	selector, err := themes.NewSelector(&theme.Manifest{Name: "board"})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	_, err = generator.New(generator.WithThemeSelector(selector)).GenerateBytes(testsupport.Context(), generator.Request{ThemeName: "nope"})
	if !errors.Is(err, themes.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestGenerate_MissingTemplateWritesNothing(t *testing.T) {
	selector, err := themes.NewSelector(&theme.Manifest{
		Name:      "broken",
		Templates: map[string]string{squares.PartialSquare: "does/not/exist"},
	})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	var buf bytes.Buffer
	err = generator.New(generator.WithThemeSelector(selector)).Generate(testsupport.Context(), &buf, generator.Request{
		Jobs: []squares.Job{
			{Kind: squares.KindMap, Range: squares.Range{Begin: 1, End: 3}},
			{Kind: squares.KindSquare, Range: squares.Range{Begin: 1, End: 3}},
		},
	})
	if err == nil {
		t.Fatalf("expected missing template error")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no partial output, got %q", buf.String())
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.New().GenerateBytes(ctx, generator.Request{
		Jobs: []squares.Job{{Kind: squares.KindMap, Range: squares.Range{Begin: 1, End: 10}}},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_RequiresWriter(t *testing.T) {
	if err := generator.New().Generate(testsupport.Context(), nil, generator.Request{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestGenerate_ThemeTokensAreNotHTMLEscaped(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{
		"board/square.tpl": `{ "squareid": {{ square.id }}, "description": "{{ theme.tokens.desc }}" }` + "\n",
	})
	selector, err := themes.NewSelector(&theme.Manifest{
		Name:      "board",
		Tokens:    map[string]string{"desc": `Pay <5> & go 'now'`},
		Templates: map[string]string{squares.PartialSquare: "board/square"},
	})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	out, err := generator.New(
		generator.WithThemeSelector(selector),
		generator.WithTemplateDir(dir),
	).GenerateBytes(testsupport.Context(), generator.Request{
		Jobs: []squares.Job{{Kind: squares.KindSquare, Range: squares.Range{Begin: 4, End: 4}}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := `{ "squareid": 4, "description": "Pay <5> & go 'now'" }` + "\n"
	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("escaped output (-want +got):\n%s", diff)
	}
}

type recordingRenderer struct {
	*gotemplate.Engine
	globals int
}

func (r *recordingRenderer) GlobalContext(data any) error {
	r.globals++
	return r.Engine.GlobalContext(data)
}

func TestGenerate_CallerRendererKeepsItsGlobals(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(squares.TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	renderer := &recordingRenderer{Engine: engine}

	selector, err := themes.NewSelector(&theme.Manifest{Name: "board"})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	out, err := generator.New(
		generator.WithThemeSelector(selector),
		generator.WithRenderer(renderer),
	).GenerateBytes(testsupport.Context(), generator.Request{
		Jobs: []squares.Job{{Kind: squares.KindMap, Range: squares.Range{Begin: 1, End: 1}}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.globals != 0 {
		t.Fatalf("expected caller renderer globals untouched, got %d GlobalContext calls", renderer.globals)
	}
	if got := testsupport.CountEntries(string(out)); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
}
