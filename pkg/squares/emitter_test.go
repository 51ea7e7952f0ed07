package squares_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikiera/Life/pkg/render/template/gotemplate"
	"github.com/mikiera/Life/pkg/squares"
	"github.com/mikiera/Life/pkg/testsupport"
)

func TestEmitMapEntries_SingleSquare(t *testing.T) {
	var buf bytes.Buffer
	if err := squares.EmitMapEntries(&buf, 1, 1); err != nil {
		t.Fatalf("emit map entries: %v", err)
	}

	want := "{ \"squareid\": 1,\n  \"left\": 0,\n  \"right\": \n},\n"
	if diff := testsupport.CompareGolden(want, buf.String()); diff != "" {
		t.Fatalf("map entry mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitMapEntries_Golden(t *testing.T) {
	cases := []struct {
		begin, end int
		golden     string
	}{
		{1, 1, "map_1_1.golden"},
		{1, 5, "map_1_5.golden"},
		{-2, 1, "map_neg2_1.golden"},
	}

	for _, tc := range cases {
		t.Run(tc.golden, func(t *testing.T) {
			var buf bytes.Buffer
			if err := squares.EmitMapEntries(&buf, tc.begin, tc.end); err != nil {
				t.Fatalf("emit map entries: %v", err)
			}
			testsupport.AssertGolden(t, filepath.Join("testdata", tc.golden), buf.Bytes())
		})
	}
}

func TestEmitMapEntries_OneEntryPerIDInOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := squares.EmitMapEntries(&buf, 10, 19); err != nil {
		t.Fatalf("emit map entries: %v", err)
	}

	out := buf.String()
	if got := testsupport.CountEntries(out); got != 10 {
		t.Fatalf("expected 10 entries, got %d", got)
	}

	last := -1
	for id := 10; id <= 19; id++ {
		idx := strings.Index(out, fmt.Sprintf(`"squareid": %d,`, id))
		if idx < 0 {
			t.Fatalf("square %d missing from output", id)
		}
		if idx <= last {
			t.Fatalf("square %d out of order", id)
		}
		last = idx
	}
}

func TestEmitSquareEntries_Golden(t *testing.T) {
	var buf bytes.Buffer
	if err := squares.EmitSquareEntries(&buf, 2, 3); err != nil {
		t.Fatalf("emit square entries: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "square_2_3.golden"), buf.Bytes())

	out := buf.String()
	first := strings.Index(out, `"squareid": 2,`)
	second := strings.Index(out, `"squareid": 3,`)
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected square 2 before square 3:\n%s", out)
	}
	if got := strings.Count(out, `"type": "event"`); got != 2 {
		t.Fatalf("expected two event actions, got %d", got)
	}
}

func TestEmit_EmptyRanges(t *testing.T) {
	for _, kind := range squares.Kinds() {
		for _, r := range []squares.Range{{Begin: 5, End: 4}, {Begin: 1, End: -1}, {Begin: math.MaxInt, End: math.MinInt}} {
			t.Run(fmt.Sprintf("%s %s", kind, r), func(t *testing.T) {
				emitter, err := squares.Default()
				if err != nil {
					t.Fatalf("default emitter: %v", err)
				}
				var buf bytes.Buffer
				if err := emitter.Emit(context.Background(), &buf, squares.Job{Kind: kind, Range: r}); err != nil {
					t.Fatalf("emit: %v", err)
				}
				if buf.Len() != 0 {
					t.Fatalf("expected no output, got %q", buf.String())
				}
			})
		}
	}
}

func TestEmit_MaxIntDoesNotWrap(t *testing.T) {
	var buf bytes.Buffer
	if err := squares.EmitMapEntries(&buf, math.MaxInt-1, math.MaxInt); err != nil {
		t.Fatalf("emit map entries: %v", err)
	}
	if got := testsupport.CountEntries(buf.String()); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestEmit_UnknownKind(t *testing.T) {
	emitter, err := squares.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}
	err = emitter.Emit(context.Background(), &bytes.Buffer{}, squares.Job{Kind: "bridge", Range: squares.Range{Begin: 1, End: 1}})
	if !errors.Is(err, squares.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestEmit_WriterErrorsPropagate(t *testing.T) {
	boom := errors.New("disk full")
	err := squares.EmitSquareEntries(testsupport.FailingWriter{Err: boom}, 1, 3)
	if !errors.Is(err, boom) {
		t.Fatalf("expected writer error, got %v", err)
	}
}

func TestEmit_CancelledContextStops(t *testing.T) {
	emitter, err := squares.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err = emitter.Emit(ctx, &buf, squares.Job{Kind: squares.KindMap, Range: squares.Range{Begin: 1, End: 100}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written after cancellation, got %q", buf.String())
	}
}

func TestEmit_PartialsRemapTemplates(t *testing.T) {
	dir := testsupport.WriteTemplates(t, map[string]string{
		"compact.tpl": `{"squareid": {{ square.id }}}{% if not square.last %},{% endif %}` + "\n",
	})
	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(squares.TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	emitter, err := squares.New(
		squares.WithRenderer(engine),
		squares.WithPartials(map[string]string{squares.PartialMap: "compact", "unrelated": "ignored"}),
	)
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}
	if emitter.Template(squares.KindSquare) != "square" {
		t.Fatalf("square template should stay on the default, got %q", emitter.Template(squares.KindSquare))
	}

	var buf bytes.Buffer
	if err := emitter.EmitMapEntries(&buf, 1, 3); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := "{\"squareid\": 1},\n{\"squareid\": 2},\n{\"squareid\": 3}\n"
	if diff := testsupport.CompareGolden(want, buf.String()); diff != "" {
		t.Fatalf("compact output mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]squares.Kind{
		"map":       squares.KindMap,
		" Squares ": squares.KindSquare,
		"SQUARE":    squares.KindSquare,
	}
	for raw, want := range cases {
		got, err := squares.ParseKind(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %s, got %s", raw, want, got)
		}
	}

	if _, err := squares.ParseKind("board"); !errors.Is(err, squares.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRange_Len(t *testing.T) {
	cases := []struct {
		r    squares.Range
		want uint64
	}{
		{squares.Range{Begin: 1, End: 1}, 1},
		{squares.Range{Begin: 2, End: 3}, 2},
		{squares.Range{Begin: -5, End: 5}, 11},
		{squares.Range{Begin: 3, End: 2}, 0},
		{squares.Range{Begin: 0, End: math.MaxInt}, uint64(math.MaxInt) + 1},
		{squares.Range{Begin: math.MinInt, End: math.MaxInt}, math.MaxUint64},
	}
	for _, tc := range cases {
		if got := tc.r.Len(); got != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.r, tc.want, got)
		}
	}
}
