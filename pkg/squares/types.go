package squares

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind names the entry template an emission uses.
type Kind string

const (
	// KindMap emits board map entries with an empty "right" link.
	KindMap Kind = "map"
	// KindSquare emits square entries carrying a blank event action.
	KindSquare Kind = "square"
)

// Partial keys used by themes to remap entry templates.
const (
	PartialMap    = "squares.map"
	PartialSquare = "squares.square"
)

// ErrUnknownKind is returned when a kind name is neither map nor square.
var ErrUnknownKind = errors.New("squares: unknown kind")

// Kinds lists every supported kind in emission order.
func Kinds() []Kind {
	return []Kind{KindMap, KindSquare}
}

// ParseKind normalises a user supplied kind name.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "map", "maps":
		return KindMap, nil
	case "square", "squares":
		return KindSquare, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Partial returns the theme partial key for the kind.
func (k Kind) Partial() string {
	if k == KindSquare {
		return PartialSquare
	}
	return PartialMap
}

// DefaultTemplate is the built-in template name for the kind.
func (k Kind) DefaultTemplate() string {
	return string(k)
}

// Range is a closed interval of square ids. End < Begin is an empty range.
type Range struct {
	Begin int `json:"begin" yaml:"begin"`
	End   int `json:"end" yaml:"end"`
}

// Empty reports whether the range holds no ids.
func (r Range) Empty() bool {
	return r.End < r.Begin
}

// Len returns the number of ids in the range. The full int range holds one
// more id than a uint64 can count, so it saturates at math.MaxUint64.
func (r Range) Len() uint64 {
	if r.Empty() {
		return 0
	}
	span := uint64(r.End) - uint64(r.Begin)
	if span == math.MaxUint64 {
		return span
	}
	return span + 1
}

// Each calls fn for every id from Begin to End in order, stopping early when
// fn returns false. It does not overflow when End is math.MaxInt.
func (r Range) Each(fn func(id int) bool) {
	if r.Empty() {
		return
	}
	for id := r.Begin; ; id++ {
		if !fn(id) || id == r.End {
			return
		}
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Begin, r.End)
}

// Job is a single emission request.
type Job struct {
	Kind  Kind
	Range Range
}
