package themes

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/mikiera/Life/pkg/squares"
)

// DefaultPartials maps each partial key to the built-in template name.
func DefaultPartials() map[string]string {
	out := make(map[string]string, len(squares.Kinds()))
	for _, kind := range squares.Kinds() {
		out[kind.Partial()] = kind.DefaultTemplate()
	}
	return out
}

// Partials merges fallbacks, the manifest templates and the selected
// variant's templates, later layers winning. A nil selection yields a copy of
// fallbacks.
func Partials(selection *theme.Selection, fallbacks map[string]string) map[string]string {
	out := make(map[string]string, len(fallbacks))
	for key, value := range fallbacks {
		out[key] = value
	}
	if selection == nil || selection.Manifest == nil {
		return out
	}

	merge(out, selection.Manifest.Templates)
	if selection.Variant != "" {
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			merge(out, variant.Templates)
		}
	}
	return out
}

// Tokens returns the manifest tokens overlaid with the variant's.
func Tokens(selection *theme.Selection) map[string]string {
	out := map[string]string{}
	if selection == nil || selection.Manifest == nil {
		return out
	}
	merge(out, selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		merge(out, variant.Tokens)
	}
	return out
}

func merge(dst, src map[string]string) {
	for key, value := range src {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		dst[key] = value
	}
}
