package life

import (
	"io/fs"

	"github.com/mikiera/Life/pkg/squares"
)

// EmbeddedTemplates exposes the built-in entry templates (map.tpl and
// square.tpl) so callers can copy them as a starting point for overrides.
func EmbeddedTemplates() fs.FS {
	return squares.TemplatesFS()
}
