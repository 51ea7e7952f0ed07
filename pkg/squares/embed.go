package squares

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var builtinTemplates embed.FS

// TemplatesFS returns the built-in entry templates rooted at the template
// directory, so callers can inspect or layer them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		return builtinTemplates
	}
	return sub
}
