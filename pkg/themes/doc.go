// Package themes resolves go-theme manifests into the template partials the
// square emitter renders with.
package themes
