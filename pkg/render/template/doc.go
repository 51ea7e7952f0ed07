// Package template defines the renderer-agnostic template seam used to turn a
// square id into an output fragment. Engines live in subpackages.
package template
