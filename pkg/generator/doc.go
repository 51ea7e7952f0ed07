// Package generator runs batches of square emission jobs. It resolves an
// optional theme into template partials, builds the template engine and
// writes every job to a single output stream in order.
package generator
