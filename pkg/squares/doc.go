// Package squares emits the JSON-shaped fragments that seed a game board file.
//
// Two kinds of entry exist. A map entry links a square to its neighbours and
// is left deliberately incomplete: the "right" field carries no value and has
// to be filled in by hand. A square entry attaches an empty "event" action.
// Neither kind is wrapped in an array, so the output is a paste-ready snippet
// rather than a JSON document.
//
// Ranges are closed and never fail: a reversed range simply emits nothing.
package squares
