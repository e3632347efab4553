// Package output renders submission results.
//
// A View is the renderer-neutral form of a portal.Result: status code plus
// either a parsed JSON body, the raw body text, or an error message.
// Formatters write Views to a terminal:
//   - Console: colored human-readable output
//   - JSON: one machine-readable envelope per result
//
// The web UI renders Views through its own HTML template.
package output
