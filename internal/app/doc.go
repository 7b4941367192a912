// Package app wires the application together: it builds the logger,
// registers the extension variants, loads each definition file, and runs
// the per-definition pipeline (render, markers, upload, notify) strictly
// in sequence.
package app
