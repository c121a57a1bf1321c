// Package ui implements the optional terminal progress view for long-running
// runs, built on bubbletea. The view consumes the driver's ProgressUpdate
// channel and renders a spinner, the current record, and running counters; it
// never feeds back into driver behavior.
package ui
