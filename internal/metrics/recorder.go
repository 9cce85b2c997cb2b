// Package metrics provides build observability for blogforge.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a real implementation is
// wired in (see PrometheusRecorder).
package metrics

import "time"

// Recorder captures build metrics at the points the pipeline emits them.
type Recorder interface {
	// UnitParsed counts one successfully parsed content unit.
	UnitParsed()
	// ParseFailed counts one unit that failed to parse.
	ParseFailed()
	// PageRendered counts one page handed to the layout engine and written.
	PageRendered()
	// StageCompleted records the duration of one pipeline stage (ingest,
	// derive, render, write).
	StageCompleted(stage string, d time.Duration)
	// BuildCompleted records a whole build with its outcome (ok or failed).
	BuildCompleted(outcome string, d time.Duration)
}

// NoopRecorder is the default Recorder; every method is a no-op.
type NoopRecorder struct{}

func (NoopRecorder) UnitParsed()                                  {}
func (NoopRecorder) ParseFailed()                                 {}
func (NoopRecorder) PageRendered()                                {}
func (NoopRecorder) StageCompleted(string, time.Duration)         {}
func (NoopRecorder) BuildCompleted(string, time.Duration)         {}
