// Package metrics exposes index and cache instrumentation behind a small
// Recorder interface so the CLI and TUI can run without Prometheus.
package metrics

import "time"

// ResultLabel enumerates index build outcomes for counters.
type ResultLabel string

const (
	ResultSuccess   ResultLabel = "success"
	ResultNotFound  ResultLabel = "not_found"
	ResultMalformed ResultLabel = "malformed"
	ResultError     ResultLabel = "error"
)

// Recorder defines observability hooks for index builds and cache syncs.
type Recorder interface {
	ObserveIndexBuild(d time.Duration, entries int, result ResultLabel)
	IncNavigationNotFound()
	IncCacheSync(kind string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveIndexBuild(time.Duration, int, ResultLabel) {}
func (NoopRecorder) IncNavigationNotFound()                           {}
func (NoopRecorder) IncCacheSync(string)                              {}
