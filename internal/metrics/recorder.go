// Package metrics records render and content observations. Components take
// a Recorder; NoopRecorder is the default and PrometheusRecorder the real one.
package metrics

import "time"

// Render sources, used as label values.
const (
	SourcePreview = "preview"
	SourceJob     = "job"
	SourceContent = "content"
)

// Recorder defines the observability hooks used across the service.
type Recorder interface {
	ObserveTabGroup(tabs int, small bool)
	ObserveRender(source string, d time.Duration, err error)
	IncJobOutcome(status string)
	ObserveContentReload(d time.Duration, posts int, err error)
}

// NoopRecorder does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveTabGroup(int, bool)                      {}
func (NoopRecorder) ObserveRender(string, time.Duration, error)     {}
func (NoopRecorder) IncJobOutcome(string)                           {}
func (NoopRecorder) ObserveContentReload(time.Duration, int, error) {}
