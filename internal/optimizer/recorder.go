package optimizer

import "time"

// Recorder receives request and upstream observations. internal/metrics
// provides the Prometheus implementation.
type Recorder interface {
	ObserveRequest(method string, status int)
	ObserveUpstream(model string, duration time.Duration)
	ObserveError(class string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, int) {}

func (nopRecorder) ObserveUpstream(string, time.Duration) {}

func (nopRecorder) ObserveError(string) {}
