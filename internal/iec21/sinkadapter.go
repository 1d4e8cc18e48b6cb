package iec21

import "github.com/edas-mass/iec62056-driver/internal/events"

// SinkAdapter adapts an events.Sink to the narrower ActivitySink the read
// loop depends on, tagging every rx notification with a fixed event code.
type SinkAdapter struct {
	Sink events.Sink
	Code string
}

func (a SinkAdapter) RxBytes(n int) {
	if a.Sink != nil {
		a.Sink.RxBytes(a.Code, n)
	}
}
