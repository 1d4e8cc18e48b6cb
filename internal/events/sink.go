// Package events defines the injected progress/log sink the driver reports
// through, and its concrete sinks: the no-op default (Null), a logrus-backed
// sink, fan-out, SSE hub and file sinks, and an in-memory recorder for tests.
package events

// Sink receives structured progress/log/activity notifications from the
// driver. Implementations must be safe for concurrent fire-and-forget use —
// a blocked read does not hold Session.mu, so events may arrive from a
// goroutine the caller isn't expecting.
type Sink interface {
	TxBytes(code string, p []byte)
	RxBytes(code string, n int)
	Info(code, msg string)
	Warn(code, msg string)
	Error(code, msg string)
	Success(code, msg string)
	Progress(step, total int, msg string)
}

// Null is the default sink: every method is a no-op.
type Null struct{}

func (Null) TxBytes(string, []byte)  {}
func (Null) RxBytes(string, int)     {}
func (Null) Info(string, string)     {}
func (Null) Warn(string, string)     {}
func (Null) Error(string, string)    {}
func (Null) Success(string, string)  {}
func (Null) Progress(int, int, string) {}
