package events

import (
	"fmt"
)

// FrameArchiver is the narrow capability events.FileSink needs from
// logs.Writer — declared here rather than imported to avoid internal/events
// depending on the top-level logs package.
type FrameArchiver interface {
	Write(meterName string, frame []byte) error
}

// FileSink archives every transmitted frame verbatim via a FrameArchiver
// (logs.Writer in production). Received frames are logged as a byte count
// only — the read loop's ActivitySink contract never hands back the raw
// bytes, just how many arrived.
type FileSink struct {
	Archiver  FrameArchiver
	MeterName string
}

func (f FileSink) TxBytes(code string, p []byte) {
	f.Archiver.Write(f.MeterName, p)
}

func (f FileSink) RxBytes(code string, n int) {
	f.Archiver.Write(f.MeterName, []byte(fmt.Sprintf("; rx %d bytes (%s)", n, code)))
}

func (FileSink) Info(string, string)          {}
func (FileSink) Warn(string, string)          {}
func (FileSink) Error(string, string)         {}
func (FileSink) Success(string, string)       {}
func (FileSink) Progress(int, int, string)    {}
