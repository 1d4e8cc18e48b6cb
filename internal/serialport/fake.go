package serialport

import (
	"io"
	"sync"
	"time"
)

// Fake is an in-memory Port driven by a pre-programmed byte stream, for
// tests that exercise the session driver and read loop without real
// hardware. Writes are recorded for assertion.
type Fake struct {
	mu sync.Mutex

	rxChunks [][]byte // successive Read() calls return these, one chunk per call
	rxErr    error    // returned once rxChunks is exhausted, after rxErr is set

	Writes   [][]byte
	BaudLog  []int
	Closed   bool
	Flushed  int
}

// NewFake builds a Fake with no queued input.
func NewFake() *Fake {
	return &Fake{}
}

// Feed appends a chunk to be returned by the next Read call(s). Chunks are
// consumed in order, one per Read call.
func (f *Fake) Feed(chunk []byte) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rxChunks = append(f.rxChunks, append([]byte(nil), chunk...))
	return f
}

// FeedEOF arranges for Read to return io.EOF once all queued chunks are
// consumed.
func (f *Fake) FeedEOF() *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rxErr = io.EOF
	return f
}

func (f *Fake) SetBaud(rate int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BaudLog = append(f.BaudLog, rate)
	return nil
}

func (f *Fake) Read(buf []byte, deadline time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rxChunks) == 0 {
		if f.rxErr != nil {
			return 0, f.rxErr
		}
		return 0, nil // simulates "no data yet, no error" within the deadline
	}
	chunk := f.rxChunks[0]
	f.rxChunks = f.rxChunks[1:]
	n := copy(buf, chunk)
	return n, nil
}

func (f *Fake) WriteAll(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, append([]byte(nil), p...))
	return nil
}

func (f *Fake) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Flushed++
	return nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
