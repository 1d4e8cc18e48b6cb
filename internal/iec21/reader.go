package iec21

import (
	"bytes"
	"time"
)

// Port is the narrow capability the read loop needs from the serial layer.
// internal/serialport.Port satisfies it.
type Port interface {
	Read(buf []byte, deadline time.Duration) (int, error)
}

// ActivitySink receives "rx" progress notifications as the read loop makes
// progress. A nil sink is valid; Reader treats it as a no-op.
type ActivitySink interface {
	RxBytes(n int)
}

// ReadConfig parameterizes ReadUntilETX.
type ReadConfig struct {
	BufferSize     int
	IdleTimeout    time.Duration
	InitialDelay   time.Duration
	ReadInterval   time.Duration // how often the loop polls Port.Read
}

// ReadResult carries the outcome of ReadUntilETX.
type ReadResult struct {
	Data     []byte
	FoundETX bool
	Elapsed  time.Duration
}

// sleepFn performs the initial delay; it is a variable so tests can
// override it and not burn wall-clock time. The idle clock is not affected.
var sleepFn = time.Sleep

// ReadUntilETX drains a variable-length frame from port until ETX has been
// seen and at least one further byte (the BCC) has arrived, per §4.C. It
// exits early on idle timeout, a full buffer, or a hard I/O error from
// port.Read (propagated to the caller).
//
// The ETX search only scans the newly appended range on each iteration —
// scanning the whole buffer every time would be correct but wasteful, and
// more importantly would make it easy to mis-stop on an ETX byte that was
// already accounted for in a previous pass.
func ReadUntilETX(port Port, cfg ReadConfig, sink ActivitySink) (ReadResult, error) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 8 * 1024
	}
	if cfg.ReadInterval <= 0 {
		cfg.ReadInterval = 100 * time.Millisecond
	}

	start := time.Now()
	if cfg.InitialDelay > 0 {
		sleepFn(cfg.InitialDelay)
	}

	buf := make([]byte, cfg.BufferSize)
	filled := 0
	lastProgress := time.Now()
	etxAt := -1

	for {
		if filled >= len(buf) {
			return ReadResult{Data: buf[:filled], FoundETX: false, Elapsed: time.Since(start)}, nil
		}

		n, err := port.Read(buf[filled:], cfg.ReadInterval)
		if err != nil {
			return ReadResult{Data: buf[:filled], FoundETX: false, Elapsed: time.Since(start)}, err
		}

		if n > 0 {
			if etxAt < 0 {
				if idx := bytes.IndexByte(buf[filled:filled+n], ETX); idx >= 0 {
					etxAt = filled + idx
				}
			}
			filled += n
			lastProgress = time.Now()
			if sink != nil {
				sink.RxBytes(n)
			}

			if etxAt >= 0 && filled > etxAt+1 {
				return ReadResult{Data: buf[:filled], FoundETX: true, Elapsed: time.Since(start)}, nil
			}
			continue
		}

		if cfg.IdleTimeout > 0 && time.Since(lastProgress) >= cfg.IdleTimeout {
			return ReadResult{Data: buf[:filled], FoundETX: false, Elapsed: time.Since(start)}, nil
		}
		// port.Read already blocked up to cfg.ReadInterval above, so the
		// loop is naturally paced without an extra sleep here.
	}
}
