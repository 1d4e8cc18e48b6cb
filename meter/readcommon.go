package meter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

// nineXTee wraps a Port's Read to additionally accumulate received bytes
// and record the instant both "0.9.1" and "0.9.2" have first appeared,
// implementing the optional time_of_09x_read field of §6.
type nineXTee struct {
	serialport.Port
	acc     []byte
	found   bool
	firstAt time.Time
}

func (t *nineXTee) Read(buf []byte, deadline time.Duration) (int, error) {
	n, err := t.Port.Read(buf, deadline)
	if n > 0 {
		t.acc = append(t.acc, buf[:n]...)
		if !t.found && bytes.Contains(t.acc, []byte("0.9.1")) && bytes.Contains(t.acc, []byte("0.9.2")) {
			t.found = true
			t.firstAt = time.Now()
		}
	}
	return n, err
}

func (t *nineXTee) millis() int64 {
	if !t.found {
		return 0
	}
	return t.firstAt.UnixMilli()
}

// drainAndParse runs the read-until-ETX loop, verifies BCC (advisory —
// mismatch never fails the operation, only surfaces as a warning), slices
// strictly between STX and ETX (§9 Design Notes: never parse outside that
// span), and returns the parsed OBIS items.
func (s *Session) drainAndParse(port serialport.Port, bufSize int, idleTimeout time.Duration) ([]ObisItem, *nineXTee, error) {
	tee := &nineXTee{Port: port}
	cfg := iec21.ReadConfig{
		BufferSize:   bufSize,
		IdleTimeout:  idleTimeout,
		ReadInterval: 100 * time.Millisecond,
	}
	result, err := iec21.ReadUntilETX(tee, cfg, iec21.SinkAdapter{Sink: s.sink, Code: "meter.read"})
	if err != nil {
		return nil, tee, fmt.Errorf("meter: read data block: %w", errs.ErrIoError)
	}
	if !result.FoundETX {
		return nil, tee, fmt.Errorf("meter: %w", errs.ErrReadTimeout)
	}

	body, frameErr := iec21.SliceDataFrame(result.Data)
	if frameErr != nil && frameErr != iec21.ErrBCCMismatch {
		return nil, tee, fmt.Errorf("meter: %w", errs.ErrIdentParseError)
	}
	if frameErr == iec21.ErrBCCMismatch {
		s.sink.Warn("meter.bcc_mismatch", "data surfaced despite BCC mismatch")
	}

	items := iec21.ParseDataBlock(string(body))
	return items, tee, nil
}
