package meter

import (
	"fmt"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/events"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

const (
	postWriteDelay = 200 * time.Millisecond
	writeAckWait   = 500 * time.Millisecond
)

var sleepFn = time.Sleep

func writeObisOnPort(port serialport.Port, code, value string, sink events.Sink) error {
	frame := iec21.BuildWrite(code, value)
	if sink != nil {
		sink.TxBytes("meter.write_obis", frame)
	}
	if err := port.WriteAll(frame); err != nil {
		return fmt.Errorf("meter: write_obis %s: %w", code, errs.ErrIoError)
	}

	sleepFn(postWriteDelay)

	buf := make([]byte, 1)
	n, err := port.Read(buf, writeAckWait)
	if err != nil {
		return fmt.Errorf("meter: write_obis %s read ack: %w", code, errs.ErrIoError)
	}
	if n == 0 {
		return fmt.Errorf("meter: write_obis %s: %w", code, errs.ErrAuthTimeout)
	}

	switch buf[0] {
	case iec21.ACK:
		return nil
	case iec21.NAK:
		return fmt.Errorf("meter: write_obis %s rejected: %w", code, errs.ErrWriteRejected)
	default:
		return fmt.Errorf("meter: write_obis %s unexpected byte 0x%02x: %w", code, buf[0], errs.ErrProtocolError)
	}
}

// SyncTime requires programming mode. It issues three sequential
// write_obis calls — clock (0.9.1), date (0.9.2), day-of-week (0.9.5) — all
// of which must ACK; any failure is fatal for the operation.
func (s *Session) SyncTime(now time.Time) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	port := s.port
	programming := s.inProgrammingMode
	s.mu.Unlock()

	if !programming || port == nil {
		return fmt.Errorf("meter: sync_time: %w", errs.ErrNotConnected)
	}

	clock := now.Format("15:04:05")
	date := now.Format("06-01-02")
	dow := isoWeekday(now)

	if err := writeObisOnPort(port, "0.9.1", clock, s.sink); err != nil {
		return err
	}
	if err := writeObisOnPort(port, "0.9.2", date, s.sink); err != nil {
		return err
	}
	if err := writeObisOnPort(port, "0.9.5", dow, s.sink); err != nil {
		return err
	}
	return nil
}

// isoWeekday remaps Go's Sunday=0 Weekday to the ISO convention the meter
// expects: Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) string {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return fmt.Sprintf("%d", wd)
}
