// Package serialport wraps the OS serial layer behind the narrow
// capability set the driver needs: open, set_baud, read, write_all, flush,
// close. Implementing it as an interface lets higher layers be driven by a
// fake in tests instead of a real UART.
package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Port is the capability set the driver depends on. Every call that can
// block takes an explicit per-call deadline rather than relying on a
// connection-wide timeout, so the read engine's idle clock stays precise.
type Port interface {
	SetBaud(rate int) error
	Read(buf []byte, deadline time.Duration) (int, error)
	WriteAll(p []byte) error
	Flush() error
	Close() error
}

// ConnectionType selects how the initial baud-probe sequence is built (see
// internal/session.ResolveInitialBauds).
type ConnectionType int

const (
	Optical ConnectionType = iota
	Auto
	Other // serial/rs485/rs232/other
)

type realPort struct {
	name string
	port serial.Port
}

// Open opens name at the given baud with IEC 62056-21's 7E1 framing (7 data
// bits, even parity, 1 stop bit).
func Open(name string, baud int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 7,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s at %d baud: %w", name, baud, err)
	}
	return &realPort{name: name, port: p}, nil
}

func (r *realPort) SetBaud(rate int) error {
	mode := &serial.Mode{
		BaudRate: rate,
		DataBits: 7,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}
	if err := r.port.SetMode(mode); err != nil {
		return fmt.Errorf("serialport: set baud %d on %s: %w", rate, r.name, err)
	}
	return nil
}

func (r *realPort) Read(buf []byte, deadline time.Duration) (int, error) {
	if err := r.port.SetReadTimeout(deadline); err != nil {
		return 0, fmt.Errorf("serialport: set read timeout on %s: %w", r.name, err)
	}
	n, err := r.port.Read(buf)
	if err != nil {
		return n, fmt.Errorf("serialport: read %s: %w", r.name, err)
	}
	return n, nil
}

func (r *realPort) WriteAll(p []byte) error {
	written := 0
	for written < len(p) {
		n, err := r.port.Write(p[written:])
		if err != nil {
			return fmt.Errorf("serialport: write %s: %w", r.name, err)
		}
		written += n
	}
	return nil
}

func (r *realPort) Flush() error {
	if err := r.port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("serialport: flush %s: %w", r.name, err)
	}
	return nil
}

func (r *realPort) Close() error {
	if err := r.port.Close(); err != nil {
		return fmt.Errorf("serialport: close %s: %w", r.name, err)
	}
	return nil
}

// ListPorts enumerates serial ports known to the OS. Port enumeration
// beyond this passthrough (friendly names, hot-plug notification) is out of
// scope per spec.md §1.
func ListPorts() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("serialport: list ports: %w", err)
	}
	return names, nil
}
