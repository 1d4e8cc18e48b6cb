// Package errs defines the driver's error taxonomy (spec §7) as sentinel
// errors. Call sites wrap them with fmt.Errorf("...: %w", ErrX) so callers
// can recover the kind via errors.Is.
package errs

import "errors"

var (
	ErrNotConnected    = errors.New("meter: not connected")
	ErrBusy            = errors.New("meter: operation already in progress")
	ErrPortOpenFailed  = errors.New("meter: port open failed at every probed baud")
	ErrNoResponse      = errors.New("meter: no identification response from any probed baud")
	ErrIdentParseError = errors.New("meter: identification frame did not parse")
	ErrReadTimeout     = errors.New("meter: idle timeout exceeded before ETX")
	ErrBccMismatch     = errors.New("meter: BCC mismatch") // advisory; never fails an operation
	ErrAuthRejected    = errors.New("meter: password rejected")
	ErrAuthTimeout     = errors.New("meter: no response to password frame")
	ErrWriteRejected   = errors.New("meter: W2 write rejected")
	ErrProtocolError   = errors.New("meter: unexpected byte where ACK/NAK/SOH expected")
	ErrIoError         = errors.New("meter: serial I/O failure")
)
