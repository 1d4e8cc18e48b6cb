// Package auth implements the IEC 62056-21 P0/P1/P2 password sub-protocol
// (spec §4.E): P0 seed challenge / P2 encrypted response, or plaintext P1
// fallback, and ACK/NAK/SOH-B0 outcome classification.
package auth

import (
	"fmt"
	"regexp"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/events"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
)

var eightDigits = regexp.MustCompile(`^[0-9]{8}$`)

// ValidatePassword enforces the §4.E precondition: exactly 8 ASCII digits.
func ValidatePassword(password string) error {
	if !eightDigits.MatchString(password) {
		return fmt.Errorf("auth: password must be exactly 8 ASCII digits: %w", errs.ErrProtocolError)
	}
	return nil
}

// Port is the narrow write/read capability the sub-protocol needs.
type Port interface {
	WriteAll(p []byte) error
	Read(buf []byte, deadline time.Duration) (int, error)
}

// Outcome is the meter's classified response to a password frame.
type Outcome int

const (
	OutcomeAuthenticated Outcome = iota
	OutcomeRejected
	OutcomeMeterLocked
	OutcomeProtocolError
	OutcomeTimeout
)

const (
	postPasswordDelay = 500 * time.Millisecond
	responseBufSize   = 64
)

var sleepFn = time.Sleep

// Run executes one pass of the sub-protocol: it sends either P2 (if p0Frame
// is non-nil) or P1, waits postPasswordDelay, reads up to 64 bytes, and
// classifies the first byte per §4.E step 4.
func Run(port Port, password string, p0Frame []byte, sink events.Sink) (Outcome, byte, error) {
	if err := ValidatePassword(password); err != nil {
		return OutcomeProtocolError, 0, err
	}

	var frame []byte
	if len(p0Frame) > 0 {
		seed, err := iec21.SliceP0Seed(p0Frame)
		if err != nil {
			return OutcomeProtocolError, 0, fmt.Errorf("auth: malformed P0 challenge: %w", errs.ErrProtocolError)
		}
		response := iec21.EncryptPasswordWithSeed(password, seed)
		frame = iec21.BuildPasswordEncrypted(response)
	} else {
		frame = iec21.BuildPasswordPlain(password)
	}

	if sink != nil {
		sink.TxBytes("auth.send", frame)
	}
	if err := port.WriteAll(frame); err != nil {
		return OutcomeProtocolError, 0, fmt.Errorf("auth: write password frame: %w", errs.ErrIoError)
	}

	sleepFn(postPasswordDelay)

	buf := make([]byte, responseBufSize)
	n, err := port.Read(buf, postPasswordDelay)
	if err != nil {
		return OutcomeProtocolError, 0, fmt.Errorf("auth: read password response: %w", errs.ErrIoError)
	}
	if n == 0 {
		return OutcomeTimeout, 0, errs.ErrAuthTimeout
	}
	if sink != nil {
		sink.RxBytes("auth.recv", n)
	}

	resp := buf[:n]
	switch {
	case resp[0] == iec21.ACK:
		return OutcomeAuthenticated, resp[0], nil
	case resp[0] == iec21.NAK:
		return OutcomeRejected, resp[0], errs.ErrAuthRejected
	case iec21.IsMeterBreak(resp):
		return OutcomeMeterLocked, resp[0], fmt.Errorf("auth: meter-locked (6h lockout after 3 wrong attempts): %w", errs.ErrAuthRejected)
	default:
		return OutcomeProtocolError, resp[0], fmt.Errorf("auth: unexpected byte 0x%02x: %w", resp[0], errs.ErrProtocolError)
	}
}
