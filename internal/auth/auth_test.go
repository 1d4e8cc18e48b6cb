package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
)

type fakePort struct {
	writes [][]byte
	resp   []byte
	readErr error
}

func (f *fakePort) WriteAll(p []byte) error {
	f.writes = append(f.writes, append([]byte(nil), p...))
	return nil
}

func (f *fakePort) Read(buf []byte, deadline time.Duration) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return copy(buf, f.resp), nil
}

func withNoSleep(t *testing.T) {
	t.Helper()
	orig := sleepFn
	sleepFn = func(time.Duration) {}
	t.Cleanup(func() { sleepFn = orig })
}

func TestValidatePasswordRejectsNonEightDigit(t *testing.T) {
	if err := ValidatePassword("1234"); err == nil {
		t.Fatal("expected error for short password")
	}
	if err := ValidatePassword("abcdefgh"); err == nil {
		t.Fatal("expected error for non-digit password")
	}
	if err := ValidatePassword("12345678"); err != nil {
		t.Fatalf("expected valid 8-digit password to pass, got %v", err)
	}
}

func TestRunAck(t *testing.T) {
	withNoSleep(t)
	port := &fakePort{resp: []byte{iec21.ACK}}
	outcome, b, err := Run(port, "12345678", nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome != OutcomeAuthenticated || b != iec21.ACK {
		t.Fatalf("got outcome=%v byte=%x", outcome, b)
	}
	if len(port.writes) != 1 {
		t.Fatalf("expected one write, got %d", len(port.writes))
	}
}

func TestRunNak(t *testing.T) {
	withNoSleep(t)
	port := &fakePort{resp: []byte{iec21.NAK}}
	outcome, _, err := Run(port, "12345678", nil, nil)
	if outcome != OutcomeRejected {
		t.Fatalf("got outcome %v, want OutcomeRejected", outcome)
	}
	if !errors.Is(err, errs.ErrAuthRejected) {
		t.Fatalf("got err %v, want ErrAuthRejected", err)
	}
}

func TestRunMeterLocked(t *testing.T) {
	withNoSleep(t)
	port := &fakePort{resp: []byte{iec21.SOH, 'B', '0'}}
	outcome, _, err := Run(port, "12345678", nil, nil)
	if outcome != OutcomeMeterLocked {
		t.Fatalf("got outcome %v, want OutcomeMeterLocked", outcome)
	}
	if !errors.Is(err, errs.ErrAuthRejected) {
		t.Fatalf("got err %v, want ErrAuthRejected wrapped", err)
	}
}

func TestRunTimeout(t *testing.T) {
	withNoSleep(t)
	port := &fakePort{resp: nil}
	outcome, _, err := Run(port, "12345678", nil, nil)
	if outcome != OutcomeTimeout {
		t.Fatalf("got outcome %v, want OutcomeTimeout", outcome)
	}
	if !errors.Is(err, errs.ErrAuthTimeout) {
		t.Fatalf("got err %v, want ErrAuthTimeout", err)
	}
}

func TestRunProtocolErrorOnUnexpectedByte(t *testing.T) {
	withNoSleep(t)
	port := &fakePort{resp: []byte{0x42}}
	outcome, b, err := Run(port, "12345678", nil, nil)
	if outcome != OutcomeProtocolError || b != 0x42 {
		t.Fatalf("got outcome=%v byte=%x", outcome, b)
	}
	if !errors.Is(err, errs.ErrProtocolError) {
		t.Fatalf("got err %v, want ErrProtocolError", err)
	}
}

func TestRunInvalidPasswordShortCircuits(t *testing.T) {
	withNoSleep(t)
	port := &fakePort{resp: []byte{iec21.ACK}}
	outcome, _, err := Run(port, "short", nil, nil)
	if outcome != OutcomeProtocolError || err == nil {
		t.Fatalf("got outcome=%v err=%v, want protocol error before any I/O", outcome, err)
	}
	if len(port.writes) != 0 {
		t.Fatal("expected no write when password validation fails")
	}
}

func TestRunUsesP2WhenChallengeProvided(t *testing.T) {
	withNoSleep(t)
	port := &fakePort{resp: []byte{iec21.ACK}}

	body := []byte("(MTIzNDU2Nzg)")
	challenge := []byte{iec21.SOH, 'P', '0', iec21.STX}
	challenge = append(challenge, body...)
	challenge = append(challenge, iec21.ETX)
	challenge = append(challenge, iec21.BCC(challenge[3:]))

	if _, _, err := Run(port, "12345678", challenge, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(port.writes) != 1 {
		t.Fatalf("expected one write, got %d", len(port.writes))
	}
	if port.writes[0][0] != iec21.SOH || port.writes[0][1] != 'P' || port.writes[0][2] != '2' {
		t.Fatalf("expected a P2 frame, got %x", port.writes[0])
	}
}
