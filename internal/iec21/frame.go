package iec21

import (
	"bytes"
	"errors"
)

// ErrNoFrame is returned when raw bytes don't contain a well-formed
// STX..ETX..BCC frame.
var ErrNoFrame = errors.New("iec21: no STX/ETX frame found")

// ErrBCCMismatch is returned by SliceDataFrame when the BCC byte
// doesn't match the computed checksum. Per §7 this is advisory — callers
// may still use Body.
var ErrBCCMismatch = errors.New("iec21: BCC mismatch")

// SliceDataFrame extracts the body of an inbound "STX body ETX BCC" frame.
// Per the §9 Design Notes open question, parsing always slices strictly
// between STX and ETX — never the raw buffer — so the BCC byte can never be
// misread as a stray ')'. BCC mismatch is reported via the returned error
// but Body is still populated (BccMismatch is advisory, never fatal).
func SliceDataFrame(raw []byte) (body []byte, err error) {
	stx := bytes.IndexByte(raw, STX)
	if stx < 0 {
		return nil, ErrNoFrame
	}
	etx := bytes.IndexByte(raw[stx:], ETX)
	if etx < 0 {
		return nil, ErrNoFrame
	}
	etx += stx
	if etx+1 >= len(raw) {
		return nil, ErrNoFrame // no BCC byte present
	}

	body = raw[stx+1 : etx]
	// Recomputed over STX..ETX inclusive, per §4.A's inbound wording. The
	// original MASS sender actually XORs STX+1..ETX (excluding STX itself,
	// mod.rs:499), so a real meter's BCC byte will never match this check —
	// harmless, since BccMismatch is advisory and Body is still returned.
	if !VerifyBCC(raw[:etx+2], stx) {
		return body, ErrBCCMismatch
	}
	return body, nil
}

// SliceP0Seed extracts the seed bytes from an inbound
// "SOH P0 STX (seed) ETX BCC" challenge frame.
func SliceP0Seed(raw []byte) (seed []byte, err error) {
	if len(raw) < 2 || raw[0] != SOH || raw[1] != 'P' {
		return nil, ErrNoFrame
	}
	body, ferr := SliceDataFrame(raw)
	if ferr != nil && !errors.Is(ferr, ErrBCCMismatch) {
		return nil, ferr
	}
	open := bytes.IndexByte(body, '(')
	closeIdx := bytes.LastIndexByte(body, ')')
	if open < 0 || closeIdx < 0 || closeIdx <= open {
		return nil, ErrNoFrame
	}
	return body[open+1 : closeIdx], nil
}

// IsP0Challenge reports whether raw looks like a "SOH P0 ..." frame.
func IsP0Challenge(raw []byte) bool {
	return len(raw) >= 3 && raw[0] == SOH && raw[1] == 'P' && raw[2] == '0'
}

// IsMeterBreak reports whether raw is a meter-initiated "SOH B 0" break,
// sent after the meter rejects repeated auth attempts.
func IsMeterBreak(raw []byte) bool {
	return len(raw) >= 3 && raw[0] == SOH && raw[1] == 'B' && raw[2] == '0'
}
