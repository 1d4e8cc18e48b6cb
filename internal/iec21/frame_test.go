package iec21

import (
	"errors"
	"testing"
)

func TestSliceDataFrameOK(t *testing.T) {
	body := []byte("1.8.0(00123.45*kWh)")
	frame := append([]byte{STX}, body...)
	frame = append(frame, ETX)
	frame = append(frame, BCC(frame))

	got, err := SliceDataFrame(frame)
	if err != nil {
		t.Fatalf("SliceDataFrame: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("got %q, want %q", got, body)
	}
}

func TestSliceDataFrameBCCMismatch(t *testing.T) {
	body := []byte("1.8.0(1)")
	frame := append([]byte{STX}, body...)
	frame = append(frame, ETX)
	frame = append(frame, BCC(frame)^0xFF)

	got, err := SliceDataFrame(frame)
	if !errors.Is(err, ErrBCCMismatch) {
		t.Fatalf("expected ErrBCCMismatch, got %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body still expected despite mismatch: got %q", got)
	}
}

func TestSliceDataFrameNoFrame(t *testing.T) {
	if _, err := SliceDataFrame([]byte("no markers here")); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}
}

func TestSliceP0Seed(t *testing.T) {
	body := []byte("(MTIzNDU2Nzg)")
	frame := []byte{SOH, 'P', '0', STX}
	frame = append(frame, body...)
	frame = append(frame, ETX)
	frame = append(frame, BCC(frame[3:]))

	seed, err := SliceP0Seed(frame)
	if err != nil {
		t.Fatalf("SliceP0Seed: %v", err)
	}
	if string(seed) != "MTIzNDU2Nzg" {
		t.Fatalf("got %q", seed)
	}
}

func TestIsP0Challenge(t *testing.T) {
	if !IsP0Challenge([]byte{SOH, 'P', '0'}) {
		t.Fatal("expected true")
	}
	if IsP0Challenge([]byte{SOH, 'B', '0'}) {
		t.Fatal("expected false")
	}
}

func TestIsMeterBreak(t *testing.T) {
	if !IsMeterBreak([]byte{SOH, 'B', '0'}) {
		t.Fatal("expected true")
	}
	if IsMeterBreak([]byte{SOH, 'P', '0'}) {
		t.Fatal("expected false")
	}
}
