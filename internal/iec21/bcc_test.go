package iec21

import "testing"

func TestBCCXOR(t *testing.T) {
	got := BCC([]byte{0x01, 0x02, 0x03})
	want := byte(0x01 ^ 0x02 ^ 0x03)
	if got != want {
		t.Fatalf("BCC = %#x, want %#x", got, want)
	}
}

func TestVerifyBCC(t *testing.T) {
	body := []byte{STX, 'R', '1', ETX}
	bcc := BCC(body)
	framed := append(append([]byte{}, body...), bcc)

	if !VerifyBCC(framed, 0) {
		t.Fatal("expected matching BCC to verify")
	}
	framed[len(framed)-1] ^= 0xFF
	if VerifyBCC(framed, 0) {
		t.Fatal("expected corrupted BCC to fail verification")
	}
}

func TestVerifyBCCStartOutOfRange(t *testing.T) {
	if VerifyBCC([]byte{1, 2}, 5) {
		t.Fatal("expected out-of-range start to fail")
	}
	if VerifyBCC([]byte{1, 2}, -1) {
		t.Fatal("expected negative start to fail")
	}
}
