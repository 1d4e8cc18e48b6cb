package iec21

import "testing"

func TestParseIdentification(t *testing.T) {
	ident, ok := ParseIdentification("/MKS5<2>ADM(M550.2251)\r\n")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := Identity{
		Manufacturer: "MKS",
		BaudChar:     '5',
		Generation:   "2",
		EdasID:       "ADM",
		Model:        "M550.2251",
		MaxBaudRate:  9600,
	}
	if ident != want {
		t.Fatalf("got %+v, want %+v", ident, want)
	}
}

func TestParseIdentificationMissingSlash(t *testing.T) {
	if _, ok := ParseIdentification("MKS5<2>ADM(M550.2251)\r\n"); ok {
		t.Fatal("expected missing leading '/' to fail")
	}
}

func TestParseIdentificationBadBaudChar(t *testing.T) {
	if _, ok := ParseIdentification("/MKS9<2>ADM(M550.2251)\r\n"); ok {
		t.Fatal("expected unsupported baud char to fail")
	}
}

func TestParseIdentificationMissingParens(t *testing.T) {
	if _, ok := ParseIdentification("/MKS5<2>ADM M550.2251\r\n"); ok {
		t.Fatal("expected missing model parens to fail")
	}
}
