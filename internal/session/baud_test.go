package session

import (
	"reflect"
	"testing"

	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

func TestResolveInitialBauds(t *testing.T) {
	cases := []struct {
		name    string
		conn    serialport.ConnectionType
		cfg     int
		want    []int
	}{
		{"optical ignores configured", serialport.Optical, 19200, []int{300}},
		{"auto no config", serialport.Auto, 0, []int{9600, 300}},
		{"auto with config", serialport.Auto, 1200, []int{1200}},
		{"other no config", serialport.Other, 0, []int{9600, 300, 19200}},
		{"other with config", serialport.Other, 2400, []int{2400}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ResolveInitialBauds(c.conn, c.cfg)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestResolveTargetBaudOptical(t *testing.T) {
	target, char := ResolveTargetBaud(serialport.Optical, 2400, 9600, '5')
	if target != 9600 {
		t.Fatalf("got target %d, want 9600", target)
	}
	if char != '5' {
		t.Fatalf("got char %q, want '5'", char)
	}
}

func TestResolveTargetBaudConfigured(t *testing.T) {
	target, char := ResolveTargetBaud(serialport.Other, 2400, 9600, '5')
	if target != 2400 {
		t.Fatalf("got target %d, want 2400", target)
	}
	if char != '3' {
		t.Fatalf("got char %q, want '3'", char)
	}
}

func TestResolveTargetBaudFallsBackToIdentityChar(t *testing.T) {
	// target baud with no entry in the char table falls back to the
	// identity's own baud char rather than the zero value.
	target, char := ResolveTargetBaud(serialport.Other, 57600, 9600, '5')
	if target != 57600 {
		t.Fatalf("got target %d", target)
	}
	if char != '5' {
		t.Fatalf("got char %q, want fallback '5'", char)
	}
}
