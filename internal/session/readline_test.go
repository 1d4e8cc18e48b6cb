package session

import (
	"testing"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

func TestReadLineFindsCRLF(t *testing.T) {
	port := serialport.NewFake().Feed([]byte("/MKS5<2>ADM(M550.2251)\r\n"))
	line, ok := readLine(port, 500*time.Millisecond)
	if !ok {
		t.Fatal("expected line to be found")
	}
	if string(line) != "/MKS5<2>ADM(M550.2251)\r\n" {
		t.Fatalf("got %q", line)
	}
}

func TestReadLineTimesOutWithoutCRLF(t *testing.T) {
	port := serialport.NewFake().Feed([]byte("partial no terminator"))
	_, ok := readLine(port, 50*time.Millisecond)
	if ok {
		t.Fatal("expected timeout, not found")
	}
}

func TestReadOpportunisticStopsOnSilenceAfterData(t *testing.T) {
	port := serialport.NewFake().Feed([]byte("hello"))
	buf := ReadOpportunistic(port, 300*time.Millisecond)
	if string(buf) != "hello" {
		t.Fatalf("got %q, want hello", buf)
	}
}

func TestReadOpportunisticStopsOnP0Challenge(t *testing.T) {
	frame := []byte{iec21.SOH, 'P', '0', iec21.STX, '(', 's', 'e', 'e', 'd', ')', iec21.ETX}
	frame = append(frame, iec21.BCC(frame[3:]))

	port := serialport.NewFake().Feed(frame)
	buf := ReadOpportunistic(port, 300*time.Millisecond)
	if string(buf) != string(frame) {
		t.Fatalf("got %q, want %q", buf, frame)
	}
}

func TestReadOpportunisticEmptyWhenNoChallenge(t *testing.T) {
	port := serialport.NewFake()
	buf := ReadOpportunistic(port, 50*time.Millisecond)
	if len(buf) != 0 {
		t.Fatalf("got %q, want empty", buf)
	}
}
