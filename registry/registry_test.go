package registry

import (
	"testing"

	"github.com/edas-mass/iec62056-driver/config"
	"github.com/edas-mass/iec62056-driver/meter"
)

func TestLoadConfigPopulatesRegistry(t *testing.T) {
	cfg := &config.Config{
		Meters: []config.MeterEntry{
			{Name: "substation-04", Port: "/dev/ttyUSB0", ConnectionType: "optical", Address: "123"},
			{Name: "substation-05", Port: "/dev/ttyUSB1", ConnectionType: "auto"},
		},
	}

	r, err := LoadConfig(cfg)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("got %d names, want 2: %v", len(names), names)
	}

	p, ok := r.Get("substation-04")
	if !ok {
		t.Fatal("expected substation-04 to be registered")
	}
	if p.ConnectionType != meter.Optical || p.PortName != "/dev/ttyUSB0" || p.Address != "123" {
		t.Fatalf("got params %+v", p)
	}
}

func TestLoadConfigRejectsUnknownConnectionType(t *testing.T) {
	cfg := &config.Config{
		Meters: []config.MeterEntry{{Name: "bad", Port: "/dev/ttyUSB0", ConnectionType: "carrier-pigeon"}},
	}
	if _, err := LoadConfig(cfg); err == nil {
		t.Fatal("expected an error for an unknown connection_type")
	}
}

func TestGetMissingMeter(t *testing.T) {
	r := New()
	if _, ok := r.Get("nonexistent"); ok {
		t.Fatal("expected ok=false for an unregistered name")
	}
}

func TestAddOverwritesExistingEntry(t *testing.T) {
	r := New()
	r.Add("m1", meter.ConnectionParams{PortName: "/dev/ttyUSB0"})
	r.Add("m1", meter.ConnectionParams{PortName: "/dev/ttyUSB1"})

	p, _ := r.Get("m1")
	if p.PortName != "/dev/ttyUSB1" {
		t.Fatalf("got %q, want last-write-wins", p.PortName)
	}
}
