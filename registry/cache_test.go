package registry

import (
	"os"
	"testing"

	"github.com/edas-mass/iec62056-driver/meter"
)

func TestIdentityCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewIdentityCache(dir)

	if got := c.Load(); got != nil {
		t.Fatalf("expected nil from an empty cache, got %v", got)
	}

	identities := map[string]meter.Identity{
		"substation-04": {Manufacturer: "MKS", Model: "M550.2251"},
	}
	c.Save(identities)

	got := c.Load()
	if len(got) != 1 || got["substation-04"].Manufacturer != "MKS" {
		t.Fatalf("got %+v", got)
	}
}

func TestIdentityCachePutMergesWithExisting(t *testing.T) {
	dir := t.TempDir()
	c := NewIdentityCache(dir)

	c.Put("m1", meter.Identity{Manufacturer: "MKS"})
	c.Put("m2", meter.Identity{Manufacturer: "EDAS"})

	got := c.Load()
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	if got["m1"].Manufacturer != "MKS" || got["m2"].Manufacturer != "EDAS" {
		t.Fatalf("got %+v", got)
	}
}

func TestIdentityCacheLoadCorruptFileReturnsNil(t *testing.T) {
	dir := t.TempDir()
	c := NewIdentityCache(dir)
	c.Save(map[string]meter.Identity{"m1": {Manufacturer: "MKS"}})

	// overwrite with invalid JSON
	if err := os.WriteFile(c.path, []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupt write: %v", err)
	}

	if got := c.Load(); got != nil {
		t.Fatalf("expected nil for corrupt cache file, got %v", got)
	}
}
