// Package registry maps a named meter to its connection parameters and
// remembers the identity last seen for each, so a caller can address meters
// by name ("substation-04") instead of repeating port/address/password at
// every call site.
package registry

import (
	"fmt"
	"sync"

	"github.com/edas-mass/iec62056-driver/config"
	"github.com/edas-mass/iec62056-driver/meter"
)

// Registry is a named-meter -> ConnectionParams lookup table, loaded from
// config.Config.Meters and mutable at runtime (AddServer's role in the
// teacher's Scanner, generalized from network discovery to static
// configuration since meters are provisioned, not discovered).
type Registry struct {
	mu      sync.RWMutex
	entries map[string]meter.ConnectionParams
}

func New() *Registry {
	return &Registry{entries: make(map[string]meter.ConnectionParams)}
}

// LoadConfig replaces the registry contents with cfg's meter entries.
func LoadConfig(cfg *config.Config) (*Registry, error) {
	r := New()
	for _, m := range cfg.Meters {
		params, err := fromEntry(m)
		if err != nil {
			return nil, fmt.Errorf("registry: meter %q: %w", m.Name, err)
		}
		r.Add(m.Name, params)
	}
	return r, nil
}

func fromEntry(m config.MeterEntry) (meter.ConnectionParams, error) {
	ct, err := connectionTypeFromString(m.ConnectionType)
	if err != nil {
		return meter.ConnectionParams{}, err
	}
	return meter.ConnectionParams{
		PortName:       m.Port,
		ConnectionType: ct,
		ConfiguredBaud: m.Baud,
		ReadDeadline:   m.ReadDeadline,
		Address:        m.Address,
		Password:       m.Password,
	}, nil
}

func connectionTypeFromString(s string) (meter.ConnectionType, error) {
	switch s {
	case "", "auto":
		return meter.Auto, nil
	case "optical":
		return meter.Optical, nil
	case "other":
		return meter.Other, nil
	default:
		return 0, fmt.Errorf("unknown connection_type %q", s)
	}
}

func (r *Registry) Add(name string, params meter.ConnectionParams) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = params
}

func (r *Registry) Get(name string) (meter.ConnectionParams, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[name]
	return p, ok
}

// Names lists every registered meter name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
