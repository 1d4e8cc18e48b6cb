package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/edas-mass/iec62056-driver/meter"
)

// IdentityCache persists the last identity seen for each named meter to
// disk, so a caller (e.g. the diagnostics server) can show identity
// information before any connection has been made this process lifetime.
type IdentityCache struct {
	path string
	mu   sync.Mutex
}

func NewIdentityCache(dataDir string) *IdentityCache {
	return &IdentityCache{path: filepath.Join(dataDir, "meter-identity-cache.json")}
}

// Load reads cached identities from disk. Returns nil if no cache exists.
func (c *IdentityCache) Load() map[string]meter.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Failed to read meter identity cache: %v", err)
		}
		return nil
	}

	var identities map[string]meter.Identity
	if err := json.Unmarshal(data, &identities); err != nil {
		log.Warnf("Failed to parse meter identity cache: %v", err)
		return nil
	}

	log.Infof("Loaded %d cached meter identities", len(identities))
	return identities
}

// Save writes the identity map to disk atomically (tmp file + rename).
func (c *IdentityCache) Save(identities map[string]meter.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(identities, "", "  ")
	if err != nil {
		log.Warnf("Failed to marshal meter identity cache: %v", err)
		return
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warnf("Failed to create cache dir: %v", err)
		return
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		log.Warnf("Failed to write meter identity cache tmp: %v", err)
		return
	}

	if err := os.Rename(tmp, c.path); err != nil {
		log.Warnf("Failed to rename meter identity cache: %v", err)
		os.Remove(tmp)
		return
	}

	log.Debugf("Saved %d meter identities to cache", len(identities))
}

// Put updates one meter's identity in the on-disk cache (read-modify-write;
// callers that update many entries at once should build the map and call
// Save directly instead).
func (c *IdentityCache) Put(name string, ident meter.Identity) {
	identities := c.Load()
	if identities == nil {
		identities = make(map[string]meter.Identity)
	}
	identities[name] = ident
	c.Save(identities)
}
