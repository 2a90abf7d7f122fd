package ailink

import (
	"fmt"
	"sort"
	"sync"

	"github.com/boardlens/boardlens/internal/ailink/driver"
	"github.com/boardlens/boardlens/internal/ailink/driver/openai"
)

// reservedKeys never serve as fallbacks; they exist for other workloads.
var reservedKeys = map[string]bool{
	"replay":    true,
	"embedding": true,
}

// Resolved is a model entry bound to its driver.
type Resolved struct {
	Key    string
	Model  string
	Driver driver.Driver
}

// Registry resolves model keys to drivers, caching one driver per key.
type Registry struct {
	cfg Config

	mu      sync.Mutex
	drivers map[string]driver.Driver
}

// NewRegistry builds a registry over a config.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg, drivers: make(map[string]driver.Driver)}
}

// Resolve returns the driver for the preferred key if that entry is usable,
// otherwise the first usable non-reserved entry in sorted key order, so the
// fallback choice is deterministic across runs.
func (r *Registry) Resolve(preferred string) (*Resolved, error) {
	if entry, ok := r.cfg.Models[preferred]; ok && entry.usable() {
		return r.resolved(preferred, entry), nil
	}

	keys := make([]string, 0, len(r.cfg.Models))
	for key := range r.cfg.Models {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == preferred || reservedKeys[key] {
			continue
		}
		if entry := r.cfg.Models[key]; entry.usable() {
			return r.resolved(key, entry), nil
		}
	}

	return nil, fmt.Errorf("no usable model configured (preferred %q)", preferred)
}

func (r *Registry) resolved(key string, entry ModelConfig) *Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[key]
	if !ok {
		client := openai.NewClient(entry.BaseURL, entry.APIKey)
		client.Timeout = r.cfg.DefaultTimeout
		d = client
		r.drivers[key] = d
	}
	return &Resolved{Key: key, Model: entry.Model, Driver: d}
}
