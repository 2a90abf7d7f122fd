// Package alias manages the Chinese-to-English alias dictionary: a JSON
// object file mapping a Chinese name to one or more pipe-separated English
// names.
package alias

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrExists reports an attempt to register an alias that is already present.
var ErrExists = errors.New("alias already registered")

// Dictionary reads and writes the alias file. Every access re-reads the
// file so concurrent writers (another CLI invocation) are always visible.
type Dictionary struct {
	Path string
}

// Load reads the full alias map. A missing file is an empty dictionary.
func (d *Dictionary) Load() (map[string]string, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse alias file %s: %w", d.Path, err)
	}
	return entries, nil
}

// Lookup returns the English names registered for a Chinese name, in file
// order. The second return is false when the name has no entry.
func (d *Dictionary) Lookup(name string) ([]string, error) {
	entries, err := d.Load()
	if err != nil {
		return nil, err
	}
	raw, ok := entries[strings.TrimSpace(name)]
	if !ok {
		return nil, nil
	}

	var names []string
	for _, part := range strings.Split(raw, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names, nil
}

// Add registers a new alias. Existing entries are never overwritten.
func (d *Dictionary) Add(cnName, enName string) error {
	cnName = strings.TrimSpace(cnName)
	enName = strings.TrimSpace(enName)
	if cnName == "" || enName == "" {
		return errors.New("alias names must be non-empty")
	}

	entries, err := d.Load()
	if err != nil {
		return err
	}
	if _, ok := entries[cnName]; ok {
		return fmt.Errorf("%w: %s", ErrExists, cnName)
	}
	entries[cnName] = enName
	return d.save(entries)
}

// Remove deletes an alias. The boolean reports whether it existed.
func (d *Dictionary) Remove(cnName string) (bool, error) {
	cnName = strings.TrimSpace(cnName)
	entries, err := d.Load()
	if err != nil {
		return false, err
	}
	if _, ok := entries[cnName]; !ok {
		return false, nil
	}
	delete(entries, cnName)
	return true, d.save(entries)
}

// Clear removes every alias.
func (d *Dictionary) Clear() error {
	return d.save(map[string]string{})
}

// Keys returns the registered Chinese names, sorted.
func (d *Dictionary) Keys() ([]string, error) {
	entries, err := d.Load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// save rewrites the whole file. Mutations are whole-file replacements, so a
// torn write can at worst lose the latest change, never corrupt half a map.
func (d *Dictionary) save(entries map[string]string) error {
	if dir := filepath.Dir(d.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create alias dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode aliases: %w", err)
	}
	if err := os.WriteFile(d.Path, data, 0o644); err != nil {
		return fmt.Errorf("write alias file: %w", err)
	}
	return nil
}
