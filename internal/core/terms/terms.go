// Package terms provides the offline category/mechanic translation table
// used when AI translation is disabled or fails.
package terms

import (
	"encoding/json"
	"fmt"
	"os"
)

// Map is an English-to-Chinese term table.
type Map map[string]string

// Load reads a term table from a JSON object file. A missing file yields an
// empty table, which translates everything to itself.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Map{}, nil
		}
		return nil, fmt.Errorf("read terms file: %w", err)
	}

	m := Map{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse terms file %s: %w", path, err)
	}
	return m, nil
}

// Apply translates each term that has an entry and passes the rest through
// unchanged, preserving order.
func (m Map) Apply(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		if translated, ok := m[v]; ok {
			out[i] = translated
		} else {
			out[i] = v
		}
	}
	return out
}
