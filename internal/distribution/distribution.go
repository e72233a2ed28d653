// Package distribution parses per-character distribution reports and
// converts them to and from JSON.
package distribution

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/verte-zerg/credsift/internal/model"
)

// Distribution is an insertion-ordered mapping from single-character keys to
// their statistics. Overwriting a key keeps its original position.
type Distribution struct {
	keys    []string
	entries map[string]model.CharacterStat
}

// New returns an empty distribution.
func New() *Distribution {
	return &Distribution{entries: make(map[string]model.CharacterStat)}
}

// Set inserts or overwrites the entry for key.
func (d *Distribution) Set(key string, stat model.CharacterStat) {
	if d.entries == nil {
		d.entries = make(map[string]model.CharacterStat)
	}
	if _, exists := d.entries[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = stat
}

// Get returns the entry for key.
func (d *Distribution) Get(key string) (model.CharacterStat, bool) {
	stat, ok := d.entries[key]
	return stat, ok
}

// Len returns the number of entries.
func (d *Distribution) Len() int {
	return len(d.keys)
}

// Keys returns the keys in first-insertion order.
func (d *Distribution) Keys() []string {
	return append([]string(nil), d.keys...)
}

// MarshalJSON emits the entries as a JSON object in first-insertion order.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(d.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving its key order.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}
		var stat model.CharacterStat
		if err := dec.Decode(&stat); err != nil {
			return fmt.Errorf("failed to decode entry %q: %w", key, err)
		}
		d.Set(key, stat)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
