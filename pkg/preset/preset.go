// Package preset stores parameter values as JSON and applies them to a
// registry, optionally reloading when the file changes.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/justyntemme/overtone/pkg/framework/param"
)

// ErrUnknownParameter is returned by Apply for IDs the registry lacks.
var ErrUnknownParameter = errors.New("unknown parameter")

// Preset is a named set of plain parameter values.
type Preset struct {
	Name       string             `json:"name"`
	Parameters map[string]float64 `json:"parameters"`
}

// Load decodes a preset. Fields other than name and parameters are rejected.
func Load(r io.Reader) (*Preset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p Preset
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	return &p, nil
}

// LoadFile reads a preset from path.
func LoadFile(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Capture snapshots every parameter in reg.
func Capture(reg *param.Registry, name string) *Preset {
	p := &Preset{Name: name, Parameters: make(map[string]float64)}
	for _, prm := range reg.All() {
		p.Parameters[prm.ID] = prm.Value()
	}
	return p
}

// Apply stores the preset's values into reg, clamped to each parameter's
// range. If any ID is unknown nothing is applied.
func (p *Preset) Apply(reg *param.Registry) error {
	var unknown []string
	for id := range p.Parameters {
		if reg.Get(id) == nil {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("apply preset %q: %w: %v", p.Name, ErrUnknownParameter, unknown)
	}

	for id, v := range p.Parameters {
		if err := reg.Set(id, v); err != nil {
			return fmt.Errorf("apply preset %q: %w", p.Name, err)
		}
	}
	return nil
}

// Save writes the preset as indented JSON.
func (p *Preset) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return nil
}

// SaveFile writes the preset to path.
func (p *Preset) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preset: %w", err)
	}
	if err := p.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
