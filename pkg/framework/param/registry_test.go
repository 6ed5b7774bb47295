package param

import (
	"errors"
	"sync"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	err := r.Add(
		New("attack", "Attack").Range(0.001, 0.5).Default(0.1).Unit("s").Build(),
		New("gain", "Gain").Range(0, 1).Default(0.7).Build(),
		New("mute", "Mute").Toggle().Build(),
	)
	if err != nil {
		t.Fatalf("Failed to add parameters: %v", err)
	}
	return r
}

func TestRegistryFloat(t *testing.T) {
	r := newTestRegistry(t)

	p, err := r.Float("gain")
	if err != nil {
		t.Fatalf("Expected gain to resolve, got %v", err)
	}
	if p.Value() != 0.7 {
		t.Errorf("Expected default 0.7, got %f", p.Value())
	}
}

func TestRegistryFloatErrors(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name string
		id   string
		want error
	}{
		{"Missing", "release", ErrParameterNotFound},
		{"Wrong type", "mute", ErrParameterType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.Float(tt.id)
			if p != nil {
				t.Errorf("Expected nil handle, got %v", p)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			var resolveErr *ResolveError
			if !errors.As(err, &resolveErr) || resolveErr.ID != tt.id {
				t.Errorf("Expected ResolveError for %q, got %v", tt.id, err)
			}
		})
	}
}

func TestRegistryDuplicate(t *testing.T) {
	r := newTestRegistry(t)

	err := r.Add(New("gain", "Gain 2").Build())
	if !errors.Is(err, ErrDuplicateParameter) {
		t.Errorf("Expected ErrDuplicateParameter, got %v", err)
	}
	if r.Get("gain").Name != "Gain" {
		t.Error("Expected first registration to be kept")
	}
}

func TestRegistryAddIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name   string
		params []*Parameter
	}{
		{"ExistingID", []*Parameter{New("release", "Release").Build(), New("gain", "Gain 2").Build()}},
		{"RepeatedInCall", []*Parameter{New("release", "Release").Build(), New("release", "Release 2").Build()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(t)

			err := r.Add(tt.params...)
			if !errors.Is(err, ErrDuplicateParameter) {
				t.Errorf("Expected ErrDuplicateParameter, got %v", err)
			}
			if r.Get("release") != nil {
				t.Error("Expected release not to be registered")
			}
			if r.Count() != 3 {
				t.Errorf("Expected 3 parameters, got %d", r.Count())
			}
		})
	}
}

func TestRegistryOrder(t *testing.T) {
	r := newTestRegistry(t)

	if r.Count() != 3 {
		t.Fatalf("Expected 3 parameters, got %d", r.Count())
	}
	expected := []string{"attack", "gain", "mute"}
	for i, p := range r.All() {
		if p.ID != expected[i] {
			t.Errorf("Index %d: expected %s, got %s", i, expected[i], p.ID)
		}
	}
	if r.GetByIndex(1).ID != "gain" {
		t.Errorf("Expected gain at index 1, got %s", r.GetByIndex(1).ID)
	}
	if r.GetByIndex(3) != nil {
		t.Error("Expected nil for out of range index")
	}
}

func TestRegistrySetAndReset(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Set("gain", 0.25); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v := r.Get("gain").Value(); v != 0.25 {
		t.Errorf("Expected 0.25, got %f", v)
	}
	if err := r.Set("nope", 1); !errors.Is(err, ErrParameterNotFound) {
		t.Errorf("Expected ErrParameterNotFound, got %v", err)
	}

	r.ResetAll()
	if v := r.Get("gain").Value(); v != 0.7 {
		t.Errorf("Expected reset to 0.7, got %f", v)
	}
}

func TestParameterConcurrentAccess(t *testing.T) {
	p := New("detune0", "Detune 0").Range(-0.5, 0.5).Build()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			if i%2 == 0 {
				p.Set(-0.5)
			} else {
				p.Set(0.5)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			v := p.Value()
			if v != -0.5 && v != 0.5 && v != 0 {
				t.Errorf("Observed torn value %f", v)
				return
			}
		}
	}()
	wg.Wait()
}
