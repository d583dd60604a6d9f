package nbody

import (
	"errors"
	"testing"
)

func TestParsePolicy(t *testing.T) {
	for _, name := range PolicyNames() {
		p, err := ParsePolicy(name)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", name, err)
		}
		if p.String() != name {
			t.Errorf("round trip: got %q, want %q", p.String(), name)
		}
	}

	if _, err := ParsePolicy("bounce"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestParseScheme(t *testing.T) {
	if s, err := ParseScheme("verlet"); err != nil || s != SchemeVerlet {
		t.Errorf("verlet: got %v, %v", s, err)
	}
	if s, err := ParseScheme("euler"); err != nil || s != SchemeEuler {
		t.Errorf("euler: got %v, %v", s, err)
	}
	if _, err := ParseScheme("rk4"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", err)
	}
}

func TestAttenuate(t *testing.T) {
	const contact = 2.0
	tests := []struct {
		name     string
		policy   CollisionPolicy
		distance float64
		expected float64
	}{
		{"zero outside", CollisionZero, 3, 10},
		{"zero at boundary", CollisionZero, 2, 10},
		{"zero inside", CollisionZero, 1, 0},
		{"ramp inside", CollisionRamp, 1, 5},
		{"ramp at overlap", CollisionRamp, 0, 0},
		{"invert inside", CollisionInvert, 1, -5},
		{"invert outside", CollisionInvert, 4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.attenuate(10, tt.distance, contact); got != tt.expected {
				t.Errorf("attenuate = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.G != GravitationalConstant {
		t.Errorf("unexpected G %g", p.G)
	}
	if p.Policy != CollisionZero {
		t.Errorf("default policy should be zero, got %v", p.Policy)
	}
	if p.Scheme != SchemeVerlet {
		t.Errorf("default scheme should be verlet, got %v", p.Scheme)
	}
	if got := p.lengthScale(); got != DefaultSizeScale*DefaultDistanceScale {
		t.Errorf("lengthScale = %v", got)
	}
}
