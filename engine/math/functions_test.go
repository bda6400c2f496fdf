package math

import (
	gomath "math"
	"math/rand"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"positive in range", 90, 90},
		{"negative in range", -90, -90},
		{"half turn maps to lower bound", 180, -180},
		{"lower bound kept", -180, -180},
		{"full turn", 360, 0},
		{"wrap positive", 190, -170},
		{"wrap negative", -190, 170},
		{"many turns", 725, 5},
		{"many negative turns", -725, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAngle(tt.in); got != tt.want {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAngleRangeAndAntisymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		a := rng.Float64()*360 - 180
		b := rng.Float64()*360 - 180

		ab := NormalizeAngle(a - b)
		ba := NormalizeAngle(b - a)
		if ab < -180 || ab >= 180 {
			t.Fatalf("NormalizeAngle(%v-%v) = %v, out of [-180,180)", a, b, ab)
		}
		if ab == -180 {
			// half-turn difference resolves to -180 in both directions
			if ba != -180 {
				t.Fatalf("boundary: got %v and %v", ab, ba)
			}
			continue
		}
		if gomath.Abs(ab+ba) > 1e-9 {
			t.Fatalf("NormalizeAngle(a-b)=%v, NormalizeAngle(b-a)=%v for a=%v b=%v", ab, ba, a, b)
		}
	}
}

func TestNormalizeAngleExactHalfTurnBoundary(t *testing.T) {
	if got := NormalizeAngle(90 - (-90)); got != -180 {
		t.Errorf("got %v, want -180", got)
	}
	if got := NormalizeAngle(-90 - 90); got != -180 {
		t.Errorf("got %v, want -180", got)
	}
}

func TestAngleDistanceUsesShortestArc(t *testing.T) {
	if got := AngleDistance(170, -170); got != 20 {
		t.Errorf("AngleDistance(170, -170) = %v, want 20", got)
	}
	if got := AngleDistance(-170, 170); got != 20 {
		t.Errorf("AngleDistance(-170, 170) = %v, want 20", got)
	}
}

func TestAngleDeltaKeepsUnwrappedAngle(t *testing.T) {
	// 725 is 5 after two full turns; reaching 0 should only turn back by 5
	from := 725.0
	d := AngleDelta(from, 0)
	if d != -5 {
		t.Fatalf("AngleDelta(725, 0) = %v, want -5", d)
	}
	if got := from + d; got != 720 {
		t.Errorf("unwrapped result = %v, want 720", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(50.0, 0, 32); got != 32 {
		t.Errorf("Clamp(50) = %v", got)
	}
	if got := Clamp(-1, 0, 32); got != 0 {
		t.Errorf("Clamp(-1) = %v", got)
	}
	if got := Clamp(16, 0, 32); got != 16 {
		t.Errorf("Clamp(16) = %v", got)
	}
}

func TestEaseOut(t *testing.T) {
	if EaseOut(0) != 0 || EaseOut(1) != 1 {
		t.Fatalf("EaseOut endpoints: %v %v", EaseOut(0), EaseOut(1))
	}
	if EaseOut(2) != 1 || EaseOut(-1) != 0 {
		t.Errorf("EaseOut should clamp input")
	}
	if EaseOut(0.5) <= 0.5 {
		t.Errorf("EaseOut(0.5) = %v, expected ahead of linear", EaseOut(0.5))
	}
}

func TestOrientationDeltaTo(t *testing.T) {
	cur := NewOrientation(85, 5, 12)
	d := cur.DeltaTo(NewOrientation(90, 0, 0))
	if d.Pitch != 5 || d.Yaw != -5 || d.Roll != -12 {
		t.Fatalf("DeltaTo = %+v", d)
	}
	got := cur.Add(d)
	if got.Pitch != 90 || got.Yaw != 0 || got.Roll != 0 {
		t.Errorf("Add = %+v", got)
	}
}
