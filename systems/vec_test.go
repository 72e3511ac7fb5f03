package systems

import (
	"math"
	"testing"
)

func TestVec2Ops(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}

	if got := a.Add(b); got != (Vec2{4, 2}) {
		t.Errorf("Add = %v, want {4 2}", got)
	}
	if got := a.Sub(b); got != (Vec2{2, 6}) {
		t.Errorf("Sub = %v, want {2 6}", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale = %v, want {6 8}", got)
	}
	if got := a.Dot(b); got != 3-8 {
		t.Errorf("Dot = %v, want -5", got)
	}
	if got := a.Mag(); math.Abs(float64(got-5)) > 1e-5 {
		t.Errorf("Mag = %v, want 5", got)
	}
	if got := a.MagSq(); got != 25 {
		t.Errorf("MagSq = %v, want 25", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero vector stays zero", Vec2{}, Vec2{}},
		{"unit x", Vec2{10, 0}, Vec2{1, 0}},
		{"3-4-5", Vec2{3, 4}, Vec2{0.6, 0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(float64(got.X-tt.want.X)) > 1e-5 ||
				math.Abs(float64(got.Y-tt.want.Y)) > 1e-5 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	tests := []struct {
		name    string
		in      Vec2
		max     float32
		wantMag float32
	}{
		{"under limit unchanged", Vec2{1, 0}, 5, 1},
		{"over limit clamped", Vec2{30, 40}, 5, 5},
		{"zero stays zero", Vec2{}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Limit(tt.max)
			if math.Abs(float64(got.Mag()-tt.wantMag)) > 1e-4 {
				t.Errorf("Limit(%v, %v).Mag() = %v, want %v", tt.in, tt.max, got.Mag(), tt.wantMag)
			}
		})
	}
}
