package core

import "testing"

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   int
		expected Direction
	}{
		{"up", 0, -1, DirUp},
		{"down", 0, 1, DirDown},
		{"left", -1, 0, DirLeft},
		{"right", 1, 0, DirRight},
		{"zero", 0, 0, DirNone},
		{"diagonal", 1, 1, DirNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DirectionOf(tc.dx, tc.dy); got != tc.expected {
				t.Errorf("DirectionOf(%d, %d) = %v, expected %v", tc.dx, tc.dy, got, tc.expected)
			}
			if tc.expected == DirNone {
				return
			}
			dx, dy := tc.expected.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("%v.Delta() = (%d, %d), expected (%d, %d)", tc.expected, dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 3, Y: 4}.Add(-1, 2)
	if p.X != 2 || p.Y != 6 {
		t.Errorf("Add() = %+v, expected {2 6}", p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, expected 1", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %f, expected 0", got)
	}
}

func TestAbsSign(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs() returned wrong values")
	}
	if Sign(-3) != -1 || Sign(3) != 1 || Sign(0) != 0 {
		t.Error("Sign() returned wrong values")
	}
}
