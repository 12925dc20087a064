package core

import "testing"

func TestRectFOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "overlap on both axes",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(9.5, 9.5, 5, 5),
			expected: true,
		},
		{
			name:     "overlap on x only",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(5, 20, 10, 10),
			expected: false,
		},
		{
			name:     "overlap on y only",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(20, 5, 10, 10),
			expected: false,
		},
		{
			name:     "touching edges",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained",
			a:        NewRectF(0, 0, 100, 100),
			b:        NewRectF(40, 40, 1, 1),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(80, 270, 10, 7.5)

	if r.X != 70 || r.Y != 262.5 {
		t.Errorf("RectAround origin = (%v, %v), expected (70, 262.5)", r.X, r.Y)
	}
	if r.Right() != 90 || r.Bottom() != 277.5 {
		t.Errorf("RectAround far edge = (%v, %v), expected (90, 277.5)", r.Right(), r.Bottom())
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{-0.7, -0.4, 0.4, -0.4},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
