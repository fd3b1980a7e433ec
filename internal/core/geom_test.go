package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestLinePoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		expected       []Pos
	}{
		{"single point", 2, 2, 2, 2, []Pos{{2, 2}}},
		{"horizontal", 0, 0, 3, 0, []Pos{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical up", 1, 3, 1, 1, []Pos{{1, 3}, {1, 2}, {1, 1}}},
		{"diagonal", 0, 0, 2, 2, []Pos{{0, 0}, {1, 1}, {2, 2}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LinePoints(tc.x0, tc.y0, tc.x1, tc.y1)
			if len(got) != len(tc.expected) {
				t.Fatalf("LinePoints() returned %d points, expected %d: %v", len(got), len(tc.expected), got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("point %d = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestLinePointsEndpoints(t *testing.T) {
	got := LinePoints(1, 9, 17, 2)
	if got[0] != (Pos{1, 9}) {
		t.Errorf("first point = %v, expected (1,9)", got[0])
	}
	if got[len(got)-1] != (Pos{17, 2}) {
		t.Errorf("last point = %v, expected (17,2)", got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if Abs(got[i].X-got[i-1].X) > 1 || Abs(got[i].Y-got[i-1].Y) > 1 {
			t.Errorf("points %v and %v are not adjacent", got[i-1], got[i])
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}

func TestTicksFor(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 60}
	if got := cfg.TicksFor(700); got != 42 {
		t.Errorf("TicksFor(700) = %d, expected 42", got)
	}
	if got := cfg.TicksFor(0); got != 1 {
		t.Errorf("TicksFor(0) = %d, expected 1", got)
	}
	zero := RuntimeConfig{}
	if got := zero.TicksFor(1000); got != 60 {
		t.Errorf("TicksFor with zero rate = %d, expected 60", got)
	}
}
