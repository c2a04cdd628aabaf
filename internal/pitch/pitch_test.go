package pitch

import "testing"

func TestIsProgressive(t *testing.T) {
	cases := []struct {
		startX, endX float64
		want         bool
	}{
		{50, 61, true},  // Δ=11
		{50, 60, true},  // Δ=10 exactly at threshold
		{50, 58, false}, // Δ=8
		{50, 40, false}, // backwards
		{110, 120, true},
		{0, 9.99, false},
	}
	for _, c := range cases {
		if got := IsProgressive(c.startX, c.endX); got != c.want {
			t.Errorf("IsProgressive(%.2f, %.2f): want %v, got %v", c.startX, c.endX, c.want, got)
		}
	}
}

func TestInPenaltyArea(t *testing.T) {
	cases := []struct {
		x, y float64
		want bool
	}{
		{102, 18, true},  // corner of the area
		{102, 62, true},
		{120, 40, true},
		{101.9, 40, false},
		{105, 17.9, false},
		{105, 62.1, false},
		{90, 40, false},
	}
	for _, c := range cases {
		if got := InPenaltyArea(c.x, c.y); got != c.want {
			t.Errorf("InPenaltyArea(%.1f, %.1f): want %v, got %v", c.x, c.y, c.want, got)
		}
	}
}

func TestEntersFinalThird(t *testing.T) {
	cases := []struct {
		startX, endX float64
		want         bool
	}{
		{40, 85, true},
		{79.9, 80, true},  // boundary is inclusive on the end side
		{80, 90, false},   // already in the final third
		{40, 79.9, false}, // never arrives
	}
	for _, c := range cases {
		if got := EntersFinalThird(c.startX, c.endX); got != c.want {
			t.Errorf("EntersFinalThird(%.1f, %.1f): want %v, got %v", c.startX, c.endX, c.want, got)
		}
	}
}

func TestEntersPenaltyArea(t *testing.T) {
	if !EntersPenaltyArea(90, 40, 105, 40) {
		t.Error("carry from (90,40) to (105,40) should enter the area")
	}
	if EntersPenaltyArea(105, 40, 110, 40) {
		t.Error("carry fully inside the area should not count as an entry")
	}
	if EntersPenaltyArea(90, 40, 101, 40) {
		t.Error("carry ending short of the area should not count")
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance(0,0,3,4): want 5, got %f", got)
	}
	if got := Distance(40, 40, 40, 40); got != 0 {
		t.Errorf("Distance of identical points: want 0, got %f", got)
	}
}
