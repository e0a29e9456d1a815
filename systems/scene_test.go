package systems

import (
	"errors"
	"testing"
)

func TestValidateGridSize(t *testing.T) {
	tests := []struct {
		name      string
		w, h, res int
		limit     int64
		wantErr   error
	}{
		{"ok", 200, 200, 1, 0, nil},
		{"ok with limit", 10, 10, 2, 900, nil},
		{"zero width", 0, 10, 1, 0, ErrInvalidDimensions},
		{"negative height", 10, -1, 1, 0, ErrInvalidDimensions},
		{"zero resolution", 10, 10, 0, 0, ErrInvalidResolution},
		{"too large", 10, 10, 2, 899, ErrGridTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGridSize(tc.w, tc.h, tc.res, tc.limit)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSubcellCount(t *testing.T) {
	if n := SubcellCount(200, 100, 3); n != 200*100*25 {
		t.Errorf("expected %d subcells, got %d", 200*100*25, n)
	}
}

func TestPlaceCharges(t *testing.T) {
	g := NewChargeGrid(4, 4, 1)
	n := PlaceCharges(g, []PlacedCharge{
		{X: 1, Y: 1, Charge: 20},
		{X: 1, Y: 1, Charge: 20}, // repeat, no change
		{X: 9, Y: 0, Charge: 5},  // outside, skipped
		{X: 3, Y: 2, Charge: -7},
	})
	if n != 2 {
		t.Errorf("expected 2 tiles changed, got %d", n)
	}
	if g.Charge(3, 2) != -7 {
		t.Errorf("expected -7 at (3,2), got %d", g.Charge(3, 2))
	}
}

func TestNoiseScenePopulate(t *testing.T) {
	scene := NoiseScene{
		Seed:      7,
		Scale:     0.15,
		Threshold: 0.2,
		Charge:    60,
		Alpha:     2,
		Beta:      2,
		Octaves:   3,
	}

	a := NewChargeGrid(32, 32, 1)
	b := NewChargeGrid(32, 32, 1)
	na := scene.Populate(a)
	nb := scene.Populate(b)

	if na != nb {
		t.Errorf("expected same seed to give the same scene, got %d vs %d changes", na, nb)
	}
	if na != len(a.ChargedCells()) {
		t.Errorf("expected change count %d to match charged cells %d", na, len(a.ChargedCells()))
	}
	for i, q := range a.Tiles() {
		if q != 0 && q != 60 && q != -60 {
			t.Fatalf("tile %d: expected 0 or ±60, got %d", i, q)
		}
		if q != b.Tiles()[i] {
			t.Fatalf("tile %d differs between identical scenes", i)
		}
	}
}

func TestNoiseSceneMinimumCharge(t *testing.T) {
	scene := NoiseScene{
		Seed:      7,
		Scale:     0.15,
		Threshold: 0.05,
		Charge:    -128,
		Alpha:     2,
		Beta:      2,
		Octaves:   3,
	}
	g := NewChargeGrid(32, 32, 1)
	scene.Populate(g)

	var low, high int
	for i, q := range g.Tiles() {
		switch q {
		case 0:
		case -128:
			low++
		case 127:
			high++
		default:
			t.Fatalf("tile %d: expected 0, -128 or 127, got %d", i, q)
		}
	}
	if low == 0 || high == 0 {
		t.Errorf("expected both polarities, got %d at -128 and %d at 127", low, high)
	}
}

func TestNegateCharge(t *testing.T) {
	tests := []struct {
		in, want int8
	}{
		{0, 0},
		{1, -1},
		{-60, 60},
		{127, -127},
		{-127, 127},
		{-128, 127},
	}
	for _, tt := range tests {
		if got := NegateCharge(tt.in); got != tt.want {
			t.Errorf("NegateCharge(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestNoiseSceneDisabled(t *testing.T) {
	g := NewChargeGrid(8, 8, 1)
	if n := (NoiseScene{Scale: 0.1}).Populate(g); n != 0 {
		t.Errorf("expected zero charge to place nothing, got %d", n)
	}
	if n := (NoiseScene{Charge: 10}).Populate(g); n != 0 {
		t.Errorf("expected zero scale to place nothing, got %d", n)
	}
}
