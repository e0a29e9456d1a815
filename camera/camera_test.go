package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 200, 100, 10)

	// Grid center should map to screen center
	sx, sy := cam.WorldToScreen(100, 50)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
	if cam.Scale != 10 {
		t.Errorf("expected scale 10, got %f", cam.Scale)
	}
}

func TestWorldToScreenFlipsY(t *testing.T) {
	cam := New(800, 600, 40, 40, 10)

	_, lowY := cam.WorldToScreen(20, 0)
	_, highY := cam.WorldToScreen(20, 40)
	if highY >= lowY {
		t.Errorf("expected grid top above grid bottom on screen, got top=%f bottom=%f", highY, lowY)
	}
	if math.Abs(float64(lowY-highY-400)) > 0.01 {
		t.Errorf("expected 400px between grid edges, got %f", lowY-highY)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 200, 200, 10)
	cam.Pan(37, -12)
	cam.SetScale(7.5)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanFollowsCursor(t *testing.T) {
	cam := New(800, 600, 50, 50, 10)

	// The grid point under the cursor stays under it after a drag
	wx, wy := cam.ScreenToWorld(300, 200)
	cam.Pan(40, 25)
	sx, sy := cam.WorldToScreen(wx, wy)
	if math.Abs(float64(sx-340)) > 0.01 || math.Abs(float64(sy-225)) > 0.01 {
		t.Errorf("expected point to move with the drag to (340, 225), got (%f, %f)", sx, sy)
	}
}

func TestZoomClamps(t *testing.T) {
	cam := New(800, 600, 50, 50, 10)
	cam.MinScale = 2
	cam.MaxScale = 20

	cam.ZoomBy(100)
	if cam.Scale != 20 {
		t.Errorf("expected scale clamped to 20, got %f", cam.Scale)
	}
	cam.ZoomBy(-100)
	if cam.Scale != 2 {
		t.Errorf("expected scale clamped to 2, got %f", cam.Scale)
	}
}

func TestInScreen(t *testing.T) {
	cam := New(800, 600, 50, 50, 10)

	if !cam.InScreen(0, 0) || !cam.InScreen(800, 600) || !cam.InScreen(400, 300) {
		t.Error("expected viewport corners and center inside")
	}
	if cam.InScreen(-1, 10) || cam.InScreen(10, 601) {
		t.Error("expected points past the viewport outside")
	}
}

func TestSegmentVisible(t *testing.T) {
	cam := New(800, 600, 50, 50, 10)

	tests := []struct {
		name           string
		ax, ay, bx, by float32
		want           bool
	}{
		{"inside", 10, 10, 20, 20, true},
		{"one end inside", -50, 10, 20, 20, true},
		{"both left", -50, 10, -5, 300, false},
		{"both below", 10, 700, 500, 650, false},
		{"both right", 900, 0, 801, 600, false},
		{"both above", 10, -1, 500, -40, false},
		{"crosses viewport", -50, 300, 900, 300, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.SegmentVisible(tt.ax, tt.ay, tt.bx, tt.by); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSetWorldRecenters(t *testing.T) {
	cam := New(800, 600, 50, 50, 10)
	cam.Pan(100, 100)
	cam.SetWorld(20, 30)

	sx, sy := cam.WorldToScreen(10, 15)
	if math.Abs(float64(sx-400)) > 0.01 || math.Abs(float64(sy-300)) > 0.01 {
		t.Errorf("expected new grid center at screen center, got (%f, %f)", sx, sy)
	}
}
