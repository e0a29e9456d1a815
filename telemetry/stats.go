package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/estatic/systems"
)

// FieldStats summarizes one solved grid and its traced lines.
type FieldStats struct {
	Width      int `csv:"width"`
	Height     int `csv:"height"`
	Resolution int `csv:"resolution"`

	// Charges
	Charged     int `csv:"charged"`
	Positive    int `csv:"positive"`
	Negative    int `csv:"negative"`
	TotalCharge int `csv:"total_charge"`

	// Force magnitude over every field sample
	ForceMean float64 `csv:"force_mean"`
	ForceStd  float64 `csv:"force_std"`
	ForceP50  float64 `csv:"force_p50"`
	ForceP90  float64 `csv:"force_p90"`
	ForceMax  float64 `csv:"force_max"`

	PotentialMin float64 `csv:"potential_min"`
	PotentialMax float64 `csv:"potential_max"`

	// Tracing
	Borders      int `csv:"borders"`
	Lines        int `csv:"lines"`
	Points       int `csv:"points"`
	HitCharge    int `csv:"lines_hit_charge"`
	LeftGrid     int `csv:"lines_left_grid"`
	StepCapped   int `csv:"lines_step_cap"`
	Stalled      int `csv:"lines_stalled"`
	DroppedLines int `csv:"lines_dropped"` // Seeds that produced no line
}

// ComputeFieldStats gathers statistics from a solved grid. borders is the
// number of seeds the lines were traced from.
func ComputeFieldStats(g *systems.ChargeGrid, borders int, lines []systems.FieldLine) FieldStats {
	w, h := g.GridSize()
	s := FieldStats{
		Width:      w,
		Height:     h,
		Resolution: g.Resolution(),
		Borders:    borders,
		Lines:      len(lines),
	}

	for _, q := range g.Tiles() {
		switch {
		case q > 0:
			s.Positive++
		case q < 0:
			s.Negative++
		}
		s.TotalCharge += int(q)
	}
	s.Charged = s.Positive + s.Negative

	samples := g.Field().Samples
	if len(samples) > 0 {
		forces := make([]float64, len(samples))
		potentials := make([]float64, len(samples))
		for i, smp := range samples {
			forces[i] = r2.Norm(smp.Force)
			potentials[i] = smp.Potential
		}
		s.ForceMean, s.ForceStd = stat.MeanStdDev(forces, nil)
		s.ForceMax = floats.Max(forces)
		s.PotentialMin = floats.Min(potentials)
		s.PotentialMax = floats.Max(potentials)

		sort.Float64s(forces)
		s.ForceP50 = stat.Quantile(0.5, stat.Empirical, forces, nil)
		s.ForceP90 = stat.Quantile(0.9, stat.Empirical, forces, nil)
	}

	for _, line := range lines {
		s.Points += len(line.Points)
		switch line.End {
		case systems.LineHitCharge:
			s.HitCharge++
		case systems.LineLeftGrid:
			s.LeftGrid++
		case systems.LineStepCap:
			s.StepCapped++
		case systems.LineStalled:
			s.Stalled++
		}
	}
	s.DroppedLines = borders - len(lines)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("charged", s.Charged),
		slog.Int("total_charge", s.TotalCharge),
		slog.Float64("force_mean", s.ForceMean),
		slog.Float64("force_max", s.ForceMax),
		slog.Int("borders", s.Borders),
		slog.Int("lines", s.Lines),
		slog.Int("points", s.Points),
		slog.Int("dropped", s.DroppedLines),
	)
}
