package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one recompute.
const (
	PhaseSolve   = "solve"
	PhaseTrace   = "trace"
	PhaseTexture = "texture"
)

// Phases lists the recompute phases in execution order.
var Phases = []string{PhaseSolve, PhaseTrace, PhaseTexture}

// PerfSample holds timing data for a single recompute.
type PerfSample struct {
	Total  time.Duration
	Phases map[string]time.Duration
}

// PerfCollector tracks recompute timings over a rolling window.
// Recomputes only happen after edits, so the window counts recomputes,
// not frames.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	recomputes    int
	currentPhases map[string]time.Duration
	start         time.Time
	phaseStart    time.Time
	lastPhase     string

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize recomputes.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 30
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// Begin starts timing a recompute.
func (p *PerfCollector) Begin() {
	p.start = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing the next.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// End finishes the recompute and records its sample.
func (p *PerfCollector) End() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		Total:  now.Sub(p.start),
		Phases: p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.recomputes++
	p.lastPhase = ""
}

// Recomputes returns the number of recorded recomputes since creation.
func (p *PerfCollector) Recomputes() int {
	return p.recomputes
}

// RecordFrame records frame timing for the viewer.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Recomputes int

	AvgDuration time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration

	// Average duration per phase and its share of the recompute
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	stats := PerfStats{
		Recomputes:    p.recomputes,
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.Total
		if i == 0 || s.Total < stats.MinDuration {
			stats.MinDuration = s.Total
		}
		if s.Total > stats.MaxDuration {
			stats.MaxDuration = s.Total
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	stats.AvgDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgDuration) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("recomputes", s.Recomputes),
		slog.Int64("avg_us", s.AvgDuration.Microseconds()),
		slog.Int64("min_us", s.MinDuration.Microseconds()),
		slog.Int64("max_us", s.MaxDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Recomputes int     `csv:"recomputes"`
	AvgUS      int64   `csv:"avg_us"`
	MinUS      int64   `csv:"min_us"`
	MaxUS      int64   `csv:"max_us"`
	SolveUS    int64   `csv:"solve_us"`
	TraceUS    int64   `csv:"trace_us"`
	TextureUS  int64   `csv:"texture_us"`
	SolvePct   float64 `csv:"solve_pct"`
	TracePct   float64 `csv:"trace_pct"`
	TexturePct float64 `csv:"texture_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV() PerfStatsCSV {
	return PerfStatsCSV{
		Recomputes: s.Recomputes,
		AvgUS:      s.AvgDuration.Microseconds(),
		MinUS:      s.MinDuration.Microseconds(),
		MaxUS:      s.MaxDuration.Microseconds(),
		SolveUS:    s.PhaseAvg[PhaseSolve].Microseconds(),
		TraceUS:    s.PhaseAvg[PhaseTrace].Microseconds(),
		TextureUS:  s.PhaseAvg[PhaseTexture].Microseconds(),
		SolvePct:   s.PhasePct[PhaseSolve],
		TracePct:   s.PhasePct[PhaseTrace],
		TexturePct: s.PhasePct[PhaseTexture],
	}
}
