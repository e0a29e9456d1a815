package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// logPerf logs recompute timings every telemetry.log_interval seconds and
// appends them to perf.csv when output is enabled. Quiet while idle.
func (g *Game) logPerf() {
	interval := g.cfg.Telemetry.LogInterval
	if interval <= 0 {
		return
	}
	now := rl.GetTime()
	if now-g.lastPerfLog < interval {
		return
	}
	g.lastPerfLog = now

	stats := g.perf.Stats()
	if stats.Recomputes == g.loggedRecomputes {
		return
	}
	g.loggedRecomputes = stats.Recomputes
	slog.Info("perf", "stats", stats, "field", g.stats)

	if err := g.output.WritePerf(stats); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}
