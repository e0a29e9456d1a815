package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/estatic/config"
	"github.com/pthm-cable/estatic/systems"
)

// ChargeRecord is one charged tile in charges.csv.
type ChargeRecord struct {
	X      int  `csv:"x"`
	Y      int  `csv:"y"`
	Charge int8 `csv:"charge"`
}

// FieldRecord is one field sample in field.csv.
type FieldRecord struct {
	SX        int     `csv:"sx"`
	SY        int     `csv:"sy"`
	X         float64 `csv:"x"` // Subcell center in tile units
	Y         float64 `csv:"y"`
	FX        float64 `csv:"fx"`
	FY        float64 `csv:"fy"`
	Magnitude float64 `csv:"magnitude"`
	Potential float64 `csv:"potential"`
}

// LineRecord is one field line point in lines.csv.
type LineRecord struct {
	Line       int     `csv:"line"`
	Seq        int     `csv:"seq"`
	SeedX      int     `csv:"seed_x"`
	SeedY      int     `csv:"seed_y"`
	SeedCharge int8    `csv:"seed_charge"`
	End        string  `csv:"end"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
}

// OutputManager writes experiment output into one directory. A nil manager
// is valid and discards everything.
type OutputManager struct {
	dir      string
	perfFile *os.File

	perfHeaderWritten bool
}

// NewOutputManager creates the output directory and opens perf.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	return &OutputManager{dir: dir, perfFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteCharges writes every charged tile to charges.csv.
func (om *OutputManager) WriteCharges(g *systems.ChargeGrid) error {
	if om == nil {
		return nil
	}
	cells := g.ChargedCells()
	records := make([]ChargeRecord, len(cells))
	for i, c := range cells {
		records[i] = ChargeRecord{X: c.X, Y: c.Y, Charge: g.Charge(c.X, c.Y)}
	}
	return om.writeTable("charges.csv", &records)
}

// WriteField writes every cached field sample to field.csv.
func (om *OutputManager) WriteField(g *systems.ChargeGrid) error {
	if om == nil {
		return nil
	}
	field := g.Field()
	w, h := field.GridSize()
	records := make([]FieldRecord, 0, w*h)
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			s := field.At(sx, sy)
			c := field.Center(sx, sy)
			records = append(records, FieldRecord{
				SX:        sx,
				SY:        sy,
				X:         c.X,
				Y:         c.Y,
				FX:        s.Force.X,
				FY:        s.Force.Y,
				Magnitude: r2.Norm(s.Force),
				Potential: s.Potential,
			})
		}
	}
	return om.writeTable("field.csv", &records)
}

// WriteLines writes every field line point to lines.csv, one row per point.
func (om *OutputManager) WriteLines(lines []systems.FieldLine) error {
	if om == nil {
		return nil
	}
	var records []LineRecord
	for i, line := range lines {
		for j, p := range line.Points {
			records = append(records, LineRecord{
				Line:       i,
				Seq:        j,
				SeedX:      line.Seed.X,
				SeedY:      line.Seed.Y,
				SeedCharge: line.Seed.Charge,
				End:        line.End.String(),
				X:          p.X,
				Y:          p.Y,
			})
		}
	}
	return om.writeTable("lines.csv", &records)
}

// WriteStats writes a single-row stats.csv.
func (om *OutputManager) WriteStats(s FieldStats) error {
	if om == nil {
		return nil
	}
	records := []FieldStats{s}
	return om.writeTable("stats.csv", &records)
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV()}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// writeTable replaces name with records, a pointer to a slice of structs.
func (om *OutputManager) writeTable(name string, records any) error {
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes perf.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.perfFile == nil {
		return nil
	}
	return om.perfFile.Close()
}
