// Package report turns engine output into text tables, CSV files and
// numeric summaries. It owns no styling beyond plain-text alignment.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"

	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

// Summary describes the y-values of a curve.
type Summary struct {
	Samples int     `json:"samples"`
	MinY    float64 `json:"min_y"`
	MaxY    float64 `json:"max_y"`
	MeanY   float64 `json:"mean_y"`
}

// CurveRow is one CSV line of an exported curve.
type CurveRow struct {
	Sweep string  `csv:"sweep"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
}

// Summarize computes min, max and mean of the curve's y-values.
func Summarize(c vanilla.SweepCurve) (Summary, error) {
	ys := stats.Float64Data(c.Ys())
	if ys.Len() == 0 {
		return Summary{}, fmt.Errorf("curve %q has no samples", c.Name)
	}

	lo, err := stats.Min(ys)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to calculate min: %v", err)
	}
	hi, err := stats.Max(ys)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to calculate max: %v", err)
	}
	mean, err := stats.Mean(ys)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to calculate mean: %v", err)
	}

	return Summary{Samples: ys.Len(), MinY: lo, MaxY: hi, MeanY: mean}, nil
}

// GreeksTable renders the report as a centred text table.
func GreeksTable(r vanilla.GreeksReport) string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Greek", "Symbol", "Value", "Units"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)

	for _, row := range r {
		table.Append([]string{row.Greek, row.Symbol, fmt.Sprintf("%.4f", row.Value), row.Units})
	}

	table.Render()
	return display.String()
}

// CurveRows flattens a curve for CSV marshalling.
func CurveRows(c vanilla.SweepCurve) []*CurveRow {
	rows := make([]*CurveRow, len(c.Points))
	for i, p := range c.Points {
		rows[i] = &CurveRow{Sweep: c.Name, X: p.X, Y: p.Y}
	}
	return rows
}

// WriteCurveCSV writes the curve with a header line.
func WriteCurveCSV(w io.Writer, c vanilla.SweepCurve) error {
	rows := CurveRows(c)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("error marshalling curve %s: %w", c.Name, err)
	}
	return nil
}

// ExportCurveCSV writes the curve to dir/filename and returns the path.
func ExportCurveCSV(dir, filename string, c vanilla.SweepCurve) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	rows := CurveRows(c)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("error marshalling file: %w", err)
	}

	return path, nil
}
