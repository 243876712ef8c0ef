package entity

import (
	"errors"
	"math"

	"github.com/go-echarts/go-echarts/v2/opts"
)

// Line is an efficiency curve sampled over an energy range, ready to be added
// to a chart as a series.
type Line struct {
	name string
	data []opts.LineData
}

func NewLine(name string, energies []float64, curve func(energy float64) float64) (*Line, error) {
	if name == "" {
		return nil, errors.New("name is empty")
	}
	if len(energies) == 0 {
		return nil, errors.New("energy range is empty")
	}
	data := make([]opts.LineData, len(energies))
	for i, e := range energies {
		data[i] = opts.LineData{Value: ChartValue(curve(e))}
	}
	return &Line{name: name, data: data}, nil
}

func (l *Line) Name() string {
	return l.name
}

func (l *Line) Data() []opts.LineData {
	return l.data
}

// MaxSamples bounds the number of steps in a sampled energy range.
const MaxSamples = 1_000_000

// ValidRange reports whether lo..hi sampled step apart is a usable range.
func ValidRange(lo, hi, step float64) bool {
	return step > 0 && hi >= lo && (hi-lo)/step <= MaxSamples
}

// Energies returns the sample points from lo to hi inclusive, step apart.
// The last point is hi even when the range is not a whole number of steps.
// An invalid range yields nil.
func Energies(lo, hi, step float64) []float64 {
	if !ValidRange(lo, hi, step) {
		return nil
	}
	n := int((hi-lo)/step) + 1
	energies := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		energies = append(energies, lo+float64(i)*step)
	}
	if last := energies[len(energies)-1]; last < hi {
		energies = append(energies, hi)
	}
	return energies
}

// ChartValue maps a computed value to chart data. Inf and NaN cannot be
// encoded, so they become the "-" placeholder, which charts draw as a gap.
func ChartValue(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return v
}
