package app

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/AnkushinDaniil/beamtime/entity/format"
	"github.com/AnkushinDaniil/beamtime/entity/mode"
	"github.com/AnkushinDaniil/beamtime/entity/parameters"
	"github.com/AnkushinDaniil/beamtime/surface"
)

// Report is the computed output of every estimator for one frame.
type Report struct {
	SPS      *SPSReport      `json:"sps,omitempty"`
	CeBrA    *CeBrAReport    `json:"cebra,omitempty"`
	ICESPICE *ICESPICEReport `json:"icespice,omitempty"`
}

type SPSReport struct {
	Seconds Number `json:"time_s"`
	Hours   Number `json:"time_h"`
	Days    Number `json:"time_d"`
}

type DetectorReport struct {
	Name           string `json:"name"`
	Efficiency     Number `json:"efficiency"`
	ExpectedCounts Number `json:"expected_counts"`
}

type CeBrAReport struct {
	Detectors       []DetectorReport `json:"detectors"`
	TotalEfficiency Number           `json:"total_efficiency"`
	TotalCounts     Number           `json:"total_counts"`
}

type ICESPICEReport struct {
	ConversionElectrons Number `json:"conversion_electrons"`
}

// Number encodes Inf and NaN as strings, which plain JSON numbers cannot
// carry.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte(strconv.Quote(strconv.FormatFloat(v, 'g', -1, 64))), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

// NewReport computes the visible estimators.
func NewReport(s State) Report {
	var r Report
	if s.ShowSPS {
		t := s.SPS.Compute()
		r.SPS = &SPSReport{Seconds: Number(t.Seconds), Hours: Number(t.Hours), Days: Number(t.Days)}
	}
	if s.ShowCeBrA {
		res := s.CeBrA.Evaluate()
		c := &CeBrAReport{
			Detectors:       make([]DetectorReport, 0, len(res.Rows)),
			TotalEfficiency: Number(res.TotalEfficiency),
			TotalCounts:     Number(res.TotalCounts),
		}
		for _, row := range res.Rows {
			c.Detectors = append(c.Detectors, DetectorReport{
				Name:           row.Name,
				Efficiency:     Number(row.Efficiency),
				ExpectedCounts: Number(row.ExpectedCounts),
			})
		}
		r.CeBrA = c
	}
	if s.ShowICESPICE {
		r.ICESPICE = &ICESPICEReport{ConversionElectrons: Number(s.ICESPICE.Compute())}
	}
	return r
}

// Snapshot writes one frame of a in the requested format.
func Snapshot(w io.Writer, a *App, params parameters.Parameters) error {
	switch params.Format {
	case format.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewReport(a.State)); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case format.HTML:
		return RenderChart(w, a.State, params)
	default:
		ui := surface.NewText(w)
		if params.Mode == mode.Window {
			ui = surface.NewWindow(w, Title)
		}
		return a.Render(ui)
	}
}
