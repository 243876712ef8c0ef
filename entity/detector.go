package entity

import "fmt"

type Detector struct {
	Name       string     `json:"name"`
	Efficiency Efficiency `json:"efficiency"`
}

// DefaultDetectorName is the name given to the detector appended to a list
// that currently holds n detectors.
func DefaultDetectorName(n int) string {
	return fmt.Sprintf("Detector %d", n+1)
}

// Decay is the gamma transition of interest. Efficiency and
// EfficiencyCorrectedCounts are kept for the persisted format only; counts
// are computed from each detector's own curve.
type Decay struct {
	Energy                    float64 `json:"energy" validate:"gte=0"`
	AbsoluteIntensity         float64 `json:"absolute_intensity" validate:"gte=0"`
	Efficiency                float64 `json:"efficiency" validate:"gte=0,lte=100"`
	EfficiencyCorrectedCounts float64 `json:"efficiency_corrected_counts"`
}

func DefaultDecay() Decay {
	return Decay{AbsoluteIntensity: 100}
}
