// Package conversion estimates how many internal-conversion electrons
// ICESPICE detects for a transition.
package conversion

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AnkushinDaniil/beamtime/entity"
	"github.com/AnkushinDaniil/beamtime/surface"
)

var ErrUnknownField = errors.New("unknown field")

// Settings are the ICESPICE form inputs. Percentages are in [0, 100].
type Settings struct {
	NParticleCounts       int64   `json:"n_particle_counts" validate:"gte=0"`
	TransmissionProb      float64 `json:"transmission_prob" validate:"gte=0,lte=100"`
	DetectorEfficiency    float64 `json:"detector_efficiency" validate:"gte=0,lte=100"`
	BranchingRatio        float64 `json:"branching_ratio" validate:"gte=0,lte=100"`
	ConversionCoefficient float64 `json:"conversion_coefficient"`
}

func Default() Settings {
	return Settings{
		NParticleCounts:       10000,
		TransmissionProb:      1.29,
		DetectorEfficiency:    30.7,
		BranchingRatio:        100,
		ConversionCoefficient: 1,
	}
}

// Compute returns the expected number of detected conversion electrons. A
// negative conversion coefficient gives a negative count; it is not
// sanitized.
func (s Settings) Compute() float64 {
	gammaRays := float64(s.NParticleCounts) * (s.BranchingRatio / 100)
	electrons := gammaRays * s.ConversionCoefficient
	return electrons * (s.TransmissionProb / 100) * (s.DetectorEfficiency / 100)
}

func Fields() []string {
	return []string{
		"n_particle_counts", "transmission_prob", "detector_efficiency",
		"branching_ratio", "conversion_coefficient",
	}
}

// Set parses value into the named field, clamping percentages to [0, 100].
func (s *Settings) Set(field, value string) error {
	if field == "n_particle_counts" {
		v, err := entity.ParseInt(value)
		if err != nil {
			return err
		}
		s.NParticleCounts = max(v, 0)
		return nil
	}

	v, err := entity.ParseFloat(value)
	if err != nil {
		return err
	}
	switch field {
	case "transmission_prob":
		s.TransmissionProb = entity.Clamp(v, 0, 100)
	case "detector_efficiency":
		s.DetectorEfficiency = entity.Clamp(v, 0, 100)
	case "branching_ratio":
		s.BranchingRatio = entity.Clamp(v, 0, 100)
	case "conversion_coefficient":
		s.ConversionCoefficient = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (s Settings) Render(ui surface.Surface) {
	ui.Heading("ICESPICE")
	ui.Row("Particle Counts:", "Number of particles detected in the excited state.",
		strconv.FormatInt(s.NParticleCounts, 10))
	ui.Row("Transmission Probability:",
		"Probability of the particle passing through ICESPICE to the detector in 4π.",
		fmt.Sprintf("%g %%", s.TransmissionProb))
	ui.Row("Detector Efficiency:",
		"Efficiency of the detector for an electron to deposit its full energy.",
		fmt.Sprintf("%g %%", s.DetectorEfficiency))
	ui.Row("Branching Ratio:",
		"Fraction of decays that proceed through this transition.",
		fmt.Sprintf("%g %%", s.BranchingRatio))
	ui.Row("Conversion Coefficient (α):",
		"Ratio of conversion electrons to gamma rays emitted for this transition.",
		fmt.Sprintf("%g", s.ConversionCoefficient))
	ui.Row("Detected Conversion Electrons:",
		"Particle Counts * (Branching Ratio [%] / 100) * α * (Transmission Probability [%] / 100) * (Detector Efficiency [%] / 100)",
		fmt.Sprintf("%.0f", s.Compute()))
}
