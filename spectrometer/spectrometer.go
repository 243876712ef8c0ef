// Package spectrometer estimates the beam time the SE-SPS needs to collect a
// desired number of counts in a peak.
package spectrometer

import (
	"errors"
	"fmt"

	"github.com/AnkushinDaniil/beamtime/entity"
	"github.com/AnkushinDaniil/beamtime/surface"
)

const (
	Charge   = 1.6e-19  // C
	Avogadro = 6.023e23 // 1/mol

	MaxSolidAngle = 12.8 // msr
	MaxZ          = 118
)

var ErrUnknownField = errors.New("unknown field")

// Settings are the SE-SPS form inputs.
type Settings struct {
	CrossSection    float64 `json:"cross_section" validate:"gte=0"`          // µb/sr
	TargetDensity   float64 `json:"target_density" validate:"gte=0"`         // µg/cm^2
	TargetMolarMass float64 `json:"target_molar_mass" validate:"gte=0"`      // g/mol
	BeamCurrent     float64 `json:"beam_current" validate:"gte=0"`           // nA
	ZBeam           int32   `json:"z_beam" validate:"min=1,max=118"`         // proton number
	SlitSettings    float64 `json:"slit_settings" validate:"gte=0,lte=12.8"` // msr
	DesiredCounts   int64   `json:"desired_counts" validate:"gte=0"`
}

// RunTime is the estimated beam time in three units.
type RunTime struct {
	Seconds float64
	Hours   float64
	Days    float64
}

func (r RunTime) String() string {
	return fmt.Sprintf("%.0f s | %.2f h | %.2f d", r.Seconds, r.Hours, r.Days)
}

func Default() Settings {
	return Settings{
		CrossSection:    100,
		TargetDensity:   100,
		TargetMolarMass: 240,
		BeamCurrent:     20,
		ZBeam:           1,
		SlitSettings:    4.62,
		DesiredCounts:   1000,
	}
}

// Compute returns the run time. Zero inputs in the denominator are not
// guarded: the result is whatever float division gives (Inf or NaN).
func (s Settings) Compute() RunTime {
	slitsSr := s.SlitSettings * 1e-3        // msr to sr
	targetDensity := s.TargetDensity * 1e-6 // µg/cm^2 to g/cm^2
	beamCurrent := s.BeamCurrent * 1e-9     // nA to A
	fTarget := (targetDensity * Avogadro) / s.TargetMolarMass * 1e-24 * 1e-6

	seconds := (float64(s.ZBeam) * Charge * float64(s.DesiredCounts)) /
		(s.CrossSection * fTarget * slitsSr * beamCurrent)
	hours := seconds / 3600
	return RunTime{
		Seconds: seconds,
		Hours:   hours,
		Days:    hours / 24,
	}
}

// Fields lists the names accepted by Set.
func Fields() []string {
	return []string{
		"cross_section", "target_density", "target_molar_mass",
		"beam_current", "z_beam", "slit_settings", "desired_counts",
	}
}

// Set parses value into the named field, clamping it to the field's range.
func (s *Settings) Set(field, value string) error {
	switch field {
	case "z_beam", "desired_counts":
		v, err := entity.ParseInt(value)
		if err != nil {
			return err
		}
		if field == "z_beam" {
			s.ZBeam = int32(entity.Clamp(v, 1, MaxZ))
		} else {
			s.DesiredCounts = max(v, 0)
		}
		return nil
	}

	v, err := entity.ParseFloat(value)
	if err != nil {
		return err
	}
	switch field {
	case "cross_section":
		s.CrossSection = max(v, 0)
	case "target_density":
		s.TargetDensity = max(v, 0)
	case "target_molar_mass":
		s.TargetMolarMass = max(v, 0)
	case "beam_current":
		s.BeamCurrent = max(v, 0)
	case "slit_settings":
		s.SlitSettings = entity.Clamp(v, 0, MaxSolidAngle)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (s Settings) Render(ui surface.Surface) {
	ui.Heading("SE-SPS")
	ui.Row("Cross Section:", "", fmt.Sprintf("%g µb/sr", s.CrossSection))
	ui.Row("Target Density:", "", fmt.Sprintf("%g µg/cm^2", s.TargetDensity))
	ui.Row("Target Molar Mass:", "", fmt.Sprintf("%g g/mol", s.TargetMolarMass))
	ui.Row("Beam Current:", "Beam current on target.", fmt.Sprintf("%g nA", s.BeamCurrent))
	ui.Row("Z Beam:", "Proton number of the beam.", fmt.Sprintf("Z = %d", s.ZBeam))
	ui.Row("Slit Settings:",
		"Solid angle of the SE-SPS. Typical value is 4.62 msr. The SE-SPS has a max solid angle of 12.8 msr.",
		fmt.Sprintf("%g msr", s.SlitSettings))
	ui.Row("Counts:", "The desired number of counts in the peak of interest.",
		fmt.Sprintf("%d counts", s.DesiredCounts))
	ui.Row("Estimated Time:", "", s.Compute().String())
}
