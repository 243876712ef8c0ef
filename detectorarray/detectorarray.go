// Package detectorarray estimates gamma-ray counts in the CeBrA detector
// array. Each detector carries its own efficiency curve, evaluated at the
// energy of a single decay line.
package detectorarray

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/AnkushinDaniil/beamtime/entity"
	"github.com/AnkushinDaniil/beamtime/surface"
)

var (
	ErrInvalidIndex  = errors.New("no detector at index")
	ErrUnknownField  = errors.New("unknown field")
	ErrUnknownPreset = errors.New("unknown preset")
)

type Settings struct {
	NParticleCounts int64             `json:"n_particle_counts" validate:"gte=0"`
	Decay           entity.Decay      `json:"decay"`
	Detectors       []entity.Detector `json:"detectors" validate:"dive"`
}

// Row is the computed line for one detector.
type Row struct {
	Name           string
	Efficiency     float64 // %
	ExpectedCounts float64
}

// Result holds the per-detector rows and their plain sums. TotalEfficiency
// can exceed 100%: it is bookkeeping, not a combined detection probability.
type Result struct {
	Rows            []Row
	TotalEfficiency float64
	TotalCounts     float64
}

func Default() Settings {
	return Settings{
		Decay:     entity.DefaultDecay(),
		Detectors: []entity.Detector{},
	}
}

// Evaluate computes every detector in list order. Nothing is cached.
func (s Settings) Evaluate() Result {
	res := Result{Rows: make([]Row, 0, len(s.Detectors))}
	for _, d := range s.Detectors {
		efficiency := d.Efficiency.Evaluate(s.Decay.Energy)
		counts := float64(s.NParticleCounts) * (s.Decay.AbsoluteIntensity / 100) * (efficiency / 100)
		res.Rows = append(res.Rows, Row{
			Name:           d.Name,
			Efficiency:     efficiency,
			ExpectedCounts: counts,
		})
		res.TotalEfficiency += efficiency
		res.TotalCounts += counts
	}
	return res
}

// AddDetector appends a detector with a default name and a zero curve.
func (s *Settings) AddDetector() {
	s.Detectors = append(s.Detectors, entity.Detector{
		Name: entity.DefaultDetectorName(len(s.Detectors)),
	})
}

// ApplyPreset replaces the whole detector list with the named preset.
func (s *Settings) ApplyPreset(name string) error {
	detectors, err := entity.LookupPreset(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPreset, err)
	}
	s.Detectors = detectors
	return nil
}

func (s *Settings) RemoveDetector(index int) error {
	if index < 0 || index >= len(s.Detectors) {
		return fmt.Errorf("%w %d (have %d)", ErrInvalidIndex, index, len(s.Detectors))
	}
	s.Detectors = slices.Delete(s.Detectors, index, index+1)
	return nil
}

// Fields lists the names accepted by Set. Detector fields are addressed as
// detector.<index>.<name|a|b|c|d>.
func Fields() []string {
	return []string{
		"n_particle_counts",
		"decay.energy", "decay.absolute_intensity",
		"decay.efficiency", "decay.efficiency_corrected_counts",
		"detector.<i>.name", "detector.<i>.a", "detector.<i>.b", "detector.<i>.c", "detector.<i>.d",
	}
}

// Set parses value into the named field, clamping it to the field's range.
func (s *Settings) Set(field, value string) error {
	if rest, ok := strings.CutPrefix(field, "detector."); ok {
		return s.setDetector(rest, value)
	}

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
	case "decay.energy":
		s.Decay.Energy = max(v, 0)
	case "decay.absolute_intensity":
		s.Decay.AbsoluteIntensity = max(v, 0)
	case "decay.efficiency":
		s.Decay.Efficiency = entity.Clamp(v, 0, 100)
	case "decay.efficiency_corrected_counts":
		s.Decay.EfficiencyCorrectedCounts = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (s *Settings) setDetector(field, value string) error {
	idx, name, ok := strings.Cut(field, ".")
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, "detector."+field)
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(s.Detectors) {
		return fmt.Errorf("%w %s (have %d)", ErrInvalidIndex, idx, len(s.Detectors))
	}
	d := &s.Detectors[i]

	if name == "name" {
		// JSON cannot carry invalid UTF-8; store what a reload would yield.
		d.Name = strings.ToValidUTF8(value, "\uFFFD")
		return nil
	}
	v, err := entity.ParseFloat(value)
	if err != nil {
		return err
	}
	v = max(v, 0)
	switch name {
	case "a":
		d.Efficiency.A = v
	case "b":
		d.Efficiency.B = v
	case "c":
		d.Efficiency.C = v
	case "d":
		d.Efficiency.D = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, "detector."+field)
	}
	return nil
}

func (s Settings) Render(ui surface.Surface) {
	ui.Heading("CeBrA")
	ui.Row("Particle Counts:", "Number of particles detected in the excited state",
		strconv.FormatInt(s.NParticleCounts, 10))
	ui.Row("γ Decay", "", "Energy", "Intensity")
	ui.Row("", "Absolute intensity of the decay",
		fmt.Sprintf("%g keV", s.Decay.Energy), fmt.Sprintf("%g %%", s.Decay.AbsoluteIntensity))
	ui.Row("Presets:", entity.ProvisionalNote, strings.Join(entity.Presets(), " | "))
	ui.Separator()

	res := s.Evaluate()
	ui.Row("#", entity.Formula, "Detector", "a", "b", "c", "d", "Efficiency", "Counts")
	for i, row := range res.Rows {
		e := s.Detectors[i].Efficiency
		ui.Row(strconv.Itoa(i), "", row.Name,
			fmt.Sprintf("%g", e.A), fmt.Sprintf("%g", e.B),
			fmt.Sprintf("%g", e.C), fmt.Sprintf("%g", e.D),
			fmt.Sprintf("%.2f %%", row.Efficiency), fmt.Sprintf("%.2f", row.ExpectedCounts))
	}
	ui.Row("Total", "Sum over detectors; efficiencies are added, not combined",
		"", "", "", "", "",
		fmt.Sprintf("%.2f %%", res.TotalEfficiency), fmt.Sprintf("%.2f", res.TotalCounts))
}
