package detectorarray

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/beamtime/entity"
	"github.com/AnkushinDaniil/beamtime/surface"
)

func TestEvaluate_EmptyList(t *testing.T) {
	t.Parallel()
	for _, n := range []int64{0, 1, 1_000_000} {
		s := Default()
		s.NParticleCounts = n
		s.Decay.Energy = 1000

		res := s.Evaluate()
		assert.Empty(t, res.Rows)
		assert.Zero(t, res.TotalEfficiency)
		assert.Zero(t, res.TotalCounts)
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	s := Default()
	s.NParticleCounts = 10000
	s.Decay = entity.Decay{Energy: 2000, AbsoluteIntensity: 50}
	s.Detectors = []entity.Detector{
		{Name: "a", Efficiency: entity.NewEfficiency(1.04342, 313.36388, 0.30550, 2796.19080)},
		{Name: "b", Efficiency: entity.NewEfficiency(2, 1000, 0, 1)},
	}

	res := s.Evaluate()
	require.Len(t, res.Rows, 2)

	effA := s.Detectors[0].Efficiency.Evaluate(2000)
	effB := 2 * math.Exp(-2.0)
	assert.Equal(t, "a", res.Rows[0].Name)
	assert.Equal(t, effA, res.Rows[0].Efficiency)
	assert.InDelta(t, 10000*0.5*effA/100, res.Rows[0].ExpectedCounts, 1e-9)
	assert.InDelta(t, effB, res.Rows[1].Efficiency, 1e-12)
	assert.InDelta(t, 10000*0.5*effB/100, res.Rows[1].ExpectedCounts, 1e-9)

	assert.InDelta(t, effA+effB, res.TotalEfficiency, 1e-12)
	assert.InDelta(t, res.Rows[0].ExpectedCounts+res.Rows[1].ExpectedCounts, res.TotalCounts, 1e-9)
}

func TestEvaluate_TotalEfficiencyIsAdditive(t *testing.T) {
	t.Parallel()
	s := Default()
	s.Decay.Energy = 0
	for i := 0; i < 3; i++ {
		s.Detectors = append(s.Detectors, entity.Detector{Name: "same", Efficiency: entity.NewEfficiency(40, 100, 0, 1)})
	}

	res := s.Evaluate()
	assert.Equal(t, 120.0, res.TotalEfficiency)
}

func TestEvaluate_IgnoresLegacyDecayEfficiency(t *testing.T) {
	t.Parallel()
	s := Default()
	s.NParticleCounts = 100
	s.Detectors = []entity.Detector{{Name: "d", Efficiency: entity.NewEfficiency(10, 100, 0, 1)}}
	before := s.Evaluate()

	s.Decay.Efficiency = 99
	s.Decay.EfficiencyCorrectedCounts = 12345
	assert.Equal(t, before, s.Evaluate())
}

func TestAddDetector(t *testing.T) {
	t.Parallel()
	s := Default()
	s.AddDetector()
	s.AddDetector()

	require.Len(t, s.Detectors, 2)
	assert.Equal(t, "Detector 1", s.Detectors[0].Name)
	assert.Equal(t, "Detector 2", s.Detectors[1].Name)
	assert.Equal(t, entity.Efficiency{}, s.Detectors[1].Efficiency)
}

func TestApplyPreset_ReplacesList(t *testing.T) {
	t.Parallel()
	s := Default()
	for i := 0; i < 7; i++ {
		s.AddDetector()
	}

	require.NoError(t, s.ApplyPreset("REU-2023"))
	require.Len(t, s.Detectors, 5)
	for i, d := range s.Detectors {
		assert.Equal(t, fmt.Sprintf("Detector %d", i), d.Name)
	}
	assert.Equal(t, entity.NewEfficiency(1.04342, 313.36388, 0.30550, 2796.19080), s.Detectors[0].Efficiency)

	require.NoError(t, s.ApplyPreset("Summer-2022"))
	require.Len(t, s.Detectors, 5)
	assert.NotEqual(t, 1.04342, s.Detectors[0].Efficiency.A)
}

func TestApplyPreset_Unknown(t *testing.T) {
	t.Parallel()
	s := Default()
	s.AddDetector()

	err := s.ApplyPreset("nope")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Len(t, s.Detectors, 1)
}

func TestRemoveDetector(t *testing.T) {
	t.Parallel()
	s := Default()
	require.NoError(t, s.ApplyPreset("REU-2023"))

	require.NoError(t, s.RemoveDetector(1))
	require.Len(t, s.Detectors, 4)
	assert.Equal(t, []string{"Detector 0", "Detector 2", "Detector 3", "Detector 4"}, names(s))

	require.NoError(t, s.RemoveDetector(3))
	assert.Equal(t, []string{"Detector 0", "Detector 2", "Detector 3"}, names(s))
}

func TestRemoveDetector_OutOfRange(t *testing.T) {
	t.Parallel()
	s := Default()
	assert.ErrorIs(t, s.RemoveDetector(0), ErrInvalidIndex)

	s.AddDetector()
	assert.ErrorIs(t, s.RemoveDetector(1), ErrInvalidIndex)
	assert.ErrorIs(t, s.RemoveDetector(-1), ErrInvalidIndex)
	assert.Len(t, s.Detectors, 1)
}

func TestSet(t *testing.T) {
	t.Parallel()
	s := Default()
	s.AddDetector()

	require.NoError(t, s.Set("n_particle_counts", "5000"))
	require.NoError(t, s.Set("decay.energy", "1332.5"))
	require.NoError(t, s.Set("decay.absolute_intensity", "99.98"))
	require.NoError(t, s.Set("decay.efficiency", "150"))
	require.NoError(t, s.Set("decay.efficiency_corrected_counts", "-3"))
	require.NoError(t, s.Set("detector.0.name", "LaBr3 front"))
	require.NoError(t, s.Set("detector.0.a", "1.5"))
	require.NoError(t, s.Set("detector.0.b", "-300"))
	require.NoError(t, s.Set("detector.0.c", "0.3"))
	require.NoError(t, s.Set("detector.0.d", "2800"))

	assert.Equal(t, int64(5000), s.NParticleCounts)
	assert.Equal(t, entity.Decay{Energy: 1332.5, AbsoluteIntensity: 99.98, Efficiency: 100, EfficiencyCorrectedCounts: -3}, s.Decay)
	assert.Equal(t, entity.Detector{Name: "LaBr3 front", Efficiency: entity.NewEfficiency(1.5, 0, 0.3, 2800)}, s.Detectors[0])

	require.NoError(t, s.Set("n_particle_counts", "-1"))
	assert.Equal(t, int64(0), s.NParticleCounts)
}

func TestSet_DetectorNameInvalidUTF8(t *testing.T) {
	t.Parallel()
	s := Default()
	s.AddDetector()

	require.NoError(t, s.Set("detector.0.name", "Ge\xff1"))
	assert.Equal(t, "Ge\uFFFD1", s.Detectors[0].Name)
}

func TestSet_Errors(t *testing.T) {
	t.Parallel()
	s := Default()
	s.AddDetector()

	assert.ErrorIs(t, s.Set("decay.spin", "2"), ErrUnknownField)
	assert.ErrorIs(t, s.Set("detector.0.e", "2"), ErrUnknownField)
	assert.ErrorIs(t, s.Set("detector.0", "2"), ErrUnknownField)
	assert.ErrorIs(t, s.Set("detector.1.a", "2"), ErrInvalidIndex)
	assert.ErrorIs(t, s.Set("detector.x.a", "2"), ErrInvalidIndex)
	assert.Error(t, s.Set("decay.energy", "high"))
}

func TestRender(t *testing.T) {
	t.Parallel()
	s := Default()
	s.NParticleCounts = 1000
	s.Decay.Energy = 2000
	require.NoError(t, s.ApplyPreset("REU-2023"))

	var b strings.Builder
	ui := surface.NewText(&b)
	s.Render(ui)
	require.NoError(t, ui.Flush())

	out := b.String()
	assert.Contains(t, out, "# CeBrA")
	assert.Contains(t, out, "Detector 4")
	assert.Contains(t, out, "REU-2023 | Summer-2022")
	assert.Contains(t, out, entity.ProvisionalNote)
	assert.Contains(t, out, "Total")
}

func names(s Settings) []string {
	out := make([]string, len(s.Detectors))
	for i, d := range s.Detectors {
		out[i] = d.Name
	}
	return out
}
