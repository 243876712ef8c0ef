package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/beamtime/entity"
)

func TestRenderChart(t *testing.T) {
	t.Parallel()
	state := DefaultState()
	state.CeBrA.NParticleCounts = 1000
	state.CeBrA.Decay.Energy = 1332.5
	require.NoError(t, state.CeBrA.ApplyPreset("REU-2023"))

	var b strings.Builder
	require.NoError(t, RenderChart(&b, state, testParams))

	out := b.String()
	assert.Contains(t, out, "CeBrA efficiency")
	assert.Contains(t, out, "Expected")
	assert.Contains(t, out, "Detector 4")
	assert.Contains(t, out, "Total")
}

func TestRenderChart_ZeroCurveDoesNotBreakEncoding(t *testing.T) {
	t.Parallel()
	state := DefaultState()
	state.CeBrA.AddDetector()

	var b strings.Builder
	require.NoError(t, RenderChart(&b, state, testParams))
	assert.Contains(t, b.String(), "Detector 1")
}

func TestRenderChart_EmptyRange(t *testing.T) {
	t.Parallel()
	params := testParams
	params.Step = 0

	var b strings.Builder
	assert.Error(t, RenderChart(&b, DefaultState(), params))
}

func TestEfficiencyLines(t *testing.T) {
	t.Parallel()
	detectors := []entity.Detector{
		{Name: "a", Efficiency: entity.NewEfficiency(1, 100, 0, 1)},
		{Efficiency: entity.NewEfficiency(2, 100, 0, 1)},
	}

	lines, err := efficiencyLines(detectors, []float64{0})
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "a", lines[0].Name())
	assert.Equal(t, "#1", lines[1].Name())
	assert.Equal(t, "Total", lines[2].Name())
	assert.Equal(t, 3.0, lines[2].Data()[0].Value)
}

func TestCountsChart_SharesOptions(t *testing.T) {
	t.Parallel()
	cebra := DefaultState().CeBrA
	require.NoError(t, cebra.ApplyPreset("REU-2023"))

	bar := countsChart(cebra.Evaluate())
	assert.Equal(t, "Expected γ counts", bar.Title.Title)
	assert.Equal(t, "600px", bar.Initialization.Height)
	assert.Equal(t, "counts", bar.Toolbox.Feature.SaveAsImage.Name)
	require.Len(t, bar.DataZoomList, 2)
}
