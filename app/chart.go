package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/beamtime/detectorarray"
	"github.com/AnkushinDaniil/beamtime/entity"
	"github.com/AnkushinDaniil/beamtime/entity/parameters"
)

// RenderChart writes an HTML page with the efficiency curve of every CeBrA
// detector and the expected counts per detector.
func RenderChart(w io.Writer, state State, params parameters.Parameters) error {
	renderTime := time.Now()

	page, err := createChart(state.CeBrA, params)
	if err != nil {
		return err
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	log.WithFields(log.Fields{
		"time":      time.Since(renderTime),
		"detectors": len(state.CeBrA.Detectors),
	}).Info("Chart rendered")
	return nil
}

func createChart(cebra detectorarray.Settings, params parameters.Parameters) (*components.Page, error) {
	energies := entity.Energies(params.MinEnergy, params.MaxEnergy, params.Step)
	if len(energies) == 0 {
		return nil, errors.New("energy range is empty")
	}

	lines, err := efficiencyLines(cebra.Detectors, energies)
	if err != nil {
		return nil, fmt.Errorf("failed to sample efficiency curves: %w", err)
	}

	page := components.NewPage()
	page.AddCharts(
		efficiencyChart(lines, energies, cebra.Decay.Energy),
		countsChart(cebra.Evaluate()),
	)
	return page, nil
}

// efficiencyLines samples each detector's curve plus the summed curve. The
// sum is last so it draws on top.
func efficiencyLines(detectors []entity.Detector, energies []float64) ([]*entity.Line, error) {
	lines := make([]*entity.Line, 0, len(detectors)+1)
	for i, d := range detectors {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		line, err := entity.NewLine(name, energies, d.Efficiency.Evaluate)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	total, err := entity.NewLine("Total", energies, func(energy float64) float64 {
		sum := 0.0
		for _, d := range detectors {
			sum += d.Efficiency.Evaluate(energy)
		}
		return sum
	})
	if err != nil {
		return nil, err
	}
	return append(lines, total), nil
}

func efficiencyChart(lines []*entity.Line, energies []float64, decayEnergy float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(chartOptions(
		"CeBrA efficiency", fmt.Sprintf("γ decay at %g keV", decayEnergy),
		"Energy, keV", "Efficiency, %", "efficiency",
	)...)

	line.SetXAxis(energies)
	for _, l := range lines {
		line.AddSeries(l.Name(), l.Data())
	}
	return line
}

func countsChart(res detectorarray.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(chartOptions(
		"Expected γ counts",
		fmt.Sprintf("Total %.2f counts, %.2f %% summed efficiency", res.TotalCounts, res.TotalEfficiency),
		"Detector", "Counts", "counts",
	)...)

	names := make([]string, len(res.Rows))
	data := make([]opts.BarData, len(res.Rows))
	for i, row := range res.Rows {
		names[i] = row.Name
		data[i] = opts.BarData{Value: entity.ChartValue(row.ExpectedCounts)}
	}
	bar.SetXAxis(names)
	bar.AddSeries("Counts", data)
	return bar
}

// chartOptions is the option set shared by every chart on the page.
func chartOptions(title, subtitle, xName, yName, imageName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       Title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient:       "horizontal",
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
			Type:         "scroll",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Top:  "0%",
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Name:  imageName,
					Title: "Save as image",
				},
				DataView: &opts.ToolBoxFeatureDataView{
					Show:  opts.Bool(true),
					Title: "Data view",
					Lang:  []string{"data view", "turn off", "refresh"},
				},
				Restore: &opts.ToolBoxFeatureRestore{
					Show:  opts.Bool(true),
					Title: "refresh",
				},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xName,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yName,
			Type:  "value",
			Show:  opts.Bool(true),
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	}
}
