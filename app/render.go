package app

import (
	"io"

	"github.com/AnkushinDaniil/beamtime/entity/mode"
	"github.com/AnkushinDaniil/beamtime/surface"
)

// Panel names accepted by show, hide and set.
const (
	PanelSPS      = "sps"
	PanelCeBrA    = "cebra"
	PanelICESPICE = "icespice"
)

// NewSurface returns the surface matching the display mode.
func (a *App) NewSurface(out io.Writer) *surface.Text {
	if a.Mode == mode.Window {
		return surface.NewWindow(out, Title)
	}
	return surface.NewText(out)
}

// Render draws the view menu and every visible estimator, then flushes the
// frame.
func (a *App) Render(ui surface.Surface) error {
	ui.Row("View:", "show/hide <panel>",
		checkbox(a.State.ShowSPS, "Show SPS Estimator"),
		checkbox(a.State.ShowCeBrA, "Show CeBrA Estimator"),
		checkbox(a.State.ShowICESPICE, "Show ICESPICE Estimator"))

	if a.State.ShowSPS {
		a.State.SPS.Render(ui)
	}
	if a.State.ShowCeBrA {
		a.State.CeBrA.Render(ui)
	}
	if a.State.ShowICESPICE {
		a.State.ICESPICE.Render(ui)
	}
	return ui.Flush()
}

func checkbox(checked bool, label string) string {
	if checked {
		return "[x] " + label
	}
	return "[ ] " + label
}

// visibility returns the flag behind a panel name.
func (a *App) visibility(panel string) *bool {
	switch panel {
	case PanelSPS:
		return &a.State.ShowSPS
	case PanelCeBrA:
		return &a.State.ShowCeBrA
	case PanelICESPICE:
		return &a.State.ShowICESPICE
	default:
		return nil
	}
}
