package parameters

import (
	"github.com/AnkushinDaniil/beamtime/entity/format"
	"github.com/AnkushinDaniil/beamtime/entity/mode"
)

// Parameters controls how a snapshot of the estimators is rendered outside
// the interactive session.
type Parameters struct {
	Mode      mode.Mode
	Format    format.Format
	MinEnergy float64 // keV
	MaxEnergy float64 // keV
	Step      float64 // keV
}
