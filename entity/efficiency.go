package entity

import "math"

// Efficiency is a double-exponential fit of detector response against
// gamma-ray energy:
//
//	efficiency(E) = a*exp(-E/b) + c*exp(-E/d)
//
// The result is in percent.
type Efficiency struct {
	A float64 `json:"a" validate:"gte=0"`
	B float64 `json:"b" validate:"gte=0"`
	C float64 `json:"c" validate:"gte=0"`
	D float64 `json:"d" validate:"gte=0"`
}

func NewEfficiency(a, b, c, d float64) Efficiency {
	return Efficiency{A: a, B: b, C: c, D: d}
}

// Evaluate returns the efficiency in percent at energy keV. Zero b or d is
// not guarded: the IEEE result is returned as is.
func (e Efficiency) Evaluate(energy float64) float64 {
	return e.A*math.Exp(-energy/e.B) + e.C*math.Exp(-energy/e.D)
}

// Formula is the hover hint shown next to the curve parameters.
const Formula = "Efficiency = a * exp(-energy / b) + c * exp(-energy / d)"
