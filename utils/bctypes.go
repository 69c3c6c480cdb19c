package utils

import "strings"

// BCType classifies the boundary condition applied on a boundary marker.
type BCType uint16

const (
	// BCNone indicates no boundary condition (interior face)
	BCNone BCType = iota

	// Flow boundary conditions
	BCInflow   // Inflow/inlet boundary
	BCOutflow  // Outflow/outlet boundary
	BCSlipWall // Slip/inviscid wall
	BCSymmetry // Symmetry plane
	BCPeriodic // Periodic boundary
	BCFarfield // Far-field boundary

	// Viscous wall boundary conditions
	BCHeatFlux   // No-slip wall with prescribed heat flux
	BCIsothermal // No-slip wall with fixed temperature

	// Mathematical boundary conditions
	BCDirichlet // Fixed value
	BCNeumann   // Fixed gradient/flux
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:       "None",
		BCInflow:     "Inflow",
		BCOutflow:    "Outflow",
		BCSlipWall:   "SlipWall",
		BCSymmetry:   "Symmetry",
		BCPeriodic:   "Periodic",
		BCFarfield:   "Farfield",
		BCHeatFlux:   "HeatFlux",
		BCIsothermal: "Isothermal",
		BCDirichlet:  "Dirichlet",
		BCNeumann:    "Neumann",
	}

	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// IsViscousWall reports whether the boundary condition represents a solid
// viscous (no-slip) wall, i.e. a surface that contributes to the wall
// distance field. Slip walls and symmetry planes do not qualify.
func (bc BCType) IsViscousWall() bool {
	return bc == BCHeatFlux || bc == BCIsothermal
}

// BCNameMap provides a mapping from common boundary condition names to BCType.
// Keys are lowercase for case-insensitive matching. Applications can extend
// this to support mesh-specific naming conventions.
var BCNameMap = map[string]BCType{
	"inlet":   BCInflow,
	"inflow":  BCInflow,
	"outlet":  BCOutflow,
	"outflow": BCOutflow,
	"exit":    BCOutflow,

	// Viscous wall variations
	"wall":       BCHeatFlux,
	"no_slip":    BCHeatFlux,
	"noslip":     BCHeatFlux,
	"heat_flux":  BCHeatFlux,
	"adiabatic":  BCHeatFlux,
	"isothermal": BCIsothermal,

	"slip":          BCSlipWall,
	"slip_wall":     BCSlipWall,
	"inviscid_wall": BCSlipWall,

	"symmetry":  BCSymmetry,
	"symmetric": BCSymmetry,
	"periodic":  BCPeriodic,
	"farfield":  BCFarfield,
	"far_field": BCFarfield,
	"freestream": BCFarfield,

	"dirichlet": BCDirichlet,
	"neumann":   BCNeumann,
}

// ParseBCName maps a boundary marker name to a BCType, returning BCNone
// when the name does not match any known convention.
func ParseBCName(name string) BCType {
	if bc, ok := BCNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return bc
	}
	return BCNone
}
