package model

import "strings"

// CargoClass groups cargo by its temperature requirement.
type CargoClass int

const (
	CargoDry CargoClass = iota
	CargoChilled
	CargoFrozen
)

// String returns a human-readable representation of the cargo class.
func (c CargoClass) String() string {
	switch c {
	case CargoFrozen:
		return "frozen"
	case CargoChilled:
		return "chilled"
	default:
		return "dry"
	}
}

// Rank orders cargo classes by priority: frozen > chilled > dry.
func (c CargoClass) Rank() int {
	switch c {
	case CargoFrozen:
		return 2
	case CargoChilled:
		return 1
	default:
		return 0
	}
}

// NeedsRefrigeration reports whether the class requires a reefer trailer.
func (c CargoClass) NeedsRefrigeration() bool {
	return c != CargoDry
}

// Temperature markers found in real cargo descriptions ("CONGELADO -18",
// "REFRIGERADO +2", ...). Frozen markers are checked first so that mixed
// descriptions resolve to the stricter class.
var (
	frozenMarkers  = []string{"CONGEL", "FROZEN", "-18", "-20", "-25"}
	chilledMarkers = []string{"REFRIG", "CHILLED", "FRIO", "FRÍO", "+2", "+4", "+5"}
)

// ClassifyCargo derives the cargo class from a free-text description.
func ClassifyCargo(desc string) CargoClass {
	if desc == "" {
		return CargoDry
	}
	upper := strings.ToUpper(desc)
	for _, m := range frozenMarkers {
		if strings.Contains(upper, m) {
			return CargoFrozen
		}
	}
	for _, m := range chilledMarkers {
		if strings.Contains(upper, m) {
			return CargoChilled
		}
	}
	return CargoDry
}
