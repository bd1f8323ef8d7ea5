package model

// TrailerReefer identifies refrigerated trailers in the fleet records.
const TrailerReefer = "reefer"

// Driver represents a company driver and the vehicle combination currently
// registered to them. Driver records are owned by the external fleet sync and
// are read-only from the engine's perspective.
type Driver struct {
	ID           string
	Name         string
	TractorPlate string
	TrailerPlate string
	TrailerType  string // TrailerReefer or a free-form dry type
	Zone         string
	HomeBase     string // registered base place name

	// AbsenceReason is non-empty while the driver is off duty (sick leave,
	// vacation, ...).
	AbsenceReason string

	// ContactRef is the driver's linked notification channel identifier.
	// Empty when the driver has no channel.
	ContactRef string
}

// Absent reports whether the driver is currently off duty.
func (d Driver) Absent() bool {
	return d.AbsenceReason != ""
}

// CanCarry reports whether the driver's trailer is compatible with the cargo
// class.
func (d Driver) CanCarry(c CargoClass) bool {
	if c.NeedsRefrigeration() {
		return d.TrailerType == TrailerReefer
	}
	return true
}
