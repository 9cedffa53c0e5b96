package models

import (
	"fmt"
	"slices"
	"time"
)

// DateLayout is the only accepted date format for reservation periods.
const DateLayout = "2006-01-02"

// WholeTermLabel is the period description of a reservation that spans the
// entire term.
const WholeTermLabel = "Todo el semestre"

// Fixed option sets offered by the reservation forms.
var (
	Days     = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}
	Shifts   = []string{"Mañana", "Tarde", "Noche"}
	Programs = []string{"Ingenieria Comercial", "Empresariales", "ADM. De Empresas", "Contabilidad", "Economia"}
)

// IsDay, IsShift and IsProgram check membership in the option sets.
func IsDay(v string) bool     { return slices.Contains(Days, v) }
func IsShift(v string) bool   { return slices.Contains(Shifts, v) }
func IsProgram(v string) bool { return slices.Contains(Programs, v) }

// PeriodKind is the period selection of a reservation form.
type PeriodKind string

const (
	PeriodWholeTerm PeriodKind = "semestre"
	PeriodDates     PeriodKind = "fechas"
)

// Period is the validity window of a reservation. Start and End are both nil
// for the entire term, or both set for a date range.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// WholeTerm returns the entire-term period.
func WholeTerm() Period { return Period{} }

// DateRange returns the period from start to end. start <= end is not checked.
func DateRange(start, end time.Time) Period {
	return Period{Start: &start, End: &end}
}

// Bounded reports whether p is a date range.
func (p Period) Bounded() bool {
	return p.Start != nil && p.End != nil
}

// Description is the stored text that always accompanies p: the entire-term
// label, or "<start> a <end>".
func (p Period) Description() string {
	if !p.Bounded() {
		return WholeTermLabel
	}
	return fmt.Sprintf("%s a %s", p.Start.Format(DateLayout), p.End.Format(DateLayout))
}

// ReservationInput carries every field of a reservation for create and
// update. The stored period description is always Period.Description().
type ReservationInput struct {
	Day        string
	Shift      string
	Instructor string
	Program    string
	Course     string
	TimeRange  string
	Period     Period
}

// Reservation is a booking of the laboratory.
type Reservation struct {
	ID int64
	ReservationInput
	PeriodDescription string
	CreatedAt         time.Time
}
