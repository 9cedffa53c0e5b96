// Package forms validates what the user typed before anything reaches a
// store. A rejected form returns a *common.ValidationError whose message is
// shown as is; the stores never validate on their own.
package forms

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/models"
)

// ReservationForm is the raw input of the new and edit reservation screens.
type ReservationForm struct {
	Day        string
	Shift      string
	Instructor string
	Program    string
	Course     string
	TimeRange  string
	Period     models.PeriodKind
	StartDate  string
	EndDate    string
}

// FromReservation fills a form with the stored values of r, for editing.
func FromReservation(r models.Reservation) ReservationForm {
	f := ReservationForm{
		Day:        r.Day,
		Shift:      r.Shift,
		Instructor: r.Instructor,
		Program:    r.Program,
		Course:     r.Course,
		TimeRange:  r.TimeRange,
		Period:     models.PeriodWholeTerm,
	}
	if r.Period.Bounded() {
		f.Period = models.PeriodDates
		f.StartDate = r.Period.Start.Format(models.DateLayout)
		f.EndDate = r.Period.End.Format(models.DateLayout)
	}
	return f
}

// Validate checks the form and returns the reservation to store. Text fields
// are trimmed. The start date is not required to precede the end date.
func (f ReservationForm) Validate() (models.ReservationInput, error) {
	in := models.ReservationInput{
		Day:        strings.TrimSpace(f.Day),
		Shift:      strings.TrimSpace(f.Shift),
		Instructor: strings.TrimSpace(f.Instructor),
		Program:    strings.TrimSpace(f.Program),
		Course:     strings.TrimSpace(f.Course),
		TimeRange:  strings.TrimSpace(f.TimeRange),
	}

	if anyEmpty(in.Day, in.Shift, in.Instructor, in.Program, in.Course, in.TimeRange, string(f.Period)) {
		return models.ReservationInput{}, common.NewValidationError("", common.MsgRequiredFields)
	}

	switch {
	case !models.IsDay(in.Day):
		return models.ReservationInput{}, common.NewValidationError("day", common.MsgInvalidOption)
	case !models.IsShift(in.Shift):
		return models.ReservationInput{}, common.NewValidationError("shift", common.MsgInvalidOption)
	case !models.IsProgram(in.Program):
		return models.ReservationInput{}, common.NewValidationError("program", common.MsgInvalidOption)
	}

	switch f.Period {
	case models.PeriodWholeTerm:
		in.Period = models.WholeTerm()
	case models.PeriodDates:
		p, err := parsePeriod(f.StartDate, f.EndDate)
		if err != nil {
			return models.ReservationInput{}, err
		}
		in.Period = p
	default:
		return models.ReservationInput{}, common.NewValidationError("period", common.MsgInvalidOption)
	}

	return in, nil
}

func parsePeriod(start, end string) (models.Period, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return models.Period{}, common.NewValidationError("period", common.MsgBothDatesRequired)
	}

	from, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return models.Period{}, common.NewValidationError("start_date", common.MsgBadDateFormat)
	}
	to, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return models.Period{}, common.NewValidationError("end_date", common.MsgBadDateFormat)
	}
	return models.DateRange(from, to), nil
}

func anyEmpty(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
