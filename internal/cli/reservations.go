package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/forms"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/state"
)

var periodOptions = []string{models.WholeTermLabel, "Fechas específicas"}

// NewReservation reads a reservation form and stores it. A rejected form is
// kept as the starting point of the next attempt.
func (a *App) NewReservation(ctx context.Context) error {
	if !a.enter(state.Navigated{To: state.ScreenNewReservation}, state.ScreenNewReservation) {
		return nil
	}

	base := forms.ReservationForm{}
	if a.draft != nil {
		base = *a.draft
	}
	f, err := a.readReservationForm("Nueva Reserva", base)
	if err != nil {
		return err
	}

	in, err := f.Validate()
	if err != nil {
		a.draft = &f
		a.notify(common.Outcome(err, "", common.MsgSaveFailed))
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	_, err = a.reservations.Create(opCtx, in)
	if err != nil {
		a.draft = &f
	} else {
		a.draft = nil
	}
	a.notify(common.Outcome(err, common.MsgReservationCreated, common.MsgSaveFailed))
	return nil
}

// ListReservations shows every reservation ordered by day and time range.
func (a *App) ListReservations(ctx context.Context) error {
	if !a.enter(state.Navigated{To: state.ScreenReservations}, state.ScreenReservations) {
		return nil
	}
	a.showReservations(ctx)
	return nil
}

func (a *App) showReservations(ctx context.Context) {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	list, err := a.reservations.List(opCtx)
	if err != nil {
		a.notify(false, common.MsgLoadFailed+": "+err.Error())
		return
	}
	renderReservations(a.out, list)
}

// EditReservation loads the reservation with the given id into the form,
// with the stored values as defaults, and overwrites it.
func (a *App) EditReservation(ctx context.Context, rawID string) error {
	id, ok := a.parseID(rawID)
	if !ok {
		return nil
	}
	if !a.enter(state.EditRequested{To: state.ScreenEditReservation, ID: id}, state.ScreenEditReservation) {
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	r, err := a.reservations.Get(opCtx, id)
	cancel()
	if err != nil {
		a.dispatch(state.EditFinished{})
		if errors.Is(err, common.ErrorNotFound) {
			a.notify(false, common.MsgReservationNotFound)
		} else {
			a.notify(false, common.MsgLoadFailed+": "+err.Error())
		}
		return nil
	}

	f, err := a.readReservationForm("Editar Reserva", forms.FromReservation(*r))
	if err != nil {
		return err
	}
	in, err := f.Validate()
	if err != nil {
		// stays on the edit screen, the user can retry with edit <id>
		a.notify(common.Outcome(err, "", common.MsgUpdateFailed))
		return nil
	}

	opCtx, cancel = a.opCtx(ctx)
	err = a.reservations.Update(opCtx, a.state.EditingID(), in)
	cancel()
	switch {
	case errors.Is(err, common.ErrorNotFound):
		a.notify(false, common.MsgReservationNotFound)
	default:
		a.notify(common.Outcome(err, common.MsgReservationUpdated, common.MsgUpdateFailed))
	}
	a.dispatch(state.EditFinished{})
	if err == nil {
		a.showReservations(ctx)
	}
	return nil
}

// DeleteReservation removes the reservation with the given id.
func (a *App) DeleteReservation(ctx context.Context, rawID string) error {
	id, ok := a.parseID(rawID)
	if !ok {
		return nil
	}
	if !a.enter(state.Navigated{To: state.ScreenReservations}, state.ScreenReservations) {
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	deleted := a.reservations.Delete(opCtx, id)
	cancel()

	if !deleted {
		a.notify(false, common.MsgReservationDelError)
		return nil
	}
	a.notify(true, common.MsgReservationDeleted)
	a.showReservations(ctx)
	return nil
}

// readReservationForm prompts for every field, offering the values of base
// as defaults.
func (a *App) readReservationForm(title string, base forms.ReservationForm) (forms.ReservationForm, error) {
	f := base
	var err error

	fmt.Fprintln(a.out, title)
	if f.Day, err = chooseOption(a.reader, "Día", models.Days, base.Day, a.out); err != nil {
		return f, err
	}
	if f.Shift, err = chooseOption(a.reader, "Turno", models.Shifts, base.Shift, a.out); err != nil {
		return f, err
	}
	if f.Instructor, err = getText(a.reader, "Docente", base.Instructor, a.out); err != nil {
		return f, err
	}
	if f.Program, err = chooseOption(a.reader, "Carrera", models.Programs, base.Program, a.out); err != nil {
		return f, err
	}
	if f.Course, err = getText(a.reader, "Curso", base.Course, a.out); err != nil {
		return f, err
	}
	if f.TimeRange, err = getText(a.reader, "Horario (ej: 08:00-10:00)", base.TimeRange, a.out); err != nil {
		return f, err
	}

	period, err := chooseOption(a.reader, "Período", periodOptions, periodLabel(base.Period), a.out)
	if err != nil {
		return f, err
	}
	f.Period = periodKind(period)

	if f.Period == models.PeriodDates {
		if f.StartDate, err = getText(a.reader, "Fecha inicio (YYYY-MM-DD)", base.StartDate, a.out); err != nil {
			return f, err
		}
		if f.EndDate, err = getText(a.reader, "Fecha fin (YYYY-MM-DD)", base.EndDate, a.out); err != nil {
			return f, err
		}
	} else {
		f.StartDate, f.EndDate = "", ""
	}
	return f, nil
}

func periodLabel(k models.PeriodKind) string {
	switch k {
	case models.PeriodWholeTerm:
		return periodOptions[0]
	case models.PeriodDates:
		return periodOptions[1]
	}
	return ""
}

// periodKind maps a chosen label back to the form value; unknown text is
// passed through for validation.
func periodKind(label string) models.PeriodKind {
	switch label {
	case periodOptions[0]:
		return models.PeriodWholeTerm
	case periodOptions[1]:
		return models.PeriodDates
	}
	return models.PeriodKind(label)
}

// parseID reads a positive row id, printing usage when it is not one.
func (a *App) parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "Id inválido:", raw)
		return 0, false
	}
	return id, true
}
