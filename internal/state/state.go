// Package state holds the application state of the LabKeeper CLI as an
// immutable value. Commands describe what happened as an Event and Reduce
// computes the next State; nothing else changes it.
package state

import (
	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/models"
)

// Screen is the view currently shown.
type Screen string

const (
	ScreenLogin           Screen = "login"
	ScreenNewReservation  Screen = "nueva_reserva"
	ScreenReservations    Screen = "reservas"
	ScreenEditReservation Screen = "editar_reserva"
	ScreenUsers           Screen = "gestion_usuarios"
	ScreenNewUser         Screen = "nuevo_usuario"
	ScreenEditUser        Screen = "editar_usuario"
	ScreenInfo            Screen = "informacion"
)

// adminOnly reports whether s belongs to account management.
func (s Screen) adminOnly() bool {
	return s == ScreenUsers || s == ScreenNewUser || s == ScreenEditUser
}

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is the last outcome message shown to the user.
type Notice struct {
	Text string
	Kind NoticeKind
}

// State is a snapshot of the application. The zero value is the logged out
// state on the login screen.
type State struct {
	screen    Screen
	session   *models.Session
	editingID int64
	notice    Notice
}

// Initial returns the startup state.
func Initial() State {
	return State{screen: ScreenLogin}
}

// Screen returns the screen to render. Without a session it is always the
// login screen.
func (s State) Screen() Screen {
	if s.session == nil || s.screen == "" {
		return ScreenLogin
	}
	return s.screen
}

// Session returns a copy of the authenticated session.
func (s State) Session() (models.Session, bool) {
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

func (s State) LoggedIn() bool { return s.session != nil }

// IsAdmin reports whether the session user may manage accounts.
func (s State) IsAdmin() bool {
	return s.session != nil && s.session.User.IsAdmin()
}

// EditingID is the id of the reservation or user being edited, zero when the
// screen is not an edit screen.
func (s State) EditingID() int64 { return s.editingID }

func (s State) Notice() Notice { return s.notice }

// Event is something that happened in the application.
type Event interface {
	event()
}

// LoggedIn starts a session and opens the new reservation screen.
type LoggedIn struct{ Session models.Session }

// LoggedOut ends the session.
type LoggedOut struct{}

// Navigated asks for a screen.
type Navigated struct{ To Screen }

// EditRequested opens the edit screen of a reservation or a user.
type EditRequested struct {
	To Screen
	ID int64
}

// EditFinished leaves the edit screen for the matching list.
type EditFinished struct{}

// Notified records an outcome message.
type Notified struct{ Notice Notice }

// SessionUserChanged replaces the session user after its own account was
// edited. Events for another account are ignored.
type SessionUserChanged struct{ User models.User }

func (LoggedIn) event()      {}
func (LoggedOut) event()     {}
func (Navigated) event()     {}
func (EditRequested) event() {}
func (EditFinished) event()  {}
func (Notified) event()      {}

func (SessionUserChanged) event() {}

// Reduce returns the state that follows s after e. It never modifies s.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case LoggedIn:
		sess := e.Session
		return State{screen: ScreenNewReservation, session: &sess}

	case LoggedOut:
		return Initial()

	case Navigated:
		if !s.LoggedIn() {
			return Initial()
		}
		if e.To == ScreenEditReservation || e.To == ScreenEditUser {
			// edit screens need a target
			return s
		}
		if e.To.adminOnly() && !s.IsAdmin() {
			return s.withNotice(Notice{Text: common.MsgAccessRestricted, Kind: NoticeError})
		}
		next := s
		next.screen = e.To
		next.editingID = 0
		return next

	case EditRequested:
		if !s.LoggedIn() {
			return Initial()
		}
		if e.To != ScreenEditReservation && e.To != ScreenEditUser {
			return s
		}
		if e.To.adminOnly() && !s.IsAdmin() {
			return s.withNotice(Notice{Text: common.MsgAccessRestricted, Kind: NoticeError})
		}
		next := s
		next.screen = e.To
		next.editingID = e.ID
		return next

	case EditFinished:
		if !s.LoggedIn() {
			return Initial()
		}
		next := s
		switch s.screen {
		case ScreenEditReservation:
			next.screen = ScreenReservations
		case ScreenEditUser:
			next.screen = ScreenUsers
		}
		next.editingID = 0
		return next

	case Notified:
		return s.withNotice(e.Notice)

	case SessionUserChanged:
		if !s.LoggedIn() {
			return Initial()
		}
		if s.session.User.ID != e.User.ID {
			return s
		}
		sess := *s.session
		sess.User = e.User
		next := s
		next.session = &sess
		if next.screen.adminOnly() && !next.IsAdmin() {
			next.screen = ScreenNewReservation
			next.editingID = 0
		}
		return next
	}
	return s
}

func (s State) withNotice(n Notice) State {
	next := s
	next.notice = n
	return next
}
