package cli

import (
	"context"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/forms"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/state"
	"github.com/google/uuid"
)

// getSimpleText, getText, chooseOption, confirm and getPassword are
// indirections used to facilitate testing. They point to interactive input
// helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getText       = GetTextWithDefault
	chooseOption  = ChooseOption
	confirm       = Confirm
	getPassword   = GetPassword
)

// Login prompts for credentials and starts a session on success. The
// password is wiped before returning. Only prompt I/O errors are returned.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Usuario", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Contraseña", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	userName, err = forms.LoginForm{Username: userName, Password: password}.Validate()
	if err != nil {
		a.notify(common.Outcome(err, "", common.MsgLoginFailed))
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	u, err := a.users.Authenticate(opCtx, userName, password)
	cancel()
	if err != nil {
		a.notify(common.Outcome(err, "", common.MsgLoginFailed))
		return nil
	}

	a.sessionID = uuid.NewString()
	a.dispatch(state.LoggedIn{Session: models.Session{User: *u, StartedAt: a.now()}})

	logCtx, cancel := a.opCtx(ctx)
	a.log.Info(logCtx, "session started", "user_id", u.ID, "username", u.Username)
	cancel()

	renderWelcome(a.out, *u)
	return nil
}

// Logout ends the session and shows the login screen again.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		renderNotice(a.out, state.Notice{Text: common.MsgLoginRequired, Kind: state.NoticeError})
		return nil
	}

	logCtx, cancel := a.opCtx(ctx)
	a.log.Info(logCtx, "session ended")
	cancel()

	a.sessionID = ""
	a.draft = nil
	a.dispatch(state.LoggedOut{})
	renderLogin(a.out, a.config.ShowDefaultCredentials)
	return nil
}
