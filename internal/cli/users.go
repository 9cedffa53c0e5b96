package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/forms"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/state"
)

var roleOptions = []string{string(models.RoleAdmin), string(models.RoleUser)}

// ListUsers shows every account. Administrators only.
func (a *App) ListUsers(ctx context.Context) error {
	if !a.enter(state.Navigated{To: state.ScreenUsers}, state.ScreenUsers) {
		return nil
	}
	a.showUsers(ctx)
	return nil
}

func (a *App) showUsers(ctx context.Context) {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	list, err := a.users.List(opCtx)
	if err != nil {
		a.notify(false, common.MsgLoadFailed+": "+err.Error())
		return
	}
	renderUsers(a.out, list)
}

// AddUser reads a new account and creates it.
func (a *App) AddUser(ctx context.Context) error {
	if !a.enter(state.Navigated{To: state.ScreenNewUser}, state.ScreenNewUser) {
		return nil
	}

	f := forms.UserForm{Role: string(models.RoleUser)}
	var err error
	if f.Username, err = getSimpleText(a.reader, "Usuario", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Contraseña", a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(f.Password)
	if err := a.readProfile(&f); err != nil {
		return err
	}

	in, err := f.ValidateCreate()
	if err != nil {
		a.notify(common.Outcome(err, "", common.MsgAddUserFailed))
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	_, err = a.users.Create(opCtx, in, f.Password)
	cancel()
	a.notify(common.Outcome(err, common.MsgUserCreated, common.MsgAddUserFailed))
	if err == nil {
		a.dispatch(state.Navigated{To: state.ScreenUsers})
		a.showUsers(ctx)
	}
	return nil
}

// EditUser overwrites the account with the given id. The password changes
// only when the user asks for it.
func (a *App) EditUser(ctx context.Context, rawID string) error {
	id, ok := a.parseID(rawID)
	if !ok {
		return nil
	}
	if !a.enter(state.EditRequested{To: state.ScreenEditUser, ID: id}, state.ScreenEditUser) {
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	u, err := a.users.Get(opCtx, id)
	cancel()
	if err != nil {
		a.dispatch(state.EditFinished{})
		if errors.Is(err, common.ErrorNotFound) {
			a.notify(false, common.MsgUserNotFound)
		} else {
			a.notify(false, common.MsgLoadFailed+": "+err.Error())
		}
		return nil
	}

	f := forms.FromUser(*u)
	if f.Username, err = getText(a.reader, "Usuario", f.Username, a.out); err != nil {
		return err
	}
	if err := a.readProfile(&f); err != nil {
		return err
	}
	if f.ChangePassword, err = confirm(a.reader, "¿Cambiar contraseña?", a.out); err != nil {
		return err
	}
	if f.ChangePassword {
		if f.Password, err = getPassword(a.reader, "Nueva contraseña", a.out); err != nil {
			return err
		}
		defer common.WipeByteArray(f.Password)
	}

	in, err := f.ValidateUpdate()
	if err != nil {
		a.notify(common.Outcome(err, "", common.MsgUpdateUserFailed))
		return nil
	}

	editedID := a.state.EditingID()
	opCtx, cancel = a.opCtx(ctx)
	err = a.users.Update(opCtx, editedID, in, f.ChangePassword, f.Password)
	cancel()
	if errors.Is(err, common.ErrorNotFound) {
		a.notify(false, common.MsgUserNotFound)
	} else {
		a.notify(common.Outcome(err, common.MsgUserUpdated, common.MsgUpdateUserFailed))
	}
	a.dispatch(state.EditFinished{})
	if err != nil {
		return nil
	}

	if sess, _ := a.state.Session(); sess.User.ID == editedID {
		a.refreshSession(ctx, editedID)
	}
	if a.isAdmin() {
		a.showUsers(ctx)
	}
	return nil
}

// refreshSession reloads the session user after its own account changed.
// When the account cannot be reloaded the session ends.
func (a *App) refreshSession(ctx context.Context, id int64) {
	opCtx, cancel := a.opCtx(ctx)
	u, err := a.users.Get(opCtx, id)
	cancel()
	if err != nil {
		logCtx, cancel := a.opCtx(ctx)
		a.log.Warn(logCtx, "failed to reload session user", "id", id, "error", err)
		cancel()
		_ = a.Logout(ctx)
		return
	}
	a.dispatch(state.SessionUserChanged{User: *u})
}

// DeleteUser removes the account with the given id. The primordial
// administrator is refused by the store.
func (a *App) DeleteUser(ctx context.Context, rawID string) error {
	id, ok := a.parseID(rawID)
	if !ok {
		return nil
	}
	if !a.enter(state.Navigated{To: state.ScreenUsers}, state.ScreenUsers) {
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	err := a.users.Delete(opCtx, id)
	cancel()
	if errors.Is(err, common.ErrorNotFound) {
		a.notify(false, common.MsgUserNotFound)
		return nil
	}
	a.notify(common.Outcome(err, common.MsgUserDeleted, common.MsgDeleteUserFailed))
	if err == nil {
		a.showUsers(ctx)
	}
	return nil
}

// readProfile prompts for display name, email and role, keeping the values
// already in f as defaults.
func (a *App) readProfile(f *forms.UserForm) error {
	var err error
	if f.DisplayName, err = getText(a.reader, "Nombre completo", f.DisplayName, a.out); err != nil {
		return err
	}
	if f.Email, err = getText(a.reader, "Email (opcional, - para borrar)", f.Email, a.out); err != nil {
		return err
	}
	if f.Email == "-" {
		f.Email = ""
	}
	f.Role, err = chooseOption(a.reader, "Rol", roleOptions, f.Role, a.out)
	return err
}
