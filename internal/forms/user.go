package forms

import (
	"strings"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/models"
)

// UserForm is the raw input of the new and edit user screens.
type UserForm struct {
	Username       string
	Password       []byte
	DisplayName    string
	Email          string
	Role           string
	ChangePassword bool
}

// FromUser fills an edit form with the stored values of u. The password is
// never prefilled.
func FromUser(u models.User) UserForm {
	return UserForm{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        string(u.Role),
	}
}

// ValidateCreate requires username, password and display name.
func (f UserForm) ValidateCreate() (models.UserInput, error) {
	in, err := f.input()
	if err != nil {
		return models.UserInput{}, err
	}
	if len(f.Password) == 0 {
		return models.UserInput{}, common.NewValidationError("", common.MsgRequiredFields)
	}
	return in, nil
}

// ValidateUpdate requires username and display name, plus a new password
// when ChangePassword is set.
func (f UserForm) ValidateUpdate() (models.UserInput, error) {
	in, err := f.input()
	if err != nil {
		return models.UserInput{}, err
	}
	if f.ChangePassword && len(f.Password) == 0 {
		return models.UserInput{}, common.NewValidationError("password", common.MsgNewPasswordRequired)
	}
	return in, nil
}

func (f UserForm) input() (models.UserInput, error) {
	in := models.UserInput{
		Username:    strings.TrimSpace(f.Username),
		DisplayName: strings.TrimSpace(f.DisplayName),
		Email:       strings.TrimSpace(f.Email),
		Role:        models.Role(strings.TrimSpace(f.Role)),
	}
	if in.Username == "" || in.DisplayName == "" {
		return models.UserInput{}, common.NewValidationError("", common.MsgRequiredFields)
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return models.UserInput{}, common.NewValidationError("role", common.MsgInvalidOption)
	}
	return in, nil
}

// LoginForm is the raw input of the login screen.
type LoginForm struct {
	Username string
	Password []byte
}

// Validate trims the username and requires both fields.
func (f LoginForm) Validate() (string, error) {
	username := strings.TrimSpace(f.Username)
	if username == "" || len(f.Password) == 0 {
		return "", common.NewValidationError("", common.MsgLoginRequiredFields)
	}
	return username, nil
}
