package common

import "errors"

// Default primordial administrator. The login screen shows these values.
const (
	AdminUsername    = "admin"
	AdminPassword    = "admin123"
	AdminDisplayName = "Administrador"
	AdminEmail       = "admin@laboratorio.com"
)

// User-facing outcome messages.
const (
	MsgUserCreated        = "Usuario agregado exitosamente"
	MsgUserUpdated        = "Usuario actualizado exitosamente"
	MsgUserDeleted        = "Usuario eliminado exitosamente"
	MsgUserNotFound       = "El usuario ya no existe"
	MsgDuplicateUsername  = "El nombre de usuario ya existe"
	MsgProtectedAccount   = "No se puede eliminar al usuario administrador principal"
	MsgProtectedIdentity  = "No se puede cambiar el usuario ni el rol del administrador principal"
	MsgInvalidCredentials = "Usuario o contraseña incorrectos"
	MsgAccessRestricted   = "Acceso restringido a administradores"
	MsgLoginRequired      = "Inicie sesión para continuar"
	MsgLoginFailed        = "Error al iniciar sesión"

	MsgRequiredFields      = "Por favor complete todos los campos obligatorios"
	MsgLoginRequiredFields = "Por favor complete todos los campos"
	MsgBothDatesRequired   = "Para período con fechas específicas, complete ambas fechas"
	MsgBadDateFormat       = "Formato de fecha incorrecto. Use YYYY-MM-DD"
	MsgInvalidOption       = "Seleccione una opción válida"
	MsgNewPasswordRequired = "Para cambiar la contraseña, debe ingresar una nueva"

	MsgReservationCreated  = "Reserva agregada exitosamente!"
	MsgReservationUpdated  = "Reserva actualizada exitosamente!"
	MsgReservationDeleted  = "Reserva eliminada exitosamente!"
	MsgReservationNotFound = "La reserva ya no existe"
	MsgReservationDelError = "Error al eliminar la reserva"

	MsgAddUserFailed    = "Error al agregar usuario"
	MsgUpdateUserFailed = "Error al actualizar usuario"
	MsgDeleteUserFailed = "Error al eliminar usuario"
	MsgSaveFailed       = "Error al guardar"
	MsgUpdateFailed     = "Error al actualizar"
	MsgLoadFailed       = "Error al cargar los datos"
)

// Outcome maps an operation result to the success flag and the message the
// boundary displays verbatim. failPrefix is used for unclassified failures
// and is followed by the error text.
func Outcome(err error, success, failPrefix string) (bool, string) {
	if err == nil {
		return true, success
	}

	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return false, ve.Message
	case errors.Is(err, ErrDuplicateUsername):
		return false, MsgDuplicateUsername
	case errors.Is(err, ErrProtectedIdentity):
		return false, MsgProtectedIdentity
	case errors.Is(err, ErrProtectedAccount):
		return false, MsgProtectedAccount
	case errors.Is(err, ErrInvalidCredentials):
		return false, MsgInvalidCredentials
	}
	return false, failPrefix + ": " + err.Error()
}
