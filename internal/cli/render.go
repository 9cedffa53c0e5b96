package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/state"
)

// Views take domain data only and write to w.

func renderBanner(w io.Writer) {
	fmt.Fprintln(w, "Sistema de Control de Laboratorio")
	fmt.Fprintln(w, "Gestión académica de reservas (escriba 'help' para ver los comandos)")
}

func renderLogin(w io.Writer, showDefaultCredentials bool) {
	fmt.Fprintln(w, common.MsgLoginRequired)
	if showDefaultCredentials {
		fmt.Fprintln(w, "Credenciales por defecto:")
		fmt.Fprintf(w, "  Usuario: %s\n", common.AdminUsername)
		fmt.Fprintf(w, "  Contraseña: %s\n", common.AdminPassword)
	}
}

func renderWelcome(w io.Writer, u models.User) {
	fmt.Fprintf(w, "Bienvenido, %s (Rol: %s)\n", u.DisplayName, u.Role)
}

func renderNotice(w io.Writer, n state.Notice) {
	switch n.Kind {
	case state.NoticeSuccess:
		fmt.Fprintln(w, "✅ "+n.Text)
	case state.NoticeError:
		fmt.Fprintln(w, "❌ "+n.Text)
	default:
		if n.Text != "" {
			fmt.Fprintln(w, n.Text)
		}
	}
}

func renderReservations(w io.Writer, list []models.Reservation) {
	fmt.Fprintln(w, "Reservas Existentes")
	if len(list) == 0 {
		fmt.Fprintln(w, "No hay reservas registradas")
		fmt.Fprintln(w, "Agregue la primera reserva con el comando 'new'")
		return
	}
	fmt.Fprintf(w, "Total: %d reservas\n", len(list))
	for _, r := range list {
		fmt.Fprintf(w, "\n[%d] %s\n", r.ID, r.Course)
		fmt.Fprintf(w, "    %s - %s | Docente: %s\n", r.Day, r.Shift, r.Instructor)
		fmt.Fprintf(w, "    Carrera: %s\n", r.Program)
		fmt.Fprintf(w, "    Horario: %s\n", r.TimeRange)
		fmt.Fprintf(w, "    Período: %s\n", r.PeriodDescription)
		fmt.Fprintf(w, "    Reservado: %s\n", r.CreatedAt.Local().Format(models.DateLayout))
	}
}

func renderUsers(w io.Writer, list []models.User) {
	fmt.Fprintln(w, "Gestión de Usuarios")
	fmt.Fprintf(w, "Total: %d usuarios\n", len(list))
	for _, u := range list {
		email := u.Email
		if email == "" {
			email = "Sin email"
		}
		line := fmt.Sprintf("[%d] %s (%s) | %s | Rol: %s | Creado: %s",
			u.ID, u.DisplayName, u.Username, email, u.Role, u.CreatedAt.Local().Format(models.DateLayout))
		if u.Username == common.AdminUsername {
			line += " | protegido"
		}
		fmt.Fprintln(w, line)
	}
}

func renderInfo(w io.Writer) {
	fmt.Fprintln(w, "Laboratorio de Informática")
	fmt.Fprintln(w, "Sistema de reservas académicas")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Características del sistema:")
	for _, f := range []string{
		"Gestión de reservas por día y turno",
		"Control por docente y carrera",
		"Diferentes períodos de reserva",
		"Sistema de autenticación de usuarios",
		"Gestión de usuarios con roles",
		"Base de datos SQLite integrada",
	} {
		fmt.Fprintln(w, "  • "+f)
	}
}

// getStatus is the prompt suffix: display name and role of the session.
func (a *App) getStatus() string {
	sess, ok := a.state.Session()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s, %s)", strings.TrimSpace(sess.User.DisplayName), sess.User.Role)
}
