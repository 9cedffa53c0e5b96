package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/config"
	"github.com/dmitrijs2005/labkeeper/internal/forms"
	"github.com/dmitrijs2005/labkeeper/internal/logging"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/state"
)

// UserStore is the credential store as used by the CLI.
type UserStore interface {
	Create(ctx context.Context, in models.UserInput, password []byte) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, in models.UserInput, changePassword bool, newPassword []byte) error
	Delete(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, username string, password []byte) (*models.User, error)
}

// ReservationStore is the reservation store as used by the CLI.
type ReservationStore interface {
	Create(ctx context.Context, in models.ReservationInput) (*models.Reservation, error)
	Get(ctx context.Context, id int64) (*models.Reservation, error)
	Update(ctx context.Context, id int64, in models.ReservationInput) error
	List(ctx context.Context) ([]models.Reservation, error)
	Delete(ctx context.Context, id int64) bool
}

type App struct {
	config       *config.Config
	users        UserStore
	reservations ReservationStore
	log          logging.Logger
	reader       *bufio.Reader
	out          io.Writer
	now          func() time.Time

	state     state.State
	sessionID string
	// draft keeps a rejected reservation form for the next attempt.
	draft *forms.ReservationForm
}

func NewApp(c *config.Config, users UserStore, reservations ReservationStore, log logging.Logger) *App {
	return &App{
		config:       c,
		users:        users,
		reservations: reservations,
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		now:          time.Now,
		state:        state.Initial(),
	}
}

// Run shows the login screen and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	a.log.Info(ctx, "laboratory client started", "database", a.config.DatabasePath)
	renderBanner(a.out)
	renderLogin(a.out, a.config.ShowDefaultCredentials)

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.state.LoggedIn() {
		_ = a.Logout(ctx)
	}
	a.log.Info(ctx, "laboratory client stopped")
}

func (a *App) isLoggedIn() bool { return a.state.LoggedIn() }

func (a *App) isAdmin() bool { return a.state.IsAdmin() }

// dispatch applies e to the application state.
func (a *App) dispatch(e state.Event) {
	a.state = state.Reduce(a.state, e)
}

// enter moves to screen s via e and reports whether the move was allowed.
// A refused move is explained to the user.
func (a *App) enter(e state.Event, s state.Screen) bool {
	a.dispatch(e)
	if a.state.Screen() == s {
		return true
	}
	if !a.state.LoggedIn() {
		renderNotice(a.out, state.Notice{Text: common.MsgLoginRequired, Kind: state.NoticeError})
		return false
	}
	renderNotice(a.out, a.state.Notice())
	return false
}

// notify records and prints an operation outcome.
func (a *App) notify(ok bool, msg string) {
	kind := state.NoticeError
	if ok {
		kind = state.NoticeSuccess
	}
	a.dispatch(state.Notified{Notice: state.Notice{Text: msg, Kind: kind}})
	renderNotice(a.out, a.state.Notice())
}

// opCtx bounds a single store call and tags its log lines with the session.
func (a *App) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.sessionID != "" {
		ctx = logging.ContextWith(ctx, "session_id", a.sessionID)
	}
	if a.config != nil && a.config.OperationTimeout > 0 {
		return context.WithTimeout(ctx, a.config.OperationTimeout)
	}
	return context.WithCancel(ctx)
}
