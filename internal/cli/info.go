package cli

import (
	"context"

	"github.com/dmitrijs2005/labkeeper/internal/state"
)

// Info shows the information screen.
func (a *App) Info(ctx context.Context) error {
	if !a.enter(state.Navigated{To: state.ScreenInfo}, state.ScreenInfo) {
		return nil
	}
	renderInfo(a.out)
	return nil
}
