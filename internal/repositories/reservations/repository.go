// Package reservations persists laboratory bookings in the reservations
// table. The store does not validate: callers hand it complete input.
package reservations

import (
	"context"

	"github.com/dmitrijs2005/labkeeper/internal/models"
)

// Repository describes the operations on the reservations table.
type Repository interface {
	Create(ctx context.Context, in models.ReservationInput) (*models.Reservation, error)
	GetByID(ctx context.Context, id int64) (*models.Reservation, error)
	// Update overwrites every field and returns the number of rows matched.
	Update(ctx context.Context, id int64, in models.ReservationInput) (int64, error)
	// List returns all reservations ordered by day, then time range, as
	// plain strings.
	List(ctx context.Context) ([]models.Reservation, error)
	Delete(ctx context.Context, id int64) error
}
