package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/logging"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/repomanager"
)

// ReservationService owns the reservations table. Input is validated by the
// caller; the service stores what it is given.
type ReservationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewReservationService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *ReservationService {
	return &ReservationService{db: db, repomanager: m, log: log}
}

func (s *ReservationService) Create(ctx context.Context, in models.ReservationInput) (*models.Reservation, error) {
	r, err := s.repomanager.Reservations(s.db).Create(ctx, in)
	if err != nil {
		s.log.Error(ctx, "failed to create reservation", "error", err)
		return nil, storeError("create reservation", err)
	}
	s.log.Info(ctx, "reservation created", "id", r.ID, "day", r.Day, "time_range", r.TimeRange)
	return r, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	r, err := s.repomanager.Reservations(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.log.Error(ctx, "failed to get reservation", "id", id, "error", err)
		return nil, storeError("get reservation", err)
	}
	return r, nil
}

// Update overwrites every field of the reservation with id. A stale id
// yields common.ErrorNotFound.
func (s *ReservationService) Update(ctx context.Context, id int64, in models.ReservationInput) error {
	n, err := s.repomanager.Reservations(s.db).Update(ctx, id, in)
	if err != nil {
		s.log.Error(ctx, "failed to update reservation", "id", id, "error", err)
		return storeError("update reservation", err)
	}
	if n == 0 {
		s.log.Warn(ctx, "reservation to update no longer exists", "id", id)
		return common.ErrorNotFound
	}
	s.log.Info(ctx, "reservation updated", "id", id)
	return nil
}

// List returns all reservations ordered by day then time range, both as
// plain text.
func (s *ReservationService) List(ctx context.Context) ([]models.Reservation, error) {
	list, err := s.repomanager.Reservations(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to list reservations", "error", err)
		return nil, storeError("list reservations", err)
	}
	return list, nil
}

// Delete removes the reservation with id and reports success. Failures are
// logged, not returned. Deleting an id that does not exist succeeds.
func (s *ReservationService) Delete(ctx context.Context, id int64) bool {
	if err := s.repomanager.Reservations(s.db).Delete(ctx, id); err != nil {
		s.log.Error(ctx, "failed to delete reservation", "id", id, "error", err)
		return false
	}
	s.log.Info(ctx, "reservation deleted", "id", id)
	return true
}
