package reservations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"github.com/dmitrijs2005/labkeeper/internal/dbx"
	"github.com/dmitrijs2005/labkeeper/internal/models"
	"github.com/dmitrijs2005/labkeeper/internal/storage"
)

const columns = `id, day, shift, instructor, program, course, time_range,
	period_description, period_start, period_end, created_at`

// SQLiteRepository implements Repository over a dbx.DBTX.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, in models.ReservationInput) (*models.Reservation, error) {
	createdAt := storage.ToMillis(r.now())
	start, end := periodBounds(in.Period)

	query := `INSERT INTO reservations (day, shift, instructor, program, course, time_range,
			period_description, period_start, period_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		in.Day, in.Shift, in.Instructor, in.Program, in.Course, in.TimeRange,
		in.Period.Description(), start, end, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation id: %w", err)
	}

	return &models.Reservation{
		ID:                id,
		ReservationInput:  in,
		PeriodDescription: in.Period.Description(),
		CreatedAt:         storage.FromMillis(createdAt),
	}, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	query := `SELECT ` + columns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get reservation %d: %w", id, err)
	}
	return res, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, in models.ReservationInput) (int64, error) {
	start, end := periodBounds(in.Period)

	query := `UPDATE reservations
		SET day = ?, shift = ?, instructor = ?, program = ?, course = ?, time_range = ?,
			period_description = ?, period_start = ?, period_end = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		in.Day, in.Shift, in.Instructor, in.Program, in.Course, in.TimeRange,
		in.Period.Description(), start, end, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update reservation %d: %w", id, err)
	}
	return dbx.RowsAffected(res)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Reservation, error) {
	query := `SELECT ` + columns + ` FROM reservations ORDER BY day, time_range`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select reservations: %w", err)
	}
	defer rows.Close()

	var result []models.Reservation
	for rows.Next() {
		item, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservation rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(s scanner) (*models.Reservation, error) {
	var (
		res        models.Reservation
		start, end sql.NullString
		createdAt  int64
	)
	err := s.Scan(&res.ID, &res.Day, &res.Shift, &res.Instructor, &res.Program, &res.Course,
		&res.TimeRange, &res.PeriodDescription, &start, &end, &createdAt)
	if err != nil {
		return nil, err
	}

	if start.Valid && end.Valid {
		from, err := time.Parse(models.DateLayout, start.String)
		if err != nil {
			return nil, fmt.Errorf("bad period_start %q: %w", start.String, err)
		}
		to, err := time.Parse(models.DateLayout, end.String)
		if err != nil {
			return nil, fmt.Errorf("bad period_end %q: %w", end.String, err)
		}
		res.Period = models.DateRange(from, to)
	}
	res.CreatedAt = storage.FromMillis(createdAt)
	return &res, nil
}

// periodBounds returns the stored start and end columns; NULL for the
// entire term.
func periodBounds(p models.Period) (sql.NullString, sql.NullString) {
	if !p.Bounded() {
		return sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: p.Start.Format(models.DateLayout), Valid: true},
		sql.NullString{String: p.End.Format(models.DateLayout), Valid: true}
}
