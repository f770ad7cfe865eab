// Package repository contains data access logic for Show records. A Show
// links exactly one venue to exactly one artist at a start time stored as
// text.  The "Show" table's foreign keys are the index that the store walks
// when listing the shows of a venue or an artist.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for matching sentinel values

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/schedule"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db querier
}

func newShowRepo(q querier) *ShowRepo {
	return &ShowRepo{db: q}
}

// Create inserts a new show.  The start time must parse with
// schedule.StartTimeLayout and both references must resolve; otherwise the
// row is rejected with ErrInvalidStartTime, ErrVenueNotFound or
// ErrArtistNotFound.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	if _, err := schedule.ParseStartTime(s.StartTime); err != nil {
		return err
	}
	var err error
	if s.ID == 0 {
		const q = `INSERT INTO "Show" (start_time, venue_id, artist_id) VALUES ($1, $2, $3) RETURNING id`
		err = r.db.QueryRowContext(ctx, q, s.StartTime, s.VenueID, s.ArtistID).Scan(&s.ID)
	} else {
		const q = `INSERT INTO "Show" (id, start_time, venue_id, artist_id) VALUES ($1, $2, $3, $4)`
		_, err = r.db.ExecContext(ctx, q, s.ID, s.StartTime, s.VenueID, s.ArtistID)
		if err == nil {
			err = syncSequence(ctx, r.db, `"Show"`)
		}
	}
	if pgErr, ok := pgError(err); ok {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return ErrConflict
		case pgErr.Code == codeForeignKeyViolation && pgErr.ConstraintName == constraintShowVenue:
			return ErrVenueNotFound
		case pgErr.Code == codeForeignKeyViolation && pgErr.ConstraintName == constraintShowArtist:
			return ErrArtistNotFound
		}
	}
	return err
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	const q = `SELECT id, start_time, venue_id, artist_id FROM "Show" WHERE id = $1`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.StartTime, &s.VenueID, &s.ArtistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByVenue returns the shows booked at a venue in primary key order.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.Show, error) {
	const q = `SELECT id, start_time, venue_id, artist_id FROM "Show" WHERE venue_id = $1 ORDER BY id ASC`
	return r.list(ctx, q, venueID)
}

// ListByArtist returns the shows an artist plays in primary key order.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]model.Show, error) {
	const q = `SELECT id, start_time, venue_id, artist_id FROM "Show" WHERE artist_id = $1 ORDER BY id ASC`
	return r.list(ctx, q, artistID)
}

// List returns every show in primary key order.
func (r *ShowRepo) List(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT id, start_time, venue_id, artist_id FROM "Show" ORDER BY id ASC`
	return r.list(ctx, q)
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Show{}
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.StartTime, &s.VenueID, &s.ArtistID); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a show.  It returns ErrShowNotFound when no row matched.
func (r *ShowRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Show" WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowNotFound
	}
	return nil
}
