package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `id, name, genres, address, city, state, phone, image_link, website, facebook_link, seeking_talent, seeking_description`

// VenueRepo manages persistence for venues.
type VenueRepo struct {
	db querier
}

func newVenueRepo(q querier) *VenueRepo {
	return &VenueRepo{db: q}
}

// scanVenue reads one row selected with venueColumns.  genres is a TEXT[]
// so it goes through pgtype's database/sql adapter.
func scanVenue(row interface{ Scan(...any) error }, m *pgtype.Map, v *model.Venue) error {
	return row.Scan(
		&v.ID, &v.Name, m.SQLScanner(&v.Genres), &v.Address, &v.City, &v.State, &v.Phone,
		&v.ImageLink, &v.Website, &v.FacebookLink, &v.SeekingTalent, &v.SeekingDescription,
	)
}

// Create inserts a venue.  When v.ID is zero the database assigns it and
// the generated value is written back.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	var err error
	if v.ID == 0 {
		const q = `INSERT INTO "Venue" (name, genres, address, city, state, phone, image_link, website, facebook_link, seeking_talent, seeking_description)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
		err = r.db.QueryRowContext(ctx, q,
			v.Name, v.Genres, v.Address, v.City, v.State, v.Phone,
			v.ImageLink, v.Website, v.FacebookLink, v.SeekingTalent, v.SeekingDescription,
		).Scan(&v.ID)
	} else {
		const q = `INSERT INTO "Venue" (` + venueColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		_, err = r.db.ExecContext(ctx, q,
			v.ID, v.Name, v.Genres, v.Address, v.City, v.State, v.Phone,
			v.ImageLink, v.Website, v.FacebookLink, v.SeekingTalent, v.SeekingDescription,
		)
		if err == nil {
			err = syncSequence(ctx, r.db, `"Venue"`)
		}
	}
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// GetByID retrieves a venue by its ID.  It returns ErrVenueNotFound if
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM "Venue" WHERE id = $1`
	var v model.Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id), pgtype.NewMap(), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns every venue ordered by ID.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM "Venue" ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := pgtype.NewMap()
	result := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := scanVenue(rows, m, &v); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a venue.  Shows still referencing it keep the row alive
// and the call fails with ErrConflict.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Venue" WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}
