package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `id, name, genres, city, state, phone, image_link, website, facebook_link, seeking_venue, seeking_description`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db querier
}

func newArtistRepo(q querier) *ArtistRepo {
	return &ArtistRepo{db: q}
}

func scanArtist(row interface{ Scan(...any) error }, m *pgtype.Map, a *model.Artist) error {
	return row.Scan(
		&a.ID, &a.Name, m.SQLScanner(&a.Genres), &a.City, &a.State, &a.Phone,
		&a.ImageLink, &a.Website, &a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription,
	)
}

// Create inserts an artist, assigning an ID when a.ID is zero.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	var err error
	if a.ID == 0 {
		const q = `INSERT INTO "Artist" (name, genres, city, state, phone, image_link, website, facebook_link, seeking_venue, seeking_description)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
		err = r.db.QueryRowContext(ctx, q,
			a.Name, a.Genres, a.City, a.State, a.Phone,
			a.ImageLink, a.Website, a.FacebookLink, a.SeekingVenue, a.SeekingDescription,
		).Scan(&a.ID)
	} else {
		const q = `INSERT INTO "Artist" (` + artistColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err = r.db.ExecContext(ctx, q,
			a.ID, a.Name, a.Genres, a.City, a.State, a.Phone,
			a.ImageLink, a.Website, a.FacebookLink, a.SeekingVenue, a.SeekingDescription,
		)
		if err == nil {
			err = syncSequence(ctx, r.db, `"Artist"`)
		}
	}
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// GetByID retrieves an artist by its ID or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM "Artist" WHERE id = $1`
	var a model.Artist
	if err := scanArtist(r.db.QueryRowContext(ctx, q, id), pgtype.NewMap(), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns every artist ordered by ID.
func (r *ArtistRepo) List(ctx context.Context) ([]model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM "Artist" ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := pgtype.NewMap()
	result := []model.Artist{}
	for rows.Next() {
		var a model.Artist
		if err := scanArtist(rows, m, &a); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an artist, failing with ErrConflict while shows reference it.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM "Artist" WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrArtistNotFound
	}
	return nil
}
