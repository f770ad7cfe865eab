// Package repository defines error types that are reused across the venue,
// artist and show stores. These sentinel values allow higher layers such as
// the serializer and the HTTP handlers to distinguish between a missing
// record and a write that conflicts with existing rows.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is matched by every entity-specific not-found error.
var ErrNotFound = errors.New("not found")

var (
	ErrVenueNotFound  = fmt.Errorf("venue %w", ErrNotFound)
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
	ErrShowNotFound   = fmt.Errorf("show %w", ErrNotFound)
)

// ErrConflict is returned when a write cannot be performed because of
// existing rows, such as reusing an ID or deleting a venue that still has
// shows. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Postgres error codes and the FK constraint names declared in the schema.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"

	constraintShowVenue  = "show_venue_fk"
	constraintShowArtist = "show_artist_fk"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation
}
