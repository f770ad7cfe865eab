package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
)

// Reader is the read side of the entity store.  Lookups by identity return
// the unique record or an error matching ErrNotFound.  ShowsByVenue and
// ShowsByArtist walk the foreign-key index and return shows in insertion
// (primary key) order; an unknown venue or artist simply has no shows.
type Reader interface {
	Venue(ctx context.Context, id int64) (*model.Venue, error)
	Artist(ctx context.Context, id int64) (*model.Artist, error)
	Show(ctx context.Context, id int64) (*model.Show, error)
	ShowsByVenue(ctx context.Context, venueID int64) ([]model.Show, error)
	ShowsByArtist(ctx context.Context, artistID int64) ([]model.Show, error)
	ListVenues(ctx context.Context) ([]model.Venue, error)
	ListArtists(ctx context.Context) ([]model.Artist, error)
	ListShows(ctx context.Context) ([]model.Show, error)
}

// Writer holds the administrative operations.  A zero ID asks the store to
// assign the next one; a non-zero ID is inserted as given and fails with
// ErrConflict when already taken.
type Writer interface {
	CreateVenue(ctx context.Context, v *model.Venue) error
	CreateArtist(ctx context.Context, a *model.Artist) error
	CreateShow(ctx context.Context, s *model.Show) error
	DeleteVenue(ctx context.Context, id int64) error
	DeleteArtist(ctx context.Context, id int64) error
	DeleteShow(ctx context.Context, id int64) error
}

// EntityStore is implemented by the Postgres Store and by Memory.
type EntityStore interface {
	Reader
	Writer
	// View runs fn against a single consistent snapshot of the store.
	View(ctx context.Context, fn func(r Reader) error) error
}

// querier is satisfied by both *sql.DB and *sql.Tx so that the same repos
// can run inside or outside a snapshot transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlReader implements Reader over one querier.
type sqlReader struct {
	venues  *VenueRepo
	artists *ArtistRepo
	shows   *ShowRepo
}

func newSQLReader(q querier) sqlReader {
	return sqlReader{venues: newVenueRepo(q), artists: newArtistRepo(q), shows: newShowRepo(q)}
}

func (r sqlReader) Venue(ctx context.Context, id int64) (*model.Venue, error) {
	return r.venues.GetByID(ctx, id)
}

func (r sqlReader) Artist(ctx context.Context, id int64) (*model.Artist, error) {
	return r.artists.GetByID(ctx, id)
}

func (r sqlReader) Show(ctx context.Context, id int64) (*model.Show, error) {
	return r.shows.GetByID(ctx, id)
}

func (r sqlReader) ShowsByVenue(ctx context.Context, venueID int64) ([]model.Show, error) {
	return r.shows.ListByVenue(ctx, venueID)
}

func (r sqlReader) ShowsByArtist(ctx context.Context, artistID int64) ([]model.Show, error) {
	return r.shows.ListByArtist(ctx, artistID)
}

func (r sqlReader) ListVenues(ctx context.Context) ([]model.Venue, error) {
	return r.venues.List(ctx)
}

func (r sqlReader) ListArtists(ctx context.Context) ([]model.Artist, error) {
	return r.artists.List(ctx)
}

func (r sqlReader) ListShows(ctx context.Context) ([]model.Show, error) {
	return r.shows.List(ctx)
}

// Store is the PostgreSQL-backed EntityStore.  The *sql.DB is owned by the
// caller, which opens it at start-up and closes it at shutdown.
type Store struct {
	sqlReader
	db *sql.DB
}

var _ EntityStore = (*Store)(nil)

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{sqlReader: newSQLReader(db), db: db}
}

// DB exposes the underlying sql.DB, for migrations and health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// View runs fn inside a read-only REPEATABLE READ transaction so every query
// fn issues sees the same snapshot.
func (s *Store) View(ctx context.Context, fn func(r Reader) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	if err := fn(newSQLReader(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) CreateVenue(ctx context.Context, v *model.Venue) error {
	return s.venues.Create(ctx, v)
}

func (s *Store) CreateArtist(ctx context.Context, a *model.Artist) error {
	return s.artists.Create(ctx, a)
}

func (s *Store) CreateShow(ctx context.Context, sh *model.Show) error {
	return s.shows.Create(ctx, sh)
}

func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	return s.venues.Delete(ctx, id)
}

func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	return s.artists.Delete(ctx, id)
}

func (s *Store) DeleteShow(ctx context.Context, id int64) error {
	return s.shows.Delete(ctx, id)
}

// syncSequence moves a serial sequence past explicitly inserted ids so later
// default inserts do not collide.  The sequence only ever moves forward, so
// an id handed out once is never handed out again, even after its row was
// deleted.  table must be a quoted identifier.
func syncSequence(ctx context.Context, q querier, table string) error {
	var seq string
	if err := q.QueryRowContext(ctx, `SELECT pg_get_serial_sequence($1, 'id')`, table).Scan(&seq); err != nil {
		return fmt.Errorf("serial sequence of %s: %w", table, err)
	}
	query := `SELECT setval($1::regclass, GREATEST(
		(SELECT COALESCE(MAX(id), 0) FROM ` + table + `),
		(SELECT CASE WHEN is_called THEN last_value ELSE last_value - 1 END FROM ` + seq + `)
	) + 1, false)`
	_, err := q.ExecContext(ctx, query, seq)
	return err
}
