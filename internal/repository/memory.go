package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/schedule"
)

// Memory is an in-process EntityStore.  Shows are indexed by venue and by
// artist so relationship traversal never scans the whole show table.
// Records are copied on the way in and out; callers never share memory
// with the store.
type Memory struct {
	mu sync.RWMutex

	venues  map[int64]model.Venue
	artists map[int64]model.Artist
	shows   map[int64]model.Show

	showsByVenue  map[int64][]int64
	showsByArtist map[int64][]int64

	lastVenueID  int64
	lastArtistID int64
	lastShowID   int64
}

var _ EntityStore = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		venues:        make(map[int64]model.Venue),
		artists:       make(map[int64]model.Artist),
		shows:         make(map[int64]model.Show),
		showsByVenue:  make(map[int64][]int64),
		showsByArtist: make(map[int64][]int64),
	}
}

// memView reads the maps without locking; the caller holds m.mu.
type memView struct {
	m *Memory
}

func (v memView) Venue(_ context.Context, id int64) (*model.Venue, error) {
	venue, ok := v.m.venues[id]
	if !ok {
		return nil, ErrVenueNotFound
	}
	venue.Genres = slices.Clone(venue.Genres)
	return &venue, nil
}

func (v memView) Artist(_ context.Context, id int64) (*model.Artist, error) {
	artist, ok := v.m.artists[id]
	if !ok {
		return nil, ErrArtistNotFound
	}
	artist.Genres = slices.Clone(artist.Genres)
	return &artist, nil
}

func (v memView) Show(_ context.Context, id int64) (*model.Show, error) {
	show, ok := v.m.shows[id]
	if !ok {
		return nil, ErrShowNotFound
	}
	return &show, nil
}

func (v memView) ShowsByVenue(_ context.Context, venueID int64) ([]model.Show, error) {
	return v.collect(v.m.showsByVenue[venueID]), nil
}

func (v memView) ShowsByArtist(_ context.Context, artistID int64) ([]model.Show, error) {
	return v.collect(v.m.showsByArtist[artistID]), nil
}

func (v memView) collect(ids []int64) []model.Show {
	out := make([]model.Show, 0, len(ids))
	for _, id := range ids {
		out = append(out, v.m.shows[id])
	}
	return out
}

func (v memView) ListVenues(_ context.Context) ([]model.Venue, error) {
	out := make([]model.Venue, 0, len(v.m.venues))
	for _, id := range sortedKeys(v.m.venues) {
		venue := v.m.venues[id]
		venue.Genres = slices.Clone(venue.Genres)
		out = append(out, venue)
	}
	return out, nil
}

func (v memView) ListArtists(_ context.Context) ([]model.Artist, error) {
	out := make([]model.Artist, 0, len(v.m.artists))
	for _, id := range sortedKeys(v.m.artists) {
		artist := v.m.artists[id]
		artist.Genres = slices.Clone(artist.Genres)
		out = append(out, artist)
	}
	return out, nil
}

func (v memView) ListShows(_ context.Context) ([]model.Show, error) {
	return v.collect(sortedKeys(v.m.shows)), nil
}

func sortedKeys[T any](m map[int64]T) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// View holds the read lock for the whole of fn, so writers wait until fn
// returns.  fn must not call back into m's own methods.
func (m *Memory) View(ctx context.Context, fn func(r Reader) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(memView{m: m})
}

func (m *Memory) read() (memView, func()) {
	m.mu.RLock()
	return memView{m: m}, m.mu.RUnlock
}

func (m *Memory) Venue(ctx context.Context, id int64) (*model.Venue, error) {
	v, unlock := m.read()
	defer unlock()
	return v.Venue(ctx, id)
}

func (m *Memory) Artist(ctx context.Context, id int64) (*model.Artist, error) {
	v, unlock := m.read()
	defer unlock()
	return v.Artist(ctx, id)
}

func (m *Memory) Show(ctx context.Context, id int64) (*model.Show, error) {
	v, unlock := m.read()
	defer unlock()
	return v.Show(ctx, id)
}

func (m *Memory) ShowsByVenue(ctx context.Context, venueID int64) ([]model.Show, error) {
	v, unlock := m.read()
	defer unlock()
	return v.ShowsByVenue(ctx, venueID)
}

func (m *Memory) ShowsByArtist(ctx context.Context, artistID int64) ([]model.Show, error) {
	v, unlock := m.read()
	defer unlock()
	return v.ShowsByArtist(ctx, artistID)
}

func (m *Memory) ListVenues(ctx context.Context) ([]model.Venue, error) {
	v, unlock := m.read()
	defer unlock()
	return v.ListVenues(ctx)
}

func (m *Memory) ListArtists(ctx context.Context) ([]model.Artist, error) {
	v, unlock := m.read()
	defer unlock()
	return v.ListArtists(ctx)
}

func (m *Memory) ListShows(ctx context.Context) ([]model.Show, error) {
	v, unlock := m.read()
	defer unlock()
	return v.ListShows(ctx)
}

// nextID resolves the id for an insert: zero takes last+1, anything else is
// used as given.  last tracks the highest id ever handed out, like a serial
// sequence.
func nextID(requested int64, last *int64, taken bool) (int64, error) {
	if requested == 0 {
		*last++
		return *last, nil
	}
	if taken {
		return 0, ErrConflict
	}
	if requested > *last {
		*last = requested
	}
	return requested, nil
}

func (m *Memory) CreateVenue(_ context.Context, v *model.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, taken := m.venues[v.ID]
	id, err := nextID(v.ID, &m.lastVenueID, taken)
	if err != nil {
		return err
	}
	v.ID = id
	stored := *v
	stored.Genres = slices.Clone(v.Genres)
	m.venues[id] = stored
	return nil
}

func (m *Memory) CreateArtist(_ context.Context, a *model.Artist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, taken := m.artists[a.ID]
	id, err := nextID(a.ID, &m.lastArtistID, taken)
	if err != nil {
		return err
	}
	a.ID = id
	stored := *a
	stored.Genres = slices.Clone(a.Genres)
	m.artists[id] = stored
	return nil
}

// CreateShow enforces the same rules as the "Show" table: a parsable start
// time and both foreign keys resolving.
func (m *Memory) CreateShow(_ context.Context, s *model.Show) error {
	if _, err := schedule.ParseStartTime(s.StartTime); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.venues[s.VenueID]; !ok {
		return ErrVenueNotFound
	}
	if _, ok := m.artists[s.ArtistID]; !ok {
		return ErrArtistNotFound
	}
	_, taken := m.shows[s.ID]
	id, err := nextID(s.ID, &m.lastShowID, taken)
	if err != nil {
		return err
	}
	s.ID = id
	m.shows[id] = *s
	m.showsByVenue[s.VenueID] = append(m.showsByVenue[s.VenueID], id)
	m.showsByArtist[s.ArtistID] = append(m.showsByArtist[s.ArtistID], id)
	return nil
}

func (m *Memory) DeleteVenue(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.venues[id]; !ok {
		return ErrVenueNotFound
	}
	if len(m.showsByVenue[id]) > 0 {
		return ErrConflict
	}
	delete(m.venues, id)
	delete(m.showsByVenue, id)
	return nil
}

func (m *Memory) DeleteArtist(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artists[id]; !ok {
		return ErrArtistNotFound
	}
	if len(m.showsByArtist[id]) > 0 {
		return ErrConflict
	}
	delete(m.artists, id)
	delete(m.showsByArtist, id)
	return nil
}

func (m *Memory) DeleteShow(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shows[id]
	if !ok {
		return ErrShowNotFound
	}
	delete(m.shows, id)
	m.showsByVenue[s.VenueID] = slices.DeleteFunc(m.showsByVenue[s.VenueID], func(x int64) bool { return x == id })
	m.showsByArtist[s.ArtistID] = slices.DeleteFunc(m.showsByArtist[s.ArtistID], func(x int64) bool { return x == id })
	return nil
}
