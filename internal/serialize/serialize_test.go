package serialize

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/clock"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/schedule"
	"github.com/iliyamo/fyyur/internal/seed"
)

var evaluatedAt = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *repository.Memory {
	t.Helper()
	store := repository.NewMemory()
	_, err := seed.Load(context.Background(), store)
	require.NoError(t, err)
	return store
}

func TestShow_DenormalizesVenueAndArtist(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	s := New(clock.Fixed(evaluatedAt))

	view, err := s.ShowByID(ctx, store, 1)
	require.NoError(t, err)

	guns, err := store.Artist(ctx, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(1), view.VenueID)
	assert.Equal(t, "The Musical Hop", view.VenueName)
	assert.Equal(t, int64(4), view.ArtistID)
	assert.Equal(t, "Guns N Petals", view.ArtistName)
	require.NotNil(t, view.ArtistImageLink)
	assert.Equal(t, *guns.ImageLink, *view.ArtistImageLink)
	assert.Equal(t, "2019-05-21T21:30:00.000Z", view.StartTime)
}

func TestShowByID_NotFound(t *testing.T) {
	_, err := New(clock.Fixed(evaluatedAt)).ShowByID(context.Background(), seededStore(t), 99)
	assert.ErrorIs(t, err, repository.ErrShowNotFound)
}

// brokenReader hides some venues and artists and can inject shows, to
// reproduce rows that the store itself would never accept.
type brokenReader struct {
	repository.Reader
	missingVenues  map[int64]bool
	missingArtists map[int64]bool
	extraShows     map[int64][]model.Show
}

func (b brokenReader) Venue(ctx context.Context, id int64) (*model.Venue, error) {
	if b.missingVenues[id] {
		return nil, repository.ErrVenueNotFound
	}
	return b.Reader.Venue(ctx, id)
}

func (b brokenReader) Artist(ctx context.Context, id int64) (*model.Artist, error) {
	if b.missingArtists[id] {
		return nil, repository.ErrArtistNotFound
	}
	return b.Reader.Artist(ctx, id)
}

func (b brokenReader) ShowsByVenue(ctx context.Context, id int64) ([]model.Show, error) {
	shows, err := b.Reader.ShowsByVenue(ctx, id)
	return append(shows, b.extraShows[id]...), err
}

func TestShow_DanglingVenueIsAnError(t *testing.T) {
	ctx := context.Background()
	r := brokenReader{Reader: seededStore(t), missingVenues: map[int64]bool{1: true}}
	s := New(clock.Fixed(evaluatedAt))

	view, err := s.Show(ctx, r, model.Show{ID: 1, StartTime: "2019-05-21T21:30:00.000Z", VenueID: 1, ArtistID: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
	assert.Empty(t, view.VenueName)
}

func TestShow_DanglingArtistIsAnError(t *testing.T) {
	ctx := context.Background()
	r := brokenReader{Reader: seededStore(t), missingArtists: map[int64]bool{6: true}}
	s := New(clock.Fixed(evaluatedAt))

	_, err := s.Show(ctx, r, model.Show{ID: 3, StartTime: "2035-04-01T20:00:00.000Z", VenueID: 3, ArtistID: 6})
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.ErrorIs(t, err, repository.ErrArtistNotFound)

	venue, err := r.Venue(ctx, 3)
	require.NoError(t, err)
	_, err = s.Venue(ctx, r, *venue)
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestVenue_SplitsPastAndUpcoming(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	s := New(clock.Fixed(evaluatedAt))

	view, err := s.VenueByID(ctx, store, 3)
	require.NoError(t, err)

	assert.Equal(t, "Park Square Live Music & Coffee", view.Name)
	assert.Equal(t, []string{"Rock n Roll", "Jazz", "Classical", "Folk"}, view.Genres)
	require.Len(t, view.PastShows, 1)
	assert.Equal(t, "Matt Quevedo", view.PastShows[0].ArtistName)
	assert.Equal(t, 1, view.PastShowsCount)
	require.Len(t, view.UpcomingShows, 3)
	assert.Equal(t, 3, view.UpcomingShowsCount)
	for _, sh := range view.UpcomingShows {
		assert.Equal(t, "The Wild Sax Band", sh.ArtistName)
		assert.Equal(t, "Park Square Live Music & Coffee", sh.VenueName)
	}
}

func TestVenue_ThreeFutureShowsAllUpcoming(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()
	venue := seed.Venues()[2]
	artist := seed.Artists()[2]
	require.NoError(t, store.CreateVenue(ctx, &venue))
	require.NoError(t, store.CreateArtist(ctx, &artist))
	for _, st := range []string{"2035-04-01T20:00:00.000Z", "2035-04-08T20:00:00.000Z", "2035-04-15T20:00:00.000Z"} {
		require.NoError(t, store.CreateShow(ctx, &model.Show{StartTime: st, VenueID: 3, ArtistID: 6}))
	}

	view, err := New(clock.Fixed(evaluatedAt)).VenueByID(ctx, store, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.UpcomingShowsCount)
	assert.Equal(t, 0, view.PastShowsCount)
	assert.Empty(t, view.PastShows)
}

func TestVenue_ClassificationDependsOnNow(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	before := New(clock.Fixed(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)))
	view, err := before.VenueByID(ctx, store, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, view.PastShowsCount)
	assert.Equal(t, 1, view.UpcomingShowsCount)

	after := New(clock.Fixed(time.Date(2019, 5, 22, 0, 0, 0, 0, time.UTC)))
	view, err = after.VenueByID(ctx, store, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.PastShowsCount)
	assert.Equal(t, 0, view.UpcomingShowsCount)
}

func TestVenue_ShowAtNowInNeitherList(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	at, err := schedule.ParseStartTime("2019-05-21T21:30:00.000Z")
	require.NoError(t, err)

	view, err := New(clock.Fixed(at)).VenueByID(ctx, store, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, view.PastShowsCount)
	assert.Equal(t, 0, view.UpcomingShowsCount)
}

func TestVenue_MalformedStartTimeFails(t *testing.T) {
	ctx := context.Background()
	r := brokenReader{
		Reader:     seededStore(t),
		extraShows: map[int64][]model.Show{1: {{ID: 77, StartTime: "2035-04-01T20:00:00.000", VenueID: 1, ArtistID: 4}}},
	}
	venue, err := r.Venue(ctx, 1)
	require.NoError(t, err)

	view, err := New(clock.Fixed(evaluatedAt)).Venue(ctx, r, *venue)
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrInvalidStartTime)
	assert.Empty(t, view.PastShows)
	assert.Empty(t, view.UpcomingShows)
}

func TestVenueByID_NotFound(t *testing.T) {
	_, err := New(clock.Fixed(evaluatedAt)).VenueByID(context.Background(), seededStore(t), 42)
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArtist_UpcomingAndGenres(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	s := New(clock.Fixed(evaluatedAt))

	sax, err := s.ArtistByID(ctx, store, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "Classical"}, sax.Genres)
	assert.Equal(t, 0, sax.PastShowsCount)
	assert.Equal(t, 3, sax.UpcomingShowsCount)
	assert.Nil(t, sax.FacebookLink)

	guns, err := s.ArtistByID(ctx, store, 4)
	require.NoError(t, err)
	assert.True(t, guns.SeekingVenue)
	assert.Equal(t, 1, guns.PastShowsCount)
	assert.Equal(t, len(guns.PastShows), guns.PastShowsCount)
	assert.Equal(t, len(guns.UpcomingShows), guns.UpcomingShowsCount)

	_, err = s.ArtistByID(ctx, store, 1)
	assert.ErrorIs(t, err, repository.ErrArtistNotFound)
}

func TestArtist_NilGenresSerializeAsEmptyList(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()
	a := &model.Artist{Name: "No Genre", City: "Austin", State: "TX", Phone: "1"}
	require.NoError(t, store.CreateArtist(ctx, a))

	view, err := New(clock.Fixed(evaluatedAt)).ArtistByID(ctx, store, a.ID)
	require.NoError(t, err)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"genres":[]`)
	assert.Contains(t, string(raw), `"past_shows":[]`)
	assert.Contains(t, string(raw), `"upcoming_shows":[]`)
}

func TestViews_JSONFieldNames(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	s := New(clock.Fixed(evaluatedAt))

	venue, err := s.VenueByID(ctx, store, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"id", "name", "genres", "address", "city", "state", "phone", "image_link", "website",
		"facebook_link", "seeking_talent", "seeking_description", "past_shows", "past_shows_count",
		"upcoming_shows", "upcoming_shows_count",
	}, keys(t, venue))

	artist, err := s.ArtistByID(ctx, store, 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"id", "name", "genres", "city", "state", "phone", "image_link", "website",
		"facebook_link", "seeking_venue", "seeking_description", "past_shows", "past_shows_count",
		"upcoming_shows", "upcoming_shows_count",
	}, keys(t, artist))

	show, err := s.ShowByID(ctx, store, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"id", "start_time", "venue_id", "venue_name", "artist_id", "artist_name", "artist_image_link",
	}, keys(t, show))
}

func keys(t *testing.T, v any) []string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// countingClock advances one hour on every read.
type countingClock struct {
	reads atomic.Int32
}

func (c *countingClock) Now() time.Time {
	n := c.reads.Add(1)
	return evaluatedAt.Add(time.Duration(n) * time.Hour)
}

func TestVenueByID_ReadsClockOnce(t *testing.T) {
	c := &countingClock{}
	_, err := New(c).VenueByID(context.Background(), seededStore(t), 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), c.reads.Load())
}

func TestAreas_GroupsByCityAndState(t *testing.T) {
	areas, err := New(clock.Fixed(evaluatedAt)).Areas(context.Background(), seededStore(t))
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "CA", areas[0].State)
	assert.Equal(t, []VenueSummary{
		{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 0},
		{ID: 3, Name: "Park Square Live Music & Coffee", NumUpcomingShows: 3},
	}, areas[0].Venues)

	assert.Equal(t, "New York", areas[1].City)
	assert.Equal(t, []VenueSummary{{ID: 2, Name: "The Dueling Pianos Bar", NumUpcomingShows: 0}}, areas[1].Venues)
}

func TestArtistsAndShowsListings(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	s := New(clock.Fixed(evaluatedAt))

	artists, err := s.Artists(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []ArtistSummary{
		{ID: 4, Name: "Guns N Petals"},
		{ID: 5, Name: "Matt Quevedo"},
		{ID: 6, Name: "The Wild Sax Band"},
	}, artists)

	shows, err := s.Shows(ctx, store)
	require.NoError(t, err)
	require.Len(t, shows, 5)
	assert.Equal(t, "Matt Quevedo", shows[1].ArtistName)
	assert.Equal(t, "Park Square Live Music & Coffee", shows[1].VenueName)
}

func TestNew_DefaultsToSystemClock(t *testing.T) {
	s := New(nil)
	assert.WithinDuration(t, time.Now(), s.clock.Now(), time.Minute)
}
