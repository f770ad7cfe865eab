// Package serialize flattens venues, artists and shows into the payloads
// handed to the presentation layer.  Field names are part of the public
// contract and must not change.
package serialize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/clock"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/schedule"
)

// ErrDanglingReference is returned when a show points at a venue or artist
// that cannot be found at serialization time.
var ErrDanglingReference = errors.New("dangling reference")

// ShowView is the serialized form of a show, denormalized with the names
// of its venue and artist.
type ShowView struct {
	ID              int64   `json:"id"`
	StartTime       string  `json:"start_time"`
	VenueID         int64   `json:"venue_id"`
	VenueName       string  `json:"venue_name"`
	ArtistID        int64   `json:"artist_id"`
	ArtistName      string  `json:"artist_name"`
	ArtistImageLink *string `json:"artist_image_link"`
}

// VenueView is the serialized form of a venue with its shows split into
// past and upcoming.
type VenueView struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Genres             []string   `json:"genres"`
	Address            string     `json:"address"`
	City               string     `json:"city"`
	State              string     `json:"state"`
	Phone              string     `json:"phone"`
	ImageLink          *string    `json:"image_link"`
	Website            *string    `json:"website"`
	FacebookLink       string     `json:"facebook_link"`
	SeekingTalent      bool       `json:"seeking_talent"`
	SeekingDescription *string    `json:"seeking_description"`
	PastShows          []ShowView `json:"past_shows"`
	PastShowsCount     int        `json:"past_shows_count"`
	UpcomingShows      []ShowView `json:"upcoming_shows"`
	UpcomingShowsCount int        `json:"upcoming_shows_count"`
}

// ArtistView is the serialized form of an artist.  Genres are always a
// list, the same as for venues.
type ArtistView struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Genres             []string   `json:"genres"`
	City               string     `json:"city"`
	State              string     `json:"state"`
	Phone              string     `json:"phone"`
	ImageLink          *string    `json:"image_link"`
	Website            *string    `json:"website"`
	FacebookLink       *string    `json:"facebook_link"`
	SeekingVenue       bool       `json:"seeking_venue"`
	SeekingDescription *string    `json:"seeking_description"`
	PastShows          []ShowView `json:"past_shows"`
	PastShowsCount     int        `json:"past_shows_count"`
	UpcomingShows      []ShowView `json:"upcoming_shows"`
	UpcomingShowsCount int        `json:"upcoming_shows_count"`
}

// Viewer runs a function against one consistent snapshot of the store.
type Viewer interface {
	View(ctx context.Context, fn func(r repository.Reader) error) error
}

// Serializer builds views.  The clock is read once per top-level call so
// that every show in one payload is classified against the same instant.
type Serializer struct {
	clock clock.Clock
}

// New returns a Serializer reading the evaluation instant from c.
func New(c clock.Clock) *Serializer {
	if c == nil {
		c = clock.System()
	}
	return &Serializer{clock: c}
}

// Show serializes s, looking up its venue and artist through r.
func (s *Serializer) Show(ctx context.Context, r repository.Reader, show model.Show) (ShowView, error) {
	venue, err := r.Venue(ctx, show.VenueID)
	if err != nil {
		return ShowView{}, dangling(err, show.ID, "venue", show.VenueID)
	}
	artist, err := r.Artist(ctx, show.ArtistID)
	if err != nil {
		return ShowView{}, dangling(err, show.ID, "artist", show.ArtistID)
	}
	return ShowView{
		ID:              show.ID,
		StartTime:       show.StartTime,
		VenueID:         show.VenueID,
		VenueName:       venue.Name,
		ArtistID:        show.ArtistID,
		ArtistName:      artist.Name,
		ArtistImageLink: artist.ImageLink,
	}, nil
}

func dangling(err error, showID int64, kind string, refID int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: show %d references %s %d: %w", ErrDanglingReference, showID, kind, refID, err)
	}
	return err
}

// Venue serializes v with its past and upcoming shows.
func (s *Serializer) Venue(ctx context.Context, r repository.Reader, v model.Venue) (VenueView, error) {
	shows, err := r.ShowsByVenue(ctx, v.ID)
	if err != nil {
		return VenueView{}, err
	}
	past, upcoming, err := s.classify(ctx, r, shows, s.clock.Now())
	if err != nil {
		return VenueView{}, fmt.Errorf("venue %d: %w", v.ID, err)
	}
	return VenueView{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             genres(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		PastShows:          past,
		PastShowsCount:     len(past),
		UpcomingShows:      upcoming,
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Artist serializes a with its past and upcoming shows.
func (s *Serializer) Artist(ctx context.Context, r repository.Reader, a model.Artist) (ArtistView, error) {
	shows, err := r.ShowsByArtist(ctx, a.ID)
	if err != nil {
		return ArtistView{}, err
	}
	past, upcoming, err := s.classify(ctx, r, shows, s.clock.Now())
	if err != nil {
		return ArtistView{}, fmt.Errorf("artist %d: %w", a.ID, err)
	}
	return ArtistView{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             genres(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		PastShows:          past,
		PastShowsCount:     len(past),
		UpcomingShows:      upcoming,
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *Serializer) classify(ctx context.Context, r repository.Reader, shows []model.Show, now time.Time) (past, upcoming []ShowView, err error) {
	pastShows, upcomingShows, err := schedule.Classify(shows, now)
	if err != nil {
		return nil, nil, err
	}
	if past, err = s.shows(ctx, r, pastShows); err != nil {
		return nil, nil, err
	}
	if upcoming, err = s.shows(ctx, r, upcomingShows); err != nil {
		return nil, nil, err
	}
	return past, upcoming, nil
}

func (s *Serializer) shows(ctx context.Context, r repository.Reader, shows []model.Show) ([]ShowView, error) {
	out := make([]ShowView, 0, len(shows))
	for _, sh := range shows {
		view, err := s.Show(ctx, r, sh)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func genres(g []string) []string {
	if g == nil {
		return []string{}
	}
	return g
}

// VenueByID loads and serializes one venue inside a single snapshot.
func (s *Serializer) VenueByID(ctx context.Context, store Viewer, id int64) (VenueView, error) {
	var out VenueView
	err := store.View(ctx, func(r repository.Reader) error {
		v, err := r.Venue(ctx, id)
		if err != nil {
			return err
		}
		out, err = s.Venue(ctx, r, *v)
		return err
	})
	return out, err
}

// ArtistByID loads and serializes one artist inside a single snapshot.
func (s *Serializer) ArtistByID(ctx context.Context, store Viewer, id int64) (ArtistView, error) {
	var out ArtistView
	err := store.View(ctx, func(r repository.Reader) error {
		a, err := r.Artist(ctx, id)
		if err != nil {
			return err
		}
		out, err = s.Artist(ctx, r, *a)
		return err
	})
	return out, err
}

// ShowByID loads and serializes one show inside a single snapshot.
func (s *Serializer) ShowByID(ctx context.Context, store Viewer, id int64) (ShowView, error) {
	var out ShowView
	err := store.View(ctx, func(r repository.Reader) error {
		sh, err := r.Show(ctx, id)
		if err != nil {
			return err
		}
		out, err = s.Show(ctx, r, *sh)
		return err
	})
	return out, err
}
