package serialize

import (
	"context"
	"fmt"

	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/schedule"
)

// VenueSummary is one entry of the venue index page.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues of one city.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// ArtistSummary is one entry of the artist index page.
type ArtistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Areas lists every venue grouped by (city, state).  Areas appear in the
// order their first venue was created.
func (s *Serializer) Areas(ctx context.Context, store Viewer) ([]Area, error) {
	areas := []Area{}
	err := store.View(ctx, func(r repository.Reader) error {
		venues, err := r.ListVenues(ctx)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		index := map[[2]string]int{}
		for _, v := range venues {
			shows, err := r.ShowsByVenue(ctx, v.ID)
			if err != nil {
				return err
			}
			upcoming, err := schedule.Upcoming(shows, now)
			if err != nil {
				return fmt.Errorf("venue %d: %w", v.ID, err)
			}
			key := [2]string{v.City, v.State}
			i, ok := index[key]
			if !ok {
				i = len(areas)
				index[key] = i
				areas = append(areas, Area{City: v.City, State: v.State, Venues: []VenueSummary{}})
			}
			areas[i].Venues = append(areas[i].Venues, VenueSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: len(upcoming)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return areas, nil
}

// Artists lists every artist by id and name.
func (s *Serializer) Artists(ctx context.Context, r repository.Reader) ([]ArtistSummary, error) {
	artists, err := r.ListArtists(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

// Shows serializes every show inside one snapshot.
func (s *Serializer) Shows(ctx context.Context, store Viewer) ([]ShowView, error) {
	var out []ShowView
	err := store.View(ctx, func(r repository.Reader) error {
		shows, err := r.ListShows(ctx)
		if err != nil {
			return err
		}
		out, err = s.shows(ctx, r, shows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
