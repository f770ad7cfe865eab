// Package seed holds the demo data the application ships with: three
// venues, three artists and five shows, two in the past and three far in
// the future.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Venues returns fresh copies of the seed venues (ids 1-3).
func Venues() []model.Venue {
	return []model.Venue{
		{
			ID:                 1,
			Name:               "The Musical Hop",
			Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			Address:            "1015 Folsom Street",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "123-123-1-234",
			Website:            model.String("https://www.themusicalhop.com"),
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: model.String("We are on the lookout for a local artist to play every two weeks. Please call us."),
			ImageLink:          model.String("https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=400&q=60"),
		},
		{
			ID:           2,
			Name:         "The Dueling Pianos Bar",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			Address:      "335 Delancey Street",
			City:         "New York",
			State:        "NY",
			Phone:        "914-003-1132",
			Website:      model.String("https://www.theduelingpianos.com"),
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			ImageLink:    model.String("https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=750&q=80"),
		},
		{
			ID:           3,
			Name:         "Park Square Live Music & Coffee",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Address:      "34 Whiskey Moore Ave",
			City:         "San Francisco",
			State:        "CA",
			Phone:        "415-000-1234",
			Website:      model.String("https://www.parksquarelivemusicandcoffee.com"),
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			ImageLink:    model.String("https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=747&q=80"),
		},
	}
}

// Artists returns fresh copies of the seed artists (ids 4-6).
func Artists() []model.Artist {
	return []model.Artist{
		{
			ID:                 4,
			Name:               "Guns N Petals",
			Genres:             []string{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Website:            model.String("https://www.gunsnpetalsband.com"),
			FacebookLink:       model.String("https://www.facebook.com/GunsNPetals"),
			SeekingVenue:       true,
			SeekingDescription: model.String("Looking for shows to perform at in the San Francisco Bay Area!"),
			ImageLink:          model.String("https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=300&q=80"),
		},
		{
			ID:           5,
			Name:         "Matt Quevedo",
			Genres:       []string{"Jazz"},
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: model.String("https://www.facebook.com/mattquevedo923251523"),
			ImageLink:    model.String("https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=334&q=80"),
		},
		{
			ID:        6,
			Name:      "The Wild Sax Band",
			Genres:    []string{"Jazz", "Classical"},
			City:      "San Francisco",
			State:     "CA",
			Phone:     "432-325-5432",
			ImageLink: model.String("https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=794&q=80"),
		},
	}
}

// Shows returns the seed shows.  IDs are assigned in this order.
func Shows() []model.Show {
	return []model.Show{
		{ID: 1, StartTime: "2019-05-21T21:30:00.000Z", VenueID: 1, ArtistID: 4},
		{ID: 2, StartTime: "2019-06-15T23:00:00.000Z", VenueID: 3, ArtistID: 5},
		{ID: 3, StartTime: "2035-04-01T20:00:00.000Z", VenueID: 3, ArtistID: 6},
		{ID: 4, StartTime: "2035-04-08T20:00:00.000Z", VenueID: 3, ArtistID: 6},
		{ID: 5, StartTime: "2035-04-15T20:00:00.000Z", VenueID: 3, ArtistID: 6},
	}
}

// Result counts the rows Load actually inserted.
type Result struct {
	Venues  int
	Artists int
	Shows   int
}

// Load inserts the seed data through w.  Rows whose id already exists are
// skipped, so running it against a seeded store is a no-op.
func Load(ctx context.Context, w repository.Writer) (Result, error) {
	var res Result
	for _, v := range Venues() {
		inserted, err := skipConflict(w.CreateVenue(ctx, &v))
		if err != nil {
			return res, fmt.Errorf("seed venue %d: %w", v.ID, err)
		}
		if inserted {
			res.Venues++
		}
	}
	for _, a := range Artists() {
		inserted, err := skipConflict(w.CreateArtist(ctx, &a))
		if err != nil {
			return res, fmt.Errorf("seed artist %d: %w", a.ID, err)
		}
		if inserted {
			res.Artists++
		}
	}
	for _, s := range Shows() {
		inserted, err := skipConflict(w.CreateShow(ctx, &s))
		if err != nil {
			return res, fmt.Errorf("seed show %d: %w", s.ID, err)
		}
		if inserted {
			res.Shows++
		}
	}
	return res, nil
}

func skipConflict(err error) (bool, error) {
	if errors.Is(err, repository.ErrConflict) {
		return false, nil
	}
	return err == nil, err
}
