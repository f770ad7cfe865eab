package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/schedule"
)

func TestLoad_IntoMemory(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	res, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, Result{Venues: 3, Artists: 3, Shows: 5}, res)

	hop, err := store.Venue(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", hop.Name)
	assert.True(t, hop.SeekingTalent)

	sax, err := store.Artist(ctx, 6)
	require.NoError(t, err)
	assert.Nil(t, sax.FacebookLink)
	assert.Nil(t, sax.Website)
	assert.False(t, sax.SeekingVenue)

	park, err := store.ShowsByVenue(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, park, 4)
}

func TestLoad_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	_, err := Load(ctx, store)
	require.NoError(t, err)
	res, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	shows, err := store.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, 5)
}

func TestShows_AllStartTimesParse(t *testing.T) {
	for _, s := range Shows() {
		_, err := schedule.ParseStartTime(s.StartTime)
		assert.NoError(t, err, "show %d", s.ID)
	}
}

func TestFixtures_ReturnFreshCopies(t *testing.T) {
	v := Venues()
	v[0].Genres[0] = "changed"
	assert.Equal(t, "Jazz", Venues()[0].Genres[0])
}
