package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/model"
)

// CreateArtistRequest is the body of POST /v1/artists.
type CreateArtistRequest struct {
	Name               string   `json:"name" validate:"required,max=120"`
	Genres             []string `json:"genres" validate:"dive,required,max=120"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,max=120"`
	Phone              string   `json:"phone" validate:"required,max=120"`
	ImageLink          *string  `json:"image_link" validate:"omitempty,url,max=500"`
	Website            *string  `json:"website" validate:"omitempty,url"`
	FacebookLink       *string  `json:"facebook_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription *string  `json:"seeking_description"`
}

func (r CreateArtistRequest) artist() model.Artist {
	return model.Artist{
		Name:               r.Name,
		Genres:             r.Genres,
		City:               r.City,
		State:              r.State,
		Phone:              r.Phone,
		ImageLink:          r.ImageLink,
		Website:            r.Website,
		FacebookLink:       r.FacebookLink,
		SeekingVenue:       r.SeekingVenue,
		SeekingDescription: r.SeekingDescription,
	}
}

// ListArtists returns the id and name of every artist.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Serializer.Artists(c.Request().Context(), h.Store)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": artists})
}

// GetArtist returns one artist with its past and upcoming shows.
func (h *Handler) GetArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	view, err := h.Serializer.ArtistByID(c.Request().Context(), h.Store, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CreateArtist stores a new artist and returns its serialized form.
func (h *Handler) CreateArtist(c echo.Context) error {
	var req CreateArtistRequest
	if msg := bind(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	a := req.artist()
	if err := h.Store.CreateArtist(ctx, &a); err != nil {
		return h.fail(c, err)
	}
	view, err := h.Serializer.ArtistByID(ctx, h.Store, a.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// DeleteArtist removes an artist that has no shows.
func (h *Handler) DeleteArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Store.DeleteArtist(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
