package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/model"
)

// CreateVenueRequest is the body of POST /v1/venues.
type CreateVenueRequest struct {
	Name               string   `json:"name" validate:"required,max=120"`
	Genres             []string `json:"genres" validate:"dive,required,max=120"`
	Address            string   `json:"address" validate:"required,max=120"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,max=120"`
	Phone              string   `json:"phone" validate:"required,max=120"`
	ImageLink          *string  `json:"image_link" validate:"omitempty,url,max=500"`
	Website            *string  `json:"website" validate:"omitempty,url"`
	FacebookLink       string   `json:"facebook_link" validate:"required,url,max=120"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description"`
}

func (r CreateVenueRequest) venue() model.Venue {
	return model.Venue{
		Name:               r.Name,
		Genres:             r.Genres,
		Address:            r.Address,
		City:               r.City,
		State:              r.State,
		Phone:              r.Phone,
		ImageLink:          r.ImageLink,
		Website:            r.Website,
		FacebookLink:       r.FacebookLink,
		SeekingTalent:      r.SeekingTalent,
		SeekingDescription: r.SeekingDescription,
	}
}

// ListVenues returns the venues grouped by city and state.
func (h *Handler) ListVenues(c echo.Context) error {
	areas, err := h.Serializer.Areas(c.Request().Context(), h.Store)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": areas})
}

// GetVenue returns one venue with its past and upcoming shows.
func (h *Handler) GetVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	view, err := h.Serializer.VenueByID(c.Request().Context(), h.Store, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CreateVenue stores a new venue and returns its serialized form.
func (h *Handler) CreateVenue(c echo.Context) error {
	var req CreateVenueRequest
	if msg := bind(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	v := req.venue()
	if err := h.Store.CreateVenue(ctx, &v); err != nil {
		return h.fail(c, err)
	}
	view, err := h.Serializer.VenueByID(ctx, h.Store, v.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// DeleteVenue removes a venue that has no shows.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Store.DeleteVenue(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
