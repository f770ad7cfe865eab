package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/schedule"
	"github.com/iliyamo/fyyur/internal/serialize"
)

// publishTimeout bounds the background publish of a show event.
const publishTimeout = 5 * time.Second

// CreateShowRequest is the body of POST /v1/shows.
type CreateShowRequest struct {
	ArtistID  int64  `json:"artist_id" validate:"required,gt=0"`
	VenueID   int64  `json:"venue_id" validate:"required,gt=0"`
	StartTime string `json:"start_time" validate:"required,starttime"`
}

// ListShows returns every show with its venue and artist names.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.Serializer.Shows(c.Request().Context(), h.Store)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": shows})
}

// GetShow returns one show.
func (h *Handler) GetShow(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	view, err := h.Serializer.ShowByID(c.Request().Context(), h.Store, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// CreateShow books an artist at a venue.  Unknown venue or artist ids are
// a bad request rather than a missing resource.
func (h *Handler) CreateShow(c echo.Context) error {
	var req CreateShowRequest
	if msg := bind(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	s := model.Show{StartTime: req.StartTime, VenueID: req.VenueID, ArtistID: req.ArtistID}
	if err := h.Store.CreateShow(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, schedule.ErrInvalidStartTime) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return h.fail(c, err)
	}
	view, err := h.Serializer.ShowByID(ctx, h.Store, s.ID)
	if err != nil {
		return h.fail(c, err)
	}
	h.publishShowCreated(ctx, view)
	return c.JSON(http.StatusCreated, view)
}

// publishShowCreated sends the event in the background.  Failures are
// logged and otherwise ignored.
func (h *Handler) publishShowCreated(ctx context.Context, v serialize.ShowView) {
	if h.Events == nil {
		return
	}
	ev := queue.ShowCreatedEvent{
		ShowID:     v.ID,
		StartTime:  v.StartTime,
		VenueID:    v.VenueID,
		VenueName:  v.VenueName,
		ArtistID:   v.ArtistID,
		ArtistName: v.ArtistName,
		CreatedAt:  schedule.FormatStartTime(h.Clock.Now()),
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := h.Events.PublishShowCreated(ctx, ev); err != nil {
			h.Log.Warn("show event not published", zap.Int64("show_id", ev.ShowID), zap.Error(err))
		}
	}()
}
