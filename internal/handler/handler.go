// Package handler exposes the venue, artist and show catalogue over HTTP.
// Handlers read through one store snapshot per request and return the
// serializer's payloads unchanged.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/clock"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/schedule"
	"github.com/iliyamo/fyyur/internal/serialize"
)

// ShowEvents receives a notification for every show created over HTTP.
type ShowEvents interface {
	PublishShowCreated(ctx context.Context, ev queue.ShowCreatedEvent) error
}

// Handler bundles the store and the serializer behind the /v1 routes.
type Handler struct {
	Store      repository.EntityStore
	Serializer *serialize.Serializer
	Events     ShowEvents // optional
	Clock      clock.Clock
	Log        *zap.Logger

	pending sync.WaitGroup // background event publishes
}

// NewHandler constructs a Handler and panics if the store is nil.  events
// may be nil, in which case no show events are published.
func NewHandler(store repository.EntityStore, c clock.Clock, events ShowEvents, log *zap.Logger) *Handler {
	if store == nil {
		panic("nil store passed to NewHandler")
	}
	if c == nil {
		c = clock.System()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Store:      store,
		Serializer: serialize.New(c),
		Events:     events,
		Clock:      c,
		Log:        log,
	}
}

// Drain waits until every background event publish has finished or ctx is
// done, whichever comes first.
func (h *Handler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// bind decodes and validates the request body into req.  A non-empty
// result is the message for a 400 response.
func bind(c echo.Context, req any) string {
	if err := c.Bind(req); err != nil {
		return "invalid request body"
	}
	if err := c.Validate(req); err != nil {
		return validationMessage(err)
	}
	return ""
}

// fail maps store and serializer errors to a status code.  Dangling
// references and unparsable stored start times mean the data is wrong, not
// the request, and are reported as 500.
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, serialize.ErrDanglingReference), errors.Is(err, schedule.ErrInvalidStartTime):
		h.Log.Error("data integrity error", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "data integrity error"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		return err
	default:
		h.Log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
