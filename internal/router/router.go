// Package router registers the HTTP routes of the API.
package router

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterRoutes registers the unauthenticated health check.  ping, when
// non-nil, is consulted on every check.
func RegisterRoutes(e *echo.Echo, ping func(ctx context.Context) error) {
	e.GET("/healthz", handler.Health(ping))
}

// RegisterCatalog registers the venue, artist and show endpoints under /v1.
// Extra middleware, such as the rate limiter, applies to the whole group.
func RegisterCatalog(e *echo.Echo, h *handler.Handler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	// ---- Venues ----
	g.GET("/venues", h.ListVenues)
	g.POST("/venues", h.CreateVenue)
	g.GET("/venues/:id", h.GetVenue)
	g.DELETE("/venues/:id", h.DeleteVenue)

	// ---- Artists ----
	g.GET("/artists", h.ListArtists)
	g.POST("/artists", h.CreateArtist)
	g.GET("/artists/:id", h.GetArtist)
	g.DELETE("/artists/:id", h.DeleteArtist)

	// ---- Shows ----
	g.GET("/shows", h.ListShows)
	g.POST("/shows", h.CreateShow)
	g.GET("/shows/:id", h.GetShow)
}
