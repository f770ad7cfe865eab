// Package queue defines the messages exchanged over RabbitMQ and the
// consumer that reads them.
package queue

// ShowCreatedQueue is the durable queue show events are published to.
const ShowCreatedQueue = "show.created"

// ShowCreatedEvent is published after a show has been booked.  It carries
// the venue and artist names so consumers need not query the store.
type ShowCreatedEvent struct {
	ShowID     int64  `json:"show_id"`
	StartTime  string `json:"start_time"`
	VenueID    int64  `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	ArtistID   int64  `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	CreatedAt  string `json:"created_at"`
}
