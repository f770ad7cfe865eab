package model

// Show is a single performance of an artist at a venue.
//
// StartTime is kept exactly as stored ("2019-05-21T21:30:00.000Z").  It is
// only parsed when shows are classified as past or upcoming, so a malformed
// value surfaces at read time rather than being silently normalised.
type Show struct {
	ID        int64  // "Show".id
	StartTime string // "Show".start_time
	VenueID   int64  // "Show".venue_id -> "Venue".id
	ArtistID  int64  // "Show".artist_id -> "Artist".id
}
