package model

// Artist is a performer that plays shows at venues.  It corresponds to a
// row in the "Artist" table.  Unlike Venue it has no street address and
// its facebook link is optional.
type Artist struct {
	ID                 int64    // "Artist".id
	Name               string   // "Artist".name
	Genres             []string // "Artist".genres
	City               string   // "Artist".city
	State              string   // "Artist".state
	Phone              string   // "Artist".phone
	ImageLink          *string  // "Artist".image_link (nullable)
	Website            *string  // "Artist".website (nullable)
	FacebookLink       *string  // "Artist".facebook_link (nullable)
	SeekingVenue       bool     // "Artist".seeking_venue
	SeekingDescription *string  // "Artist".seeking_description (nullable)
}
