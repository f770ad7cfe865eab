package model

// Venue is a place that hosts shows.  It corresponds to a row in the
// "Venue" table.  Optional columns are pointers so that nil maps to
// SQL NULL and JSON null.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name.
//  Genres             – free-form genre tags (TEXT[]).
//  Address            – street address.
//  City, State        – location used to group venues in listings.
//  Phone              – contact number.
//  ImageLink          – optional picture URL.
//  Website            – optional website URL.
//  FacebookLink       – facebook page URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – optional free text describing what is sought.
type Venue struct {
	ID                 int64    // "Venue".id
	Name               string   // "Venue".name
	Genres             []string // "Venue".genres
	Address            string   // "Venue".address
	City               string   // "Venue".city
	State              string   // "Venue".state
	Phone              string   // "Venue".phone
	ImageLink          *string  // "Venue".image_link (nullable)
	Website            *string  // "Venue".website (nullable)
	FacebookLink       string   // "Venue".facebook_link
	SeekingTalent      bool     // "Venue".seeking_talent
	SeekingDescription *string  // "Venue".seeking_description (nullable)
}
