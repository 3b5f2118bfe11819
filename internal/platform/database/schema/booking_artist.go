package schema

// BookingArtistTable represents the 'booking.artist' table
type BookingArtistTable struct {
	Table              string
	ID                 string
	Name               string
	City               string
	State              string
	Phone              string
	Genres             string
	ImageLink          string
	FacebookLink       string
	SeekingVenue       string
	SeekingDescription string
	Website            string
	CreatedAt          string
	UpdatedAt          string
}

// BookingArtist is the schema definition for booking.artist
var BookingArtist = BookingArtistTable{
	Table:              "booking.artist",
	ID:                 "id",
	Name:               "name",
	City:               "city",
	State:              "state",
	Phone:              "phone",
	Genres:             "genres",
	ImageLink:          "image_link",
	FacebookLink:       "facebook_link",
	SeekingVenue:       "seeking_venue",
	SeekingDescription: "seeking_description",
	Website:            "website",
	CreatedAt:          "created_at",
	UpdatedAt:          "updated_at",
}

func (t BookingArtistTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.City, t.State, t.Phone, t.Genres, t.ImageLink, t.FacebookLink,
		t.SeekingVenue, t.SeekingDescription, t.Website, t.CreatedAt, t.UpdatedAt,
	}
}
