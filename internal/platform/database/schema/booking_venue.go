package schema

// BookingVenueTable represents the 'booking.venue' table
type BookingVenueTable struct {
	Table              string
	ID                 string
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingTalent      string
	SeekingDescription string
	Genres             string
	CreatedAt          string
	UpdatedAt          string
}

// BookingVenue is the schema definition for booking.venue
var BookingVenue = BookingVenueTable{
	Table:              "booking.venue",
	ID:                 "id",
	Name:               "name",
	City:               "city",
	State:              "state",
	Address:            "address",
	Phone:              "phone",
	ImageLink:          "image_link",
	FacebookLink:       "facebook_link",
	Website:            "website",
	SeekingTalent:      "seeking_talent",
	SeekingDescription: "seeking_description",
	Genres:             "genres",
	CreatedAt:          "created_at",
	UpdatedAt:          "updated_at",
}

func (t BookingVenueTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.City, t.State, t.Address, t.Phone, t.ImageLink, t.FacebookLink,
		t.Website, t.SeekingTalent, t.SeekingDescription, t.Genres, t.CreatedAt, t.UpdatedAt,
	}
}
