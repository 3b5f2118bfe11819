package schema

// BookingShowTable represents the 'booking.show' table
type BookingShowTable struct {
	Table     string
	ID        string
	StartTime string
	ArtistID  string
	VenueID   string
}

// BookingShow is the schema definition for booking.show
var BookingShow = BookingShowTable{
	Table:     "booking.show",
	ID:        "id",
	StartTime: "start_time",
	ArtistID:  "artist_id",
	VenueID:   "venue_id",
}

func (t BookingShowTable) Columns() []string {
	return []string{t.ID, t.StartTime, t.ArtistID, t.VenueID}
}

// Tables lists every booking table, parents first.
func Tables() []string {
	return []string{BookingVenue.Table, BookingArtist.Table, BookingShow.Table}
}
