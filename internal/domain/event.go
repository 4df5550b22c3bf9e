package domain

// Event is a club event. Date and time are kept as the display strings the
// pages submit; ClubID is a loose reference and is not enforced as a foreign key.
type Event struct {
	ID          EventID
	Name        string
	Date        string
	Time        string
	Location    string
	Description string
	ClubID      ClubID
}
