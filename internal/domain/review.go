package domain

import "time"

// Review is a free-text club review. ClubName is a loose reference by name.
type Review struct {
	ID           ReviewID
	ReviewerName string
	Rating       int
	Text         string
	ClubName     string
	CreatedAt    time.Time
}
