package domain

// UserID is an internal identifier for an identity record.
type UserID string

// ClubID is the club's public numeric identifier.
type ClubID int64

// EventID is the event's public numeric identifier.
type EventID int64

// ReviewID is an internal identifier for a review record.
type ReviewID string
