package domain

// SortOrder controls directory name ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type Club struct {
	ID          ClubID
	Name        string
	Category    string
	Description string
	Photo       string
}

// ClubSummary is the directory read model: a club plus its derived member count.
// The count is always computed from the membership relation, never stored.
type ClubSummary struct {
	Club
	MemberCount int
}

// MemberRef identifies a club member for the detail view.
type MemberRef struct {
	UserID   UserID
	Username string
}

// ClubDetails is the single-club read model with member usernames populated.
type ClubDetails struct {
	Club
	Members     []MemberRef
	MemberCount int
}
