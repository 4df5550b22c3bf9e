package domain

// Session is the per-client authenticated state: a snapshot of the Identity
// taken at sign-in time, not a live reference. It lives for the browser
// session and is destroyed on sign-out.
type Session struct {
	UserID   UserID
	Username string
	Role     Role
	Photo    *string
}
