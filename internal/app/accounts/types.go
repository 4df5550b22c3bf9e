package accounts

// PasswordHasher is the opaque hashing primitive used for stored credentials.
// The algorithm is a deployment concern; the service only needs the pair.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	// PhotoPath is the stored upload path; nil means no photo was uploaded.
	PhotoPath *string
}

// provisionState classifies a username lookup during registration. Keeping the
// three cases explicit (rather than branching on a nullable hash field) forces
// every registration path to be visibly handled.
type provisionState int

const (
	// provisionNone: no record exists for the username.
	provisionNone provisionState = iota
	// provisionIncomplete: a record exists but has no password set; registration
	// completes it in place.
	provisionIncomplete
	// provisionComplete: a fully registered identity already owns the username.
	provisionComplete
)
