package domain

// Role is the access-level discriminator gating mutation routes.
// It is a closed enumeration: any value outside the two constants is invalid.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

// Legacy numeric role markers carried by stored records and the sign-in pages.
const (
	studentDiscriminator = 1
	adminDiscriminator   = 2
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Discriminator returns the legacy numeric marker (Student=1, Admin=2).
// Unknown roles map to 0, which no stored record carries.
func (r Role) Discriminator() int {
	switch r {
	case RoleStudent:
		return studentDiscriminator
	case RoleAdmin:
		return adminDiscriminator
	default:
		return 0
	}
}

// RoleFromDiscriminator converts the legacy numeric marker back into a Role.
func RoleFromDiscriminator(n int) (Role, bool) {
	switch n {
	case studentDiscriminator:
		return RoleStudent, true
	case adminDiscriminator:
		return RoleAdmin, true
	default:
		return "", false
	}
}
