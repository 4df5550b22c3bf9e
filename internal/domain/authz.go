package domain

// Requirement is the access level a route demands.
type Requirement string

const (
	// RequireNone admits every request, authenticated or not.
	RequireNone Requirement = "NONE"
	// RequireAuthenticated admits any signed-in identity regardless of role.
	RequireAuthenticated Requirement = "AUTHENTICATED"
	RequireStudent       Requirement = "STUDENT"
	RequireAdmin         Requirement = "ADMIN"
)

// Decision is the outcome of evaluating a session against a requirement.
type Decision string

const (
	Allow           Decision = "ALLOW"
	Unauthenticated Decision = "UNAUTHENTICATED"
	Forbidden       Decision = "FORBIDDEN"
)

// Authorize decides whether the session satisfies the requirement.
// It is a pure function of its inputs: no side effects, deterministic, and it
// must be evaluated before the guarded operation runs. A nil session means no
// identity is signed in.
func Authorize(sess *Session, required Requirement) Decision {
	if required == RequireNone {
		return Allow
	}
	if sess == nil {
		return Unauthenticated
	}
	switch required {
	case RequireAuthenticated:
		return Allow
	case RequireStudent:
		if sess.Role == RoleStudent {
			return Allow
		}
	case RequireAdmin:
		if sess.Role == RoleAdmin {
			return Allow
		}
	}
	return Forbidden
}
