package domain

import "fmt"

// Role is the closed set of user roles. Keeping it a dedicated type (rather
// than a free string) stops invalid roles from ever reaching storage.
type Role string

const (
	// RoleImam is the privileged role allowed to mark answers accepted.
	RoleImam Role = "Imam"
	// RoleParent is the default authenticated role.
	RoleParent Role = "Parent"
)

// ParseRole validates a raw role string from an untrusted boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleImam:
		return RoleImam, nil
	case RoleParent:
		return RoleParent, nil
	default:
		return "", fmt.Errorf("role must be either %s or %s", RoleImam, RoleParent)
	}
}

func (r Role) String() string { return string(r) }
