package models

import "fmt"

// Role is an ordinal authorization level. The zero value is the regular
// user role, so a user created without an explicit role gets the lowest
// privilege.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleSuperAdmin
)

var roleNames = [...]string{"user", "admin", "superadmin"}

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	return r >= RoleUser && r <= RoleSuperAdmin
}

// ParseRole maps a role name back to its ordinal.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// RolePredicate decides whether a role may pass a gate. Predicates compose,
// so route rules like "admin or superadmin" are built from the primitives
// below instead of one hand-written check per route.
type RolePredicate func(Role) bool

// Is passes only the exact role.
func Is(want Role) RolePredicate {
	return func(r Role) bool { return r == want }
}

// IsNot passes every role except the given one.
func IsNot(deny Role) RolePredicate {
	return func(r Role) bool { return r != deny }
}

// AtLeast passes roles ranked at or above min.
func AtLeast(min Role) RolePredicate {
	return func(r Role) bool { return r >= min }
}

// AnyOf passes any of the listed roles.
func AnyOf(roles ...Role) RolePredicate {
	return func(r Role) bool {
		for _, want := range roles {
			if r == want {
				return true
			}
		}
		return false
	}
}
