// Package session manages the signed-in identity and its persistence.
package session

import (
	"fmt"
	"strings"
)

// Role is the closed set of account kinds.
type Role int

const (
	RoleJobSeeker Role = iota + 1
	RoleRecruiter
)

func (r Role) String() string {
	switch r {
	case RoleJobSeeker:
		return "jobseeker"
	case RoleRecruiter:
		return "recruiter"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleRecruiter
}

// ParseRole accepts exactly "jobseeker" or "recruiter", ignoring case and surrounding space.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jobseeker":
		return RoleJobSeeker, nil
	case "recruiter":
		return RoleRecruiter, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity is the persisted session record.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
