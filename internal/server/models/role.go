package models

import "fmt"

// Role is the closed set of account kinds. The zero value is not a valid role.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

// ParseRole converts s into a Role, rejecting anything but the known values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RolePassenger, RoleDriver:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// UnmarshalText rejects unknown roles, so decoded claims and rows never carry
// an illegal value.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %q", string(r))
	}
	return []byte(r), nil
}
