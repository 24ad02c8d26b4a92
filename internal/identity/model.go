package identity

import "fmt"

// Role is what a caller is allowed to do. Guests browse, users own a cart
// and orders, admins manage the catalog and see every order.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

func (r Role) String() string {
	return string(r)
}

var validRoles = map[Role]bool{
	RoleAdmin: true,
	RoleUser:  true,
	RoleGuest: true,
}

func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !validRoles[role] {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
