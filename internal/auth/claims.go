package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// Subject carries the decimal user id; Roles is an open set of role names
// resolved from the database at issuance time. The payload is signed, not
// encrypted — nothing secret may be placed here.
type Claims struct {
	jwt.RegisteredClaims

	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}
