package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the only supported JWT claims shape for this platform.
// Subject carries the numeric user id as a string; UserID() is the typed
// accessor. A new claims set is minted for every issuance, never extended.
type Claims struct {
	jwt.RegisteredClaims

	Username  string    `json:"username"`
	RoleID    *int64    `json:"role_id"`
	TokenType TokenType `json:"type"`
}

// UserID parses the subject claim into the numeric user id.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}
