package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the only supported JWT claims shape for this service.
// UserID is the auth_user id of a staff account.
type Claims struct {
	jwt.RegisteredClaims

	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"token_type"`
}
