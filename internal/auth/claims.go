package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"openpilotlog/logbook/internal/constants"
)

// UserClaims is what handlers may learn about the caller.
type UserClaims interface {
	UserID() string
	Role() string
	Source() string
	IsAdmin() bool
}

// TokenClaims is the payload of a bearer token.
type TokenClaims struct {
	RoleValue constants.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) UserID() string { return c.Subject }
func (c *TokenClaims) Role() string   { return c.RoleValue.String() }
func (c *TokenClaims) Source() string { return "JWT" }
func (c *TokenClaims) IsAdmin() bool  { return c.RoleValue == constants.RoleAdmin }

// LocalClaims identify requests served while bearer auth is disabled.
type LocalClaims struct{}

func (LocalClaims) UserID() string { return "local" }
func (LocalClaims) Role() string   { return constants.RoleAdmin.String() }
func (LocalClaims) Source() string { return "LOCAL" }
func (LocalClaims) IsAdmin() bool  { return true }
