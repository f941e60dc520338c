package auth

import "openfleet/fleetkeeper/internal/constants"

// UserClaims is the narrow identity surface the rest of the system consumes:
// who is calling, and whether the owner filter may be dropped.
type UserClaims interface {
	UserID() string
	Role() string
	IsAdmin() bool
	Source() string
}

type APIKeyClaims struct {
	UserUUID  string
	RoleValue constants.UserRole
}

func (c *APIKeyClaims) UserID() string { return c.UserUUID }
func (c *APIKeyClaims) Role() string   { return string(c.RoleValue) }
func (c *APIKeyClaims) IsAdmin() bool  { return c.RoleValue == constants.RoleAdmin }
func (c *APIKeyClaims) Source() string { return "API_KEY" }

type JWTClaims struct {
	UserUUID  string
	RoleValue constants.UserRole
}

func (c *JWTClaims) UserID() string { return c.UserUUID }
func (c *JWTClaims) Role() string   { return string(c.RoleValue) }
func (c *JWTClaims) IsAdmin() bool  { return c.RoleValue == constants.RoleAdmin }
func (c *JWTClaims) Source() string { return "JWT" }
