package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the access token payload issued by the identity provider. UserID is the student
// whose data the request may touch.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Gender   string `json:"gender,omitempty"`
	jwt.RegisteredClaims
}
