package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims carried by the session cookie.
type Payload struct {
	// StandardClaims embeds the JWT standard fields (Exp, Iat, Iss)
	// used for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// UserID is the account identifier (Mongo ObjectID hex) of the
	// authenticated user.
	UserID string `json:"userId"`
}
