package models

import "github.com/golang-jwt/jwt/v5"

// NameIdentifierClaim is the claim type some clients use to carry the user id
// instead of "sub".
const NameIdentifierClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"

// AccessClaims are the claims of an access token. Subject and NameIdentifier
// both hold the user id.
type AccessClaims struct {
	SessionID      string `json:"sid"`
	NameIdentifier string `json:"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier,omitempty"`
	jwt.RegisteredClaims
}
