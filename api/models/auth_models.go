// api/models/auth_models.go
package models

import "github.com/golang-jwt/jwt/v5"

// --- JWT Claims ---

// CustomClaims includes standard claims and the calling workflow client's id
type CustomClaims struct {
	ClientID string `json:"clientId"`
	jwt.RegisteredClaims
}
