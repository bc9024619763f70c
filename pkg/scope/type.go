package scope

import "github.com/golang-jwt/jwt"

// Payload represents the JWT token claims issued by the identity service.
type Payload struct {
	jwt.StandardClaims
	UserID    string `json:"sub"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
	Type      string `json:"type"`
}

type implManager struct {
	secretKey string
}

type (
	PayloadCtxKey struct{}
	ScopeCtxKey   struct{}
)
