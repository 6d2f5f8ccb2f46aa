package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis de acesso. Não há usuários nominais: o login é por senha-mestra
// e o token carrega apenas o papel.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCollab Role = "collab"
)

type JWTCustomClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, role Role) (string, error) {
	claims := &JWTCustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 1 dia
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
