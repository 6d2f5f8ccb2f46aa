package auth

import (
	"crypto/subtle"

	"logisched-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Password string `json:"password"`
}

// POST /api/auth/login - troca a senha-mestra por um token com papel
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Senha é obrigatória")
		}

		var role Role
		switch {
		case matchPassword(body.Password, cfg.AdminPassword, cfg.AdminPasswordHash):
			role = RoleAdmin
		case matchPassword(body.Password, cfg.CollabPassword, cfg.CollabPasswordHash):
			role = RoleCollab
		default:
			return fiber.NewError(fiber.StatusUnauthorized, "Senha inválida")
		}

		token, err := GenerateToken(cfg.JWTSecret, role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		return c.JSON(fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
			"role":         role,
		})
	}
}

// matchPassword compara com o hash bcrypt quando configurado; caso
// contrário cai na comparação em tempo constante da senha em texto puro.
func matchPassword(given, plain, hash string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(given)) == nil
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(plain)) == 1
}
