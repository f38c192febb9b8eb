package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// LocalUser clave de c.Locals con el *entity.User autenticado.
const LocalUser = "user"

// Authenticator resuelve un token al usuario vigente. Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y carga el usuario (releído de DB) en c.Locals.
//
//   - 401 MISSING_TOKEN  → sin header o token vacío.
//   - 401 INVALID_TOKEN  → formato incorrecto, firma inválida, expirado o usuario inexistente.
//   - 403 FORBIDDEN      → cuenta inactiva.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header requerido", Code: "MISSING_TOKEN"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "formato: Bearer <token>", Code: "INVALID_TOKEN"})
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token vacío", Code: "MISSING_TOKEN"})
		}

		user, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "cuenta inactiva", Code: "FORBIDDEN"})
			}
			return fail(c, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// GetUser devuelve el usuario autenticado o nil.
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetUserID devuelve el ID del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.ID
	}
	return ""
}

// GetRole devuelve el rol del usuario autenticado o "".
func GetRole(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.Role
	}
	return ""
}
