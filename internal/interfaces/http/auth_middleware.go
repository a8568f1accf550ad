package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	localPayload = "token_payload"
)

// AuthMiddleware valida el Bearer Token JWT (access) y deja el payload en c.Locals.
func AuthMiddleware(accessSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondError(c, fiber.StatusUnauthorized, "Authorization header requerido", nil)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondError(c, fiber.StatusUnauthorized, "formato: Bearer <token>", nil)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondError(c, fiber.StatusUnauthorized, "token vacío", nil)
		}
		payload, err := jwt.Parse(accessSecret, tokenString)
		if err != nil {
			// Expirado y firma inválida responden igual hacia afuera.
			return respondError(c, fiber.StatusUnauthorized, "token inválido o expirado", nil)
		}
		c.Locals(localPayload, payload)
		return c.Next()
	}
}

// Authorized decide si un rol puede ejecutar una operación restringida a required.
// Función pura: lista vacía permite a cualquiera, superAdmin pasa siempre,
// el resto por pertenencia a la lista.
func Authorized(required []string, role string) bool {
	if len(required) == 0 {
		return true
	}
	if role == entity.RoleSuperAdmin {
		return true
	}
	return slices.Contains(required, role)
}

// RequireRole devuelve un middleware que autoriza por rol del token.
// Debe usarse DESPUÉS de AuthMiddleware. La decisión se evalúa en cada
// request con el rol del token recién verificado, nunca se cachea.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(roles) == 0 {
			return c.Next()
		}
		role := GetRole(c)
		if role == "" {
			return respondError(c, fiber.StatusUnauthorized, "token sin rol", nil)
		}
		if !Authorized(roles, role) {
			return respondError(c, fiber.StatusForbidden, "acceso denegado: rol insuficiente", nil)
		}
		return c.Next()
	}
}

// GetPayload devuelve el payload verificado del contexto, o nil si no hay.
func GetPayload(c *fiber.Ctx) *jwt.Payload {
	p, _ := c.Locals(localPayload).(*jwt.Payload)
	return p
}

// GetUserID devuelve el sub del token (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	if p := GetPayload(c); p != nil {
		return p.UserID
	}
	return ""
}

// GetRole devuelve el rol del token (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	if p := GetPayload(c); p != nil {
		return p.Role
	}
	return ""
}
