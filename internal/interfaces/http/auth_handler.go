package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/application/auth"
	"github.com/jhoicas/usuarios-api/internal/application/dto"
)

// AuthHandler maneja login y refresh.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username_or_email, password"
// @Success      200   {object}  dto.TokenPairResponse
// @Failure      401   {object}  Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	if in.UsernameOrEmail == "" || in.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "username_or_email y password son requeridos", nil)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Refresh godoc
// @Summary      Renovar tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.TokenPairResponse
// @Failure      401   {object}  Envelope
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	if in.RefreshToken == "" {
		return respondError(c, fiber.StatusBadRequest, "refresh_token es requerido", nil)
	}
	out, err := h.uc.Refresh(in.RefreshToken)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
