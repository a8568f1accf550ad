package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/domain"
)

// Envelope formato estándar de toda respuesta de la API, exitosa o no.
type Envelope struct {
	Code     int                 `json:"code"`
	Message  string              `json:"message"`
	Data     any                 `json:"data"`
	Metadata Metadata            `json:"metadata"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// Metadata metadatos de la respuesta.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// respond envuelve datos exitosos en el envelope estándar.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{
		Code:     status,
		Message:  "Success",
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	})
}

// respondError responde un error con detalle por campo opcional.
// Nunca incluye stack traces ni identificadores internos.
func respondError(c *fiber.Ctx, status int, message string, fieldErrors map[string][]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string][]string{"general": {message}}
	}
	return c.Status(status).JSON(Envelope{
		Code:     status,
		Message:  message,
		Data:     nil,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
		Errors:   fieldErrors,
	})
}

// respondDomainError mapea errores de dominio a códigos HTTP.
//
// Las fallas de autenticación no se detallan hacia afuera: InvalidCredentials
// e InvalidToken llegan como un 401 genérico sin distinguir la causa.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, "credenciales inválidas", nil)
	case errors.Is(err, domain.ErrInvalidToken):
		return respondError(c, fiber.StatusUnauthorized, "token inválido o expirado", nil)
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "acceso denegado", nil)
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, "recurso no encontrado", nil)
	case errors.Is(err, domain.ErrConflict):
		var conflict *domain.ConflictError
		fieldErrors := map[string][]string(nil)
		if errors.As(err, &conflict) && conflict.Field != "" {
			fieldErrors = map[string][]string{conflict.Field: {conflict.Error()}}
		}
		return respondError(c, fiber.StatusConflict, "registro duplicado", fieldErrors)
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "entrada inválida", nil)
	default:
		return respondError(c, fiber.StatusInternalServerError, "error interno", nil)
	}
}
