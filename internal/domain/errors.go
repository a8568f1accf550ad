package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
//
// ErrInvalidCredentials cubre tanto "usuario no existe" como "password
// incorrecta": el login nunca debe revelar cuál de las dos falló.
// ErrInvalidToken cubre cualquier fallo del refresh (firma, expiración,
// usuario borrado) por la misma razón.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidInput       = errors.New("entrada inválida")
)

// ConflictError violación de unicidad indicando el campo afectado (ej. "email").
// errors.Is(err, ErrConflict) devuelve true para este tipo.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "ya existe un registro con ese valor"
	}
	return fmt.Sprintf("ya existe un registro con ese %s", e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
