package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/usuarios-api/internal/domain"
)

// uniqueViolation detecta una violación de constraint único (23505) y la
// traduce a ConflictError con el campo afectado deducido del nombre del
// constraint (convención: <tabla>_<columna>_key).
func uniqueViolation(err error) (*domain.ConflictError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil, false
	}
	return &domain.ConflictError{Field: constraintField(pgErr.ConstraintName)}, true
}

func constraintField(constraint string) string {
	switch {
	case strings.Contains(constraint, "email"):
		return "email"
	case strings.Contains(constraint, "username"):
		return "username"
	}
	return ""
}
