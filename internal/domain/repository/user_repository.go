package repository

import (
	"time"

	"github.com/jhoicas/usuarios-api/internal/domain/criteria"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

// UserUpdate campos mutables de un usuario; nil significa "sin cambio".
// UpdatedBy vacío no pisa el valor existente (ej. el estampado de last_login
// durante el login no tiene actor administrativo).
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *string
	PhoneNumber  *string
	DocumentID   *string
	DocumentType *string
	IsActive     *bool
	LastLogin    *time.Time
	UpdatedBy    string
}

// UserRepository define el puerto de persistencia para User (DIP).
//
// Los Find* devuelven (nil, nil) cuando no hay usuario ACTIVO que coincida;
// los usuarios con borrado lógico son invisibles para estas búsquedas.
type UserRepository interface {
	Create(user *entity.User) error
	FindByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	// UpdateByID aplica los cambios no nulos y estampa updated_at.
	// Devuelve ErrUserNotFound si el id no existe.
	UpdateByID(id string, changes UserUpdate) (*entity.User, error)
	// SoftDelete marca is_active=false y estampa deleted_at/deleted_by.
	SoftDelete(id, deletedBy string) (*entity.User, error)
	// FindWithCriteria devuelve la página de usuarios que cumplen el predicado
	// y el total de coincidencias sin paginar, ambos leídos del mismo snapshot.
	FindWithCriteria(where criteria.Where, offset, limit int, orderBy string) ([]*entity.User, int, error)
	// ExistsByRole indica si existe algún usuario (activo o no) con ese rol.
	ExistsByRole(role string) (bool, error)
}
