package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/criteria"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// userFilters especificación de filtros buscables de User.
// Texto libre va por ILIKE; enumeraciones y flags por igualdad.
var userFilters = criteria.FilterSpec{
	"username":      {Column: "username", Operator: criteria.OpILike},
	"email":         {Column: "email", Operator: criteria.OpILike},
	"phone_number":  {Column: "phone_number", Operator: criteria.OpILike},
	"document_id":   {Column: "document_id", Operator: criteria.OpILike},
	"role":          {Column: "role", Operator: criteria.OpEquals},
	"document_type": {Column: "document_type", Operator: criteria.OpEquals},
	"is_active":     {Column: criteria.ActiveColumn, Operator: criteria.OpEquals},
}

// defaultOrderBy orden por defecto de los listados.
const defaultOrderBy = "created_at DESC"

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ConflictError si username o email ya existen.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		PhoneNumber:  in.PhoneNumber,
		DocumentID:   in.DocumentID,
		DocumentType: in.DocumentType,
		IsActive:     true,
		CreatedAt:    time.Now(),
		CreatedBy:    in.CreatedBy,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario activo por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update aplica una actualización parcial. Si viene password se re-hashea.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}

	changes := repository.UserUpdate{
		Username:     in.Username,
		Email:        in.Email,
		Role:         in.Role,
		PhoneNumber:  in.PhoneNumber,
		DocumentID:   in.DocumentID,
		DocumentType: in.DocumentType,
		UpdatedBy:    in.UpdatedBy,
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashear password: %w", err)
		}
		h := string(hash)
		changes.PasswordHash = &h
	}

	updated, err := uc.repo.UpdateByID(id, changes)
	if err != nil {
		return nil, err
	}
	return toUserResponse(updated), nil
}

// Delete hace el borrado lógico del usuario estampando el actor.
func (uc *UserUseCase) Delete(id, deletedBy string) (*dto.UserResponse, error) {
	existing, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}
	deleted, err := uc.repo.SoftDelete(id, deletedBy)
	if err != nil {
		return nil, err
	}
	return toUserResponse(deleted), nil
}

// Search ejecuta la búsqueda con criteria: predicado + paginación contra un
// snapshot consistente, y calcula total de páginas.
func (uc *UserUseCase) Search(in dto.SearchUsersRequest) (*dto.SearchUsersResponse, error) {
	values := map[string]any{}
	putString(values, "username", in.Username)
	putString(values, "email", in.Email)
	putString(values, "role", in.Role)
	putString(values, "phone_number", in.PhoneNumber)
	putString(values, "document_id", in.DocumentID)
	putString(values, "document_type", in.DocumentType)
	if in.IsActive != nil {
		values["is_active"] = *in.IsActive
	}

	where := criteria.BuildWhere(userFilters, values)
	pag := criteria.BuildPagination(in.Page, in.Limit)

	users, total, err := uc.repo.FindWithCriteria(where, pag.Offset, pag.Limit, defaultOrderBy)
	if err != nil {
		return nil, err
	}

	out := &dto.SearchUsersResponse{
		Data:       make([]dto.UserResponse, 0, len(users)),
		Total:      total,
		Page:       pag.Page,
		Limit:      pag.Limit,
		TotalPages: criteria.TotalPages(total, pag.Limit),
	}
	for _, u := range users {
		out.Data = append(out.Data, *toUserResponse(u))
	}
	return out, nil
}

func putString(values map[string]any, key string, v *string) {
	if v != nil {
		values[key] = *v
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		PhoneNumber:  u.PhoneNumber,
		DocumentID:   u.DocumentID,
		DocumentType: u.DocumentType,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		CreatedBy:    u.CreatedBy,
		UpdatedAt:    u.UpdatedAt,
		UpdatedBy:    u.UpdatedBy,
		DeletedAt:    u.DeletedAt,
		DeletedBy:    u.DeletedBy,
		LastLogin:    u.LastLogin,
	}
}
