package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// CreatedBy lo estampa el handler con el sub del token; no viene del cliente.
type CreateUserRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6,max=250"`
	Role         string `json:"role" validate:"required,oneof=admin bodeguero vendedor superAdmin"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty"`
	DocumentID   string `json:"document_id" validate:"omitempty"`
	DocumentType string `json:"document_type" validate:"omitempty,oneof=CC CE NIT PASAPORTE"`
	CreatedBy    string `json:"-"`
}

// UpdateUserRequest entrada para actualización parcial; nil = sin cambio.
// UpdatedBy lo estampa el handler con el sub del token.
type UpdateUserRequest struct {
	Username     *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Password     *string `json:"password" validate:"omitempty,min=6,max=250"`
	Role         *string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor superAdmin"`
	PhoneNumber  *string `json:"phone_number"`
	DocumentID   *string `json:"document_id"`
	DocumentType *string `json:"document_type" validate:"omitempty,oneof=CC CE NIT PASAPORTE"`
	UpdatedBy    string  `json:"-"`
}

// SearchUsersRequest filtros de búsqueda. Punteros para distinguir "ausente"
// de un valor presente con cero (is_active=false o cadena vacía filtran).
type SearchUsersRequest struct {
	Username     *string `query:"username"`
	Email        *string `query:"email"`
	Role         *string `query:"role"`
	PhoneNumber  *string `query:"phone_number"`
	DocumentID   *string `query:"document_id"`
	DocumentType *string `query:"document_type"`
	IsActive     *bool   `query:"is_active"`
	Page         *int    `query:"page"`
	Limit        *int    `query:"limit"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	DocumentID   string     `json:"document_id,omitempty"`
	DocumentType string     `json:"document_type,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	CreatedBy    string     `json:"created_by,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	UpdatedBy    string     `json:"updated_by,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	DeletedBy    string     `json:"deleted_by,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// SearchUsersResponse página de usuarios con metadatos de paginación.
type SearchUsersResponse struct {
	Data       []UserResponse `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
