package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

// UserHandler maneja el CRUD y la búsqueda de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  Envelope
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  Envelope
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	if fieldErrors := validateCreate(in); len(fieldErrors) > 0 {
		return respondError(c, fiber.StatusBadRequest, "validación fallida", fieldErrors)
	}
	// Auditoría: el actor sale del token, nunca del cuerpo.
	in.CreatedBy = GetUserID(c)
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Buscar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username       query  string  false  "contiene, sin mayúsculas"
// @Param        email          query  string  false  "contiene, sin mayúsculas"
// @Param        role           query  string  false  "igualdad exacta"
// @Param        is_active      query  bool    false  "por defecto true"
// @Param        page           query  int     false  "página (desde 1)"
// @Param        limit          query  int     false  "tamaño de página (def. 10)"
// @Success      200  {object}  dto.SearchUsersResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var in dto.SearchUsersRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "filtros inválidos", nil)
	}
	if in.DocumentType != nil {
		upper := strings.ToUpper(*in.DocumentType)
		in.DocumentType = &upper
	}
	out, err := h.uc.Search(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "UUID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "UUID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "cambios parciales"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  Envelope
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "cuerpo inválido", nil)
	}
	if fieldErrors := validateUpdate(in); len(fieldErrors) > 0 {
		return respondError(c, fiber.StatusBadRequest, "validación fallida", fieldErrors)
	}
	in.UpdatedBy = GetUserID(c)
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Borrado lógico de usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "UUID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  Envelope
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.Params("id"), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

func validateCreate(in dto.CreateUserRequest) map[string][]string {
	fieldErrors := map[string][]string{}
	if l := len(in.Username); l < 3 || l > 50 {
		fieldErrors["username"] = append(fieldErrors["username"], "debe tener entre 3 y 50 caracteres")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fieldErrors["email"] = append(fieldErrors["email"], "email inválido")
	}
	if l := len(in.Password); l < 6 || l > 250 {
		fieldErrors["password"] = append(fieldErrors["password"], "debe tener entre 6 y 250 caracteres")
	}
	if !entity.ValidRole(in.Role) {
		fieldErrors["role"] = append(fieldErrors["role"], "rol desconocido")
	}
	if in.DocumentType != "" && !entity.ValidDocumentType(in.DocumentType) {
		fieldErrors["document_type"] = append(fieldErrors["document_type"], "tipo de documento desconocido")
	}
	return fieldErrors
}

func validateUpdate(in dto.UpdateUserRequest) map[string][]string {
	fieldErrors := map[string][]string{}
	if in.Username != nil {
		if l := len(*in.Username); l < 3 || l > 50 {
			fieldErrors["username"] = append(fieldErrors["username"], "debe tener entre 3 y 50 caracteres")
		}
	}
	if in.Email != nil && !strings.Contains(*in.Email, "@") {
		fieldErrors["email"] = append(fieldErrors["email"], "email inválido")
	}
	if in.Password != nil {
		if l := len(*in.Password); l < 6 || l > 250 {
			fieldErrors["password"] = append(fieldErrors["password"], "debe tener entre 6 y 250 caracteres")
		}
	}
	if in.Role != nil && !entity.ValidRole(*in.Role) {
		fieldErrors["role"] = append(fieldErrors["role"], "rol desconocido")
	}
	if in.DocumentType != nil && *in.DocumentType != "" && !entity.ValidDocumentType(*in.DocumentType) {
		fieldErrors["document_type"] = append(fieldErrors["document_type"], "tipo de documento desconocido")
	}
	return fieldErrors
}
