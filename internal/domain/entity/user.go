package entity

import "time"

// Roles válidos para User. SuperAdmin es un centinela de acceso universal:
// el gate de roles lo deja pasar sin consultar la lista permitida.
const (
	RoleAdmin      = "admin"
	RoleBodeguero  = "bodeguero"
	RoleVendedor   = "vendedor"
	RoleSuperAdmin = "superAdmin"
)

// ValidRole indica si r pertenece a la enumeración cerrada de roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleBodeguero, RoleVendedor, RoleSuperAdmin:
		return true
	}
	return false
}

// Tipos de documento de identidad (Colombia).
const (
	DocumentTypeCC        = "CC"        // cédula de ciudadanía
	DocumentTypeCE        = "CE"        // cédula de extranjería
	DocumentTypeNIT       = "NIT"
	DocumentTypePasaporte = "PASAPORTE"
)

// ValidDocumentType indica si t pertenece a la enumeración de tipos de documento.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeCC, DocumentTypeCE, DocumentTypeNIT, DocumentTypePasaporte:
		return true
	}
	return false
}

// User representa un usuario del sistema.
//
// El borrado es siempre lógico: IsActive pasa a false y se estampan
// DeletedAt/DeletedBy. Un usuario inactivo queda excluido de las búsquedas por
// defecto y no puede autenticarse.
type User struct {
	ID           string
	Username     string // único
	Email        string // único
	PasswordHash string // bcrypt, nunca sale del backend
	Role         string // ver constantes Role*
	PhoneNumber  string // opcional
	DocumentID   string // opcional
	DocumentType string // opcional, ver constantes DocumentType*
	IsActive     bool
	CreatedAt    time.Time
	CreatedBy    string
	UpdatedAt    *time.Time
	UpdatedBy    string
	DeletedAt    *time.Time
	DeletedBy    string
	LastLogin    *time.Time
}
