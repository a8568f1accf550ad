package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. Los callers de cara al cliente deben colapsarlos en
// una sola señal "no autorizado"; la distinción existe para uso interno y tests.
var (
	ErrExpired = errors.New("jwt: token expirado")
	ErrInvalid = errors.New("jwt: token inválido")
)

// Payload identidad embebida en los tokens. UserID y Role son obligatorios;
// el resto enriquece el token para evitar consultas a la DB en lecturas simples.
type Payload struct {
	UserID       string
	Role         string
	Email        string
	Username     string
	DocumentID   string
	DocumentType string
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Role para que el middleware RBAC pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	Role         string `json:"role"` // "admin" | "bodeguero" | "vendedor" | "superAdmin"
	Email        string `json:"email,omitempty"`
	Username     string `json:"username,omitempty"`
	DocumentID   string `json:"document_id,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
}

// Generate genera un token JWT firmado con el secreto dado. El mismo Payload se
// firma tanto para tokens de acceso como de refresco; el caller decide secreto
// y expiración según el tipo.
func Generate(secret string, p Payload, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role:         p.Role,
		Email:        p.Email,
		Username:     p.Username,
		DocumentID:   p.DocumentID,
		DocumentType: p.DocumentType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el payload.
// Retorna ErrExpired si el token venció, ErrInvalid para cualquier otro fallo
// (firma incorrecta, malformado, método de firma inesperado).
func Parse(secret, tokenString string) (*Payload, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: claims inválidos", ErrInvalid)
	}
	return &Payload{
		UserID:       claims.Subject,
		Role:         claims.Role,
		Email:        claims.Email,
		Username:     claims.Username,
		DocumentID:   claims.DocumentID,
		DocumentType: claims.DocumentType,
	}, nil
}
