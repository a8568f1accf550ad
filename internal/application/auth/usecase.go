package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
	"github.com/jhoicas/usuarios-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig secretos y expiraciones para la emisión de tokens. Access y
// refresh son independientes: firmar uno con el secreto del otro lo invalida.
type JWTConfig struct {
	AccessSecret      string
	AccessExpMinutes  int
	RefreshSecret     string
	RefreshExpMinutes int
	Issuer            string
}

// AuthUseCase casos de uso de autenticación: login y refresh.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login valida credenciales y emite un par access/refresh.
//
// Usuario inexistente, inactivo o password incorrecta devuelven el mismo
// ErrInvalidCredentials: el caller no puede distinguir cuál falló. El estampado
// de last_login es síncrono; si falla, el login falla con error interno.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := uc.lookup(in.UsernameOrEmail)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if _, err := uc.userRepo.UpdateByID(user.ID, repository.UserUpdate{LastLogin: &now}); err != nil {
		return nil, fmt.Errorf("estampar last_login: %w", err)
	}

	return uc.generateTokens(user)
}

// Refresh valida el refresh token y emite un par nuevo.
//
// Cualquier fallo (firma, expiración, token malformado, usuario borrado o
// inactivo) se colapsa en ErrInvalidToken. El payload se reconstruye desde el
// registro actual del usuario: un cambio de rol posterior a la emisión
// original queda reflejado en los tokens nuevos.
func (uc *AuthUseCase) Refresh(refreshToken string) (*dto.TokenPairResponse, error) {
	payload, err := jwt.Parse(uc.jwtCfg.RefreshSecret, refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.userRepo.FindByID(payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario del refresh: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidToken
	}
	return uc.generateTokens(user)
}

// lookup clasifica el identificador como email (contiene '@') o username y
// busca solo usuarios activos.
func (uc *AuthUseCase) lookup(usernameOrEmail string) (*entity.User, error) {
	if strings.Contains(usernameOrEmail, "@") {
		return uc.userRepo.FindByEmail(usernameOrEmail)
	}
	return uc.userRepo.FindByUsername(usernameOrEmail)
}

func (uc *AuthUseCase) generateTokens(user *entity.User) (*dto.TokenPairResponse, error) {
	payload := jwt.Payload{
		UserID:       user.ID,
		Role:         user.Role,
		Email:        user.Email,
		Username:     user.Username,
		DocumentID:   user.DocumentID,
		DocumentType: user.DocumentType,
	}
	access, err := jwt.Generate(uc.jwtCfg.AccessSecret, payload, uc.jwtCfg.Issuer, uc.jwtCfg.AccessExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmar access token: %w", err)
	}
	refresh, err := jwt.Generate(uc.jwtCfg.RefreshSecret, payload, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmar refresh token: %w", err)
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}
