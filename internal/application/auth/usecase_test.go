package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/usuarios-api/internal/application/auth"
	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/criteria"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/usuarios-api/pkg/jwt"
)

const (
	testAccessSecret  = "access-secret-para-tests-123"
	testRefreshSecret = "refresh-secret-para-tests-456"
)

var testJWTCfg = auth.JWTConfig{
	AccessSecret:      testAccessSecret,
	AccessExpMinutes:  15,
	RefreshSecret:     testRefreshSecret,
	RefreshExpMinutes: 60,
	Issuer:            "usuarios-api-test",
}

// fakeUserRepo implementación en memoria del puerto para los tests de auth.
type fakeUserRepo struct {
	users     map[string]*entity.User
	updateErr error
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.IsActive {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateByID(id string, changes repository.UserUpdate) (*entity.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if changes.LastLogin != nil {
		u.LastLogin = changes.LastLogin
	}
	if changes.Role != nil {
		u.Role = *changes.Role
	}
	now := time.Now()
	u.UpdatedAt = &now
	return u, nil
}

func (f *fakeUserRepo) SoftDelete(id, deletedBy string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	now := time.Now()
	u.IsActive = false
	u.DeletedAt = &now
	u.DeletedBy = deletedBy
	return u, nil
}

func (f *fakeUserRepo) FindWithCriteria(criteria.Where, int, int, string) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) ExistsByRole(role string) (bool, error) {
	for _, u := range f.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T, password string) *entity.User {
	t.Helper()
	return &entity.User{
		ID:           "00000000-0000-0000-0000-000000000001",
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: mustHash(t, password),
		Role:         entity.RoleVendedor,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

func TestLogin_ConEmail_EmiteParDeTokens(t *testing.T) {
	user := activeUser(t, "secret1")
	repo := newFakeUserRepo(user)
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	out, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)
	require.NotEmpty(t, out.RefreshToken)
	assert.NotEqual(t, out.AccessToken, out.RefreshToken, "access y refresh deben ser tokens distintos")

	payload, err := pkgjwt.Parse(testAccessSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.UserID)
	assert.Equal(t, entity.RoleVendedor, payload.Role)
	assert.Equal(t, "alice@x.com", payload.Email)

	require.NotNil(t, user.LastLogin, "el login debe estampar last_login")
}

func TestLogin_ConUsername_Funciona(t *testing.T) {
	repo := newFakeUserRepo(activeUser(t, "secret1"))
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	// "alice" no contiene '@': se clasifica como username.
	out, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestLogin_PasswordIncorrecta_MismoErrorQueUsuarioInexistente(t *testing.T) {
	repo := newFakeUserRepo(activeUser(t, "secret1"))
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, errWrongPass := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice", Password: "wrong"})
	_, errNoUser := uc.Login(dto.LoginRequest{UsernameOrEmail: "nadie", Password: "secret1"})

	// Resistencia a enumeración: ambas fallas son indistinguibles.
	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errNoUser)
}

func TestLogin_UsuarioInactivo_Falla(t *testing.T) {
	user := activeUser(t, "secret1")
	user.IsActive = false
	repo := newFakeUserRepo(user)
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_FalloAlEstamparLastLogin_PropagaErrorInterno(t *testing.T) {
	repo := newFakeUserRepo(activeUser(t, "secret1"))
	repo.updateErr = errors.New("db caída")
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice", Password: "secret1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefresh_TokenValido_EmiteParNuevo(t *testing.T) {
	user := activeUser(t, "secret1")
	repo := newFakeUserRepo(user)
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	login, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice", Password: "secret1"})
	require.NoError(t, err)

	// La firma depende de iat con granularidad de segundo; esperamos uno para
	// que la reemisión sea observable como token distinto.
	time.Sleep(1100 * time.Millisecond)

	refreshed, err := uc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken, "reemisión, no replay")

	payload, err := pkgjwt.Parse(testAccessSecret, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.UserID)
}

func TestRefresh_ReflejaCambioDeRol(t *testing.T) {
	user := activeUser(t, "secret1")
	repo := newFakeUserRepo(user)
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	login, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice", Password: "secret1"})
	require.NoError(t, err)

	user.Role = entity.RoleAdmin

	refreshed, err := uc.Refresh(login.RefreshToken)
	require.NoError(t, err)

	payload, err := pkgjwt.Parse(testAccessSecret, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, payload.Role, "el rol se relee del registro actual")
}

func TestRefresh_ConAccessToken_Falla(t *testing.T) {
	repo := newFakeUserRepo(activeUser(t, "secret1"))
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	login, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice", Password: "secret1"})
	require.NoError(t, err)

	// Un access token está firmado con otro secreto: no sirve para refrescar.
	_, err = uc.Refresh(login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefresh_TokenExpirado_Falla(t *testing.T) {
	user := activeUser(t, "secret1")
	repo := newFakeUserRepo(user)
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	expired, err := pkgjwt.Generate(testRefreshSecret, pkgjwt.Payload{UserID: user.ID, Role: user.Role}, "usuarios-api-test", -1)
	require.NoError(t, err)

	_, err = uc.Refresh(expired)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefresh_TokenAdulterado_Falla(t *testing.T) {
	repo := newFakeUserRepo(activeUser(t, "secret1"))
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	_, err := uc.Refresh("ni.siquiera.jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefresh_UsuarioDesactivado_Falla(t *testing.T) {
	user := activeUser(t, "secret1")
	repo := newFakeUserRepo(user)
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	login, err := uc.Login(dto.LoginRequest{UsernameOrEmail: "alice", Password: "secret1"})
	require.NoError(t, err)

	// Borrado lógico posterior a la emisión: el token sigue estructuralmente
	// válido pero el refresh debe rechazarlo sin revelar la causa.
	_, err = repo.SoftDelete(user.ID, "admin-1")
	require.NoError(t, err)

	_, err = uc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
