package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/almacen-api/internal/application/auth"
	"github.com/dcastano/almacen-api/internal/application/dto"
	"github.com/dcastano/almacen-api/internal/domain"
	"github.com/dcastano/almacen-api/internal/domain/entity"
)

type fakeUserRepo struct {
	byEmail  map[string]*entity.User
	emailErr error // error a inyectar en FindByEmail
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.emailErr != nil {
		return nil, r.emailErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func buildAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: "secret-de-test", ExpMinutes: 60, Issuer: "almacen-api-test",
	})
}

func TestRegisterUser_RolPorDefectoOperador(t *testing.T) {
	uc := buildAuthUC(newFakeUserRepo())

	u, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@example.com", Password: "superclave123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperador, u.Role)
	assert.Equal(t, "active", u.Status)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "superclave123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "otraclave456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Un fallo de la DB al verificar el email debe propagarse, no tratarse
// como "email libre".
func TestRegisterUser_ErrorDeConsultaSePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.emailErr = errors.New("conexión perdida")
	uc := buildAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "superclave123"})
	require.Error(t, err)
	assert.EqualError(t, err, "conexión perdida")
	assert.Empty(t, repo.byEmail, "con el fallo no debe crearse el usuario")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "superclave123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_OK(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@example.com", Password: "superclave123"})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "superclave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.User.Email)
}
