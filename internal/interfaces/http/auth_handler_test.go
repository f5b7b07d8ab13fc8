package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/almacen-api/internal/application/auth"
	"github.com/dcastano/almacen-api/internal/domain/entity"
	apphttp "github.com/dcastano/almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// buildAuthApp monta las rutas de usuarios como lo hace el router real:
// registro público y creación de usuarios restringida a admin.
func buildAuthApp() (*fiber.App, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	h := apphttp.NewAuthHandler(uc)

	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/users",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin),
		h.CreateUser,
	)
	return app, repo
}

func postJSON(t *testing.T, app *fiber.App, path, authHeader string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de registro y creación de usuarios
// ──────────────────────────────────────────────────────────────────────────────

// El registro público no puede escalar privilegios: pedir rol admin sin
// autenticación debe rechazarse sin crear el usuario.
func TestRegister_RolAdminRechazadoEnRutaPublica(t *testing.T) {
	app, repo := buildAuthApp()

	resp := postJSON(t, app, "/api/auth/register", "", map[string]string{
		"email":    "intruso@example.com",
		"password": "superclave123",
		"role":     "admin",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"nadie puede auto-registrarse como admin")

	created, err := repo.FindByEmail("intruso@example.com")
	require.NoError(t, err)
	assert.Nil(t, created, "el usuario no debe crearse")
}

func TestRegister_PublicoCreaOperador(t *testing.T) {
	app, _ := buildAuthApp()

	resp := postJSON(t, app, "/api/auth/register", "", map[string]string{
		"email":    "operador@example.com",
		"password": "superclave123",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "operador", body["role"], "el registro público siempre crea operadores")
}

// Un admin autenticado sí puede crear administradores vía /api/users.
func TestCreateUser_AdminCreaAdmin(t *testing.T) {
	app, repo := buildAuthApp()

	resp := postJSON(t, app, "/api/users", tokenForRole(t, "admin"), map[string]string{
		"email":    "nuevo-admin@example.com",
		"password": "superclave123",
		"role":     "admin",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created, err := repo.FindByEmail("nuevo-admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.RoleAdmin, created.Role)
}

// Un operador autenticado no puede usar /api/users.
func TestCreateUser_OperadorBloqueado(t *testing.T) {
	app, repo := buildAuthApp()

	resp := postJSON(t, app, "/api/users", tokenForRole(t, "operador"), map[string]string{
		"email":    "otro-admin@example.com",
		"password": "superclave123",
		"role":     "admin",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	created, err := repo.FindByEmail("otro-admin@example.com")
	require.NoError(t, err)
	assert.Nil(t, created)
}
