package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/pkg/logger"
	"github.com/tu-usuario/taller-pro/pkg/token"
)

// fakeUserRepo resuelve ids de la tabla users sin base de datos.
type fakeUserRepo struct {
	byUsername map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error              { f.byUsername[u.Username] = u; return nil }
func (f *fakeUserRepo) GetByID(string) (*entity.User, error)     { return nil, nil }
func (f *fakeUserRepo) Update(*entity.User) error                { return nil }
func (f *fakeUserRepo) Delete(string) error                      { return nil }
func (f *fakeUserRepo) ListTechnicians() ([]*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	return f.byUsername[username], nil
}

type useCaseFixture struct {
	uc  *UseCase
	now *time.Time
}

func newTestUseCase(t *testing.T) *useCaseFixture {
	t.Helper()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	fx := &useCaseFixture{now: &now}

	codec := token.NewCodec(token.Config{
		Secret:     "promanager-secret-2024",
		TTL:        7 * 24 * time.Hour,
		MaxAge:     30 * 24 * time.Hour,
		RenewAfter: 24 * time.Hour,
		LegacySign: true,
	}).WithClock(func() time.Time { return *fx.now })

	tracker := NewLockoutTracker(5, 15*time.Minute).WithClock(func() time.Time { return *fx.now })

	repo := &fakeUserRepo{byUsername: map[string]*entity.User{
		"juan": {ID: "u-juan", Username: "juan", Name: "Juan", Role: entity.RoleTechnician},
	}}

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	fx.uc = NewUseCase(NewCredentialStore(NewHasher(true)), tracker, codec,
		repo, "promanager-secret-2024", "taller-pro", 30, log)
	return fx
}

func TestLogin_Exitoso(t *testing.T) {
	fx := newTestUseCase(t)

	resp, err := fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
	assert.Equal(t, "/", resp.RedirectTo)

	// El token emitido debe decodificar con el mismo codec.
	p, fail := fx.uc.Decode(resp.Token)
	require.NotNil(t, p)
	assert.Equal(t, token.FailNone, fail)
	assert.Equal(t, "admin", p.Username)
}

func TestLogin_RedirectPorRol(t *testing.T) {
	fx := newTestUseCase(t)

	tecnico, err := fx.uc.Login(dto.LoginRequest{Username: "juan", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "/reparaciones", tecnico.RedirectTo)
	assert.Equal(t, "u-juan", tecnico.User.ID, "el id de la tabla users viaja en la sesión")

	empleado, err := fx.uc.Login(dto.LoginRequest{Username: "vendedor", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "/inventario", empleado.RedirectTo)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	fx := newTestUseCase(t)

	resp, err := fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "mala"})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	var failed *FailedLoginError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 4, failed.AttemptsRemaining)

	// Un usuario inexistente responde igual que una contraseña incorrecta.
	_, err = fx.uc.Login(dto.LoginRequest{Username: "fantasma", Password: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_BloqueoYDesbloqueo(t *testing.T) {
	fx := newTestUseCase(t)

	// Cinco fallos seguidos bloquean la cuenta.
	for i := 0; i < 5; i++ {
		_, err := fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "mala"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// Bloqueada: ni siquiera la contraseña correcta entra, y el intento no
	// incrementa el contador.
	_, err := fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "1234"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccountLocked)

	var locked *LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, 15*time.Minute, locked.RetryAfter)

	// Pasada la ventana, el login correcto funciona de nuevo.
	*fx.now = fx.now.Add(15 * time.Minute)
	resp, err := fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_ExitoLimpiaIntentos(t *testing.T) {
	fx := newTestUseCase(t)

	for i := 0; i < 4; i++ {
		_, _ = fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "mala"})
	}
	_, err := fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)

	// Tras el éxito, el contador vuelve a cero.
	_, err = fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "mala"})
	var failed *FailedLoginError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 4, failed.AttemptsRemaining)
}

func TestLogin_EntradaVacia(t *testing.T) {
	fx := newTestUseCase(t)
	_, err := fx.uc.Login(dto.LoginRequest{Username: "", Password: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = fx.uc.Login(dto.LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRenew_SoloTrasElUmbral(t *testing.T) {
	fx := newTestUseCase(t)
	resp, err := fx.uc.Login(dto.LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)

	p, _ := fx.uc.Decode(resp.Token)
	require.NotNil(t, p)

	// Recién emitido: no se renueva.
	assert.Empty(t, fx.uc.Renew(p))

	// Con más de un día: se emite uno nuevo con created_at actual.
	*fx.now = fx.now.Add(25 * time.Hour)
	renewed := fx.uc.Renew(p)
	require.NotEmpty(t, renewed)

	p2, fail := fx.uc.Decode(renewed)
	require.NotNil(t, p2)
	assert.Equal(t, token.FailNone, fail)
	assert.Equal(t, fx.now.UnixMilli(), p2.CreatedAt)
	assert.Equal(t, p.Identity(), p2.Identity())
}

func TestRecoverPassword_RespuestaNeutra(t *testing.T) {
	fx := newTestUseCase(t)

	// Correo no registrado: sin error, no se revela nada.
	assert.NoError(t, fx.uc.RecoverPassword("nadie@taller.com"))

	// Correo registrado: tampoco cambia la respuesta.
	require.NoError(t, fx.uc.store.UpdateProfile("juan", "Juan", "juan@taller.com"))
	assert.NoError(t, fx.uc.RecoverPassword("juan@taller.com"))

	assert.ErrorIs(t, fx.uc.RecoverPassword(""), domain.ErrInvalidInput)
}

func TestResetPassword(t *testing.T) {
	fx := newTestUseCase(t)

	// Token inválido.
	err := fx.uc.ResetPassword("basura", "nueva")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Contraseña demasiado corta.
	err = fx.uc.ResetPassword("lo-que-sea", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
