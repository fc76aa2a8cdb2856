package token_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-pro/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "secreto-de-pruebas"

var testIdentity = token.Identity{
	Username: "admin",
	Role:     "ADMIN",
	Name:     "Administrador",
	UserID:   "u-001",
}

// newTestCodec crea un codec con reloj fijo y los umbrales del sistema
// original (7 días de vida, 30 de tope, renovación al día).
func newTestCodec(t *testing.T, legacy bool, now time.Time) *token.Codec {
	t.Helper()
	c := token.NewCodec(token.Config{
		Secret:     testSecret,
		TTL:        7 * 24 * time.Hour,
		MaxAge:     30 * 24 * time.Hour,
		RenewAfter: 24 * time.Hour,
		LegacySign: legacy,
	})
	return c.WithClock(func() time.Time { return now })
}

// craftToken arma un token en modo legacy con timestamps arbitrarios,
// firmado igual que lo haría el sistema original.
func craftToken(t *testing.T, createdAt, expiresAt int64) string {
	t.Helper()
	raw, err := json.Marshal(token.Payload{
		Username:  testIdentity.Username,
		Role:      testIdentity.Role,
		Name:      testIdentity.Name,
		UserID:    testIdentity.UserID,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	})
	require.NoError(t, err)
	sig := token.LegacyHash(string(raw) + testSecret)
	return base64.StdEncoding.EncodeToString(raw) + "|" + sig
}

// ──────────────────────────────────────────────────────────────────────────────
// LegacyHash — vectores conocidos
// ──────────────────────────────────────────────────────────────────────────────

func TestLegacyHash_VectoresConocidos(t *testing.T) {
	// Valores calculados con el algoritmo del sistema original.
	assert.Equal(t, "170842", token.LegacyHash("1234"))
	assert.Equal(t, "0", token.LegacyHash(""))
	// Determinista entre llamadas (sin salt por proceso).
	assert.Equal(t, token.LegacyHash("promanager"), token.LegacyHash("promanager"))
}

func TestLegacyHash_ColisionesPorDiseno(t *testing.T) {
	// El multiplicador 31 produce colisiones triviales: dos contraseñas
	// distintas pueden autenticar la misma cuenta en modo legacy.
	assert.Equal(t, token.LegacyHash("Aa"), token.LegacyHash("BB"),
		"Aa y BB deben colisionar con el hash legacy")
	assert.NotEqual(t, token.LegacyHash("Aa"), token.LegacyHash("Ab"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Encode / Decode
// ──────────────────────────────────────────────────────────────────────────────

func TestCodec_RoundTrip(t *testing.T) {
	for _, legacy := range []bool{true, false} {
		now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
		c := newTestCodec(t, legacy, now)

		tok, err := c.Encode(testIdentity)
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		p, fail := c.Decode(tok)
		require.NotNil(t, p, "decodificación inmediata debe aceptar el token (legacy=%v)", legacy)
		assert.Equal(t, token.FailNone, fail)
		assert.Equal(t, testIdentity, p.Identity())
		assert.Equal(t, now.UnixMilli(), p.CreatedAt)
		assert.Equal(t, now.Add(7*24*time.Hour).UnixMilli(), p.ExpiresAt)
	}
}

func TestCodec_FirmaManipulada(t *testing.T) {
	now := time.Now()
	c := newTestCodec(t, true, now)
	tok, err := c.Encode(testIdentity)
	require.NoError(t, err)

	// Alterar cualquier byte de la porción de firma debe invalidar el token.
	sep := len(tok)
	for i, r := range tok {
		if r == '|' {
			sep = i
			break
		}
	}
	require.Less(t, sep, len(tok)-1, "el token debe tener firma")
	for i := sep + 1; i < len(tok); i++ {
		mutated := []byte(tok)
		mutated[i] ^= 0x01
		p, fail := c.Decode(string(mutated))
		assert.Nil(t, p, "firma alterada en el byte %d debe rechazarse", i)
		assert.Equal(t, token.FailTampered, fail)
	}
}

func TestCodec_PayloadManipulado(t *testing.T) {
	now := time.Now()
	c := newTestCodec(t, false, now)
	tok, err := c.Encode(testIdentity)
	require.NoError(t, err)

	// Cambiar el payload sin recalcular la firma también es manipulación.
	mutated := []byte(tok)
	mutated[3] ^= 0x01
	p, fail := c.Decode(string(mutated))
	assert.Nil(t, p)
	// Según el byte tocado, el base64 puede dejar de decodificar (malformed)
	// o decodificar a otro contenido (tampered); nunca debe aceptarse.
	assert.NotEqual(t, token.FailNone, fail)
}

func TestCodec_TokenMalformado(t *testing.T) {
	c := newTestCodec(t, true, time.Now())
	for _, tok := range []string{"", "sinseparador", "|", "no-base64!!|abc", "YWJj|"} {
		p, fail := c.Decode(tok)
		assert.Nil(t, p, "token %q debe rechazarse", tok)
		assert.Equal(t, token.FailMalformed, fail)
	}
}

func TestCodec_LimiteDeExpiracion(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, true, now)

	// expires_at un segundo en el pasado → rechazado.
	expired := craftToken(t, now.Add(-time.Hour).UnixMilli(), now.Add(-time.Second).UnixMilli())
	p, fail := c.Decode(expired)
	assert.Nil(t, p)
	assert.Equal(t, token.FailExpired, fail)

	// expires_at un segundo en el futuro → aceptado.
	alive := craftToken(t, now.Add(-time.Hour).UnixMilli(), now.Add(time.Second).UnixMilli())
	p, fail = c.Decode(alive)
	require.NotNil(t, p)
	assert.Equal(t, token.FailNone, fail)
}

func TestCodec_TopeAbsolutoDeEdad(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, true, now)

	// Token forjado con expires_at lejano pero created_at de hace 31 días:
	// el tope absoluto de 30 días manda, sin importar expires_at.
	old := craftToken(t, now.Add(-31*24*time.Hour).UnixMilli(), now.Add(365*24*time.Hour).UnixMilli())
	p, fail := c.Decode(old)
	assert.Nil(t, p)
	assert.Equal(t, token.FailTooOld, fail)
}

func TestCodec_CompatibilidadConTokensLegacy(t *testing.T) {
	// craftToken firma exactamente como el sistema original; el codec en modo
	// legacy debe aceptar esos tokens ya emitidos.
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, true, now)
	tok := craftToken(t, now.UnixMilli(), now.Add(24*time.Hour).UnixMilli())

	p, fail := c.Decode(tok)
	require.NotNil(t, p)
	assert.Equal(t, token.FailNone, fail)
	assert.Equal(t, "admin", p.Username)
}

// ──────────────────────────────────────────────────────────────────────────────
// Renovación
// ──────────────────────────────────────────────────────────────────────────────

func TestCodec_ShouldRenew(t *testing.T) {
	issued := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, true, issued)
	tok, err := c.Encode(testIdentity)
	require.NoError(t, err)
	p, _ := c.Decode(tok)
	require.NotNil(t, p)

	// Recién emitido: no se renueva.
	assert.False(t, c.ShouldRenew(p))

	// Con más de un día de edad: sí.
	c.WithClock(func() time.Time { return issued.Add(25 * time.Hour) })
	assert.True(t, c.ShouldRenew(p))

	// Sin created_at (token anómalo): renovar siempre.
	assert.True(t, c.ShouldRenew(&token.Payload{}))
}

func TestCodec_RenovacionIdempotente(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, true, now)

	tok1, err := c.Encode(testIdentity)
	require.NoError(t, err)
	p1, _ := c.Decode(tok1)
	require.NotNil(t, p1)

	// Renovar dos veces seguidas: ambos tokens deben ser válidos por sí mismos.
	tok2, err := c.Encode(p1.Identity())
	require.NoError(t, err)
	p2, fail2 := c.Decode(tok2)
	require.NotNil(t, p2)
	assert.Equal(t, token.FailNone, fail2)

	tok3, err := c.Encode(p2.Identity())
	require.NoError(t, err)
	p3, fail3 := c.Decode(tok3)
	require.NotNil(t, p3)
	assert.Equal(t, token.FailNone, fail3)

	assert.Equal(t, p1.Identity(), p3.Identity())
}
