// Package token implementa el token de sesión autocontenido que viaja en la
// cookie auth-token: base64(payload JSON) + "|" + firma. El servidor no guarda
// sesiones; la firma es la única garantía de integridad.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Identity son los datos de usuario que viajan dentro del token.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	UserID   string `json:"id,omitempty"` // id en la tabla users, si existe
}

// Payload es el contenido completo del token. El orden de los campos replica
// la serialización del sistema original (datos de identidad primero, luego
// marcas de tiempo en milisegundos unix).
type Payload struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	UserID    string `json:"id,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Identity extrae los datos de usuario del payload (sin campos de control).
func (p *Payload) Identity() Identity {
	return Identity{Username: p.Username, Role: p.Role, Name: p.Name, UserID: p.UserID}
}

// Age devuelve la edad del token respecto a now.
func (p *Payload) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(p.CreatedAt))
}

// Failure clasifica por qué falló Decode. Solo para logs/telemetría:
// para el usuario final todas las fallas son "no autenticado".
type Failure int

const (
	FailNone Failure = iota
	FailMalformed
	FailTampered
	FailExpired
	FailTooOld
)

// String etiqueta legible para logs.
func (f Failure) String() string {
	switch f {
	case FailNone:
		return "ok"
	case FailMalformed:
		return "malformed"
	case FailTampered:
		return "tampered"
	case FailExpired:
		return "expired"
	case FailTooOld:
		return "too_old"
	default:
		return "unknown"
	}
}

// Config parámetros del codec.
type Config struct {
	Secret      string
	TTL         time.Duration // expires_at = now + TTL
	MaxAge      time.Duration // tope absoluto desde created_at
	RenewAfter  time.Duration // edad a partir de la cual conviene reemitir
	LegacySign  bool          // true = firma djb2 del original; false = HMAC-SHA256
}

// Codec firma y verifica tokens de sesión.
type Codec struct {
	cfg Config
	now func() time.Time
}

// NewCodec construye el codec. Panic si falta el secreto: arrancar sin él
// dejaría todas las sesiones firmadas con cadena vacía.
func NewCodec(cfg Config) *Codec {
	if cfg.Secret == "" {
		panic("token: secret vacío")
	}
	return &Codec{cfg: cfg, now: time.Now}
}

// WithClock fija el reloj del codec (tests).
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Encode serializa la identidad con created_at/expires_at nuevos y la firma.
func (c *Codec) Encode(id Identity) (string, error) {
	now := c.now()
	p := Payload{
		Username:  id.Username,
		Role:      id.Role,
		Name:      id.Name,
		UserID:    id.UserID,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(c.cfg.TTL).UnixMilli(),
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sig := c.sign(raw)
	return base64.StdEncoding.EncodeToString(raw) + "|" + sig, nil
}

// Decode verifica firma, expiración y edad absoluta. Nunca devuelve error a
// los callers: payload nil significa "no autenticado" y Failure dice por qué
// (solo para registrar).
func (c *Codec) Decode(tok string) (*Payload, Failure) {
	parts := strings.SplitN(tok, "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, FailMalformed
	}
	raw, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, FailMalformed
	}
	// Comparación en tiempo constante aunque la firma legacy no lo necesite:
	// el mismo camino sirve para ambos modos.
	expected := c.sign(raw)
	if !hmac.Equal([]byte(parts[1]), []byte(expected)) {
		return nil, FailTampered
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, FailMalformed
	}
	nowMs := c.now().UnixMilli()
	if p.ExpiresAt > 0 && p.ExpiresAt < nowMs {
		return nil, FailExpired
	}
	// Tope absoluto independiente de expires_at: un token forjado pero
	// estructuralmente válido no puede declarar una expiración lejana.
	if p.CreatedAt > 0 && nowMs-p.CreatedAt > c.cfg.MaxAge.Milliseconds() {
		return nil, FailTooOld
	}
	return &p, FailNone
}

// ShouldRenew indica si el token superó el umbral de renovación (sesión
// deslizante, acotada por MaxAge en Decode).
func (c *Codec) ShouldRenew(p *Payload) bool {
	if p.CreatedAt == 0 {
		return true
	}
	return p.Age(c.now()) > c.cfg.RenewAfter
}

// TTL expone la vida del token (para el max-age de la cookie).
func (c *Codec) TTL() time.Duration {
	return c.cfg.TTL
}

func (c *Codec) sign(payload []byte) string {
	if c.cfg.LegacySign {
		return LegacyHash(string(payload) + c.cfg.Secret)
	}
	mac := hmac.New(sha256.New, []byte(c.cfg.Secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// LegacyHash reproduce el hash no criptográfico del sistema original
// (variante djb2 sobre 32 bits, valor absoluto en hexadecimal). No es
// resistente a colisiones ni sirve como primitiva de seguridad; existe solo
// para verificar tokens y contraseñas ya emitidos por el sistema anterior.
func LegacyHash(text string) string {
	var h int32
	for _, r := range text {
		h = (h << 5) - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}
