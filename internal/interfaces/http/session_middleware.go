package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/usecase"
	"github.com/tu-usuario/taller-pro/pkg/logger"
	"github.com/tu-usuario/taller-pro/pkg/token"
)

// CookieName nombre de la cookie de sesión.
const CookieName = "auth-token"

// LocalIdentity key de c.Locals con la identidad del token.
const LocalIdentity = "session_identity"

// Rutas accesibles sin sesión. Todo lo demás exige token válido.
var publicRoutes = []string{
	"/login",
	"/recuperar-password",
	"/restablecer-password",
	"/health",
	"/docs",
}

// SessionMiddleware aplica la política de sesión en el borde de cada request:
//
//  1. Lee la cookie auth-token; ausente ⇒ anónimo.
//  2. Decodifica; si falla, limpia la cookie y sigue como anónimo.
//  3. Token válido con edad mayor al umbral de renovación ⇒ reemite con las
//     marcas de tiempo nuevas y fija la cookie fresca antes de responder
//     (expiración deslizante, acotada por la edad máxima del codec).
//  4. Anónimo sobre ruta protegida: 401 JSON si el cliente acepta JSON,
//     302 a /login si no.
//  5. Autenticado que abre /login ⇒ redirección según su rol.
func SessionMiddleware(authUC *auth.UseCase, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ident *token.Identity

		if raw := c.Cookies(CookieName); raw != "" {
			p, fail := authUC.Decode(raw)
			if p == nil {
				// Indistinguible para el usuario; el motivo queda en el log.
				log.Warn().
					Str("reason", fail.String()).
					Str("path", c.Path()).
					Msg("Token de sesión rechazado")
				clearSessionCookie(c)
			} else {
				id := p.Identity()
				ident = &id
				if fresh := authUC.Renew(p); fresh != "" {
					setSessionCookie(c, fresh, authUC.TokenTTL())
				}
			}
		}

		if ident != nil {
			c.Locals(LocalIdentity, *ident)
			if c.Path() == "/login" && c.Method() == fiber.MethodGet {
				return c.Redirect(auth.LandingFor(ident.Role), fiber.StatusFound)
			}
			return c.Next()
		}

		if isPublic(c.Path()) {
			return c.Next()
		}
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		return c.Redirect("/login", fiber.StatusFound)
	}
}

// setSessionCookie fija la cookie de sesión con los atributos estándar.
func setSessionCookie(c *fiber.Ctx, tok string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// clearSessionCookie borra la cookie de sesión.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func isPublic(path string) bool {
	for _, p := range publicRoutes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// wantsJSON decide entre 401 estructurado y redirección: clientes de API
// declaran application/json en Accept o Content-Type.
func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) ||
		strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

// CurrentIdentity devuelve la identidad del token (después del middleware).
func CurrentIdentity(c *fiber.Ctx) (token.Identity, bool) {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return token.Identity{}, false
	}
	id, ok := v.(token.Identity)
	return id, ok
}

// CurrentActor construye el actor para los casos de uso.
func CurrentActor(c *fiber.Ctx) usecase.Actor {
	id, _ := CurrentIdentity(c)
	return usecase.Actor{
		UserID:   id.UserID,
		Username: id.Username,
		Name:     id.Name,
		Role:     id.Role,
	}
}
