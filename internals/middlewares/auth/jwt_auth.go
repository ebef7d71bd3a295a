// file: internals/middlewares/auth/jwt_auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi access token HMAC dan meng-hydrate locals yang
// dibaca helper claims (user_id, teacher_id, school_id). Pemeriksaan role
// ada di layanan identitas eksternal, bukan di sini.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	// Secret kosong sudah ditolak configs.LoadEnv di startup; kalau sampai
	// lolos (mis. dipasang manual tanpa LoadEnv), tolak request alih-alih panic.
	secret := strings.TrimSpace(o.Secret)

	return func(c *fiber.Ctx) error {
		if secret == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Konfigurasi auth belum lengkap")
		}

		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals("jwt_claims", claims)

		// user_id: urutan preferensi id → sub → user_id
		switch {
		case strClaim(claims, "id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "id"))
		case strClaim(claims, "sub") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "sub"))
		case strClaim(claims, "user_id") != "":
			c.Locals(helperAuth.LocUserID, strClaim(claims, "user_id"))
		}
		if tid := strClaim(claims, "teacher_id"); tid != "" {
			c.Locals(helperAuth.LocTeacherID, tid)
		}
		if sid := strClaim(claims, "school_id"); sid != "" {
			c.Locals(helperAuth.LocSchoolID, sid)
		}
		return c.Next()
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
