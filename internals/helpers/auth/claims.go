// file: internals/helpers/auth/claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* =========================================================
   Locals keys, diisi middleware AuthJWT, dibaca controller
========================================================= */

const (
	LocUserID    = "user_id"
	LocTeacherID = "teacher_id"
	LocSchoolID  = "school_id"
)

func strLocal(c *fiber.Ctx, key string) string {
	if v := c.Locals(key); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// GetUserID: identitas user dari token. Pemeriksaan role bukan urusan engine,
// identitas hanya diteruskan sebagai atribusi (mis. guru pencatat absensi).
func GetUserID(c *fiber.Ctx) (string, error) {
	if s := strLocal(c, LocUserID); s != "" {
		return s, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ada di token")
}

// GetTeacherID: teacher_id dari token; fallback ke user_id bila klaim khusus
// guru tidak ada (akun guru lama memakai user_id langsung).
func GetTeacherID(c *fiber.Ctx) (string, error) {
	if s := strLocal(c, LocTeacherID); s != "" {
		return s, nil
	}
	return GetUserID(c)
}

// GetSchoolID: tenant aktif dari token, wajib UUID.
func GetSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	s := strLocal(c, LocSchoolID)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school_id tidak ada di token")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school_id di token bukan UUID")
	}
	return id, nil
}
