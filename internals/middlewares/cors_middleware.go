// middlewares/cors.go

package middlewares

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware membuat middleware CORS. Origin tambahan bisa ditambah
// lewat env CORS_EXTRA_ORIGINS (dipisah koma).
func CorsMiddleware() fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"http://127.0.0.1:5500",
		"https://sekolahku-web.vercel.app",
	}
	if extra := strings.TrimSpace(os.Getenv("CORS_EXTRA_ORIGINS")); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
