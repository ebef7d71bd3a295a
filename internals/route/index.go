// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	NotificationRoutes "sekolahku_backend/internals/features/home/notifications/route"
	AttendanceRoutes "sekolahku_backend/internals/features/school/attendance/route"
	TimetableRoutes "sekolahku_backend/internals/features/school/timetable/route"
	TimetableService "sekolahku_backend/internals/features/school/timetable/service"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== GROUPS =====================

	// PRIVATE (USER): guru & staf, cukup JWT valid
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ADMIN (per school): JWT + school_id di token
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	// Satu store jadwal untuk semua mount. Cache di dalamnya baru konsisten
	// kalau instance-nya sama: invalidasi saat admin save harus terlihat oleh
	// pembaca jadwal guru dan gate absensi.
	ttStore := TimetableService.NewGormTimetableStore(db)

	log.Println("[INFO] Mounting Timetable routes...")
	TimetableRoutes.TimetableAdminRoutes(admin, ttStore)
	TimetableRoutes.TimetableUserRoutes(private, ttStore)

	log.Println("[INFO] Mounting Attendance routes...")
	AttendanceRoutes.AttendanceUserRoutes(private, db, ttStore)

	log.Println("[INFO] Mounting Notification routes...")
	NotificationRoutes.NotificationUserRoutes(private, db)
}
