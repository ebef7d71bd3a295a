package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifSvc "sekolahku_backend/internals/features/home/notifications/service"
	attCtrl "sekolahku_backend/internals/features/school/attendance/controller"
	attSvc "sekolahku_backend/internals/features/school/attendance/service"
	ttSvc "sekolahku_backend/internals/features/school/timetable/service"
	"sekolahku_backend/internals/middlewares"
)

// Rute user (guru): isi & lihat absensi per slot sesi.
// timetables dibagikan dengan rute jadwal agar gate membaca cache yang sama
// (tidak melihat daftar basi setelah admin menyimpan jadwal).
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB, timetables ttSvc.TimetableStore) {
	gate := &attSvc.Gate{
		Cfg:        ttSvc.DefaultConfig(),
		Timetables: timetables,
		Records:    attSvc.NewGormAttendanceStore(db),
		Notifier:   notifSvc.NewGormNotificationSink(db),
	}
	ctl := attCtrl.NewAttendanceController(gate)

	grp := r.Group("/attendance")
	grp.Post("/", middlewares.AttendanceRateLimiter(), ctl.SubmitAttendance)
	grp.Get("/", ctl.GetAttendanceRecord)
}
