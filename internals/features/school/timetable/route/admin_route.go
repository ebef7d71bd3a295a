package route

import (
	"github.com/gofiber/fiber/v2"

	ttCtrl "sekolahku_backend/internals/features/school/timetable/controller"
	ttSvc "sekolahku_backend/internals/features/school/timetable/service"
	"sekolahku_backend/internals/middlewares"
)

// Rute admin: kelola jadwal kelas (simpan, lihat, hapus).
// Store dibuat sekali di SetupRoutes dan dibagikan antar mount, supaya
// invalidasi cache saat save terlihat oleh semua pembaca.
func TimetableAdminRoutes(r fiber.Router, store ttSvc.TimetableStore) {
	ctl := ttCtrl.NewTimetableController(store)

	grp := r.Group("/classes")
	grp.Put("/:class_id/timetable", middlewares.TimetableWriteRateLimiter(), ctl.SaveClassTimetable)
	grp.Get("/:class_id/timetable", ctl.GetClassTimetable)
	grp.Delete("/:class_id/timetable", middlewares.TimetableWriteRateLimiter(), ctl.DeleteClassTimetable)
}
