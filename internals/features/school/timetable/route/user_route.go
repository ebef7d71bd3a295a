package route

import (
	"github.com/gofiber/fiber/v2"

	ttCtrl "sekolahku_backend/internals/features/school/timetable/controller"
	ttSvc "sekolahku_backend/internals/features/school/timetable/service"
)

// Rute user (guru): jadwal mengajar per-guru dan sesi yang sedang berjalan.
// :teacher_id boleh "me" untuk memakai teacher_id dari token.
func TimetableUserRoutes(r fiber.Router, store ttSvc.TimetableStore) {
	ctl := ttCtrl.NewTimetableController(store)

	grp := r.Group("/teachers")
	grp.Get("/:teacher_id/timetable", ctl.GetTeacherTimetable)
	grp.Get("/:teacher_id/current-session", ctl.CurrentSession)
}
