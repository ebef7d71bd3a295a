// file: internals/features/school/timetable/controller/timetable_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/timetable/dto"
	m "sekolahku_backend/internals/features/school/timetable/model"
	svc "sekolahku_backend/internals/features/school/timetable/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type TimetableController struct {
	Validate *validator.Validate
	Cfg      svc.Config
	Store    svc.TimetableStore
}

func NewTimetableController(store svc.TimetableStore) *TimetableController {
	return &TimetableController{
		Validate: validator.New(),
		Cfg:      svc.DefaultConfig(),
		Store:    store,
	}
}

/* =========================================================
   Helper: mapping error PG → status HTTP
   ========================================================= */

func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fiber.NewError(fiber.StatusConflict, "Data jadwal sudah ada")
		case "23503":
			return fiber.NewError(fiber.StatusBadRequest, "Referensi data tidak valid")
		case "23P01":
			return fiber.NewError(fiber.StatusConflict, "Bentrok dengan jadwal lain")
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Data tidak ditemukan")
	}
	return err
}

/* =========================================================
   PUT /api/a/classes/:class_id/timetable
   Simpan jadwal kelas (replace seluruh jadwal), deteksi bentrok,
   lalu proyeksikan ulang jadwal per-guru.
   ========================================================= */

func (ctl *TimetableController) SaveClassTimetable(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolID(c)
	if err != nil {
		return err
	}
	classID := strings.TrimSpace(c.Params("class_id"))
	if classID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id wajib diisi")
	}

	var req dto.SaveClassTimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	view, err := req.ToView(ctl.Cfg, schoolID, classID)
	if err != nil {
		if errors.Is(err, svc.ErrUnrecognizedDay) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.UserContext()

	// Deteksi bentrok terhadap seluruh jadwal sekolah (kecuali kelas ini sendiri)
	existing, err := ctl.Store.ListClassTimetables(ctx, schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	classConf, teacherConf := svc.DetectConflicts(existing, view, &classID)
	force := strings.EqualFold(c.Query("force"), "true") || c.Query("force") == "1"
	if (len(classConf) > 0 || len(teacherConf) > 0) && !force {
		return helper.JsonErrorWithData(c, fiber.StatusConflict,
			"Jadwal bentrok dengan jadwal yang sudah ada",
			dto.FromConflicts(classConf, teacherConf))
	}

	prevTeacherIDs, err := ctl.Store.UpsertClassTimetable(ctx, view)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, mapPGError(err).Error())
	}

	projector := svc.Projector{Cfg: ctl.Cfg, Store: ctl.Store}
	if err := projector.Project(ctx, view, prevTeacherIDs); err != nil {
		var pf *svc.ProjectionPartialFailure
		if errors.As(err, &pf) {
			// Jadwal kelas sudah tersimpan; proyeksi sebagian gagal.
			return helper.JsonErrorWithData(c, fiber.StatusMultiStatus,
				"Jadwal tersimpan, tetapi sebagian jadwal guru gagal diproyeksikan",
				fiber.Map{"failed_teacher_ids": pf.Failed()})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Jadwal kelas berhasil disimpan", fiber.Map{
		"timetable": dto.FromClassView(view),
		"conflicts": dto.FromConflicts(classConf, teacherConf),
		"forced":    force && (len(classConf) > 0 || len(teacherConf) > 0),
	})
}

/* =========================================================
   GET /api/a/classes/:class_id/timetable
   ========================================================= */

func (ctl *TimetableController) GetClassTimetable(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolID(c)
	if err != nil {
		return err
	}
	classID := strings.TrimSpace(c.Params("class_id"))
	if classID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id wajib diisi")
	}

	view, err := ctl.Store.GetClassTimetable(c.UserContext(), schoolID, classID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if view == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Jadwal kelas tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", dto.FromClassView(*view))
}

/* =========================================================
   DELETE /api/a/classes/:class_id/timetable
   Menghapus jadwal kelas sekaligus membersihkan proyeksi guru.
   ========================================================= */

func (ctl *TimetableController) DeleteClassTimetable(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolID(c)
	if err != nil {
		return err
	}
	classID := strings.TrimSpace(c.Params("class_id"))
	if classID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id wajib diisi")
	}

	ctx := c.UserContext()
	// idempotent: menghapus jadwal yang tidak ada bukan error
	prevTeacherIDs, err := ctl.Store.DeleteClassTimetable(ctx, schoolID, classID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Proyeksikan kelas kosong agar slot kelas ini hilang dari jadwal guru
	empty := dto.EmptyClassView(schoolID, classID)
	projector := svc.Projector{Cfg: ctl.Cfg, Store: ctl.Store}
	if err := projector.Project(ctx, empty, prevTeacherIDs); err != nil {
		var pf *svc.ProjectionPartialFailure
		if errors.As(err, &pf) {
			return helper.JsonErrorWithData(c, fiber.StatusMultiStatus,
				"Jadwal kelas terhapus, tetapi sebagian jadwal guru gagal dibersihkan",
				fiber.Map{"failed_teacher_ids": pf.Failed()})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Jadwal kelas berhasil dihapus", fiber.Map{"class_id": classID})
}

/* =========================================================
   GET /api/u/teachers/:teacher_id/timetable
   ========================================================= */

func (ctl *TimetableController) GetTeacherTimetable(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolID(c)
	if err != nil {
		return err
	}
	teacherID := strings.TrimSpace(c.Params("teacher_id"))
	if teacherID == "" || strings.EqualFold(teacherID, "me") {
		teacherID, err = helperAuth.GetTeacherID(c)
		if err != nil {
			return err
		}
	}

	view, err := ctl.Store.GetTeacherTimetable(c.UserContext(), schoolID, teacherID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if view == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Jadwal guru tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", dto.FromTeacherView(*view))
}

/* =========================================================
   GET /api/u/teachers/:teacher_id/current-session?at=RFC3339
   Sesi yang sedang berjalan untuk guru pada waktu tertentu.
   ========================================================= */

func (ctl *TimetableController) CurrentSession(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolID(c)
	if err != nil {
		return err
	}
	teacherID := strings.TrimSpace(c.Params("teacher_id"))
	if teacherID == "" || strings.EqualFold(teacherID, "me") {
		teacherID, err = helperAuth.GetTeacherID(c)
		if err != nil {
			return err
		}
	}

	at := time.Now().In(ctl.Cfg.Location)
	if raw := strings.TrimSpace(c.Query("at")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parameter at harus RFC3339")
		}
		at = parsed.In(ctl.Cfg.Location)
	}

	// Resolusi hanya butuh view guru ini; jangan tarik daftar seisi sekolah.
	view, err := ctl.Store.GetTeacherTimetable(c.UserContext(), schoolID, teacherID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var views []m.TeacherTimetable
	if view != nil {
		views = append(views, *view)
	}
	session, ok := ctl.Cfg.CurrentSession(views, teacherID, at)
	return helper.JsonOK(c, "OK", dto.FromSession(session, ok, at))
}
