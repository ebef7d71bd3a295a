// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	dto "sekolahku_backend/internals/features/school/attendance/dto"
	svc "sekolahku_backend/internals/features/school/attendance/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AttendanceController struct {
	Validate *validator.Validate
	Gate     *svc.Gate
}

func NewAttendanceController(gate *svc.Gate) *AttendanceController {
	return &AttendanceController{
		Validate: validator.New(),
		Gate:     gate,
	}
}

/* =========================================================
   POST /api/u/attendance
   Submit absensi satu sesi. Idempotent per (kelas, mapel, tanggal,
   periode); submit ulang menimpa status murid yang dikirim ulang.
   ========================================================= */

func (ctl *AttendanceController) SubmitAttendance(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolID(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetTeacherID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	key := req.ToKey(schoolID)
	rec, created, err := ctl.Gate.SubmitAttendance(c.UserContext(), key, teacherID, req.Statuses)
	if err != nil {
		var nsErr *svc.SlotNotScheduledError
		if errors.As(err, &nsErr) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, nsErr.Error())
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// upsert kalah balapan; klien cukup mengulang request
			return helper.JsonError(c, fiber.StatusConflict, "Absensi sedang disimpan pihak lain, coba ulangi")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.FromRecord(*rec)
	if created {
		return helper.JsonCreated(c, "Absensi berhasil disimpan", resp)
	}
	return helper.JsonUpdated(c, "Absensi berhasil diperbarui", resp)
}

/* =========================================================
   GET /api/u/attendance?class_id=&subject_id=&date=&period=
   Ambil rekap absensi satu slot (dipakai guru sebelum mengisi ulang).
   ========================================================= */

func (ctl *AttendanceController) GetAttendanceRecord(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolID(c)
	if err != nil {
		return err
	}
	teacherID, err := helperAuth.GetTeacherID(c)
	if err != nil {
		return err
	}

	req := dto.AttendanceSlotQuery{
		ClassID:   strings.TrimSpace(c.Query("class_id")),
		SubjectID: strings.TrimSpace(c.Query("subject_id")),
		Date:      strings.TrimSpace(c.Query("date")),
		Period:    c.QueryInt("period"),
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	existing, scheduled, err := ctl.Gate.PrepareAttendanceSubmission(c.UserContext(), req.ToKey(schoolID), teacherID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var resp *dto.AttendanceRecordResponse
	if existing != nil {
		r := dto.FromRecord(*existing)
		resp = &r
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"scheduled": scheduled,
		"record":    resp,
	})
}
