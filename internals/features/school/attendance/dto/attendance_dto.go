// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	svc "sekolahku_backend/internals/features/school/attendance/service"
)

/* ================== REQUEST ================== */

// SubmitAttendanceRequest: satu submission absensi untuk satu slot sesi.
// Kunci slotnya komposit, submit ulang dengan kunci sama menjadi update,
// bukan record baru.
type SubmitAttendanceRequest struct {
	ClassID   string            `json:"class_id" validate:"required"`
	SubjectID string            `json:"subject_id" validate:"required"`
	Date      string            `json:"date" validate:"required,datetime=2006-01-02"`
	Period    int               `json:"period" validate:"required,gte=1"`
	Statuses  map[string]string `json:"statuses" validate:"required,min=1"` // student_id → status
}

func (r *SubmitAttendanceRequest) ToKey(schoolID uuid.UUID) svc.AttendanceSlotKey {
	return svc.AttendanceSlotKey{
		SchoolID:  schoolID,
		ClassID:   r.ClassID,
		SubjectID: r.SubjectID,
		Date:      r.Date,
		Period:    r.Period,
	}
}

// AttendanceSlotQuery: identitas slot tanpa statuses, untuk endpoint baca.
type AttendanceSlotQuery struct {
	ClassID   string `query:"class_id" validate:"required"`
	SubjectID string `query:"subject_id" validate:"required"`
	Date      string `query:"date" validate:"required,datetime=2006-01-02"`
	Period    int    `query:"period" validate:"required,gte=1"`
}

func (q *AttendanceSlotQuery) ToKey(schoolID uuid.UUID) svc.AttendanceSlotKey {
	return svc.AttendanceSlotKey{
		SchoolID:  schoolID,
		ClassID:   q.ClassID,
		SubjectID: q.SubjectID,
		Date:      q.Date,
		Period:    q.Period,
	}
}

/* ================== RESPONSE ================== */

type AttendanceRecordResponse struct {
	ClassID   string            `json:"class_id"`
	SubjectID string            `json:"subject_id"`
	Date      string            `json:"date"`
	Period    int               `json:"period"`
	Statuses  map[string]string `json:"statuses"`
	TeacherID string            `json:"teacher_id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func FromRecord(rec svc.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ClassID:   rec.Key.ClassID,
		SubjectID: rec.Key.SubjectID,
		Date:      rec.Key.Date,
		Period:    rec.Key.Period,
		Statuses:  rec.Statuses,
		TeacherID: rec.TeacherID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
