// file: internals/features/school/timetable/dto/timetable_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/timetable/model"
	svc "sekolahku_backend/internals/features/school/timetable/service"
)

/* ================== REQUEST ================== */

// TimetableEntryRequest: satu slot usulan. Day boleh ejaan EN maupun ID
// (senin/monday/...), dinormalisasi di ToView, tidak pernah disimpan mentah.
// TeacherID kosong = jam kosong.
type TimetableEntryRequest struct {
	Day       string `json:"day" validate:"required"`
	Period    int    `json:"period" validate:"required,gte=1"`
	SubjectID string `json:"subject_id" validate:"required"`
	TeacherID string `json:"teacher_id"`
}

type PeriodDefinitionRequest struct {
	Ordinal   int    `json:"ordinal" validate:"required,gte=1"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// SaveClassTimetableRequest: edit jadwal selalu wholesale
// (replace-and-reconcile), bukan patch per entry.
type SaveClassTimetableRequest struct {
	Entries []TimetableEntryRequest   `json:"entries" validate:"required,dive"`
	Periods []PeriodDefinitionRequest `json:"periods,omitempty" validate:"omitempty,dive"`
}

// ToView menormalkan request menjadi view engine: nama hari dikanonikalisasi,
// batas periode disalin ke tiap entry, invariant dokumen ditegakkan.
func (r *SaveClassTimetableRequest) ToView(cfg svc.Config, schoolID uuid.UUID, classID string) (m.ClassTimetable, error) {
	v := m.ClassTimetable{
		SchoolID: schoolID,
		ClassID:  classID,
	}
	for _, p := range r.Periods {
		v.Periods = append(v.Periods, m.PeriodDefinition{
			Ordinal:   p.Ordinal,
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
		})
	}
	for _, e := range r.Entries {
		day, err := cfg.CanonicalDay(e.Day)
		if err != nil {
			return v, err
		}
		v.Entries = append(v.Entries, m.TimetableEntry{
			Day:       day,
			Period:    e.Period,
			ClassID:   classID,
			SubjectID: e.SubjectID,
			TeacherID: e.TeacherID,
		})
	}
	if err := cfg.ValidateClassTimetable(&v); err != nil {
		return v, err
	}
	return v, nil
}

/* ================== RESPONSE ================== */

type ClassTimetableResponse struct {
	SchoolID uuid.UUID            `json:"school_id"`
	ClassID  string               `json:"class_id"`
	Entries  []m.TimetableEntry   `json:"entries"`
	Periods  []m.PeriodDefinition `json:"periods,omitempty"`
}

func FromClassView(v m.ClassTimetable) ClassTimetableResponse {
	return ClassTimetableResponse{
		SchoolID: v.SchoolID,
		ClassID:  v.ClassID,
		Entries:  v.Entries,
		Periods:  v.Periods,
	}
}

type TeacherTimetableResponse struct {
	SchoolID  uuid.UUID            `json:"school_id"`
	TeacherID string               `json:"teacher_id"`
	Entries   []m.TimetableEntry   `json:"entries"`
	Periods   []m.PeriodDefinition `json:"periods,omitempty"`
}

func FromTeacherView(v m.TeacherTimetable) TeacherTimetableResponse {
	return TeacherTimetableResponse{
		SchoolID:  v.SchoolID,
		TeacherID: v.TeacherID,
		Entries:   v.Entries,
		Periods:   v.Periods,
	}
}

// ConflictListResponse dikirim saat save ditolak: SEMUA tuple bentrok
// sekaligus, bukan hanya yang pertama.
type ConflictListResponse struct {
	ClassConflicts   []svc.Conflict `json:"class_conflicts"`
	TeacherConflicts []svc.Conflict `json:"teacher_conflicts"`
}

func FromConflicts(classConflicts, teacherConflicts []svc.Conflict) ConflictListResponse {
	return ConflictListResponse{
		ClassConflicts:   classConflicts,
		TeacherConflicts: teacherConflicts,
	}
}

type CurrentSessionResponse struct {
	InSession bool         `json:"in_session"`
	Session   *svc.Session `json:"session,omitempty"`
	At        time.Time    `json:"at"`
}

func FromSession(s *svc.Session, inSession bool, at time.Time) CurrentSessionResponse {
	return CurrentSessionResponse{InSession: inSession, Session: s, At: at}
}

// EmptyClassView dipakai saat delete: proyeksi kelas tanpa entry
// membersihkan slot kelas tersebut dari jadwal semua guru lama.
func EmptyClassView(schoolID uuid.UUID, classID string) m.ClassTimetable {
	return m.ClassTimetable{SchoolID: schoolID, ClassID: classID}
}
