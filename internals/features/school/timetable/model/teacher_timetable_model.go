package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================
   Model: teacher_timetables (view materialisasi)
========================================= */

// TeacherTimetableModel adalah dokumen turunan per guru, milik projector,
// hanya ditulis ulang sebagai efek samping dari save timetable kelas.
// Invariant: setiap entry di sini harus punya padanan (teacher_id sama) di
// salah satu class_timetables yang masih ada; entry basi dibersihkan tiap
// siklus proyeksi.
type TeacherTimetableModel struct {
	// PK
	TeacherTimetableID uuid.UUID `gorm:"column:teacher_timetable_id;type:uuid;default:gen_random_uuid();primaryKey" json:"teacher_timetable_id"`

	// Tenant & identitas guru (unik per school → tiap guru satu dokumen independen)
	TeacherTimetableSchoolID  uuid.UUID `gorm:"column:teacher_timetable_school_id;type:uuid;not null;uniqueIndex:uq_teacher_timetables_school_teacher" json:"teacher_timetable_school_id"`
	TeacherTimetableTeacherID string    `gorm:"column:teacher_timetable_teacher_id;type:varchar(120);not null;uniqueIndex:uq_teacher_timetables_school_teacher" json:"teacher_timetable_teacher_id"`

	// Payload (entries membawa class_id sumbernya)
	TeacherTimetableEntries datatypes.JSON `gorm:"column:teacher_timetable_entries;type:jsonb;not null;default:'[]'" json:"teacher_timetable_entries"`
	TeacherTimetablePeriods datatypes.JSON `gorm:"column:teacher_timetable_periods;type:jsonb" json:"teacher_timetable_periods,omitempty"`

	// Audit
	TeacherTimetableCreatedAt time.Time      `gorm:"column:teacher_timetable_created_at;type:timestamptz;not null;autoCreateTime" json:"teacher_timetable_created_at"`
	TeacherTimetableUpdatedAt time.Time      `gorm:"column:teacher_timetable_updated_at;type:timestamptz;not null;autoUpdateTime" json:"teacher_timetable_updated_at"`
	TeacherTimetableDeletedAt gorm.DeletedAt `gorm:"column:teacher_timetable_deleted_at;index" json:"teacher_timetable_deleted_at,omitempty"`
}

func (TeacherTimetableModel) TableName() string { return "teacher_timetables" }

/* =========================
   Decode / encode view
========================= */

func (m *TeacherTimetableModel) View() (TeacherTimetable, error) {
	v := TeacherTimetable{
		SchoolID:  m.TeacherTimetableSchoolID,
		TeacherID: m.TeacherTimetableTeacherID,
	}
	if len(m.TeacherTimetableEntries) > 0 {
		if err := json.Unmarshal(m.TeacherTimetableEntries, &v.Entries); err != nil {
			return v, err
		}
	}
	if len(m.TeacherTimetablePeriods) > 0 {
		if err := json.Unmarshal(m.TeacherTimetablePeriods, &v.Periods); err != nil {
			return v, err
		}
	}
	return v, nil
}

func (m *TeacherTimetableModel) ApplyView(v TeacherTimetable) error {
	entries, err := json.Marshal(v.Entries)
	if err != nil {
		return err
	}
	m.TeacherTimetableSchoolID = v.SchoolID
	m.TeacherTimetableTeacherID = v.TeacherID
	m.TeacherTimetableEntries = entries

	if len(v.Periods) > 0 {
		periods, err := json.Marshal(v.Periods)
		if err != nil {
			return err
		}
		m.TeacherTimetablePeriods = periods
	} else {
		m.TeacherTimetablePeriods = nil
	}
	return nil
}
