package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================
   Model: class_timetables (dokumen otoritatif)
========================================= */

// ClassTimetableModel adalah dokumen timetable milik kelas (homeroom).
// Ditulis wholesale pada tiap edit (replace-and-reconcile, bukan patch per entry).
// Entries & Periods disimpan sebagai payload JSONB; TeacherIDs adalah bookkeeping
// untuk fan-out proyeksi (guru mana saja yang tersentuh dokumen ini).
type ClassTimetableModel struct {
	// PK
	ClassTimetableID uuid.UUID `gorm:"column:class_timetable_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_timetable_id"`

	// Tenant & identitas kelas (unik per school → serialisasi tulis per kelas via upsert)
	ClassTimetableSchoolID uuid.UUID `gorm:"column:class_timetable_school_id;type:uuid;not null;uniqueIndex:uq_class_timetables_school_class" json:"class_timetable_school_id"`
	ClassTimetableClassID  string    `gorm:"column:class_timetable_class_id;type:varchar(120);not null;uniqueIndex:uq_class_timetables_school_class" json:"class_timetable_class_id"`

	// Payload
	ClassTimetableEntries datatypes.JSON `gorm:"column:class_timetable_entries;type:jsonb;not null;default:'[]'" json:"class_timetable_entries"`
	ClassTimetablePeriods datatypes.JSON `gorm:"column:class_timetable_periods;type:jsonb" json:"class_timetable_periods,omitempty"`

	// Guru yang muncul di entries (diisi backend saat save)
	ClassTimetableTeacherIDs pq.StringArray `gorm:"column:class_timetable_teacher_ids;type:text[]" json:"class_timetable_teacher_ids"`

	// Audit
	ClassTimetableCreatedAt time.Time      `gorm:"column:class_timetable_created_at;type:timestamptz;not null;autoCreateTime" json:"class_timetable_created_at"`
	ClassTimetableUpdatedAt time.Time      `gorm:"column:class_timetable_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_timetable_updated_at"`
	ClassTimetableDeletedAt gorm.DeletedAt `gorm:"column:class_timetable_deleted_at;index" json:"class_timetable_deleted_at,omitempty"`
}

func (ClassTimetableModel) TableName() string { return "class_timetables" }

/* =========================
   Decode / encode view
========================= */

// View men-decode payload JSONB menjadi struktur in-memory untuk engine.
func (m *ClassTimetableModel) View() (ClassTimetable, error) {
	v := ClassTimetable{
		SchoolID: m.ClassTimetableSchoolID,
		ClassID:  m.ClassTimetableClassID,
	}
	if len(m.ClassTimetableEntries) > 0 {
		if err := json.Unmarshal(m.ClassTimetableEntries, &v.Entries); err != nil {
			return v, err
		}
	}
	if len(m.ClassTimetablePeriods) > 0 {
		if err := json.Unmarshal(m.ClassTimetablePeriods, &v.Periods); err != nil {
			return v, err
		}
	}
	return v, nil
}

// ApplyView meng-encode view ke kolom JSONB + mengisi ulang TeacherIDs.
func (m *ClassTimetableModel) ApplyView(v ClassTimetable) error {
	entries, err := json.Marshal(v.Entries)
	if err != nil {
		return err
	}
	m.ClassTimetableSchoolID = v.SchoolID
	m.ClassTimetableClassID = v.ClassID
	m.ClassTimetableEntries = entries

	if len(v.Periods) > 0 {
		periods, err := json.Marshal(v.Periods)
		if err != nil {
			return err
		}
		m.ClassTimetablePeriods = periods
	} else {
		m.ClassTimetablePeriods = nil
	}

	// distinct teacher ids, skip jam kosong
	seen := map[string]struct{}{}
	ids := pq.StringArray{}
	for _, e := range v.Entries {
		if e.FreePeriod() {
			continue
		}
		if _, ok := seen[e.TeacherID]; ok {
			continue
		}
		seen[e.TeacherID] = struct{}{}
		ids = append(ids, e.TeacherID)
	}
	m.ClassTimetableTeacherIDs = ids
	return nil
}
