package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================
   Enum status kehadiran
========================= */

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceSick    AttendanceStatus = "sick"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceSick, AttendanceExcused:
		return true
	}
	return false
}

/* =========================================
   Model: attendance_records
========================================= */

// AttendanceRecordModel: satu set absensi per slot sesi.
// Kunci komposit (school, class, subject, date, period) adalah unit idempotensi:
// unique index uq_attendance_records_slot membuat submit ulang menjadi UPDATE
// lewat upsert-by-key, bukan record kembar, tanpa celah cek-lalu-tulis.
// Statuses: map student_id → status (JSONB).
type AttendanceRecordModel struct {
	// PK (surrogate, tidak pernah dipakai pemanggil untuk alamat ulang)
	AttendanceRecordID uuid.UUID `gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_record_id"`

	// Kunci slot komposit
	AttendanceRecordSchoolID  uuid.UUID `gorm:"column:attendance_record_school_id;type:uuid;not null;uniqueIndex:uq_attendance_records_slot" json:"attendance_record_school_id"`
	AttendanceRecordClassID   string    `gorm:"column:attendance_record_class_id;type:varchar(120);not null;uniqueIndex:uq_attendance_records_slot" json:"attendance_record_class_id"`
	AttendanceRecordSubjectID string    `gorm:"column:attendance_record_subject_id;type:varchar(120);not null;uniqueIndex:uq_attendance_records_slot" json:"attendance_record_subject_id"`
	AttendanceRecordDate      time.Time `gorm:"column:attendance_record_date;type:date;not null;uniqueIndex:uq_attendance_records_slot" json:"attendance_record_date"`
	AttendanceRecordPeriod    int       `gorm:"column:attendance_record_period;type:smallint;not null;uniqueIndex:uq_attendance_records_slot" json:"attendance_record_period"`

	// Isi
	AttendanceRecordStatuses  datatypes.JSONMap `gorm:"column:attendance_record_statuses;type:jsonb;not null" json:"attendance_record_statuses"`
	AttendanceRecordTeacherID string            `gorm:"column:attendance_record_teacher_id;type:varchar(120);not null" json:"attendance_record_teacher_id"`

	// Audit, created_at tidak boleh mundur saat submit ulang (lihat upsert di store)
	AttendanceRecordCreatedAt time.Time `gorm:"column:attendance_record_created_at;type:timestamptz;not null;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"column:attendance_record_updated_at;type:timestamptz;not null;autoUpdateTime" json:"attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
