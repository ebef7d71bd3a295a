// file: internals/features/school/attendance/service/store.go
package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "sekolahku_backend/internals/features/school/attendance/model"
)

/* =========================
   Implementasi GORM
========================= */

type GormAttendanceStore struct {
	DB *gorm.DB
}

func NewGormAttendanceStore(db *gorm.DB) *GormAttendanceStore {
	return &GormAttendanceStore{DB: db}
}

func toRecordView(row m.AttendanceRecordModel) AttendanceRecord {
	statuses := make(map[string]string, len(row.AttendanceRecordStatuses))
	for id, v := range row.AttendanceRecordStatuses {
		if s, ok := v.(string); ok {
			statuses[id] = s
		}
	}
	return AttendanceRecord{
		Key: AttendanceSlotKey{
			SchoolID:  row.AttendanceRecordSchoolID,
			ClassID:   row.AttendanceRecordClassID,
			SubjectID: row.AttendanceRecordSubjectID,
			Date:      row.AttendanceRecordDate.Format("2006-01-02"),
			Period:    row.AttendanceRecordPeriod,
		},
		Statuses:  statuses,
		TeacherID: row.AttendanceRecordTeacherID,
		CreatedAt: row.AttendanceRecordCreatedAt,
		UpdatedAt: row.AttendanceRecordUpdatedAt,
	}
}

func (s *GormAttendanceStore) GetRecord(ctx context.Context, key AttendanceSlotKey) (*AttendanceRecord, error) {
	date, err := time.Parse("2006-01-02", key.Date)
	if err != nil {
		return nil, err
	}
	var row m.AttendanceRecordModel
	err = s.DB.WithContext(ctx).
		Where(`attendance_record_school_id = ?
			AND attendance_record_class_id = ?
			AND attendance_record_subject_id = ?
			AND attendance_record_date = ?
			AND attendance_record_period = ?`,
			key.SchoolID, key.ClassID, key.SubjectID, date, key.Period).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v := toRecordView(row)
	return &v, nil
}

// UpsertRecord menulis dokumen absensi secara atomic pada kunci komposit.
// ON CONFLICT di unique index slot: status & guru diganti, updated_at maju,
// created_at TIDAK disentuh, submit ulang tidak memundurkan waktu buat.
func (s *GormAttendanceStore) UpsertRecord(ctx context.Context, rec AttendanceRecord) (*AttendanceRecord, error) {
	date, err := time.Parse("2006-01-02", rec.Key.Date)
	if err != nil {
		return nil, err
	}
	statuses := make(datatypes.JSONMap, len(rec.Statuses))
	for id, st := range rec.Statuses {
		statuses[id] = st
	}
	row := m.AttendanceRecordModel{
		AttendanceRecordSchoolID:  rec.Key.SchoolID,
		AttendanceRecordClassID:   rec.Key.ClassID,
		AttendanceRecordSubjectID: rec.Key.SubjectID,
		AttendanceRecordDate:      date,
		AttendanceRecordPeriod:    rec.Key.Period,
		AttendanceRecordStatuses:  statuses,
		AttendanceRecordTeacherID: rec.TeacherID,
	}
	err = s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_school_id"},
				{Name: "attendance_record_class_id"},
				{Name: "attendance_record_subject_id"},
				{Name: "attendance_record_date"},
				{Name: "attendance_record_period"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_statuses",
				"attendance_record_teacher_id",
				"attendance_record_updated_at",
			}),
		}).
		Clauses(clause.Returning{}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}
	v := toRecordView(row)
	return &v, nil
}
