// file: internals/features/school/timetable/service/store.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

/* =========================
   Kolaborator storage
========================= */

// TimetableStore adalah kolaborator persistensi yang diasumsikan engine.
// Engine sendiri hanya mengonsumsi struktur in-memory; seluruh I/O (timeout,
// retry, cancel) menjadi tanggung jawab pemanggil di sekitar store ini.
type TimetableStore interface {
	GetClassTimetable(ctx context.Context, schoolID uuid.UUID, classID string) (*m.ClassTimetable, error)
	ListClassTimetables(ctx context.Context, schoolID uuid.UUID) ([]m.ClassTimetable, error)
	// UpsertClassTimetable menulis dokumen kelas wholesale (unik per school+class,
	// jadi tulisan per kelas otomatis terserialisasi di DB). Mengembalikan daftar
	// teacher_id dokumen LAMA untuk kebutuhan rekonsiliasi proyeksi.
	UpsertClassTimetable(ctx context.Context, view m.ClassTimetable) (previousTeacherIDs []string, err error)
	DeleteClassTimetable(ctx context.Context, schoolID uuid.UUID, classID string) (previousTeacherIDs []string, err error)

	GetTeacherTimetable(ctx context.Context, schoolID uuid.UUID, teacherID string) (*m.TeacherTimetable, error)
	ListTeacherTimetables(ctx context.Context, schoolID uuid.UUID) ([]m.TeacherTimetable, error)
	UpsertTeacherTimetable(ctx context.Context, view m.TeacherTimetable) error
}

/* =========================
   Implementasi GORM + cache
========================= */

// GormTimetableStore: dokumen timetable di PostgreSQL (payload JSONB) dengan
// cache baca ber-TTL pendek, resolusi sesi dipanggil pada tiap submit absensi,
// jadi daftar timetable layak di-cache; cache di-invalidate pada tiap save.
type GormTimetableStore struct {
	DB    *gorm.DB
	Cache *gocache.Cache
}

func NewGormTimetableStore(db *gorm.DB) *GormTimetableStore {
	return &GormTimetableStore{
		DB:    db,
		Cache: gocache.New(30*time.Second, 5*time.Minute),
	}
}

func classListKey(schoolID uuid.UUID) string   { return "class_timetables:" + schoolID.String() }
func teacherListKey(schoolID uuid.UUID) string { return "teacher_timetables:" + schoolID.String() }

func (s *GormTimetableStore) invalidate(schoolID uuid.UUID) {
	if s.Cache != nil {
		s.Cache.Delete(classListKey(schoolID))
		s.Cache.Delete(teacherListKey(schoolID))
	}
}

/* ===== Class timetable ===== */

func (s *GormTimetableStore) GetClassTimetable(ctx context.Context, schoolID uuid.UUID, classID string) (*m.ClassTimetable, error) {
	var row m.ClassTimetableModel
	err := s.DB.WithContext(ctx).
		Where("class_timetable_school_id = ? AND class_timetable_class_id = ?", schoolID, classID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := row.View()
	if err != nil {
		return nil, fmt.Errorf("decode timetable kelas %s: %w", classID, err)
	}
	return &v, nil
}

func (s *GormTimetableStore) ListClassTimetables(ctx context.Context, schoolID uuid.UUID) ([]m.ClassTimetable, error) {
	if s.Cache != nil {
		if hit, ok := s.Cache.Get(classListKey(schoolID)); ok {
			return hit.([]m.ClassTimetable), nil
		}
	}
	var rows []m.ClassTimetableModel
	if err := s.DB.WithContext(ctx).
		Where("class_timetable_school_id = ?", schoolID).
		Order("class_timetable_class_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]m.ClassTimetable, 0, len(rows))
	for i := range rows {
		v, err := rows[i].View()
		if err != nil {
			return nil, fmt.Errorf("decode timetable kelas %s: %w", rows[i].ClassTimetableClassID, err)
		}
		views = append(views, v)
	}
	if s.Cache != nil {
		s.Cache.SetDefault(classListKey(schoolID), views)
	}
	return views, nil
}

func (s *GormTimetableStore) UpsertClassTimetable(ctx context.Context, view m.ClassTimetable) ([]string, error) {
	var prevTeacherIDs []string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev m.ClassTimetableModel
		err := tx.
			Where("class_timetable_school_id = ? AND class_timetable_class_id = ?", view.SchoolID, view.ClassID).
			First(&prev).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		prevTeacherIDs = prev.ClassTimetableTeacherIDs

		var row m.ClassTimetableModel
		if err := row.ApplyView(view); err != nil {
			return err
		}
		return tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "class_timetable_school_id"},
					{Name: "class_timetable_class_id"},
				},
				DoUpdates: append(
					clause.AssignmentColumns([]string{
						"class_timetable_entries",
						"class_timetable_periods",
						"class_timetable_teacher_ids",
						"class_timetable_updated_at",
					}),
					// save setelah delete menghidupkan kembali dokumen soft-deleted
					clause.Assignment{Column: clause.Column{Name: "class_timetable_deleted_at"}, Value: nil},
				),
			}).
			Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(view.SchoolID)
	return prevTeacherIDs, nil
}

func (s *GormTimetableStore) DeleteClassTimetable(ctx context.Context, schoolID uuid.UUID, classID string) ([]string, error) {
	var prev m.ClassTimetableModel
	err := s.DB.WithContext(ctx).
		Where("class_timetable_school_id = ? AND class_timetable_class_id = ?", schoolID, classID).
		First(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// dokumen dihapus utuh, tidak pernah parsial
	if err := s.DB.WithContext(ctx).Delete(&prev).Error; err != nil {
		return nil, err
	}
	s.invalidate(schoolID)
	return prev.ClassTimetableTeacherIDs, nil
}

/* ===== Teacher timetable (materialized view) ===== */

func (s *GormTimetableStore) GetTeacherTimetable(ctx context.Context, schoolID uuid.UUID, teacherID string) (*m.TeacherTimetable, error) {
	var row m.TeacherTimetableModel
	err := s.DB.WithContext(ctx).
		Where("teacher_timetable_school_id = ? AND teacher_timetable_teacher_id = ?", schoolID, teacherID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := row.View()
	if err != nil {
		return nil, fmt.Errorf("decode timetable guru %s: %w", teacherID, err)
	}
	return &v, nil
}

func (s *GormTimetableStore) ListTeacherTimetables(ctx context.Context, schoolID uuid.UUID) ([]m.TeacherTimetable, error) {
	if s.Cache != nil {
		if hit, ok := s.Cache.Get(teacherListKey(schoolID)); ok {
			return hit.([]m.TeacherTimetable), nil
		}
	}
	var rows []m.TeacherTimetableModel
	if err := s.DB.WithContext(ctx).
		Where("teacher_timetable_school_id = ?", schoolID).
		Order("teacher_timetable_teacher_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]m.TeacherTimetable, 0, len(rows))
	for i := range rows {
		v, err := rows[i].View()
		if err != nil {
			return nil, fmt.Errorf("decode timetable guru %s: %w", rows[i].TeacherTimetableTeacherID, err)
		}
		views = append(views, v)
	}
	if s.Cache != nil {
		s.Cache.SetDefault(teacherListKey(schoolID), views)
	}
	return views, nil
}

func (s *GormTimetableStore) UpsertTeacherTimetable(ctx context.Context, view m.TeacherTimetable) error {
	var row m.TeacherTimetableModel
	if err := row.ApplyView(view); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "teacher_timetable_school_id"},
				{Name: "teacher_timetable_teacher_id"},
			},
			DoUpdates: append(
				clause.AssignmentColumns([]string{
					"teacher_timetable_entries",
					"teacher_timetable_periods",
					"teacher_timetable_updated_at",
				}),
				clause.Assignment{Column: clause.Column{Name: "teacher_timetable_deleted_at"}, Value: nil},
			),
		}).
		Create(&row).Error
	if err != nil {
		return err
	}
	s.invalidate(view.SchoolID)
	return nil
}
