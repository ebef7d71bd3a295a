// file: internals/features/school/attendance/service/session_gate.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	attModel "sekolahku_backend/internals/features/school/attendance/model"
	ttModel "sekolahku_backend/internals/features/school/timetable/model"
	ttService "sekolahku_backend/internals/features/school/timetable/service"
)

/* =========================
   Kunci slot & view record
========================= */

// AttendanceSlotKey: alamat komposit satu sesi, unit idempotensi absensi.
// Satu set AttendanceRecord per kunci; pemanggil tidak pernah mengalamatkan
// lewat surrogate id.
type AttendanceSlotKey struct {
	SchoolID  uuid.UUID `json:"school_id"`
	ClassID   string    `json:"class_id"`
	SubjectID string    `json:"subject_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Period    int       `json:"period"`
}

func (k AttendanceSlotKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s/p%d", k.SchoolID, k.ClassID, k.SubjectID, k.Date, k.Period)
}

// AttendanceRecord adalah view in-memory dari dokumen absensi.
type AttendanceRecord struct {
	Key       AttendanceSlotKey `json:"key"`
	Statuses  map[string]string `json:"statuses"` // student_id → status
	TeacherID string            `json:"teacher_id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

/* =========================
   Error: slot tidak terjadwal
========================= */

// SlotNotScheduledError: submission ditolak karena slotnya memang tidak ada di
// jadwal. Ini outcome yang bisa dikoreksi pengguna, bukan fault sistem,
// pesannya menjelaskan (kelas, subject, hari, periode) yang diminta.
type SlotNotScheduledError struct {
	Key AttendanceSlotKey
	Day ttModel.DayOfWeek
}

func (e *SlotNotScheduledError) Error() string {
	return fmt.Sprintf(
		"tidak ada kelas terjadwal untuk kelas %s subject %s pada %s (%s) periode %d",
		e.Key.ClassID, e.Key.SubjectID, e.Day, e.Key.Date, e.Key.Period,
	)
}

/* =========================
   Kolaborator
========================= */

// AttendanceStore: persistensi dokumen absensi per kunci slot.
// UpsertRecord WAJIB atomic terhadap kunci komposit (ON CONFLICT by key),
// jangan perkenalkan celah cek-keberadaan-lalu-tulis.
type AttendanceStore interface {
	GetRecord(ctx context.Context, key AttendanceSlotKey) (*AttendanceRecord, error)
	UpsertRecord(ctx context.Context, rec AttendanceRecord) (*AttendanceRecord, error)
}

// NotificationSink: efek samping eksternal, fire-and-forget dari sudut pandang
// gerbang, dipicu tepat satu kali per commit sukses, tidak pernah saat
// validasi gagal.
type NotificationSink interface {
	Notify(ctx context.Context, schoolID uuid.UUID, userID string, kind string, payload map[string]any)
}

/* =========================
   Gerbang sesi absensi
========================= */

// Gate mengorkestrasi satu submission absensi: verifikasi slot terjadwal,
// lookup record eksisting, lalu putuskan create vs update idempoten.
type Gate struct {
	Cfg        ttService.Config
	Timetables ttService.TimetableStore
	Records    AttendanceStore
	Notifier   NotificationSink
}

// dayOfKey menurunkan hari kalender dari tanggal kunci, di zona sekolah.
func (g *Gate) dayOfKey(key AttendanceSlotKey) (ttModel.DayOfWeek, error) {
	d, err := time.ParseInLocation("2006-01-02", key.Date, g.Cfg.Location)
	if err != nil {
		return 0, fmt.Errorf("tanggal slot tidak valid %q: %w", key.Date, err)
	}
	return ttModel.DayFromWeekday(d.Weekday()), nil
}

// PrepareAttendanceSubmission menjalankan langkah baca dari alur submit:
//  1. verifikasi slot terjadwal (view kelas ATAU view guru, lihat
//     SlotIsScheduled); scheduled=false berarti caller wajib menolak.
//  2. lookup record eksisting untuk kunci ini; bila ada, jalur submit menjadi
//     update (merge status per siswa), bukan insert.
func (g *Gate) PrepareAttendanceSubmission(ctx context.Context, key AttendanceSlotKey, actorTeacherID string) (existing *AttendanceRecord, scheduled bool, err error) {
	day, err := g.dayOfKey(key)
	if err != nil {
		return nil, false, err
	}

	classViews, err := g.Timetables.ListClassTimetables(ctx, key.SchoolID)
	if err != nil {
		return nil, false, err
	}
	teacherViews, err := g.Timetables.ListTeacherTimetables(ctx, key.SchoolID)
	if err != nil {
		return nil, false, err
	}
	if !ttService.SlotIsScheduled(classViews, teacherViews, key.ClassID, key.SubjectID, day, key.Period) {
		return nil, false, nil
	}

	existing, err = g.Records.GetRecord(ctx, key)
	if err != nil {
		return nil, true, err
	}
	return existing, true, nil
}

// SubmitAttendance meng-commit satu submission.
//
// Idempoten per kunci: submit kedua untuk kunci yang sama MENG-UPDATE record
// yang ada (status per siswa di-merge, siswa yang dikirim ulang menang;
// created_at asli dipertahankan, updated_at maju), tidak pernah membuat
// record saudara. Penulisan memakai upsert-by-key sehingga double-submit
// konkuren tetap menghasilkan paling banyak satu record, status terakhir
// yang ter-commit yang menang.
//
// created=true bila ini submission pertama untuk kunci tsb.
func (g *Gate) SubmitAttendance(ctx context.Context, key AttendanceSlotKey, actorTeacherID string, statuses map[string]string) (rec *AttendanceRecord, created bool, err error) {
	for studentID, st := range statuses {
		if !attModel.AttendanceStatus(st).Valid() {
			return nil, false, fmt.Errorf("status absensi tidak valid untuk siswa %s: %q", studentID, st)
		}
	}

	existing, scheduled, err := g.PrepareAttendanceSubmission(ctx, key, actorTeacherID)
	if err != nil {
		return nil, false, err
	}
	if !scheduled {
		day, derr := g.dayOfKey(key)
		if derr != nil {
			return nil, false, derr
		}
		return nil, false, &SlotNotScheduledError{Key: key, Day: day}
	}

	merged := map[string]string{}
	if existing != nil {
		for id, st := range existing.Statuses {
			merged[id] = st
		}
	}
	for id, st := range statuses {
		merged[id] = st
	}

	saved, err := g.Records.UpsertRecord(ctx, AttendanceRecord{
		Key:       key,
		Statuses:  merged,
		TeacherID: actorTeacherID,
	})
	if err != nil {
		return nil, false, err
	}

	// notifikasi hanya setelah commit sukses, sekali per siswa yang disentuh
	if g.Notifier != nil {
		ids := make([]string, 0, len(statuses))
		for id := range statuses {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, studentID := range ids {
			g.Notifier.Notify(ctx, key.SchoolID, studentID, "attendance_changed", map[string]any{
				"class_id":   key.ClassID,
				"subject_id": key.SubjectID,
				"date":       key.Date,
				"period":     key.Period,
				"status":     statuses[studentID],
				"teacher_id": actorTeacherID,
			})
		}
	}
	return saved, existing == nil, nil
}
