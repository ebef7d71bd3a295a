// file: internals/features/school/timetable/service/resolver.go
package service

import (
	"time"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

/* =========================
   Sesi berjalan
========================= */

// Session adalah satu pertemuan terjadwal yang sedang/akan berlangsung,
// hasil resolve dari jam dinding. Tidak ada entitas "session" yang dipersist,
// dihitung ulang setiap panggilan, jadi resolver stateless dan gampang diuji
// dengan `now` tetap.
type Session struct {
	ClassID   string      `json:"class_id"`
	SubjectID string      `json:"subject_id"`
	TeacherID string      `json:"teacher_id"`
	Day       m.DayOfWeek `json:"day"`
	Period    int         `json:"period"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
	Date      string      `json:"date"` // YYYY-MM-DD, tanggal `now` di zona sekolah
}

// CurrentSession menentukan sesi yang sedang berlangsung untuk seorang guru
// pada saat `now` (dikonversi ke zona waktu sekolah).
//
// Keanggotaan "sedang berlangsung" memakai batas closed-closed (lihat Overlaps):
// tepat di menit start ATAU end masih terhitung di dalam sesi.
// Bila lebih dari satu entry cocok (data bermasalah), yang pertama dalam urutan
// simpan yang dipakai, itu isu kualitas data, bukan fault engine.
// Tidak ada sesi = (nil, false), bukan error.
func (cfg Config) CurrentSession(views []m.TeacherTimetable, teacherID string, now time.Time) (*Session, bool) {
	local := now.In(cfg.Location)
	day := m.DayFromWeekday(local.Weekday())
	minute := local.Hour()*60 + local.Minute()

	for _, tt := range views {
		if tt.TeacherID != teacherID {
			continue
		}
		for _, e := range tt.Entries {
			if e.Day != day {
				continue
			}
			st, err := ParseClock(e.StartTime)
			if err != nil {
				continue
			}
			en, err := ParseClock(e.EndTime)
			if err != nil {
				continue
			}
			if Overlaps(MinutesOfDay(st), MinutesOfDay(en), minute, minute) {
				return &Session{
					ClassID:   e.ClassID,
					SubjectID: e.SubjectID,
					TeacherID: teacherID,
					Day:       e.Day,
					Period:    e.Period,
					StartTime: e.StartTime,
					EndTime:   e.EndTime,
					Date:      local.Format("2006-01-02"),
				}, true
			}
		}
	}
	return nil, false
}

/* =========================
   Verifikasi slot terjadwal
========================= */

// SlotIsScheduled memverifikasi bahwa (kelas, subject, hari, periode) memang
// ada di jadwal. Dicek di DUA sisi: timetable kelas DAN gabungan timetable
// guru, edit substitusi guru bisa sudah ada di view guru sebelum view kelas
// direkonsiliasi, dan gerbang absensi tidak boleh menolak sesi yang sah hanya
// karena proyeksi belum menyusul (proyeksi berjalan per guru, bisa tertinggal).
func SlotIsScheduled(classViews []m.ClassTimetable, teacherViews []m.TeacherTimetable, classID, subjectID string, day m.DayOfWeek, period int) bool {
	for _, ct := range classViews {
		if ct.ClassID != classID {
			continue
		}
		for _, e := range ct.Entries {
			if e.Day == day && e.Period == period && e.SubjectID == subjectID {
				return true
			}
		}
	}
	for _, tt := range teacherViews {
		for _, e := range tt.Entries {
			if e.ClassID == classID && e.SubjectID == subjectID && e.Day == day && e.Period == period {
				return true
			}
		}
	}
	return false
}
