// file: internals/features/school/timetable/service/conflict.go
package service

import (
	"fmt"
	"strings"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

/* =========================
   Tipe bentrok
========================= */

// Conflict menunjuk entry EKSISTING yang bertabrakan dengan usulan:
// (hari, periode) plus pihak lain yang memegang slot itu.
type Conflict struct {
	Day       m.DayOfWeek `json:"day"`
	Period    int         `json:"period"`
	ClassID   string      `json:"class_id"`
	SubjectID string      `json:"subject_id"`
	TeacherID string      `json:"teacher_id,omitempty"`
}

func (c Conflict) String() string {
	if c.TeacherID != "" {
		return fmt.Sprintf("%s periode %d: guru %s sudah mengajar %s di kelas %s",
			c.Day, c.Period, c.TeacherID, c.SubjectID, c.ClassID)
	}
	return fmt.Sprintf("%s periode %d: kelas %s sudah terisi %s",
		c.Day, c.Period, c.ClassID, c.SubjectID)
}

// ScheduleConflictError membawa SEMUA bentrok yang terkumpul (bukan hanya yang
// pertama), "bentrok ditemukan" adalah hasil yang diharapkan dan harus
// ditampilkan utuh ke pengguna.
type ScheduleConflictError struct {
	ClassConflicts   []Conflict `json:"class_conflicts"`
	TeacherConflicts []Conflict `json:"teacher_conflicts"`
}

func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := make([]string, 0, len(e.ClassConflicts)+len(e.TeacherConflicts))
	for _, c := range e.ClassConflicts {
		parts = append(parts, c.String())
	}
	for _, c := range e.TeacherConflicts {
		parts = append(parts, c.String())
	}
	return "jadwal bentrok: " + strings.Join(parts, "; ")
}

/* =========================
   Deteksi
========================= */

// DetectConflicts membandingkan usulan timetable sebuah kelas terhadap seluruh
// timetable eksisting. Murni & tanpa efek samping, wajib dijalankan SEBELUM
// commit; penulisan ditolak bila salah satu daftar tidak kosong (kecuali
// override eksplisit, itu aturan bisnis di caller).
//
//   - Bentrok kelas: entry eksisting kelas YANG SAMA (di luar timetable yang
//     sedang diganti) memakai (hari, periode) yang sama.
//   - Bentrok guru: entry eksisting kelas MANA PUN (minus yang diganti) memakai
//     (hari, periode) + teacher_id yang sama. Jam kosong tidak pernah ikut.
//
// Kompleksitas O(eksisting × usulan); keduanya dibatasi hari×periode per kelas,
// konstanta kecil.
func DetectConflicts(existing []m.ClassTimetable, proposed m.ClassTimetable, excludeClassID *string) (classConflicts, teacherConflicts []Conflict) {
	for _, ct := range existing {
		if excludeClassID != nil && ct.ClassID == *excludeClassID {
			continue
		}
		for _, have := range ct.Entries {
			for _, want := range proposed.Entries {
				if have.Day != want.Day || have.Period != want.Period {
					continue
				}
				if ct.ClassID == proposed.ClassID {
					classConflicts = append(classConflicts, Conflict{
						Day:       have.Day,
						Period:    have.Period,
						ClassID:   ct.ClassID,
						SubjectID: have.SubjectID,
					})
				}
				if !have.FreePeriod() && !want.FreePeriod() && have.TeacherID == want.TeacherID {
					teacherConflicts = append(teacherConflicts, Conflict{
						Day:       have.Day,
						Period:    have.Period,
						ClassID:   ct.ClassID,
						SubjectID: have.SubjectID,
						TeacherID: have.TeacherID,
					})
				}
			}
		}
	}
	return classConflicts, teacherConflicts
}
