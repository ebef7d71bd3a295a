// file: internals/features/school/timetable/service/projector.go
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

/* =========================
   Proyeksi murni
========================= */

// ProjectTeacherViews menurunkan ulang view per guru dari satu timetable kelas.
// Langkah rekonsiliasi per guru tersentuh:
//  1. buang entry lama yang slot (hari, periode)-nya akan ditimpa entry baru
//     kelas ini;
//  2. buang entry basi yang bersumber dari kelas ini tapi sudah tidak ada di
//     dokumen baru (pasangan subject/guru berubah → tidak boleh selamat);
//  3. tempel entry baru (sudah membawa class_id);
//  4. salin daftar periode dari timetable kelas. Guru diasumsikan mengikuti
//     skema periode sekolah yang seragam; kalau skema antar kelas beda,
//     penulis terakhir menang (keterbatasan yang diterima, bukan diabaikan).
//
// Murni: tidak menyentuh storage; hanya guru yang tersentuh kelas ini (baik
// dapat entry baru maupun kehilangan entry lama) yang muncul di hasil.
func ProjectTeacherViews(class m.ClassTimetable, existing map[string]m.TeacherTimetable) map[string]m.TeacherTimetable {
	// 1) kelompokkan entry baru per guru, skip jam kosong
	byTeacher := map[string][]m.TimetableEntry{}
	for _, e := range class.Entries {
		if e.FreePeriod() {
			continue
		}
		byTeacher[e.TeacherID] = append(byTeacher[e.TeacherID], e)
	}

	// guru yang kehilangan semua slotnya di kelas ini juga harus direkonsiliasi
	touched := map[string]struct{}{}
	for id := range byTeacher {
		touched[id] = struct{}{}
	}
	for id, tt := range existing {
		for _, e := range tt.Entries {
			if e.ClassID == class.ClassID {
				touched[id] = struct{}{}
				break
			}
		}
	}

	out := make(map[string]m.TeacherTimetable, len(touched))
	for teacherID := range touched {
		cur, ok := existing[teacherID]
		if !ok {
			cur = m.TeacherTimetable{SchoolID: class.SchoolID, TeacherID: teacherID}
		}

		fresh := byTeacher[teacherID]
		supersede := map[string]struct{}{}
		for _, e := range fresh {
			supersede[e.SlotKey()] = struct{}{}
		}

		// 2) entry lama yang selamat: bukan slot yang ditimpa, bukan sisa kelas ini
		survivors := make([]m.TimetableEntry, 0, len(cur.Entries))
		for _, e := range cur.Entries {
			if _, gone := supersede[e.SlotKey()]; gone {
				continue
			}
			if e.ClassID == class.ClassID {
				continue
			}
			survivors = append(survivors, e)
		}

		// 3) tempel entry baru, urutkan stabil (hari, periode) agar deterministik
		merged := append(survivors, fresh...)
		sort.SliceStable(merged, func(i, j int) bool {
			if merged[i].Day != merged[j].Day {
				return merged[i].Day < merged[j].Day
			}
			return merged[i].Period < merged[j].Period
		})

		cur.SchoolID = class.SchoolID
		cur.TeacherID = teacherID
		cur.Entries = merged
		// 4) skema periode ikut kelas yang terakhir menulis
		if len(class.Periods) > 0 {
			cur.Periods = class.Periods
		}
		out[teacherID] = cur
	}
	return out
}

/* =========================
   Fan-out persist + partial failure
========================= */

// ProjectionPartialFailure melaporkan kegagalan proyeksi PER GURU.
// Sukses sebagian adalah hal yang sah (tiap view guru dokumen independen),
// tapi wajib dilaporkan per guru supaya retry cukup mengulang subset yang gagal.
type ProjectionPartialFailure struct {
	Errs map[string]error
}

func (e *ProjectionPartialFailure) Error() string {
	if e == nil || len(e.Errs) == 0 {
		return "<nil>"
	}
	parts := make([]string, 0, len(e.Errs))
	for id, err := range e.Errs {
		parts = append(parts, fmt.Sprintf("guru %s: %v", id, err))
	}
	sort.Strings(parts)
	return "proyeksi timetable guru gagal sebagian: " + strings.Join(parts, "; ")
}

// Failed mengembalikan daftar teacher_id yang perlu diulang.
func (e *ProjectionPartialFailure) Failed() []string {
	ids := make([]string, 0, len(e.Errs))
	for id := range e.Errs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Projector menjalankan siklus proyeksi lengkap terhadap store:
// baca view eksisting guru yang tersentuh → hitung ulang → tulis per guru.
type Projector struct {
	Cfg   Config
	Store TimetableStore
}

// Project memproyeksikan satu timetable kelas yang BARU SAJA di-commit.
// Penulisan tiap guru independen; kegagalan satu guru tidak membatalkan yang
// lain. Mengembalikan *ProjectionPartialFailure (nil bila semua sukses).
func (p *Projector) Project(ctx context.Context, class m.ClassTimetable, previousTeacherIDs []string) error {
	// guru tersentuh = guru di dokumen baru + guru di dokumen lama (slot dicabut)
	ids := map[string]struct{}{}
	for _, e := range class.Entries {
		if !e.FreePeriod() {
			ids[e.TeacherID] = struct{}{}
		}
	}
	for _, id := range previousTeacherIDs {
		if strings.TrimSpace(id) != "" {
			ids[id] = struct{}{}
		}
	}

	errs := map[string]error{}
	existing := map[string]m.TeacherTimetable{}
	for id := range ids {
		tt, err := p.Store.GetTeacherTimetable(ctx, class.SchoolID, id)
		if err != nil {
			errs[id] = err
			continue
		}
		if tt != nil {
			existing[id] = *tt
		}
	}

	for teacherID, view := range ProjectTeacherViews(class, existing) {
		if _, already := errs[teacherID]; already {
			continue
		}
		if err := p.Store.UpsertTeacherTimetable(ctx, view); err != nil {
			errs[teacherID] = err
		}
	}

	if len(errs) > 0 {
		return &ProjectionPartialFailure{Errs: errs}
	}
	return nil
}
