package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

func TestProjectTeacherViewsGroupsByTeacher(t *testing.T) {
	class := classTT("7A",
		m.TimetableEntry{Day: m.Monday, Period: 1, SubjectID: "matematika", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Monday, Period: 2, SubjectID: "ipa", TeacherID: "budi"},
		m.TimetableEntry{Day: m.Tuesday, Period: 1, SubjectID: "matematika", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Wednesday, Period: 5}, // jam kosong, tidak diproyeksikan
	)
	class.Periods = DefaultPeriods()

	out := ProjectTeacherViews(class, nil)
	if len(out) != 2 {
		t.Fatalf("guru terproyeksi = %d, want 2 (jam kosong di-skip)", len(out))
	}

	rina := out["rina"]
	if len(rina.Entries) != 2 {
		t.Fatalf("entry rina = %d, want 2", len(rina.Entries))
	}
	for _, e := range rina.Entries {
		if e.ClassID != "7A" || e.TeacherID != "rina" {
			t.Fatalf("entry proyeksi salah kepemilikan: %+v", e)
		}
	}
	if len(rina.Periods) != len(DefaultPeriods()) {
		t.Fatalf("daftar periode harus ikut tersalin, dapat %d", len(rina.Periods))
	}
	if rina.SchoolID != testSchoolID || rina.TeacherID != "rina" {
		t.Fatalf("identitas view salah: %+v", rina)
	}
}

func TestProjectTeacherViewsDropsStaleEntries(t *testing.T) {
	// Versi lama: rina memegang Senin p1 dan Selasa p2 dari 7A.
	existing := map[string]m.TeacherTimetable{
		"rina": {
			SchoolID:  testSchoolID,
			TeacherID: "rina",
			Entries: []m.TimetableEntry{
				{Day: m.Monday, Period: 1, ClassID: "7A", SubjectID: "matematika", TeacherID: "rina"},
				{Day: m.Tuesday, Period: 2, ClassID: "7A", SubjectID: "matematika", TeacherID: "rina"},
				{Day: m.Friday, Period: 3, ClassID: "8B", SubjectID: "matematika", TeacherID: "rina"},
			},
		},
	}
	// Versi baru 7A: rina hanya Senin p1; Selasa p2 pindah ke budi.
	class := classTT("7A",
		m.TimetableEntry{Day: m.Monday, Period: 1, SubjectID: "matematika", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Tuesday, Period: 2, SubjectID: "matematika", TeacherID: "budi"},
	)

	out := ProjectTeacherViews(class, existing)

	rina := out["rina"]
	if len(rina.Entries) != 2 {
		t.Fatalf("entry rina = %d, want 2 (Senin 7A + Jumat 8B)", len(rina.Entries))
	}
	for _, e := range rina.Entries {
		if e.ClassID == "7A" && !(e.Day == m.Monday && e.Period == 1) {
			t.Fatalf("entry basi dari 7A masih selamat: %+v", e)
		}
	}
	// Entry kelas lain tidak boleh ikut terhapus.
	foundOther := false
	for _, e := range rina.Entries {
		if e.ClassID == "8B" {
			foundOther = true
		}
	}
	if !foundOther {
		t.Fatal("entry 8B milik rina ikut hilang saat rekonsiliasi 7A")
	}

	budi := out["budi"]
	if len(budi.Entries) != 1 || budi.Entries[0].Day != m.Tuesday || budi.Entries[0].Period != 2 {
		t.Fatalf("budi harus mewarisi Selasa p2: %+v", budi.Entries)
	}
}

func TestProjectTeacherViewsNoOrphans(t *testing.T) {
	// Guru yang kehilangan SEMUA slotnya di kelas ini tetap direkonsiliasi
	// (view-nya dikosongkan dari entry kelas ini), bukan ditinggalkan basi.
	existing := map[string]m.TeacherTimetable{
		"dewi": {
			SchoolID:  testSchoolID,
			TeacherID: "dewi",
			Entries: []m.TimetableEntry{
				{Day: m.Thursday, Period: 4, ClassID: "7A", SubjectID: "ips", TeacherID: "dewi"},
			},
		},
	}
	class := classTT("7A",
		m.TimetableEntry{Day: m.Thursday, Period: 4, SubjectID: "ips", TeacherID: "eko"},
	)

	out := ProjectTeacherViews(class, existing)

	dewi, ok := out["dewi"]
	if !ok {
		t.Fatal("dewi kehilangan slot tapi tidak direkonsiliasi")
	}
	if len(dewi.Entries) != 0 {
		t.Fatalf("view dewi harus kosong, dapat %+v", dewi.Entries)
	}
	if _, ok := out["eko"]; !ok {
		t.Fatal("eko menerima slot tapi tidak terproyeksi")
	}
}

/* ===== Fan-out persist ===== */

// Store in-memory untuk menguji siklus Project lengkap; kegagalan per guru
// bisa disuntikkan lewat failGetFor / failUpsertFor.
type projectorStoreStub struct {
	teachers      map[string]m.TeacherTimetable
	failGetFor    map[string]bool
	failUpsertFor map[string]bool
	upserted      []string
}

func newProjectorStoreStub() *projectorStoreStub {
	return &projectorStoreStub{
		teachers:      map[string]m.TeacherTimetable{},
		failGetFor:    map[string]bool{},
		failUpsertFor: map[string]bool{},
	}
}

func (s *projectorStoreStub) GetClassTimetable(context.Context, uuid.UUID, string) (*m.ClassTimetable, error) {
	return nil, nil
}
func (s *projectorStoreStub) ListClassTimetables(context.Context, uuid.UUID) ([]m.ClassTimetable, error) {
	return nil, nil
}
func (s *projectorStoreStub) UpsertClassTimetable(context.Context, m.ClassTimetable) ([]string, error) {
	return nil, nil
}
func (s *projectorStoreStub) DeleteClassTimetable(context.Context, uuid.UUID, string) ([]string, error) {
	return nil, nil
}

func (s *projectorStoreStub) GetTeacherTimetable(_ context.Context, _ uuid.UUID, teacherID string) (*m.TeacherTimetable, error) {
	if s.failGetFor[teacherID] {
		return nil, errors.New("koneksi DB putus")
	}
	tt, ok := s.teachers[teacherID]
	if !ok {
		return nil, nil
	}
	cp := tt
	return &cp, nil
}

func (s *projectorStoreStub) ListTeacherTimetables(context.Context, uuid.UUID) ([]m.TeacherTimetable, error) {
	return nil, nil
}

func (s *projectorStoreStub) UpsertTeacherTimetable(_ context.Context, view m.TeacherTimetable) error {
	if s.failUpsertFor[view.TeacherID] {
		return errors.New("tulis view guru gagal")
	}
	s.teachers[view.TeacherID] = view
	s.upserted = append(s.upserted, view.TeacherID)
	return nil
}

func TestProjectorProjectAllSuccess(t *testing.T) {
	store := newProjectorStoreStub()
	p := &Projector{Cfg: DefaultConfig(), Store: store}
	class := classTT("7A",
		m.TimetableEntry{Day: m.Monday, Period: 1, SubjectID: "matematika", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Monday, Period: 2, SubjectID: "ipa", TeacherID: "budi"},
	)

	if err := p.Project(context.Background(), class, nil); err != nil {
		t.Fatalf("Project: %v", err)
	}
	if _, ok := store.teachers["rina"]; !ok {
		t.Fatal("view rina tidak tertulis")
	}
	if _, ok := store.teachers["budi"]; !ok {
		t.Fatal("view budi tidak tertulis")
	}
}

func TestProjectorProjectPartialUpsertFailure(t *testing.T) {
	// Penulisan per guru independen: satu guru gagal, sisanya tetap tertulis,
	// dan subset yang gagal dilaporkan persis lewat Failed().
	store := newProjectorStoreStub()
	store.failUpsertFor["budi"] = true
	p := &Projector{Cfg: DefaultConfig(), Store: store}
	class := classTT("7A",
		m.TimetableEntry{Day: m.Monday, Period: 1, SubjectID: "matematika", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Monday, Period: 2, SubjectID: "ipa", TeacherID: "budi"},
		m.TimetableEntry{Day: m.Monday, Period: 3, SubjectID: "ips", TeacherID: "dewi"},
	)

	err := p.Project(context.Background(), class, nil)
	var pf *ProjectionPartialFailure
	if !errors.As(err, &pf) {
		t.Fatalf("err = %v, want *ProjectionPartialFailure", err)
	}
	if got := pf.Failed(); !reflect.DeepEqual(got, []string{"budi"}) {
		t.Fatalf("Failed() = %v, want [budi]", got)
	}
	if _, ok := store.teachers["rina"]; !ok {
		t.Fatal("kegagalan budi ikut membatalkan view rina")
	}
	if _, ok := store.teachers["dewi"]; !ok {
		t.Fatal("kegagalan budi ikut membatalkan view dewi")
	}
	if _, ok := store.teachers["budi"]; ok {
		t.Fatal("view budi tertulis padahal upsert-nya gagal")
	}
}

func TestProjectorProjectGetFailureSkipsUpsert(t *testing.T) {
	// Guru yang view lamanya gagal dibaca TIDAK boleh di-upsert dengan hasil
	// proyeksi yang tidak lengkap (entry kelas lainnya bisa hilang); ia masuk
	// daftar gagal dan menunggu retry.
	store := newProjectorStoreStub()
	store.failGetFor["rina"] = true
	p := &Projector{Cfg: DefaultConfig(), Store: store}
	class := classTT("7A",
		m.TimetableEntry{Day: m.Monday, Period: 1, SubjectID: "matematika", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Monday, Period: 2, SubjectID: "ipa", TeacherID: "budi"},
	)

	err := p.Project(context.Background(), class, nil)
	var pf *ProjectionPartialFailure
	if !errors.As(err, &pf) {
		t.Fatalf("err = %v, want *ProjectionPartialFailure", err)
	}
	if got := pf.Failed(); !reflect.DeepEqual(got, []string{"rina"}) {
		t.Fatalf("Failed() = %v, want [rina]", got)
	}
	for _, id := range store.upserted {
		if id == "rina" {
			t.Fatal("view rina di-upsert padahal bacanya gagal")
		}
	}
	if _, ok := store.teachers["budi"]; !ok {
		t.Fatal("view budi ikut batal karena kegagalan rina")
	}
}

func TestProjectorProjectReconcilesPreviousTeachers(t *testing.T) {
	// Guru yang hanya ada di dokumen lama (slotnya dicabut) tetap ditulis ulang
	// dengan view yang sudah bersih dari entry kelas ini.
	store := newProjectorStoreStub()
	store.teachers["dewi"] = m.TeacherTimetable{
		SchoolID:  testSchoolID,
		TeacherID: "dewi",
		Entries: []m.TimetableEntry{
			{Day: m.Thursday, Period: 4, ClassID: "7A", SubjectID: "ips", TeacherID: "dewi"},
		},
	}
	p := &Projector{Cfg: DefaultConfig(), Store: store}
	class := classTT("7A",
		m.TimetableEntry{Day: m.Thursday, Period: 4, SubjectID: "ips", TeacherID: "eko"},
	)

	if err := p.Project(context.Background(), class, []string{"dewi"}); err != nil {
		t.Fatalf("Project: %v", err)
	}
	dewi, ok := store.teachers["dewi"]
	if !ok {
		t.Fatal("view dewi tidak ditulis ulang")
	}
	if len(dewi.Entries) != 0 {
		t.Fatalf("view dewi harus kosong setelah slotnya dicabut, dapat %+v", dewi.Entries)
	}
}

func TestProjectTeacherViewsSortedStable(t *testing.T) {
	class := classTT("7A",
		m.TimetableEntry{Day: m.Friday, Period: 2, SubjectID: "ipa", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Monday, Period: 5, SubjectID: "ipa", TeacherID: "rina"},
		m.TimetableEntry{Day: m.Monday, Period: 1, SubjectID: "ipa", TeacherID: "rina"},
	)
	out := ProjectTeacherViews(class, nil)
	entries := out["rina"].Entries
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Day > cur.Day || (prev.Day == cur.Day && prev.Period > cur.Period) {
			t.Fatalf("entry tidak terurut (hari, periode): %+v sebelum %+v", prev, cur)
		}
	}
}
