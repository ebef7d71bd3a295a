package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/timetable/model"
	svc "sekolahku_backend/internals/features/school/timetable/service"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var testSchoolID = uuid.MustParse("6b9f6f1e-3f54-4e42-9d2b-8f4a0c1d2e3f")

// Store in-memory dengan penghitung panggilan, untuk memastikan handler
// membaca persis apa yang dibutuhkannya.
type countingStore struct {
	teacher          *m.TeacherTimetable
	getTeacherCalls  int
	listTeacherCalls int
}

func (s *countingStore) GetClassTimetable(context.Context, uuid.UUID, string) (*m.ClassTimetable, error) {
	return nil, nil
}
func (s *countingStore) ListClassTimetables(context.Context, uuid.UUID) ([]m.ClassTimetable, error) {
	return nil, nil
}
func (s *countingStore) UpsertClassTimetable(context.Context, m.ClassTimetable) ([]string, error) {
	return nil, nil
}
func (s *countingStore) DeleteClassTimetable(context.Context, uuid.UUID, string) ([]string, error) {
	return nil, nil
}

func (s *countingStore) GetTeacherTimetable(_ context.Context, _ uuid.UUID, teacherID string) (*m.TeacherTimetable, error) {
	s.getTeacherCalls++
	if s.teacher != nil && s.teacher.TeacherID == teacherID {
		cp := *s.teacher
		return &cp, nil
	}
	return nil, nil
}

func (s *countingStore) ListTeacherTimetables(context.Context, uuid.UUID) ([]m.TeacherTimetable, error) {
	s.listTeacherCalls++
	return nil, nil
}

func (s *countingStore) UpsertTeacherTimetable(context.Context, m.TeacherTimetable) error {
	return nil
}

func currentSessionApp(store svc.TimetableStore) *fiber.App {
	ctl := NewTimetableController(store)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocSchoolID, testSchoolID.String())
		c.Locals(helperAuth.LocTeacherID, "rina")
		return c.Next()
	})
	app.Get("/teachers/:teacher_id/current-session", ctl.CurrentSession)
	return app
}

func TestCurrentSessionReadsSingleTeacherView(t *testing.T) {
	store := &countingStore{
		teacher: &m.TeacherTimetable{
			SchoolID:  testSchoolID,
			TeacherID: "rina",
			Entries: []m.TimetableEntry{
				{Day: m.Monday, Period: 4, ClassID: "7A", SubjectID: "matematika", TeacherID: "rina",
					StartTime: "09:10", EndTime: "09:50"},
			},
		},
	}
	app := currentSessionApp(store)

	// 2026-08-31 02:30 UTC = Senin 09:30 WIB, di dalam periode 4.
	req := httptest.NewRequest("GET", "/teachers/rina/current-session?at=2026-08-31T02:30:00Z", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data struct {
			InSession bool `json:"in_session"`
			Session   *struct {
				ClassID string `json:"class_id"`
				Period  int    `json:"period"`
			} `json:"session"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Data.InSession || body.Data.Session == nil {
		t.Fatalf("harus ada sesi berjalan: %+v", body.Data)
	}
	if body.Data.Session.ClassID != "7A" || body.Data.Session.Period != 4 {
		t.Fatalf("sesi salah: %+v", body.Data.Session)
	}

	if store.getTeacherCalls != 1 {
		t.Fatalf("GetTeacherTimetable dipanggil %d kali, want 1", store.getTeacherCalls)
	}
	if store.listTeacherCalls != 0 {
		t.Fatalf("resolusi sesi tidak boleh menarik daftar semua guru (terpanggil %d kali)", store.listTeacherCalls)
	}
}

func TestCurrentSessionTeacherWithoutView(t *testing.T) {
	store := &countingStore{}
	app := currentSessionApp(store)

	req := httptest.NewRequest("GET", "/teachers/rina/current-session?at=2026-08-31T02:30:00Z", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data struct {
			InSession bool `json:"in_session"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.InSession {
		t.Fatal("guru tanpa jadwal tidak boleh punya sesi berjalan")
	}
}
