package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

/* =========================
   Payload JSONB: entry & periode
========================= */

// PeriodDefinition mendefinisikan satu jam pelajaran (ordinal >= 1).
// Invariant: start < end; ordinal unik; antar periode tidak boleh overlap.
type PeriodDefinition struct {
	Ordinal   int    `json:"ordinal"`
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
}

// TimetableEntry adalah satu slot terjadwal.
// TeacherID kosong = jam kosong (free period), tidak ikut deteksi bentrok guru.
// StartTime/EndTime adalah salinan denormalisasi dari PeriodDefinition ybs.
type TimetableEntry struct {
	Day       DayOfWeek `json:"day"`
	Period    int       `json:"period"`
	ClassID   string    `json:"class_id"`
	SubjectID string    `json:"subject_id"`
	TeacherID string    `json:"teacher_id,omitempty"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// FreePeriod: entry tanpa guru.
func (e TimetableEntry) FreePeriod() bool { return strings.TrimSpace(e.TeacherID) == "" }

// SlotKey identitas slot (hari, periode), unik per timetable kelas,
// dan unik per guru di timetable guru.
func (e TimetableEntry) SlotKey() string {
	return fmt.Sprintf("%s#%d", e.Day.String(), e.Period)
}

/* =========================
   View in-memory (hasil decode dokumen)
========================= */

// ClassTimetable adalah view in-memory dari dokumen timetable kelas.
// Inilah struktur yang dikonsumsi engine (conflict detector, projector, resolver).
type ClassTimetable struct {
	SchoolID uuid.UUID
	ClassID  string
	Entries  []TimetableEntry
	Periods  []PeriodDefinition
}

// TeacherTimetable adalah view materialisasi per guru, SELALU turunan dari
// timetable kelas, tidak pernah diedit langsung oleh klien.
type TeacherTimetable struct {
	SchoolID  uuid.UUID
	TeacherID string
	Entries   []TimetableEntry
	Periods   []PeriodDefinition
}
