package model

import (
	"encoding/json"
	"fmt"
	"time"
)

/* =========================
   Enum hari (kanonik)
========================= */

// DayOfWeek adalah representasi internal tunggal untuk hari.
// Semua ejaan eksternal (EN/ID) wajib dinormalisasi lewat service.CanonicalDay
// sebelum masuk lebih dalam ke engine, jangan bandingkan string mentah.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (d DayOfWeek) Valid() bool { return d >= Monday && d <= Sunday }

// String mengembalikan nama kanonik (Inggris), dipakai juga sebagai bentuk simpan di JSONB.
func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// DayFromWeekday memetakan time.Weekday (Sunday=0) ke enum internal (Monday=1).
func DayFromWeekday(w time.Weekday) DayOfWeek {
	if w == time.Sunday {
		return Sunday
	}
	return DayOfWeek(int(w))
}

/* =========================
   JSON (hanya bentuk kanonik)
========================= */

// MarshalJSON menulis nama kanonik; dokumen timetable di DB selalu kanonik.
func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("day of week di luar rentang: %d", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON menerima HANYA nama kanonik. Alias lokal (senin, dst.)
// diterjemahkan di boundary oleh normalizer, bukan di sini.
func (d *DayOfWeek) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for v := Monday; v <= Sunday; v++ {
		if dayNames[v] == s {
			*d = v
			return nil
		}
	}
	return fmt.Errorf("nama hari tidak kanonik: %q", s)
}
