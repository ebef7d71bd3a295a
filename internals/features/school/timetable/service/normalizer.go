// file: internals/features/school/timetable/service/normalizer.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

/* =========================
   Error
========================= */

// ErrUnrecognizedDay: nama hari tidak dikenal, selalu bug input/data entry,
// tidak pernah dikoreksi diam-diam.
var ErrUnrecognizedDay = errors.New("nama hari tidak dikenal")

/* =========================
   Config engine (immutable, di-inject)
========================= */

// Config membawa konfigurasi proses yang dibutuhkan engine:
// jadwal periode default sekolah, tabel alias nama hari (dua arah), dan zona waktu.
// Nilai-nilai ini adalah konfigurasi immutable, bukan state turunan, jangan
// jadikan global mutable di level package.
type Config struct {
	Periods    []m.PeriodDefinition
	DayAliases map[string]m.DayOfWeek
	Location   *time.Location
}

// DefaultPeriods: skema 8 jam pelajaran seragam satu sekolah (fallback saat
// timetable tidak membawa daftar periode sendiri).
func DefaultPeriods() []m.PeriodDefinition {
	return []m.PeriodDefinition{
		{Ordinal: 1, StartTime: "07:00", EndTime: "07:40"},
		{Ordinal: 2, StartTime: "07:40", EndTime: "08:20"},
		{Ordinal: 3, StartTime: "08:20", EndTime: "09:00"},
		{Ordinal: 4, StartTime: "09:00", EndTime: "09:40"},
		{Ordinal: 5, StartTime: "10:00", EndTime: "10:40"},
		{Ordinal: 6, StartTime: "10:40", EndTime: "11:20"},
		{Ordinal: 7, StartTime: "11:20", EndTime: "12:00"},
		{Ordinal: 8, StartTime: "12:30", EndTime: "13:10"},
	}
}

// DefaultDayAliases: tabel dua arah EN + ID (lowercase).
// Ejaan kanonik ikut dimasukkan supaya kanonikalisasi idempoten.
// Catatan: "minggu" dan "ahad" keduanya = Sunday (injektif per hari kalender,
// bukan satu ejaan per hari).
func DefaultDayAliases() map[string]m.DayOfWeek {
	return map[string]m.DayOfWeek{
		// kanonik (EN)
		"monday":    m.Monday,
		"tuesday":   m.Tuesday,
		"wednesday": m.Wednesday,
		"thursday":  m.Thursday,
		"friday":    m.Friday,
		"saturday":  m.Saturday,
		"sunday":    m.Sunday,
		// Bahasa Indonesia
		"senin":  m.Monday,
		"selasa": m.Tuesday,
		"rabu":   m.Wednesday,
		"kamis":  m.Thursday,
		"jumat":  m.Friday,
		"jum'at": m.Friday,
		"sabtu":  m.Saturday,
		"minggu": m.Sunday,
		"ahad":   m.Sunday,
	}
}

// DefaultConfig merakit konfigurasi standar (Asia/Jakarta).
func DefaultConfig() Config {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*3600)
	}
	return Config{
		Periods:    DefaultPeriods(),
		DayAliases: DefaultDayAliases(),
		Location:   loc,
	}
}

/* =========================
   Normalizer
========================= */

// CanonicalDay menerjemahkan ejaan eksternal apa pun (case-insensitive)
// ke enum internal. Nilai yang sudah kanonik lolos apa adanya (no-op).
func (cfg Config) CanonicalDay(name string) (m.DayOfWeek, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if d, ok := cfg.DayAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedDay, name)
}

// PeriodsOrDefault: daftar periode milik timetable, atau skema default sekolah.
func (cfg Config) PeriodsOrDefault(periods []m.PeriodDefinition) []m.PeriodDefinition {
	if len(periods) > 0 {
		return periods
	}
	return cfg.Periods
}

// PeriodByOrdinal mencari definisi periode untuk ordinal tertentu.
func (cfg Config) PeriodByOrdinal(periods []m.PeriodDefinition, ordinal int) (m.PeriodDefinition, bool) {
	for _, p := range cfg.PeriodsOrDefault(periods) {
		if p.Ordinal == ordinal {
			return p, true
		}
	}
	return m.PeriodDefinition{}, false
}

/* =========================
   Jam-menit & aritmetika interval
========================= */

// TimeOfDay adalah jam dinding tanpa tanggal.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseClock mem-parse "HH:MM" (juga menerima "HH:MM:SS", detik dibuang).
func ParseClock(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	var h, min int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &min); err != nil {
		return TimeOfDay{}, fmt.Errorf("format jam tidak valid %q: %w", s, err)
	}
	if h < 0 || h > 23 || min < 0 || min > 59 {
		return TimeOfDay{}, fmt.Errorf("jam di luar rentang: %q", s)
	}
	return TimeOfDay{Hour: h, Minute: min}, nil
}

// MinutesOfDay: konversi murni ke menit-sejak-tengah-malam.
func MinutesOfDay(t TimeOfDay) int { return t.Hour*60 + t.Minute }

// Overlaps: true jika interval [aStart,aEnd] dan [bStart,bEnd] bersinggungan.
// Perlakuan batas di repo ini closed-closed: menit yang tepat sama dengan
// start ATAU end terhitung di dalam periode. Dipertahankan demi kompatibilitas
// dengan data lama.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart <= bEnd && bStart <= aEnd
}

/* =========================
   Validasi daftar periode
========================= */

// ValidatePeriods menegakkan invariant PeriodDefinition:
// ordinal >= 1 dan unik, start < end, antar periode tidak overlap.
func ValidatePeriods(periods []m.PeriodDefinition) error {
	type bound struct{ start, end int }
	seen := map[int]bound{}
	for _, p := range periods {
		if p.Ordinal < 1 {
			return fmt.Errorf("ordinal periode harus >= 1, dapat %d", p.Ordinal)
		}
		if _, dup := seen[p.Ordinal]; dup {
			return fmt.Errorf("ordinal periode duplikat: %d", p.Ordinal)
		}
		st, err := ParseClock(p.StartTime)
		if err != nil {
			return fmt.Errorf("periode %d: %w", p.Ordinal, err)
		}
		en, err := ParseClock(p.EndTime)
		if err != nil {
			return fmt.Errorf("periode %d: %w", p.Ordinal, err)
		}
		s, e := MinutesOfDay(st), MinutesOfDay(en)
		if s >= e {
			return fmt.Errorf("periode %d: start %s harus < end %s", p.Ordinal, p.StartTime, p.EndTime)
		}
		for ord, b := range seen {
			// antar periode boleh bersentuhan di batas (end == start berikutnya),
			// maka cek overlap-nya open di ujung
			if s < b.end && b.start < e {
				return fmt.Errorf("periode %d overlap dengan periode %d", p.Ordinal, ord)
			}
		}
		seen[p.Ordinal] = bound{start: s, end: e}
	}
	return nil
}
