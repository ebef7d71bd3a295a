package service

import (
	"errors"
	"testing"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

func TestCanonicalDay(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		in   string
		want m.DayOfWeek
	}{
		{"Monday", m.Monday},
		{"monday", m.Monday},
		{"  FRIDAY  ", m.Friday},
		{"Senin", m.Monday},
		{"selasa", m.Tuesday},
		{"Rabu", m.Wednesday},
		{"kamis", m.Thursday},
		{"Jumat", m.Friday},
		{"jum'at", m.Friday},
		{"sabtu", m.Saturday},
		{"Minggu", m.Sunday},
		{"ahad", m.Sunday},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := cfg.CanonicalDay(tc.in)
			if err != nil {
				t.Fatalf("CanonicalDay(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("CanonicalDay(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCanonicalDayIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	for _, in := range []string{"senin", "Monday", "ahad"} {
		first, err := cfg.CanonicalDay(in)
		if err != nil {
			t.Fatalf("CanonicalDay(%q): %v", in, err)
		}
		second, err := cfg.CanonicalDay(first.String())
		if err != nil {
			t.Fatalf("CanonicalDay(%q): %v", first.String(), err)
		}
		if first != second {
			t.Fatalf("kanonikalisasi tidak idempoten: %q → %v → %v", in, first, second)
		}
	}
}

func TestCanonicalDayUnrecognized(t *testing.T) {
	cfg := DefaultConfig()
	for _, in := range []string{"", "lundi", "mondayy", "hari senin"} {
		if _, err := cfg.CanonicalDay(in); !errors.Is(err, ErrUnrecognizedDay) {
			t.Fatalf("CanonicalDay(%q) err = %v, want ErrUnrecognizedDay", in, err)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"07:00", TimeOfDay{7, 0}, false},
		{"13:10", TimeOfDay{13, 10}, false},
		{"00:00", TimeOfDay{0, 0}, false},
		{"23:59", TimeOfDay{23, 59}, false},
		{"09:05:30", TimeOfDay{9, 5}, false}, // detik dibuang
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"abc", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClock(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseClock(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOverlapsClosedClosed(t *testing.T) {
	// sesi 09:10–09:50 dalam menit
	start, end := 9*60+10, 9*60+50

	cases := []struct {
		name   string
		minute int
		want   bool
	}{
		{"tepat di start", 9*60 + 10, true},
		{"tepat di end", 9*60 + 50, true},
		{"di tengah", 9*60 + 30, true},
		{"semenit sebelum start", 9*60 + 9, false},
		{"semenit setelah end", 9*60 + 51, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(start, end, tc.minute, tc.minute); got != tc.want {
				t.Fatalf("Overlaps(%d,%d,%d,%d) = %v, want %v", start, end, tc.minute, tc.minute, got, tc.want)
			}
		})
	}
}

func TestValidatePeriods(t *testing.T) {
	cases := []struct {
		name    string
		periods []m.PeriodDefinition
		wantErr bool
	}{
		{"default valid", DefaultPeriods(), false},
		{"kosong valid", nil, false},
		{"bersentuhan di batas boleh", []m.PeriodDefinition{
			{Ordinal: 1, StartTime: "07:00", EndTime: "07:40"},
			{Ordinal: 2, StartTime: "07:40", EndTime: "08:20"},
		}, false},
		{"ordinal nol", []m.PeriodDefinition{
			{Ordinal: 0, StartTime: "07:00", EndTime: "07:40"},
		}, true},
		{"ordinal duplikat", []m.PeriodDefinition{
			{Ordinal: 1, StartTime: "07:00", EndTime: "07:40"},
			{Ordinal: 1, StartTime: "08:00", EndTime: "08:40"},
		}, true},
		{"start sama dengan end", []m.PeriodDefinition{
			{Ordinal: 1, StartTime: "07:00", EndTime: "07:00"},
		}, true},
		{"start setelah end", []m.PeriodDefinition{
			{Ordinal: 1, StartTime: "08:00", EndTime: "07:00"},
		}, true},
		{"overlap antar periode", []m.PeriodDefinition{
			{Ordinal: 1, StartTime: "07:00", EndTime: "07:45"},
			{Ordinal: 2, StartTime: "07:40", EndTime: "08:20"},
		}, true},
		{"jam tidak valid", []m.PeriodDefinition{
			{Ordinal: 1, StartTime: "07:xx", EndTime: "07:40"},
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePeriods(tc.periods)
			if tc.wantErr && err == nil {
				t.Fatal("ValidatePeriods = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("ValidatePeriods: %v", err)
			}
		})
	}
}
