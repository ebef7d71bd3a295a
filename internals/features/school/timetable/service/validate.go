// file: internals/features/school/timetable/service/validate.go
package service

import (
	"fmt"

	m "sekolahku_backend/internals/features/school/timetable/model"
)

// ValidateClassTimetable menegakkan invariant dokumen kelas sebelum deteksi
// bentrok & commit:
//   - daftar periode valid (ordinal unik, start<end, tanpa overlap)
//   - (hari, periode) unik di dalam satu timetable kelas
//   - setiap entry menunjuk ordinal periode yang terdefinisi, dan salinan
//     start/end-nya diisi dari definisi periode tsb (denormalisasi konsisten)
func (cfg Config) ValidateClassTimetable(v *m.ClassTimetable) error {
	if err := ValidatePeriods(cfg.PeriodsOrDefault(v.Periods)); err != nil {
		return err
	}

	seen := map[string]struct{}{}
	for i := range v.Entries {
		e := &v.Entries[i]
		if !e.Day.Valid() {
			return fmt.Errorf("entry %d: hari tidak valid", i)
		}
		key := e.SlotKey()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("slot ganda di timetable kelas: %s", key)
		}
		seen[key] = struct{}{}

		p, ok := cfg.PeriodByOrdinal(v.Periods, e.Period)
		if !ok {
			return fmt.Errorf("entry %d: periode %d tidak terdefinisi", i, e.Period)
		}
		// salin batas periode (copy denormalisasi milik entry)
		e.StartTime = p.StartTime
		e.EndTime = p.EndTime
		e.ClassID = v.ClassID
	}
	return nil
}
