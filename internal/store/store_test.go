package store

import (
	"bytes"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTodayKey(t *testing.T) {
	now := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)
	if got := TodayKey(now); got != "05/03/2026" {
		t.Errorf("expected 05/03/2026, got %s", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	rec, found, err := s.Get("01/01/2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected no record")
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := &DailyRecord{
		DateKey:         "05/03/2026",
		PersonName:      "Maria",
		Theme:           "Gratidão",
		RevelationText:  "Uma palavra para hoje.",
		RevelationAudio: []byte{0x01, 0x02, 0x03, 0x04},
	}
	if err := s.Put(rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := s.Get("05/03/2026")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected record")
	}
	if got.PersonName != "Maria" || got.Theme != "Gratidão" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.RevelationText != rec.RevelationText {
		t.Errorf("expected %q, got %q", rec.RevelationText, got.RevelationText)
	}
	if !bytes.Equal(got.RevelationAudio, rec.RevelationAudio) {
		t.Errorf("expected audio % x, got % x", rec.RevelationAudio, got.RevelationAudio)
	}
	if got.PrayerText != "" || got.PrayerAudio != nil {
		t.Errorf("expected empty prayer fields, got %+v", got)
	}
}

func TestPutUpsertsSameDay(t *testing.T) {
	s := openTestStore(t)

	first := &DailyRecord{
		DateKey:         "05/03/2026",
		PersonName:      "Maria",
		Theme:           "Fé",
		RevelationText:  "Primeira geração.",
		RevelationAudio: []byte{0x01},
	}
	if err := s.Put(first); err != nil {
		t.Fatalf("put first: %v", err)
	}

	second := &DailyRecord{
		DateKey:         "05/03/2026",
		PersonName:      "Maria",
		Theme:           "Esperança",
		RevelationText:  "Segunda geração.",
		RevelationAudio: []byte{0x02, 0x03},
		PrayerText:      "Oração.",
		PrayerAudio:     []byte{0x04},
	}
	if err := s.Put(second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, found, err := s.Get("05/03/2026")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Theme != "Esperança" {
		t.Errorf("expected overwritten theme, got %s", got.Theme)
	}
	if got.RevelationText != "Segunda geração." {
		t.Errorf("expected overwritten text, got %q", got.RevelationText)
	}
	if got.PrayerText != "Oração." {
		t.Errorf("expected prayer text, got %q", got.PrayerText)
	}
	if !bytes.Equal(got.PrayerAudio, []byte{0x04}) {
		t.Errorf("expected prayer audio, got % x", got.PrayerAudio)
	}
}

func TestRecordsAreIndependentPerDay(t *testing.T) {
	s := openTestStore(t)

	for _, key := range []string{"01/01/2026", "02/01/2026"} {
		if err := s.Put(&DailyRecord{
			DateKey:         key,
			PersonName:      "João",
			Theme:           "Paz",
			RevelationText:  key,
			RevelationAudio: []byte{0xAA},
		}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	got, found, err := s.Get("01/01/2026")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.RevelationText != "01/01/2026" {
		t.Errorf("expected first day's record, got %q", got.RevelationText)
	}
}
