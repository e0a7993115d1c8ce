// Package store persists one generated record per calendar day.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DailyRecord is the cached result of one day's generation. DateKey is the
// record identity; regenerating on the same day overwrites the row.
type DailyRecord struct {
	DateKey         string
	PersonName      string
	Theme           string
	RevelationText  string
	RevelationAudio []byte
	PrayerText      string
	PrayerAudio     []byte
}

// TodayKey formats a calendar date as the record key (dd/mm/yyyy, the
// product's locale).
func TodayKey(now time.Time) string {
	return now.Format("02/01/2006")
}

// Store is a SQLite-backed key-value store keyed by DateKey.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dir/revelacao.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "revelacao.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS daily_records (
        date_key TEXT PRIMARY KEY,
        person_name TEXT NOT NULL,
        theme TEXT NOT NULL,
        revelation_text TEXT NOT NULL,
        revelation_audio BLOB NOT NULL,
        prayer_text TEXT NOT NULL DEFAULT '',
        prayer_audio BLOB
    );
    `
	_, err := db.Exec(schema)
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the record for dateKey. The second return value reports
// whether a record exists.
func (s *Store) Get(dateKey string) (*DailyRecord, bool, error) {
	rec := &DailyRecord{}
	row := s.db.QueryRow(`
        SELECT date_key, person_name, theme, revelation_text, revelation_audio, prayer_text, prayer_audio
        FROM daily_records WHERE date_key = ?`, dateKey)

	var prayerAudio []byte
	err := row.Scan(&rec.DateKey, &rec.PersonName, &rec.Theme,
		&rec.RevelationText, &rec.RevelationAudio, &rec.PrayerText, &prayerAudio)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query record: %w", err)
	}
	rec.PrayerAudio = prayerAudio
	return rec, true, nil
}

// Put upserts the record by its DateKey.
func (s *Store) Put(rec *DailyRecord) error {
	_, err := s.db.Exec(`
        INSERT INTO daily_records
            (date_key, person_name, theme, revelation_text, revelation_audio, prayer_text, prayer_audio)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(date_key) DO UPDATE SET
            person_name = excluded.person_name,
            theme = excluded.theme,
            revelation_text = excluded.revelation_text,
            revelation_audio = excluded.revelation_audio,
            prayer_text = excluded.prayer_text,
            prayer_audio = excluded.prayer_audio`,
		rec.DateKey, rec.PersonName, rec.Theme,
		rec.RevelationText, rec.RevelationAudio, rec.PrayerText, rec.PrayerAudio)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}
