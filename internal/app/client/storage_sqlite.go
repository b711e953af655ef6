package client

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	gosync "sync"

	_ "github.com/mattn/go-sqlite3"

	"fluiddiary/internal/domain/diary"
)

var ErrNotFound = errors.New("not found")

// SQLiteStore is the durable local replica. It keeps the diary on disk and
// notifies an observer after every user-level mutation so the sync layer can
// schedule an upload.
//
// The bulk Replace* methods exist for the merge path and deliberately do NOT
// fire the observer: the sync controller calls them while already holding its
// own lock and decides itself whether anything still needs pushing.
type SQLiteStore struct {
	db *sql.DB

	mu       gosync.Mutex
	onChange func()
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			sex TEXT NOT NULL,
			birth_year INTEGER NOT NULL,
			sleep_time TEXT NOT NULL DEFAULT '',
			wake_time TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS days (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			day_number INTEGER NOT NULL,
			is_typical_day INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			day_id TEXT NOT NULL,
			document TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_day ON entries(day_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// OnChange registers the observer invoked after each user-level mutation.
func (s *SQLiteStore) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *SQLiteStore) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Snapshot reads the whole replica inside one read transaction, so a writer
// in another process cannot produce a torn view (an entry whose day is
// missing).
func (s *SQLiteStore) Snapshot() (diary.Snapshot, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return diary.Snapshot{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	profile, err := getProfile(tx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return diary.Snapshot{}, err
	}
	days, err := listDays(tx)
	if err != nil {
		return diary.Snapshot{}, err
	}
	entries, err := listEntries(tx)
	if err != nil {
		return diary.Snapshot{}, err
	}
	return diary.Snapshot{Profile: profile, Days: days, Entries: entries}, nil
}

func (s *SQLiteStore) GetProfile() (*diary.Profile, error) {
	return getProfile(s.db)
}

func getProfile(q querier) (*diary.Profile, error) {
	row := q.QueryRow(`SELECT sex, birth_year, sleep_time, wake_time FROM profile WHERE id = 1`)
	var p diary.Profile
	err := row.Scan(&p.Sex, &p.BirthYear, &p.SleepTime, &p.WakeTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (s *SQLiteStore) SetProfile(p diary.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profile (id, sex, birth_year, sleep_time, wake_time)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			sex = excluded.sex,
			birth_year = excluded.birth_year,
			sleep_time = excluded.sleep_time,
			wake_time = excluded.wake_time`,
		p.Sex, p.BirthYear, p.SleepTime, p.WakeTime)
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) ListDays() ([]diary.Day, error) {
	return listDays(s.db)
}

func listDays(q querier) ([]diary.Day, error) {
	rows, err := q.Query(`SELECT id, date, day_number, is_typical_day FROM days ORDER BY day_number`)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	var days []diary.Day
	for rows.Next() {
		var d diary.Day
		if err := rows.Scan(&d.ID, &d.Date, &d.DayNumber, &d.IsTypicalDay); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// EnsureDay returns the day with the given number, creating it on first use.
func (s *SQLiteStore) EnsureDay(number int) (diary.Day, error) {
	row := s.db.QueryRow(`SELECT id, date, day_number, is_typical_day FROM days WHERE day_number = ?`, number)
	var d diary.Day
	err := row.Scan(&d.ID, &d.Date, &d.DayNumber, &d.IsTypicalDay)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return diary.Day{}, fmt.Errorf("find day: %w", err)
	}

	d = diary.NewDay(number)
	if err := d.Validate(); err != nil {
		return diary.Day{}, err
	}
	_, err = s.db.Exec(`INSERT INTO days (id, date, day_number, is_typical_day) VALUES (?, ?, ?, ?)`,
		d.ID, d.Date, d.DayNumber, d.IsTypicalDay)
	if err != nil {
		return diary.Day{}, fmt.Errorf("insert day: %w", err)
	}
	s.notify()
	return d, nil
}

func (s *SQLiteStore) SetDayTypical(dayID string, typical bool) error {
	res, err := s.db.Exec(`UPDATE days SET is_typical_day = ? WHERE id = ?`, typical, dayID)
	if err != nil {
		return fmt.Errorf("update day: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) ListEntries() ([]diary.Entry, error) {
	return listEntries(s.db)
}

func listEntries(q querier) ([]diary.Entry, error) {
	rows, err := q.Query(`SELECT document FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *SQLiteStore) ListDayEntries(dayID string) ([]diary.Entry, error) {
	rows, err := s.db.Query(`SELECT document FROM entries WHERE day_id = ?`, dayID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]diary.Entry, error) {
	var entries []diary.Entry
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		var e diary.Entry
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) AddEntry(e diary.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.upsertEntry(e); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) UpdateEntry(e diary.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	row := s.db.QueryRow(`SELECT 1 FROM entries WHERE id = ?`, e.ID)
	var one int
	if err := row.Scan(&one); errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("find entry: %w", err)
	}
	if err := s.upsertEntry(e); err != nil {
		return err
	}
	s.notify()
	return nil
}

// DeleteEntry removes an entry from this replica only. Deletions are a local
// affair: nothing marks the removal in the shared document, and a copy still
// held by another device will come back on the next merge.
func (s *SQLiteStore) DeleteEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify()
	return nil
}

func (s *SQLiteStore) upsertEntry(e diary.Entry) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO entries (id, day_id, document) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET day_id = excluded.day_id, document = excluded.document`,
		e.ID, e.DayID, string(doc))
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ReplaceProfile(p *diary.Profile) error {
	if p == nil {
		return nil
	}
	_, err := s.db.Exec(`
		INSERT INTO profile (id, sex, birth_year, sleep_time, wake_time)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			sex = excluded.sex,
			birth_year = excluded.birth_year,
			sleep_time = excluded.sleep_time,
			wake_time = excluded.wake_time`,
		p.Sex, p.BirthYear, p.SleepTime, p.WakeTime)
	if err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ReplaceDays(days []diary.Day) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM days`); err != nil {
		return fmt.Errorf("clear days: %w", err)
	}
	for _, d := range days {
		_, err := tx.Exec(`INSERT INTO days (id, date, day_number, is_typical_day) VALUES (?, ?, ?, ?)`,
			d.ID, d.Date, d.DayNumber, d.IsTypicalDay)
		if err != nil {
			return fmt.Errorf("insert day: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ReplaceEntries(entries []diary.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	for _, e := range entries {
		doc, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}
		_, err = tx.Exec(`INSERT INTO entries (id, day_id, document) VALUES (?, ?, ?)`,
			e.ID, e.DayID, string(doc))
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}
	return tx.Commit()
}
