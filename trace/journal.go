package trace

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Journal appends records to a SQLite database. The record itself is stored
// as its canonical CBOR encoding; the indexed columns exist for queries.
type Journal struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// OpenJournal opens or creates the journal at path.
func OpenJournal(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS crossings (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		context    TEXT NOT NULL,
		name       TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		fault      TEXT NOT NULL DEFAULT '',
		record     BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Journal{db: db, path: path}, nil
}

// Path returns the database file.
func (j *Journal) Path() string {
	return j.path
}

// Emit appends rec.
func (j *Journal) Emit(rec Record) error {
	data, err := MarshalRecord(&rec)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = j.db.Exec(
		"INSERT INTO crossings (context, name, started_at, fault, record) VALUES (?, ?, ?, ?, ?)",
		rec.Context, rec.Name, rec.StartedAt, rec.Fault, data,
	)
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// Query selects records from the journal.
type Query struct {
	// Name restricts the result to one callable when set.
	Name string
	// FailedOnly restricts the result to faulted calls.
	FailedOnly bool
	// Limit caps the number of records; zero means no limit.
	Limit int
}

// Records returns the records matching q in the order they were emitted.
func (j *Journal) Records(q Query) ([]Record, error) {
	stmt := "SELECT record FROM crossings WHERE 1 = 1"
	var args []any
	if q.Name != "" {
		stmt += " AND name = ?"
		args = append(args, q.Name)
	}
	if q.FailedOnly {
		stmt += " AND fault != ''"
	}
	stmt += " ORDER BY seq"
	if q.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, q.Limit)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	rows, err := j.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec, err := UnmarshalRecord(data)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}
