package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"metastd/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL UNIQUE,
  fieldsJson TEXT NOT NULL,
  inputCount INTEGER NOT NULL,
  countsJson TEXT,
  timingsJson TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  finishedAt TEXT
);

CREATE TABLE IF NOT EXISTS files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  input TEXT NOT NULL,
  output TEXT,
  status TEXT NOT NULL,
  rowsIn INTEGER NOT NULL DEFAULT 0,
  rowsOut INTEGER NOT NULL DEFAULT 0,
  groupCount INTEGER NOT NULL DEFAULT 0,
  observedJson TEXT NOT NULL,
  error TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(runId) REFERENCES runs(runId)
);
CREATE INDEX IF NOT EXISTS idx_files_runId ON files(runId);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(runID string, fields []string, inputCount int) error {
	fieldsJSON, _ := json.Marshal(fields)
	_, err := d.conn.Exec(`INSERT INTO runs (runId, fieldsJson, inputCount) VALUES (?, ?, ?)`, runID, string(fieldsJSON), inputCount)
	return err
}

func (d *DB) FinishRun(runID string, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`
UPDATE runs SET countsJson = ?, timingsJson = ?, finishedAt = CURRENT_TIMESTAMP
WHERE runId = ?
`, string(countsJSON), string(timingsJSON), runID)
	return err
}

func (d *DB) RecordFile(runID string, outcome internal.FileOutcome) error {
	observed := outcome.Observed
	if observed == nil {
		observed = []string{}
	}
	observedJSON, _ := json.Marshal(observed)
	_, err := d.conn.Exec(`
INSERT INTO files (runId, input, output, status, rowsIn, rowsOut, groupCount, observedJson, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, runID, outcome.Input, nullable(outcome.Output), string(outcome.Status), outcome.RowsIn, outcome.RowsOut, outcome.Groups, string(observedJSON), nullable(outcome.Error))
	return err
}

func (d *DB) ListFiles(runID string) ([]internal.FileOutcome, error) {
	rows, err := d.conn.Query(`
SELECT input, output, status, rowsIn, rowsOut, groupCount, observedJson, error
FROM files
WHERE runId = ?
ORDER BY id ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.FileOutcome{}
	for rows.Next() {
		var (
			o            internal.FileOutcome
			output, errS sql.NullString
			status       string
			observedJSON string
		)
		if err := rows.Scan(&o.Input, &output, &status, &o.RowsIn, &o.RowsOut, &o.Groups, &observedJSON, &errS); err != nil {
			return nil, err
		}
		o.Output = output.String
		o.Error = errS.String
		o.Status = internal.FileStatus(status)
		_ = json.Unmarshal([]byte(observedJSON), &o.Observed)
		out = append(out, o)
	}
	return out, rows.Err()
}

// RunCounts returns the stored per-status counts of a finished run.
func (d *DB) RunCounts(runID string) (map[string]int, error) {
	var countsJSON sql.NullString
	err := d.conn.QueryRow(`SELECT countsJson FROM runs WHERE runId = ?`, runID).Scan(&countsJSON)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	if countsJSON.Valid {
		if err := json.Unmarshal([]byte(countsJSON.String), &counts); err != nil {
			return nil, err
		}
	}
	return counts, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
