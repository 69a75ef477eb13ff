package job

import (
	"database/sql"
	"encoding/json"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PGArchive persists terminal jobs to Postgres. It is write-through from
// MemoryStore.MoveToHistory; the in-memory history stays the read path for
// the running process.
type PGArchive struct {
	db *sql.DB
}

func NewPGArchive(dsn string) (*PGArchive, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	a := &PGArchive{db: db}
	if err := a.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func (a *PGArchive) ensureSchema() error {
	_, err := a.db.Exec(`
CREATE TABLE IF NOT EXISTS generation_history (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    completed_at TIMESTAMPTZ,
    record JSONB NOT NULL
)`)
	return err
}

// Append stores one terminal job. Archive failures are logged, not
// propagated; the archive is best-effort.
func (a *PGArchive) Append(j *Job) {
	record, err := json.Marshal(j)
	if err != nil {
		log.Printf("archive job %s: %v", j.ID, err)
		return
	}
	_, err = a.db.Exec(`
INSERT INTO generation_history (id, user_id, status, created_at, completed_at, record)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, completed_at = EXCLUDED.completed_at, record = EXCLUDED.record`,
		j.ID, j.UserID, string(j.State), j.CreatedAt, j.CompletedAt, record)
	if err != nil {
		log.Printf("archive job %s: %v", j.ID, err)
	}
}

// List returns archived jobs newest-first.
func (a *PGArchive) List(limit int, userID string) ([]*Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.Query(`
SELECT record FROM generation_history
WHERE ($1 = '' OR user_id = $1)
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Job
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var j Job
		if err := json.Unmarshal(record, &j); err != nil {
			continue
		}
		out = append(out, &j)
	}
	return out, rows.Err()
}

func (a *PGArchive) Close() error { return a.db.Close() }
