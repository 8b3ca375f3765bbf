package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"HoyoSentinel/internal/calculator"
	"HoyoSentinel/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while the sentinel writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			account          TEXT NOT NULL,
			current_amount   INTEGER,
			max_amount       INTEGER,
			recover_seconds  INTEGER,
			full_recovery_ts INTEGER,
			observed_at      INTEGER,
			percentage       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_account_ts ON snapshots(account, timestamp)`,

		`CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			account    TEXT NOT NULL,
			kind       TEXT NOT NULL,
			payload    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_account_ts ON events(account, timestamp)`,

		`CREATE TABLE IF NOT EXISTS reward_claims (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			account   TEXT,
			game      TEXT,
			reward    TEXT,
			amount    INTEGER,
			status    TEXT,
			note      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_claims_ts ON reward_claims(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(account string, s model.RecoveryState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pct := 0.0
	if s.MaxAmount > 0 {
		pct = calculator.Percentage(s)
	}
	_, err := r.db.Exec(`INSERT INTO snapshots
		(timestamp, account, current_amount, max_amount, recover_seconds, full_recovery_ts, observed_at, percentage)
		VALUES (?,?,?,?,?,?,?,?)`,
		r.now().Unix(), account, s.CurrentAmount, s.MaxAmount,
		s.SecondsSinceLastUnit, s.FullRecoveryEpochSeconds, s.ObservedAtEpochSeconds, pct,
	)
	return err
}

func (r *SQLiteRecorder) RecordEvent(account string, ev model.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Kind(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO events (id, timestamp, account, kind, payload) VALUES (?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), account, string(ev.Kind()), string(payload),
	)
	return err
}

func (r *SQLiteRecorder) RecordClaim(c *ClaimRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO reward_claims
		(timestamp, account, game, reward, amount, status, note)
		VALUES (?,?,?,?,?,?,?)`,
		r.now().Unix(), c.Account, string(c.Game), c.Reward, c.Amount, c.Status, c.Note,
	)
	return err
}

// RecentEvents returns the newest events of account, newest first.
func (r *SQLiteRecorder) RecentEvents(account string, limit int) ([]EventRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, account, kind, payload FROM events
		WHERE account = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`, account, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var (
			rec EventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Account, &rec.Kind, &rec.Payload); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
