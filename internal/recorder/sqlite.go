package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"IchiVSA/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			bar_time      INTEGER NOT NULL,
			symbol        TEXT,
			close         REAL,
			signal        TEXT,
			strength      INTEGER,
			tenkan        REAL,
			kijun         REAL,
			tk_cross      INTEGER,
			price_vs_cloud INTEGER,
			cloud_bullish INTEGER,
			vsa_signal    INTEGER,
			vsa_bullish   INTEGER,
			vsa_bearish   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON signal_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS exposure_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT,
			signal        TEXT,
			target_before REAL,
			target_after  REAL,
			streak        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exposure_ts ON exposure_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullFloat maps the NaN warm-up sentinel to SQL NULL.
func nullFloat(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// nullInt maps an undefined OptInt to SQL NULL.
func nullInt(o model.OptInt) interface{} {
	if !o.Valid {
		return nil
	}
	return o.Int
}

// nullBool maps an undefined OptBool to SQL NULL, defined values to 0/1.
func nullBool(o model.OptBool) interface{} {
	if !o.Valid {
		return nil
	}
	if o.Bool {
		return 1
	}
	return 0
}

func (r *SQLiteRecorder) RecordSnapshot(snap *SignalSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := snap.Summary
	_, err := r.db.Exec(`INSERT INTO signal_snapshots
		(timestamp, bar_time, symbol, close, signal, strength,
		 tenkan, kijun, tk_cross, price_vs_cloud, cloud_bullish,
		 vsa_signal, vsa_bullish, vsa_bearish)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), s.Time.Unix(), snap.Symbol, s.Close,
		string(s.Signal), nullInt(s.Strength),
		nullFloat(s.Ichimoku.Tenkan), nullFloat(s.Ichimoku.Kijun),
		nullInt(s.Ichimoku.TKCross), nullInt(s.Ichimoku.PriceVsCloud),
		nullBool(s.Ichimoku.CloudBullish),
		nullInt(s.VSA.Signal), nullInt(s.VSA.Bullish), nullInt(s.VSA.Bearish),
	)
	return err
}

func (r *SQLiteRecorder) RecordExposure(evt *ExposureEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO exposure_events
		(timestamp, symbol, signal, target_before, target_after, streak)
		VALUES (?,?,?,?,?,?)`,
		evt.At.Unix(), evt.Symbol, string(evt.Signal),
		evt.TargetBefore, evt.TargetAfter, evt.Streak,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
