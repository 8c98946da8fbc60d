package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"CycleSentinel/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Entry
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logrus.Entry) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so the HTTP history endpoint can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id              TEXT PRIMARY KEY,
			evaluated_at    INTEGER NOT NULL,
			as_of           INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			price           TEXT NOT NULL,
			category        TEXT NOT NULL,
			base_score      REAL,
			total_score     REAL,
			recommendation  TEXT,
			action          TEXT,
			peak_score      REAL,
			peak_status     TEXT,
			cycle_phase     TEXT,
			cycle_position  REAL,
			degraded        INTEGER NOT NULL DEFAULT 0,
			warnings        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_evaluated ON analysis_runs(evaluated_at)`,

		`CREATE TABLE IF NOT EXISTS indicator_signals (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL REFERENCES analysis_runs(id),
			name      TEXT NOT NULL,
			value     TEXT,
			label     TEXT,
			score     REAL,
			weight    REAL,
			weighted  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON indicator_signals(run_id)`,

		`CREATE TABLE IF NOT EXISTS price_levels (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL REFERENCES analysis_runs(id),
			branch    TEXT NOT NULL,
			kind      TEXT NOT NULL,
			label     TEXT,
			price     TEXT NOT NULL,
			fraction  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_levels_run ON price_levels(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// priceText renders a price as an exact two-decimal string.
func priceText(p float64) string {
	return decimal.NewFromFloat(p).Round(2).StringFixed(2)
}

func (r *SQLiteRecorder) RecordAnalysis(ctx context.Context, res *model.AnalysisResult) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var phase string
	var position float64
	if res.Cycle != nil {
		phase = res.Cycle.Phase
		position = res.Cycle.PositionPct
	}
	warnings := strings.Join(res.Warnings, "\n")

	_, err = tx.ExecContext(ctx, `INSERT INTO analysis_runs
		(id, evaluated_at, as_of, symbol, price, category, base_score, total_score,
		 recommendation, action, peak_score, peak_status, cycle_phase, cycle_position,
		 degraded, warnings)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, res.EvaluatedAt.Unix(), res.AsOf.Unix(), res.Symbol, priceText(res.Price),
		string(res.Category), res.BaseScore, res.TotalScore,
		res.Recommendation, res.Action, res.Peak.Score, res.Peak.Status,
		phase, position, res.Degraded, warnings,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, s := range res.Signals {
		if _, err := tx.ExecContext(ctx, `INSERT INTO indicator_signals
			(run_id, name, value, label, score, weight, weighted)
			VALUES (?,?,?,?,?,?,?)`,
			id, s.Name, s.Value, s.Label, s.Score, s.Weight, s.Weighted,
		); err != nil {
			return "", fmt.Errorf("insert signal %s: %w", s.Name, err)
		}
	}

	for _, l := range flattenTargets(res.Targets) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO price_levels
			(run_id, branch, kind, label, price, fraction)
			VALUES (?,?,?,?,?,?)`,
			id, string(res.Targets.Branch), l.Kind, l.Label, priceText(l.Price), l.Fraction,
		); err != nil {
			return "", fmt.Errorf("insert level %s: %w", l.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	r.log.WithFields(logrus.Fields{"run_id": id, "category": res.Category}).Debug("analysis recorded")
	return id, nil
}

func (r *SQLiteRecorder) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, evaluated_at, as_of, symbol, price, category, base_score, total_score,
		peak_score, cycle_phase, degraded
		FROM analysis_runs ORDER BY evaluated_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run               RunSummary
			evaluatedAt, asOf int64
			price, category   string
			phase             sql.NullString
		)
		if err := rows.Scan(&run.ID, &evaluatedAt, &asOf, &run.Symbol, &price, &category,
			&run.BaseScore, &run.TotalScore, &run.PeakScore, &phase, &run.Degraded); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("run %s price %q: %w", run.ID, price, err)
		}
		run.Price = d.InexactFloat64()
		run.Category = model.Category(category)
		run.CyclePhase = phase.String
		run.EvaluatedAt = time.Unix(evaluatedAt, 0).UTC()
		run.AsOf = time.Unix(asOf, 0).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
