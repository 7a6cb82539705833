package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"football-stats/models"
	"football-stats/utils"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS report_runs (
	run_id        VARCHAR(36)   PRIMARY KEY,
	key_scheme    VARCHAR(20)   NOT NULL,
	year_from     INTEGER       NOT NULL,
	year_to       INTEGER       NOT NULL,
	average_goals NUMERIC(10,2),
	created_at    TIMESTAMP     NOT NULL
);

CREATE TABLE IF NOT EXISTS quality_summaries (
	run_id     VARCHAR(36) NOT NULL,
	table_name VARCHAR(50) NOT NULL,
	total      INTEGER     NOT NULL,
	flagged    INTEGER     NOT NULL,
	duplicates INTEGER     NOT NULL,
	kept       INTEGER     NOT NULL,
	PRIMARY KEY (run_id, table_name)
);

CREATE TABLE IF NOT EXISTS shootout_wins (
	run_id  VARCHAR(36) NOT NULL,
	country TEXT        NOT NULL,
	wins    INTEGER     NOT NULL,
	PRIMARY KEY (run_id, country)
);

CREATE TABLE IF NOT EXISTS draw_shootout_winners (
	run_id   VARCHAR(36) NOT NULL,
	position INTEGER     NOT NULL,
	team     TEXT        NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS top_scorers (
	run_id     VARCHAR(36)   NOT NULL,
	tournament TEXT          NOT NULL,
	scorer     TEXT          NOT NULL,
	goals      INTEGER       NOT NULL,
	percentage NUMERIC(6,2)  NOT NULL,
	PRIMARY KEY (run_id, tournament)
);

CREATE INDEX IF NOT EXISTS idx_report_runs_created ON report_runs(created_at)
`

// SQLReportWriter stores computed reports in PostgreSQL or SQLite.
// Only results are written; source tables are never persisted.
type SQLReportWriter struct {
	db     *sql.DB
	driver string
}

// NewSQLReportWriter opens a connection with the given driver ("postgres" or
// "sqlite3"), waits for the database to answer, runs schema migrations and
// returns a ready-to-use writer.
func NewSQLReportWriter(driver, dsn string, logger *utils.Logger) (*SQLReportWriter, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		// In-memory databases exist per connection.
		db.SetMaxOpenConns(1)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do("sink ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sink: %w", err)
	}

	w := &SQLReportWriter{db: db, driver: driver}
	if err := w.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sink: migrate: %w", err)
	}
	return w, nil
}

func (w *SQLReportWriter) migrate() error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := w.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// placeholder returns the n-th (1-based) bind parameter for the driver.
func (w *SQLReportWriter) placeholder(n int) string {
	if w.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Write stores one report under a fresh run id inside a single transaction.
func (w *SQLReportWriter) Write(report *models.Report) (string, error) {
	runID := uuid.NewString()

	tx, err := w.db.Begin()
	if err != nil {
		return "", fmt.Errorf("sink: begin: %w", err)
	}
	defer tx.Rollback()

	ins := report.Insights
	if ins == nil {
		ins = &models.InsightReport{}
	}
	var avg any
	if ins.HasAverage {
		avg = ins.AverageGoals
	}

	if err := w.insertRows(tx, "report_runs",
		[]string{"run_id", "key_scheme", "year_from", "year_to", "average_goals", "created_at"},
		[][]any{{runID, report.KeyScheme, ins.YearFrom, ins.YearTo, avg, time.Now().UTC()}}); err != nil {
		return "", err
	}

	quality := make([][]any, 0, len(report.Quality))
	for _, q := range report.Quality {
		quality = append(quality, []any{runID, q.Table, q.Total, q.Flagged, q.Duplicates, q.Kept})
	}
	if err := w.insertRows(tx, "quality_summaries",
		[]string{"run_id", "table_name", "total", "flagged", "duplicates", "kept"}, quality); err != nil {
		return "", err
	}

	wins := make([][]any, 0, len(ins.ShootoutWins))
	for _, cw := range ins.ShootoutWins {
		wins = append(wins, []any{runID, cw.Country, cw.Wins})
	}
	if err := w.insertRows(tx, "shootout_wins", []string{"run_id", "country", "wins"}, wins); err != nil {
		return "", err
	}

	winners := make([][]any, 0, len(ins.DrawShootoutWinners))
	for i, team := range ins.DrawShootoutWinners {
		winners = append(winners, []any{runID, i + 1, team})
	}
	if err := w.insertRows(tx, "draw_shootout_winners", []string{"run_id", "position", "team"}, winners); err != nil {
		return "", err
	}

	scorers := make([][]any, 0, len(ins.TopScorers))
	for _, ts := range ins.TopScorers {
		scorers = append(scorers, []any{runID, ts.Tournament, ts.Scorer, ts.Goals, ts.PercentageOfTotal})
	}
	if err := w.insertRows(tx, "top_scorers",
		[]string{"run_id", "tournament", "scorer", "goals", "percentage"}, scorers); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("sink: commit: %w", err)
	}
	return runID, nil
}

// insertRows batch-inserts rows into table, 50 rows per statement.
func (w *SQLReportWriter) insertRows(tx *sql.Tx, table string, cols []string, rows [][]any) error {
	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]

		valueStrings := make([]string, 0, len(batch))
		valueArgs := make([]any, 0, len(batch)*len(cols))
		for idx, row := range batch {
			ph := make([]string, len(cols))
			for c := range cols {
				ph[c] = w.placeholder(idx*len(cols) + c + 1)
			}
			valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
			valueArgs = append(valueArgs, row...)
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			table, strings.Join(cols, ", "), strings.Join(valueStrings, ","))
		if _, err := tx.Exec(query, valueArgs...); err != nil {
			return fmt.Errorf("sink: insert %s: %w", table, err)
		}
	}
	return nil
}

// FetchInsights reads back the query results stored under runID.
func (w *SQLReportWriter) FetchInsights(runID string) (*models.InsightReport, error) {
	r := &models.InsightReport{}

	var avg sql.NullFloat64
	err := w.db.QueryRow(
		"SELECT year_from, year_to, average_goals FROM report_runs WHERE run_id = "+w.placeholder(1),
		runID,
	).Scan(&r.YearFrom, &r.YearTo, &avg)
	if err != nil {
		return nil, fmt.Errorf("sink: fetch run %s: %w", runID, err)
	}
	r.AverageGoals, r.HasAverage = avg.Float64, avg.Valid

	rows, err := w.db.Query(
		"SELECT country, wins FROM shootout_wins WHERE run_id = "+w.placeholder(1)+" ORDER BY country", runID)
	if err != nil {
		return nil, fmt.Errorf("sink: fetch shootout wins: %w", err)
	}
	for rows.Next() {
		var cw models.CountryWins
		if err := rows.Scan(&cw.Country, &cw.Wins); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sink: scan shootout wins: %w", err)
		}
		r.ShootoutWins = append(r.ShootoutWins, cw)
	}
	rows.Close()

	rows, err = w.db.Query(
		"SELECT team FROM draw_shootout_winners WHERE run_id = "+w.placeholder(1)+" ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("sink: fetch draw winners: %w", err)
	}
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sink: scan draw winners: %w", err)
		}
		r.DrawShootoutWinners = append(r.DrawShootoutWinners, team)
	}
	rows.Close()

	rows, err = w.db.Query(
		"SELECT tournament, scorer, goals, percentage FROM top_scorers WHERE run_id = "+w.placeholder(1)+
			" ORDER BY tournament", runID)
	if err != nil {
		return nil, fmt.Errorf("sink: fetch top scorers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ts models.TopScorer
		if err := rows.Scan(&ts.Tournament, &ts.Scorer, &ts.Goals, &ts.PercentageOfTotal); err != nil {
			return nil, fmt.Errorf("sink: scan top scorers: %w", err)
		}
		r.TopScorers = append(r.TopScorers, ts)
	}
	return r, rows.Err()
}

func (w *SQLReportWriter) Close() error {
	return w.db.Close()
}
