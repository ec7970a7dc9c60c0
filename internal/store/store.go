// Package store persists solved schedules for later retrieval. It is
// the only thing in this codebase that talks to Postgres: staff,
// availability, and requirements are supplied fresh on every solve
// call and never stored here.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/internal/database"
	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/model"
)

// Store wraps the schedule_results table.
type Store struct {
	db *database.DB
}

// New returns a Store backed by db.
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// schema is applied by Migrate, which the server calls at every
// startup; every statement is IF NOT EXISTS, so re-running it is safe.
const schema = `
CREATE TABLE IF NOT EXISTS schedule_results (
	id              UUID PRIMARY KEY,
	week_start_date DATE NOT NULL,
	schedule        JSONB NOT NULL,
	stats           JSONB NOT NULL,
	warnings        JSONB NOT NULL,
	score           DOUBLE PRECISION NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_schedule_results_week ON schedule_results (week_start_date);
`

// Migrate creates the schedule_results table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("migrate schedule_results: %w", err)
	}
	return nil
}

// Save persists one ScheduleResult, keyed by its Schedule.ID.
func (s *Store) Save(ctx context.Context, result model.ScheduleResult) error {
	scheduleJSON, err := json.Marshal(result.Schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	statsJSON, err := json.Marshal(result.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	warningsJSON, err := json.Marshal(result.Warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	const q = `
		INSERT INTO schedule_results (id, week_start_date, schedule, stats, warnings, score)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			schedule = EXCLUDED.schedule,
			stats    = EXCLUDED.stats,
			warnings = EXCLUDED.warnings,
			score    = EXCLUDED.score
	`
	_, err = s.db.ExecContext(ctx, q,
		result.Schedule.ID, result.Schedule.WeekStartDate, scheduleJSON, statsJSON, warningsJSON, result.Score)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "save schedule result")
	}
	return nil
}

// Get loads one ScheduleResult by its Schedule.ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (model.ScheduleResult, error) {
	const q = `SELECT schedule, stats, warnings, score FROM schedule_results WHERE id = $1`

	var scheduleJSON, statsJSON, warningsJSON []byte
	var score float64

	row := s.db.QueryRowContext(ctx, q, id)
	if err := row.Scan(&scheduleJSON, &statsJSON, &warningsJSON, &score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ScheduleResult{}, apperrors.NotFound("schedule_result", id.String())
		}
		return model.ScheduleResult{}, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load schedule result")
	}

	return decodeResult(scheduleJSON, statsJSON, warningsJSON, score)
}

// ListByWeek returns every stored result for a given week start,
// newest first.
func (s *Store) ListByWeek(ctx context.Context, weekStart time.Time) ([]model.ScheduleResult, error) {
	const q = `
		SELECT schedule, stats, warnings, score FROM schedule_results
		WHERE week_start_date = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, q, weekStart)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "list schedule results")
	}
	defer rows.Close()

	var results []model.ScheduleResult
	for rows.Next() {
		var scheduleJSON, statsJSON, warningsJSON []byte
		var score float64
		if err := rows.Scan(&scheduleJSON, &statsJSON, &warningsJSON, &score); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "scan schedule result")
		}
		result, err := decodeResult(scheduleJSON, statsJSON, warningsJSON, score)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func decodeResult(scheduleJSON, statsJSON, warningsJSON []byte, score float64) (model.ScheduleResult, error) {
	var result model.ScheduleResult
	if err := json.Unmarshal(scheduleJSON, &result.Schedule); err != nil {
		return model.ScheduleResult{}, fmt.Errorf("unmarshal schedule: %w", err)
	}
	if err := json.Unmarshal(statsJSON, &result.Stats); err != nil {
		return model.ScheduleResult{}, fmt.Errorf("unmarshal stats: %w", err)
	}
	if err := json.Unmarshal(warningsJSON, &result.Warnings); err != nil {
		return model.ScheduleResult{}, fmt.Errorf("unmarshal warnings: %w", err)
	}
	result.Score = score
	return result, nil
}
