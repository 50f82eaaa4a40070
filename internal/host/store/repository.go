package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kdrennan/setforge/internal/domain/e1rm"
	"github.com/kdrennan/setforge/internal/domain/lift"
	"github.com/kdrennan/setforge/internal/domain/liftstate"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
	"github.com/kdrennan/setforge/internal/engine"
)

// Repository persists the planner host's lift catalog and a per-user
// WorkoutHistory against a *sql.DB opened by Open/OpenInMemory/OpenTemp.
// It is the engine's lift.LiftRepository collaborator and the source of
// WorkoutHistory snapshots fed to internal/engine's entry points.
type Repository struct {
	db *sql.DB
}

// NewRepository wraps an already-migrated *sql.DB.
func NewRepository(db *sql.DB) Repository {
	return Repository{db: db}
}

// GetByID implements lift.LiftRepository.
func (r Repository) GetByID(id string) (*lift.Lift, error) {
	row := r.db.QueryRow(`
		SELECT id, name, slug, is_competition_lift, parent_lift_id, coefficient, created_at, updated_at
		FROM lifts WHERE id = ?`, id)

	var l lift.Lift
	var parentID sql.NullString
	if err := row.Scan(&l.ID, &l.Name, &l.Slug, &l.IsCompetitionLift, &parentID, &l.Coefficient, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying lift %s: %w", id, err)
	}
	if parentID.Valid {
		l.ParentLiftID = &parentID.String
	}
	return &l, nil
}

// SlugExists implements lift.LiftRepository.
func (r Repository) SlugExists(slug string, excludeID *string) (bool, error) {
	var count int
	var err error
	if excludeID != nil {
		err = r.db.QueryRow(`SELECT COUNT(1) FROM lifts WHERE slug = ? AND id != ?`, slug, *excludeID).Scan(&count)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(1) FROM lifts WHERE slug = ?`, slug).Scan(&count)
	}
	if err != nil {
		return false, fmt.Errorf("checking slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// UpsertLift inserts or replaces one catalog entry.
func (r Repository) UpsertLift(l *lift.Lift) error {
	_, err := r.db.Exec(`
		INSERT INTO lifts (id, name, slug, is_competition_lift, parent_lift_id, coefficient, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, slug = excluded.slug,
			is_competition_lift = excluded.is_competition_lift,
			parent_lift_id = excluded.parent_lift_id,
			coefficient = excluded.coefficient,
			updated_at = excluded.updated_at`,
		l.ID, l.Name, l.Slug, l.IsCompetitionLift, l.ParentLiftID, l.Coefficient, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting lift %s: %w", l.ID, err)
	}
	return nil
}

// SaveLiftState upserts one canonical lift's updated state for userID,
// the write side of internal/engine.Recommender.UpdateLiftState's output.
func (r Repository) SaveLiftState(userID string, state liftstate.LiftState) error {
	historyJSON, err := json.Marshal(state.E1RMHistory)
	if err != nil {
		return fmt.Errorf("marshaling e1RM history: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO lift_states (
			user_id, exercise_id, last_working_weight_value, last_working_weight_unit,
			rolling_e1rm, failure_count, high_rpe_streak, success_streak,
			successful_sessions_count, last_deload_date, trend, e1rm_history_json, last_session_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, exercise_id) DO UPDATE SET
			last_working_weight_value = excluded.last_working_weight_value,
			last_working_weight_unit = excluded.last_working_weight_unit,
			rolling_e1rm = excluded.rolling_e1rm,
			failure_count = excluded.failure_count,
			high_rpe_streak = excluded.high_rpe_streak,
			success_streak = excluded.success_streak,
			successful_sessions_count = excluded.successful_sessions_count,
			last_deload_date = excluded.last_deload_date,
			trend = excluded.trend,
			e1rm_history_json = excluded.e1rm_history_json,
			last_session_date = excluded.last_session_date`,
		userID, state.ExerciseID, state.LastWorkingWeight.Value, string(state.LastWorkingWeight.Unit),
		state.RollingE1RM, state.FailureCount, state.HighRpeStreak, state.SuccessStreak,
		state.SuccessfulSessionsCount, state.LastDeloadDate, string(state.Trend), string(historyJSON), state.LastSessionDate)
	if err != nil {
		return fmt.Errorf("saving lift state for %s/%s: %w", userID, state.ExerciseID, err)
	}
	return nil
}

// RecordSession persists one completed session, the write side feeding
// future LoadWorkoutHistory calls.
func (r Repository) RecordSession(userID string, session engine.CompletedSession) error {
	resultsJSON, err := json.Marshal(session.ExerciseResults)
	if err != nil {
		return fmt.Errorf("marshaling exercise results: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO completed_sessions (id, user_id, template_id, session_date, was_deload, adjustment_kind, readiness_score, results_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, session.TemplateID, session.Date, session.WasDeload, session.AdjustmentKind, session.ReadinessScore, string(resultsJSON))
	if err != nil {
		return fmt.Errorf("recording session for %s: %w", userID, err)
	}
	return nil
}

// RecordReadiness persists one day's readiness score.
func (r Repository) RecordReadiness(userID string, sample engine.ReadinessSample) error {
	_, err := r.db.Exec(`
		INSERT INTO readiness_samples (user_id, sample_date, score)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, sample_date) DO UPDATE SET score = excluded.score`,
		userID, sample.Date, sample.Score)
	if err != nil {
		return fmt.Errorf("recording readiness for %s: %w", userID, err)
	}
	return nil
}

// LoadWorkoutHistory assembles an engine.WorkoutHistory snapshot for
// userID: every lift's current state, every persisted session (most
// recent sessionLimit, oldest-first to match internal/engine's expected
// ordering), and every readiness sample.
func (r Repository) LoadWorkoutHistory(userID string, sessionLimit int) (engine.WorkoutHistory, error) {
	history := engine.NewWorkoutHistory()

	stateRows, err := r.db.Query(`
		SELECT exercise_id, last_working_weight_value, last_working_weight_unit, rolling_e1rm,
			failure_count, high_rpe_streak, success_streak, successful_sessions_count,
			last_deload_date, trend, e1rm_history_json, last_session_date
		FROM lift_states WHERE user_id = ?`, userID)
	if err != nil {
		return history, fmt.Errorf("loading lift states for %s: %w", userID, err)
	}
	defer stateRows.Close()

	for stateRows.Next() {
		var state liftstate.LiftState
		var unit string
		var lastDeload, lastSession sql.NullTime
		var historyJSON string
		if err := stateRows.Scan(&state.ExerciseID, &state.LastWorkingWeight.Value, &unit, &state.RollingE1RM,
			&state.FailureCount, &state.HighRpeStreak, &state.SuccessStreak, &state.SuccessfulSessionsCount,
			&lastDeload, &state.Trend, &historyJSON, &lastSession); err != nil {
			return history, fmt.Errorf("scanning lift state for %s: %w", userID, err)
		}
		state.LastWorkingWeight.Unit = loadunit.Unit(unit)
		if lastDeload.Valid {
			state.LastDeloadDate = &lastDeload.Time
		}
		if lastSession.Valid {
			state.LastSessionDate = &lastSession.Time
		}
		var samples []e1rm.Sample
		if err := json.Unmarshal([]byte(historyJSON), &samples); err != nil {
			return history, fmt.Errorf("unmarshaling e1RM history for %s: %w", state.ExerciseID, err)
		}
		state.E1RMHistory = samples
		history.LiftStates[state.ExerciseID] = state
	}
	if err := stateRows.Err(); err != nil {
		return history, fmt.Errorf("iterating lift states for %s: %w", userID, err)
	}

	sessionRows, err := r.db.Query(`
		SELECT template_id, session_date, was_deload, adjustment_kind, readiness_score, results_json
		FROM completed_sessions WHERE user_id = ?
		ORDER BY session_date DESC LIMIT ?`, userID, sessionLimit)
	if err != nil {
		return history, fmt.Errorf("loading sessions for %s: %w", userID, err)
	}
	defer sessionRows.Close()

	var sessions []engine.CompletedSession
	for sessionRows.Next() {
		var session engine.CompletedSession
		var resultsJSON string
		if err := sessionRows.Scan(&session.TemplateID, &session.Date, &session.WasDeload, &session.AdjustmentKind, &session.ReadinessScore, &resultsJSON); err != nil {
			return history, fmt.Errorf("scanning session for %s: %w", userID, err)
		}
		if err := json.Unmarshal([]byte(resultsJSON), &session.ExerciseResults); err != nil {
			return history, fmt.Errorf("unmarshaling exercise results for %s: %w", userID, err)
		}
		sessions = append(sessions, session)
	}
	if err := sessionRows.Err(); err != nil {
		return history, fmt.Errorf("iterating sessions for %s: %w", userID, err)
	}
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	history.Sessions = sessions

	readinessRows, err := r.db.Query(`
		SELECT sample_date, score FROM readiness_samples WHERE user_id = ? ORDER BY sample_date ASC`, userID)
	if err != nil {
		return history, fmt.Errorf("loading readiness for %s: %w", userID, err)
	}
	defer readinessRows.Close()

	for readinessRows.Next() {
		var sample engine.ReadinessSample
		if err := readinessRows.Scan(&sample.Date, &sample.Score); err != nil {
			return history, fmt.Errorf("scanning readiness for %s: %w", userID, err)
		}
		history.ReadinessHistory = append(history.ReadinessHistory, sample)
	}
	if err := readinessRows.Err(); err != nil {
		return history, fmt.Errorf("iterating readiness for %s: %w", userID, err)
	}

	history.RecentVolumeByDate = make(map[string]float64)
	for _, session := range history.Sessions {
		var volume float64
		for _, result := range session.ExerciseResults {
			for _, s := range result.Sets {
				if !s.Completed || s.IsWarmup {
					continue
				}
				volume += s.Load.Value * float64(s.Reps)
			}
		}
		history.RecentVolumeByDate[session.Date.Format("2006-01-02")] += volume
	}

	return history, nil
}
