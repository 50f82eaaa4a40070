package store

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/kdrennan/setforge/internal/domain/lift"
	"github.com/kdrennan/setforge/internal/domain/liftstate"
	"github.com/kdrennan/setforge/internal/domain/loadunit"
	"github.com/kdrennan/setforge/internal/engine"
)

// setupTestDB opens a pure-Go modernc/sqlite database and runs the
// package's embedded migrations against it, mirroring the teacher's
// test-vs-production driver split (modernc for tests, mattn/go-sqlite3
// for Open/OpenInMemory/OpenTemp).
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "setforge-repo-test-*.db")
	require.NoError(t, err)
	tmpFile.Close()

	db, err := sql.Open("sqlite", tmpFile.Name())
	require.NoError(t, err)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	goose.SetBaseFS(embeddedMigrations)
	defer goose.SetBaseFS(nil)
	require.NoError(t, goose.SetDialect("sqlite"))
	require.NoError(t, goose.Up(db, "migrations"))

	cleanup := func() {
		db.Close()
		os.Remove(tmpFile.Name())
	}
	return db, cleanup
}

func TestUpsertLiftAndGetByID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := &lift.Lift{
		ID:          "squat",
		Name:        "Back Squat",
		Slug:        "back-squat",
		Coefficient: 1.0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.UpsertLift(l))

	got, err := repo.GetByID("squat")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Back Squat", got.Name)

	missing, err := repo.GetByID("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSlugExists(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertLift(&lift.Lift{ID: "squat", Name: "Back Squat", Slug: "back-squat", Coefficient: 1.0, CreatedAt: now, UpdatedAt: now}))

	exists, err := repo.SlugExists("back-squat", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	excluded := "squat"
	exists, err = repo.SlugExists("back-squat", &excluded)
	require.NoError(t, err)
	assert.False(t, exists, "expected back-squat to be excluded when excludeID matches its owner")
}

func TestSaveAndLoadLiftState(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db)

	lastSession := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	state := liftstate.LiftState{
		ExerciseID:              "squat",
		LastWorkingWeight:       loadunit.Load{Value: 225, Unit: loadunit.Pounds},
		RollingE1RM:             280,
		SuccessStreak:           3,
		SuccessfulSessionsCount: 5,
		Trend:                   "improving",
		LastSessionDate:         &lastSession,
	}
	require.NoError(t, repo.SaveLiftState("user-1", state))

	history, err := repo.LoadWorkoutHistory("user-1", 10)
	require.NoError(t, err)
	got, ok := history.LiftStates["squat"]
	require.True(t, ok, "expected a loaded squat state")
	assert.Equal(t, 280.0, got.RollingE1RM)
	require.NotNil(t, got.LastSessionDate)
	assert.True(t, got.LastSessionDate.Equal(lastSession))
}

func TestRecordSessionOrdersHistoryOldestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db)

	dates := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		session := engine.CompletedSession{
			TemplateID: "day-a",
			Date:       d,
			ExerciseResults: []engine.ExerciseSessionResult{
				{ExerciseID: "squat", Sets: []engine.SetResult{
					{Reps: 5, Load: loadunit.Load{Value: 225, Unit: loadunit.Pounds}, Completed: true},
				}},
			},
		}
		require.NoError(t, repo.RecordSession("user-1", session))
	}

	history, err := repo.LoadWorkoutHistory("user-1", 10)
	require.NoError(t, err)
	require.Len(t, history.Sessions, 3)
	assert.True(t, history.Sessions[0].Date.Equal(dates[0]))
	assert.True(t, history.Sessions[2].Date.Equal(dates[2]))

	key := dates[0].Format("2006-01-02")
	assert.Equal(t, 225.0*5, history.RecentVolumeByDate[key])
}

func TestRecordAndLoadReadiness(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db)

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordReadiness("user-1", engine.ReadinessSample{Date: day, Score: 72}))
	require.NoError(t, repo.RecordReadiness("user-1", engine.ReadinessSample{Date: day, Score: 80}))

	history, err := repo.LoadWorkoutHistory("user-1", 10)
	require.NoError(t, err)
	require.Len(t, history.ReadinessHistory, 1, "expected the same-day sample to upsert in place")
	assert.Equal(t, 80, history.ReadinessHistory[0].Score)
}
