// Package main provides the setforge planner CLI: it reads a JSON session
// request, runs it through the deterministic recommendation engine, and
// prints the resulting SessionPlan as JSON.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kdrennan/setforge/internal/engine"
	"github.com/kdrennan/setforge/internal/host/dto"
	"github.com/kdrennan/setforge/internal/host/store"
)

func main() {
	dbPath := flag.String("db", "setforge.db", "Database file path")
	fixturePath := flag.String("fixture", "", "Path to a JSON SessionRequest fixture (required)")
	userID := flag.String("user", "default", "User id to load/store history under")
	sessionLimit := flag.Int("session-limit", 20, "Number of most recent sessions to load from history")
	flag.Parse()

	if *fixturePath == "" {
		log.Fatal("missing required -fixture flag")
	}

	runID := uuid.NewString()
	log.Printf("planner run %s starting", runID)

	raw, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatalf("reading fixture %s: %v", *fixturePath, err)
	}

	var req dto.SessionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Fatalf("parsing fixture %s: %v", *fixturePath, err)
	}
	if err := req.Validate(); err != nil {
		log.Fatalf("invalid session request: %v", err)
	}

	date, profile, planTemplate, fixtureHistory, err := req.ToEngine()
	if err != nil {
		log.Fatalf("translating session request: %v", err)
	}

	db, err := store.Open(store.Config{Path: *dbPath})
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	repo := store.NewRepository(db)
	history, err := repo.LoadWorkoutHistory(*userID, *sessionLimit)
	if err != nil {
		log.Fatalf("loading history for %s: %v", *userID, err)
	}
	history.ReadinessHistory = append(history.ReadinessHistory, fixtureHistory.ReadinessHistory...)

	recommender := engine.NewRecommender(engine.DefaultConfig(), repo, engine.NewFixedZoneCalendar(time.UTC))

	plan, err := recommender.RecommendSession(date, profile, planTemplate, history, req.TodayReadiness, req.PlannedDeloadWeek)
	if err != nil {
		log.Fatalf("recommending session: %v", err)
	}

	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		log.Fatalf("marshaling session plan: %v", err)
	}

	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
	log.Printf("planner run %s complete", runID)
}
