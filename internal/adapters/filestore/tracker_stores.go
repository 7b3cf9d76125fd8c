package filestore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// MealStore keeps one JSON meal log per user.
type MealStore struct {
	dir string
	mu  sync.Mutex
}

var _ repositories.MealRepository = (*MealStore)(nil)

// NewMealStore creates a JSON-backed meal store rooted at dir.
func NewMealStore(dir string) (*MealStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, apperrors.NewPersistenceError("failed to create user data directory", err)
	}
	return &MealStore{dir: dir}, nil
}

func (s *MealStore) path(userEmail string) string {
	return userFilename(s.dir, "meal_log", userEmail, "json")
}

// Append adds one meal to the user's log.
func (s *MealStore) Append(ctx context.Context, entry *entities.MealEntry) error {
	if entry == nil {
		return apperrors.NewInternalError("meal entry is nil", fmt.Errorf("meal entry is nil"))
	}
	if entry.UserEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(entry.UserEmail)
	entries, err := loadJSONSlice[*entities.MealEntry](path)
	if err != nil {
		return apperrors.NewPersistenceError("failed to read meal log", err)
	}
	entries = append(entries, entry)
	if err := saveJSONSlice(path, entries); err != nil {
		return apperrors.NewPersistenceError("failed to write meal log", err)
	}
	return nil
}

// List returns the user's meals, most recent first.
func (s *MealStore) List(ctx context.Context, userEmail string) ([]*entities.MealEntry, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := loadJSONSlice[*entities.MealEntry](s.path(userEmail))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to read meal log", err)
	}
	return reversed(entries), nil
}

// Clear removes the user's meal log.
func (s *MealStore) Clear(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(userEmail)); err != nil && !os.IsNotExist(err) {
		return apperrors.NewPersistenceError("failed to clear meal log", err)
	}
	return nil
}

// SugarStore keeps one JSON blood-sugar log per user.
type SugarStore struct {
	dir string
	mu  sync.Mutex
}

var _ repositories.SugarRepository = (*SugarStore)(nil)

// NewSugarStore creates a JSON-backed sugar store rooted at dir.
func NewSugarStore(dir string) (*SugarStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, apperrors.NewPersistenceError("failed to create user data directory", err)
	}
	return &SugarStore{dir: dir}, nil
}

func (s *SugarStore) path(userEmail string) string {
	return userFilename(s.dir, "sugar_log", userEmail, "json")
}

// Append adds one reading to the user's log.
func (s *SugarStore) Append(ctx context.Context, reading *entities.SugarReading) error {
	if reading == nil {
		return apperrors.NewInternalError("sugar reading is nil", fmt.Errorf("sugar reading is nil"))
	}
	if reading.UserEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(reading.UserEmail)
	readings, err := loadJSONSlice[*entities.SugarReading](path)
	if err != nil {
		return apperrors.NewPersistenceError("failed to read sugar log", err)
	}
	readings = append(readings, reading)
	if err := saveJSONSlice(path, readings); err != nil {
		return apperrors.NewPersistenceError("failed to write sugar log", err)
	}
	return nil
}

// List returns the user's readings, most recent first.
func (s *SugarStore) List(ctx context.Context, userEmail string) ([]*entities.SugarReading, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := loadJSONSlice[*entities.SugarReading](s.path(userEmail))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to read sugar log", err)
	}
	return reversed(readings), nil
}

// Clear removes the user's sugar log.
func (s *SugarStore) Clear(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(userEmail)); err != nil && !os.IsNotExist(err) {
		return apperrors.NewPersistenceError("failed to clear sugar log", err)
	}
	return nil
}

// ExerciseStore keeps one JSON workout log per user.
type ExerciseStore struct {
	dir string
	mu  sync.Mutex
}

var _ repositories.ExerciseRepository = (*ExerciseStore)(nil)

// NewExerciseStore creates a JSON-backed exercise store rooted at dir.
func NewExerciseStore(dir string) (*ExerciseStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, apperrors.NewPersistenceError("failed to create user data directory", err)
	}
	return &ExerciseStore{dir: dir}, nil
}

func (s *ExerciseStore) path(userEmail string) string {
	return userFilename(s.dir, "calorie_history", userEmail, "json")
}

// Append adds one session to the user's log.
func (s *ExerciseStore) Append(ctx context.Context, session *entities.ExerciseSession) error {
	if session == nil {
		return apperrors.NewInternalError("exercise session is nil", fmt.Errorf("exercise session is nil"))
	}
	if session.UserEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(session.UserEmail)
	sessions, err := loadJSONSlice[*entities.ExerciseSession](path)
	if err != nil {
		return apperrors.NewPersistenceError("failed to read calorie history", err)
	}
	sessions = append(sessions, session)
	if err := saveJSONSlice(path, sessions); err != nil {
		return apperrors.NewPersistenceError("failed to write calorie history", err)
	}
	return nil
}

// List returns the user's sessions, most recent first.
func (s *ExerciseStore) List(ctx context.Context, userEmail string) ([]*entities.ExerciseSession, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := loadJSONSlice[*entities.ExerciseSession](s.path(userEmail))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to read calorie history", err)
	}
	return reversed(sessions), nil
}

// Clear removes the user's workout log.
func (s *ExerciseStore) Clear(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(userEmail)); err != nil && !os.IsNotExist(err) {
		return apperrors.NewPersistenceError("failed to clear calorie history", err)
	}
	return nil
}

// GoalStore keeps each user's daily goals in one small JSON file.
type GoalStore struct {
	dir string
	mu  sync.Mutex
}

var _ repositories.GoalRepository = (*GoalStore)(nil)

// NewGoalStore creates a JSON-backed goal store rooted at dir.
func NewGoalStore(dir string) (*GoalStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, apperrors.NewPersistenceError("failed to create user data directory", err)
	}
	return &GoalStore{dir: dir}, nil
}

func (s *GoalStore) path(userEmail string) string {
	return userFilename(s.dir, "daily_goals", userEmail, "json")
}

type goalEntry struct {
	Kind  entities.GoalKind `json:"kind"`
	Value float64           `json:"value"`
}

// Set stores the user's goal of the given kind.
func (s *GoalStore) Set(ctx context.Context, userEmail string, kind entities.GoalKind, value float64) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(userEmail)
	goals, err := loadJSONSlice[goalEntry](path)
	if err != nil {
		return apperrors.NewPersistenceError("failed to read goals", err)
	}

	updated := false
	for i := range goals {
		if goals[i].Kind == kind {
			goals[i].Value = value
			updated = true
			break
		}
	}
	if !updated {
		goals = append(goals, goalEntry{Kind: kind, Value: value})
	}

	if err := saveJSONSlice(path, goals); err != nil {
		return apperrors.NewPersistenceError("failed to write goals", err)
	}
	return nil
}

// Get returns the user's goal of the given kind, or a not-found error.
func (s *GoalStore) Get(ctx context.Context, userEmail string, kind entities.GoalKind) (float64, error) {
	if userEmail == "" {
		return 0, apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := loadJSONSlice[goalEntry](s.path(userEmail))
	if err != nil {
		return 0, apperrors.NewPersistenceError("failed to read goals", err)
	}
	for _, goal := range goals {
		if goal.Kind == kind {
			return goal.Value, nil
		}
	}
	return 0, apperrors.NewNotFoundError(fmt.Sprintf("no %s goal set", kind))
}
