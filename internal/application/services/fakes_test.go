package services

import (
	"context"
	"strings"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/providers"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// In-memory repository fakes shared by the tracker service tests. They
// mirror the filestore adapters' contract: appends keep submission order,
// lists return most recent first.

type fakeMealRepo struct {
	entries []*entities.MealEntry
	err     error
}

func (f *fakeMealRepo) Append(ctx context.Context, entry *entities.MealEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeMealRepo) List(ctx context.Context, userEmail string) ([]*entities.MealEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entities.MealEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserEmail == userEmail {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeMealRepo) Clear(ctx context.Context, userEmail string) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.UserEmail != userEmail {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

type fakeSugarRepo struct {
	readings []*entities.SugarReading
}

func (f *fakeSugarRepo) Append(ctx context.Context, reading *entities.SugarReading) error {
	f.readings = append(f.readings, reading)
	return nil
}

func (f *fakeSugarRepo) List(ctx context.Context, userEmail string) ([]*entities.SugarReading, error) {
	var out []*entities.SugarReading
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].UserEmail == userEmail {
			out = append(out, f.readings[i])
		}
	}
	return out, nil
}

func (f *fakeSugarRepo) Clear(ctx context.Context, userEmail string) error {
	kept := f.readings[:0]
	for _, r := range f.readings {
		if r.UserEmail != userEmail {
			kept = append(kept, r)
		}
	}
	f.readings = kept
	return nil
}

type fakeExerciseRepo struct {
	sessions []*entities.ExerciseSession
}

func (f *fakeExerciseRepo) Append(ctx context.Context, session *entities.ExerciseSession) error {
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeExerciseRepo) List(ctx context.Context, userEmail string) ([]*entities.ExerciseSession, error) {
	var out []*entities.ExerciseSession
	for i := len(f.sessions) - 1; i >= 0; i-- {
		if f.sessions[i].UserEmail == userEmail {
			out = append(out, f.sessions[i])
		}
	}
	return out, nil
}

func (f *fakeExerciseRepo) Clear(ctx context.Context, userEmail string) error {
	f.sessions = nil
	return nil
}

type goalKey struct {
	user string
	kind entities.GoalKind
}

type fakeGoalRepo struct {
	goals map[goalKey]float64
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[goalKey]float64)}
}

func (f *fakeGoalRepo) Set(ctx context.Context, userEmail string, kind entities.GoalKind, value float64) error {
	f.goals[goalKey{userEmail, kind}] = value
	return nil
}

func (f *fakeGoalRepo) Get(ctx context.Context, userEmail string, kind entities.GoalKind) (float64, error) {
	value, ok := f.goals[goalKey{userEmail, kind}]
	if !ok {
		return 0, apperrors.NewNotFoundError("goal not set")
	}
	return value, nil
}

type fakeFoodIndex struct {
	items []*entities.FoodItem
}

func (f *fakeFoodIndex) InitSchema(ctx context.Context) error { return nil }

func (f *fakeFoodIndex) Index(ctx context.Context, item *entities.FoodItem) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeFoodIndex) Search(ctx context.Context, query string, limit int) ([]*entities.FoodItem, error) {
	var out []*entities.FoodItem
	for _, item := range f.items {
		if strings.Contains(item.Name, strings.ToLower(query)) && len(out) < limit {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeNutritionProvider struct {
	facts *entities.NutritionFacts
	err   error
	calls int
}

func (f *fakeNutritionProvider) Lookup(ctx context.Context, food string) (*entities.NutritionFacts, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.facts, nil
}

type fakeCache struct {
	values map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return nil, apperrors.NewNotFoundError("cache miss")
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.values[key]
	return ok, nil
}

type fakeAdviceProvider struct {
	reply string
	err   error
	last  string
}

func (f *fakeAdviceProvider) GenerateAdvice(ctx context.Context, prompt string) (string, error) {
	f.last = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var _ providers.AdviceProvider = (*fakeAdviceProvider)(nil)
var _ providers.NutritionProvider = (*fakeNutritionProvider)(nil)
var _ providers.CacheProvider = (*fakeCache)(nil)
