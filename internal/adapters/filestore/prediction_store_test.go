package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

func sampleRecord(user string, glucose int, ts time.Time) *entities.HistoryRecord {
	return &entities.HistoryRecord{
		ID:        fmt.Sprintf("rec-%d", glucose),
		UserEmail: user,
		MedicalInput: entities.MedicalInput{
			Pregnancies:              2,
			Glucose:                  glucose,
			BloodPressure:            80,
			SkinThickness:            25,
			Insulin:                  100,
			BMI:                      31.4,
			DiabetesPedigreeFunction: 0.52,
			Age:                      41,
		},
		RiskPercent: 82.31,
		Prediction:  entities.PredictionLabelPositive,
		Timestamp:   ts,
	}
}

func TestPredictionStore(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC)

	t.Run("append then list round-trips every field", func(t *testing.T) {
		store, err := NewPredictionStore(t.TempDir())
		require.NoError(t, err)

		record := sampleRecord("alice@example.com", 130, ts)
		require.NoError(t, store.Append(ctx, record))

		records, err := store.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, records, 1)
		got := records[0]
		assert.Equal(t, record.Glucose, got.Glucose)
		assert.Equal(t, record.BMI, got.BMI)
		assert.Equal(t, record.DiabetesPedigreeFunction, got.DiabetesPedigreeFunction)
		assert.Equal(t, record.RiskPercent, got.RiskPercent)
		assert.Equal(t, record.Prediction, got.Prediction)
		assert.True(t, record.Timestamp.Equal(got.Timestamp))
	})

	t.Run("stored rows use display precision", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewPredictionStore(dir)
		require.NoError(t, err)

		record := sampleRecord("alice@example.com", 130, ts)
		record.BMI = 32
		record.DiabetesPedigreeFunction = 0.6
		record.RiskPercent = 70
		require.NoError(t, store.Append(ctx, record))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, strings.Join(entities.HistoryColumns, ","), lines[0])
		assert.Equal(t, "2,130,80,25,100,32.0,0.600,41,70.00,Positive,2025-06-01 14:30:05", lines[1])
	})

	t.Run("append only grows the log", func(t *testing.T) {
		store, err := NewPredictionStore(t.TempDir())
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, store.Append(ctx, sampleRecord("alice@example.com", 100+i, ts.Add(time.Duration(i)*time.Minute))))
			records, err := store.List(ctx, "alice@example.com")
			require.NoError(t, err)
			assert.Len(t, records, i+1)
		}
	})

	t.Run("list is most recent first", func(t *testing.T) {
		store, err := NewPredictionStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, sampleRecord("alice@example.com", 100, ts)))
		require.NoError(t, store.Append(ctx, sampleRecord("alice@example.com", 150, ts.Add(time.Hour))))

		records, err := store.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 150, records[0].Glucose)
		assert.Equal(t, 100, records[1].Glucose)
	})

	t.Run("users are isolated", func(t *testing.T) {
		store, err := NewPredictionStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, sampleRecord("alice@example.com", 130, ts)))
		require.NoError(t, store.Append(ctx, sampleRecord("bob@example.com", 99, ts)))

		alice, err := store.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, alice, 1)
		assert.Equal(t, 130, alice[0].Glucose)

		require.NoError(t, store.Clear(ctx, "alice@example.com"))

		alice, err = store.List(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Empty(t, alice)

		bob, err := store.List(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Len(t, bob, 1)
	})

	t.Run("empty history lists empty", func(t *testing.T) {
		store, err := NewPredictionStore(t.TempDir())
		require.NoError(t, err)

		records, err := store.List(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("clearing an empty history succeeds", func(t *testing.T) {
		store, err := NewPredictionStore(t.TempDir())
		require.NoError(t, err)
		assert.NoError(t, store.Clear(ctx, "nobody@example.com"))
	})

	t.Run("missing user is unauthorized", func(t *testing.T) {
		store, err := NewPredictionStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.List(ctx, "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		assert.True(t, apperrors.IsType(store.Clear(ctx, ""), apperrors.ErrorTypeUnauthorized))
	})

	t.Run("corrupt file is a persistence error", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewPredictionStore(dir)
		require.NoError(t, err)

		require.NoError(t, store.Append(ctx, sampleRecord("alice@example.com", 130, ts)))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()),
			[]byte("Pregnancies,Glucose\nnot,numbers\n"), 0o644))

		_, err = store.List(ctx, "alice@example.com")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePersistence))
	})
}
