package filestore

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// PredictionStore persists prediction history as one CSV file per user.
// Rows are appended in submission order; the on-disk columns are exactly
// the display columns.
type PredictionStore struct {
	dir string
	mu  sync.Mutex
}

var _ repositories.PredictionRepository = (*PredictionStore)(nil)

// NewPredictionStore creates a CSV-backed prediction store rooted at dir.
func NewPredictionStore(dir string) (*PredictionStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, apperrors.NewPersistenceError("failed to create user data directory", err)
	}
	return &PredictionStore{dir: dir}, nil
}

func (s *PredictionStore) path(userEmail string) string {
	return userFilename(s.dir, "prediction_history", userEmail, "csv")
}

// Append writes one record. The header and row are written in a single
// write call so a reader never sees a partial record.
func (s *PredictionStore) Append(ctx context.Context, record *entities.HistoryRecord) error {
	if record == nil {
		return apperrors.NewInternalError("history record is nil", fmt.Errorf("history record is nil"))
	}
	if record.UserEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(record.UserEmail)
	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if newFile {
		if err := writer.Write(entities.HistoryColumns); err != nil {
			return apperrors.NewPersistenceError("failed to encode history header", err)
		}
	}
	if err := writer.Write(record.CSVRow()); err != nil {
		return apperrors.NewPersistenceError("failed to encode history record", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewPersistenceError("failed to encode history record", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.NewPersistenceError("failed to open history file", err)
	}
	defer file.Close()

	if _, err := file.Write(buf.Bytes()); err != nil {
		return apperrors.NewPersistenceError("failed to write history record", err)
	}
	if err := file.Sync(); err != nil {
		return apperrors.NewPersistenceError("failed to sync history file", err)
	}
	return nil
}

// List returns the user's records, most recent first.
func (s *PredictionStore) List(ctx context.Context, userEmail string) ([]*entities.HistoryRecord, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(userEmail))
	if os.IsNotExist(err) {
		return []*entities.HistoryRecord{}, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to read history file", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to parse history file", err)
	}
	if len(rows) <= 1 {
		return []*entities.HistoryRecord{}, nil
	}

	records := make([]*entities.HistoryRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := parseRecordRow(row, userEmail)
		if err != nil {
			return nil, apperrors.NewPersistenceError(fmt.Sprintf("corrupt history row %d", i+2), err)
		}
		records = append(records, record)
	}
	return reversed(records), nil
}

// Clear removes the user's history file. Other users' files are untouched.
func (s *PredictionStore) Clear(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(userEmail))
	if err != nil && !os.IsNotExist(err) {
		return apperrors.NewPersistenceError("failed to clear history", err)
	}
	return nil
}

func parseRecordRow(row []string, userEmail string) (*entities.HistoryRecord, error) {
	if len(row) != len(entities.HistoryColumns) {
		return nil, fmt.Errorf("row has %d columns, expected %d", len(row), len(entities.HistoryColumns))
	}

	ints := make([]int, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.Atoi(row[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", entities.HistoryColumns[i], err)
		}
		ints[i] = v
	}

	bmi, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return nil, fmt.Errorf("column BMI: %w", err)
	}
	dpf, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return nil, fmt.Errorf("column DiabetesPedigreeFunction: %w", err)
	}
	age, err := strconv.Atoi(row[7])
	if err != nil {
		return nil, fmt.Errorf("column Age: %w", err)
	}
	risk, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return nil, fmt.Errorf("column Risk: %w", err)
	}
	ts, err := time.ParseInLocation(entities.HistoryTimeFormat, row[10], time.UTC)
	if err != nil {
		return nil, fmt.Errorf("column Timestamp: %w", err)
	}

	return &entities.HistoryRecord{
		UserEmail: userEmail,
		MedicalInput: entities.MedicalInput{
			Pregnancies:              ints[0],
			Glucose:                  ints[1],
			BloodPressure:            ints[2],
			SkinThickness:            ints[3],
			Insulin:                  ints[4],
			BMI:                      bmi,
			DiabetesPedigreeFunction: dpf,
			Age:                      age,
		},
		RiskPercent: risk,
		Prediction:  entities.PredictionLabel(row[9]),
		Timestamp:   ts,
	}, nil
}
