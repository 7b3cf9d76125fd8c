package services

import (
	"bytes"
	"context"
	"encoding/csv"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// HistoryService exposes a user's saved predictions: listing, clearing and
// a CSV export suitable for download.
type HistoryService struct {
	history repositories.PredictionRepository
}

func NewHistoryService(history repositories.PredictionRepository) *HistoryService {
	return &HistoryService{history: history}
}

// List returns the user's predictions, most recent first. A user with no
// history gets an empty slice, not an error.
func (s *HistoryService) List(ctx context.Context, userEmail string) ([]*entities.HistoryRecord, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}
	return s.history.List(ctx, userEmail)
}

// Clear removes every saved prediction for the user. Clearing an empty
// history succeeds.
func (s *HistoryService) Clear(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}
	return s.history.Clear(ctx, userEmail)
}

// ExportCSV renders the user's history as CSV with the same columns the
// on-screen table shows. An empty history yields the header row only.
func (s *HistoryService) ExportCSV(ctx context.Context, userEmail string) ([]byte, error) {
	records, err := s.List(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(entities.HistoryColumns); err != nil {
		return nil, apperrors.NewInternalError("failed to render history export", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.CSVRow()); err != nil {
			return nil, apperrors.NewInternalError("failed to render history export", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.NewInternalError("failed to render history export", err)
	}
	return buf.Bytes(), nil
}
