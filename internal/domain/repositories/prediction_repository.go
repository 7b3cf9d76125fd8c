package repositories

import (
	"context"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
)

// PredictionRepository is the durable store for prediction history.
// Every operation is scoped by the owning user's email; implementations
// must never return another user's records.
type PredictionRepository interface {
	// Append persists one record. Called at most once per prediction;
	// implementations must not retry internally.
	Append(ctx context.Context, record *entities.HistoryRecord) error

	// List returns all of the user's records, most recent first.
	List(ctx context.Context, userEmail string) ([]*entities.HistoryRecord, error)

	// Clear irreversibly deletes all of the user's records.
	Clear(ctx context.Context, userEmail string) error
}
