package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/repositories"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/infrastructure/clients/postgres"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

const predictionsTable = "predictions"

// PredictionAdapter implements prediction history persistence in Postgres.
// One row per prediction, keyed by the owning user's email.
type PredictionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.PredictionRepository = (*PredictionAdapter)(nil)

// NewPredictionAdapter creates a new prediction adapter.
func NewPredictionAdapter(client *postgres.Client) *PredictionAdapter {
	return &PredictionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Append inserts one history record. No internal retries; a duplicate id
// is rejected by the primary key rather than silently duplicated.
func (a *PredictionAdapter) Append(ctx context.Context, record *entities.HistoryRecord) error {
	if record == nil {
		return apperrors.NewInternalError("history record is nil", fmt.Errorf("history record is nil"))
	}
	if record.UserEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	row := goqu.Record{
		"id":                         record.ID,
		"user_email":                 record.UserEmail,
		"pregnancies":                record.Pregnancies,
		"glucose":                    record.Glucose,
		"blood_pressure":             record.BloodPressure,
		"skin_thickness":             record.SkinThickness,
		"insulin":                    record.Insulin,
		"bmi":                        record.BMI,
		"diabetes_pedigree_function": record.DiabetesPedigreeFunction,
		"age":                        record.Age,
		"risk_percent":               record.RiskPercent,
		"prediction":                 string(record.Prediction),
		"timestamp":                  record.Timestamp,
	}

	query, args, err := a.db.Insert(predictionsTable).Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewPersistenceError("failed to build prediction insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to append prediction record", err)
	}

	return nil
}

// List returns the user's records, most recent first.
func (a *PredictionAdapter) List(ctx context.Context, userEmail string) ([]*entities.HistoryRecord, error) {
	if userEmail == "" {
		return nil, apperrors.NewUnauthorizedError("user identifier is required")
	}

	query, args, err := a.db.From(predictionsTable).
		Select(
			"id", "user_email", "pregnancies", "glucose", "blood_pressure",
			"skin_thickness", "insulin", "bmi", "diabetes_pedigree_function",
			"age", "risk_percent", "prediction", "timestamp",
		).
		Where(goqu.Ex{"user_email": userEmail}).
		Order(goqu.I("timestamp").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to build prediction list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list prediction records", err)
	}
	defer rows.Close()

	records := []*entities.HistoryRecord{}
	for rows.Next() {
		var record entities.HistoryRecord
		var prediction string
		err := rows.Scan(
			&record.ID,
			&record.UserEmail,
			&record.Pregnancies,
			&record.Glucose,
			&record.BloodPressure,
			&record.SkinThickness,
			&record.Insulin,
			&record.BMI,
			&record.DiabetesPedigreeFunction,
			&record.Age,
			&record.RiskPercent,
			&prediction,
			&record.Timestamp,
		)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan prediction record", err)
		}
		record.Prediction = entities.PredictionLabel(prediction)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to read prediction records", err)
	}

	return records, nil
}

// Clear deletes all of the user's records. Other users' rows are untouched.
func (a *PredictionAdapter) Clear(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return apperrors.NewUnauthorizedError("user identifier is required")
	}

	query, args, err := a.db.Delete(predictionsTable).
		Where(goqu.Ex{"user_email": userEmail}).
		ToSQL()
	if err != nil {
		return apperrors.NewPersistenceError("failed to build prediction clear query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to clear prediction records", err)
	}

	return nil
}
