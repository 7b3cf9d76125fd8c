package entities

import (
	"strconv"
	"time"
)

// PredictionLabel is the classifier's rendered outcome.
type PredictionLabel string

const (
	PredictionLabelPositive PredictionLabel = "Positive"
	PredictionLabelNegative PredictionLabel = "Negative"
)

// LabelFromCode maps the classifier's 0/1 output to its label. Code 1 is
// always Positive.
func LabelFromCode(code int) PredictionLabel {
	if code == 1 {
		return PredictionLabelPositive
	}
	return PredictionLabelNegative
}

// Message returns the user-facing message for a label. Total over both labels.
func (l PredictionLabel) Message() string {
	if l == PredictionLabelPositive {
		return "You may have diabetes."
	}
	return "You are unlikely to have diabetes."
}

// PredictionResult is one classification outcome. Immutable once created.
type PredictionResult struct {
	ID          string          `json:"id"`
	UserEmail   string          `json:"user_email"`
	Input       MedicalInput    `json:"input"`
	Vector      *FeatureVector  `json:"-"`
	Probability float64         `json:"probability"`
	RiskPercent float64         `json:"risk_percent"`
	Label       PredictionLabel `json:"label"`
	Message     string          `json:"message"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HistoryRecord is the stored representation of a PredictionResult,
// denormalized with the raw inputs for display. One user owns exactly the
// records matching their email.
type HistoryRecord struct {
	ID           string          `json:"id" db:"id"`
	UserEmail    string          `json:"user_email" db:"user_email"`
	MedicalInput                 // inline input columns
	RiskPercent  float64         `json:"risk_percent" db:"risk_percent"`
	Prediction   PredictionLabel `json:"prediction" db:"prediction"`
	Timestamp    time.Time       `json:"timestamp" db:"timestamp"`
}

// Record returns the durable history representation of the result.
func (r *PredictionResult) Record() *HistoryRecord {
	return &HistoryRecord{
		ID:           r.ID,
		UserEmail:    r.UserEmail,
		MedicalInput: r.Input,
		RiskPercent:  r.RiskPercent,
		Prediction:   r.Label,
		Timestamp:    r.CreatedAt,
	}
}

// HistoryTimeFormat is the timestamp layout for stored and exported CSV.
const HistoryTimeFormat = "2006-01-02 15:04:05"

// CSVRow renders the record in HistoryColumns order at display precision,
// so the stored file and the downloaded export show a record identically.
func (r *HistoryRecord) CSVRow() []string {
	return []string{
		strconv.Itoa(r.Pregnancies),
		strconv.Itoa(r.Glucose),
		strconv.Itoa(r.BloodPressure),
		strconv.Itoa(r.SkinThickness),
		strconv.Itoa(r.Insulin),
		strconv.FormatFloat(r.BMI, 'f', 1, 64),
		strconv.FormatFloat(r.DiabetesPedigreeFunction, 'f', 3, 64),
		strconv.Itoa(r.Age),
		strconv.FormatFloat(r.RiskPercent, 'f', 2, 64),
		string(r.Prediction),
		r.Timestamp.UTC().Format(HistoryTimeFormat),
	}
}

// HistoryColumns is the display (and CSV export) column order.
var HistoryColumns = []string{
	"Pregnancies",
	"Glucose",
	"BloodPressure",
	"SkinThickness",
	"Insulin",
	"BMI",
	"DiabetesPedigreeFunction",
	"Age",
	"Risk (%)",
	"Prediction",
	"Timestamp",
}
