package services

import (
	"context"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/ml"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

// ClassReport is precision/recall/F1 for one outcome class.
type ClassReport struct {
	Class     string  `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// PerformanceReport scores the loaded model against the reference dataset.
// ConfusionMatrix is [actual][predicted], indexed 0 then 1.
type PerformanceReport struct {
	Samples         int           `json:"samples"`
	Accuracy        float64       `json:"accuracy"`
	ConfusionMatrix [2][2]int     `json:"confusion_matrix"`
	Classes         []ClassReport `json:"classes"`
}

// PerformanceService evaluates classifier quality on the background
// dataset. The report is informational, it never gates predictions.
type PerformanceService struct {
	classifier ValueClassifier
	dataset    *ml.Dataset
}

func NewPerformanceService(classifier ValueClassifier, dataset *ml.Dataset) *PerformanceService {
	return &PerformanceService{classifier: classifier, dataset: dataset}
}

// Evaluate runs the model across every dataset row and aggregates the
// confusion matrix and derived scores.
func (s *PerformanceService) Evaluate(ctx context.Context) (*PerformanceReport, error) {
	if s.classifier == nil || s.dataset == nil {
		return nil, apperrors.NewModelUnavailableError("model evaluation is unavailable: model or dataset not loaded", nil)
	}
	if len(s.dataset.Rows) == 0 {
		return nil, apperrors.NewPredictionError("reference dataset is empty", nil)
	}

	report := &PerformanceReport{Samples: len(s.dataset.Rows)}
	correct := 0
	for i, row := range s.dataset.Rows {
		predicted, err := s.classifier.PredictForValues(row)
		if err != nil {
			return nil, apperrors.NewPredictionError("classifier failed during evaluation", err)
		}
		actual := s.dataset.Outcomes[i]
		report.ConfusionMatrix[actual][predicted]++
		if predicted == actual {
			correct++
		}
	}
	report.Accuracy = float64(correct) / float64(report.Samples)

	labels := []string{"Negative", "Positive"}
	for class := 0; class < 2; class++ {
		tp := report.ConfusionMatrix[class][class]
		fp := report.ConfusionMatrix[1-class][class]
		fn := report.ConfusionMatrix[class][1-class]
		report.Classes = append(report.Classes, ClassReport{
			Class:     labels[class],
			Precision: safeRatio(tp, tp+fp),
			Recall:    safeRatio(tp, tp+fn),
			F1:        f1Score(tp, fp, fn),
			Support:   tp + fn,
		})
	}
	return report, nil
}

func safeRatio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func f1Score(tp, fp, fn int) float64 {
	precision := safeRatio(tp, tp+fp)
	recall := safeRatio(tp, tp+fn)
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
