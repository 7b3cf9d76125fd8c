package services

import (
	"context"
	"math"
	"math/bits"
	"math/rand"
	"sort"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
	"github.com/Raksa1108/Diabetes-assistance-app/internal/ml"
	apperrors "github.com/Raksa1108/Diabetes-assistance-app/pkg/errors"
)

const (
	permutationRepeats = 5
	permutationSeed    = 42
)

// ValueClassifier evaluates the model against a raw value slice in the
// canonical feature order. The explanation math needs to probe the model
// at synthetic points, not just at user-submitted inputs.
type ValueClassifier interface {
	ProbaForValues(values []float64) (float64, error)
	PredictForValues(values []float64) (int, error)
}

// FeatureAttribution is one feature's additive contribution to a single
// prediction, relative to the background baseline.
type FeatureAttribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
}

// Explanation is a per-prediction breakdown. Contributions sum to
// Prediction minus Baseline.
type Explanation struct {
	Baseline     float64              `json:"baseline"`
	Prediction   float64              `json:"prediction"`
	Attributions []FeatureAttribution `json:"attributions"`
}

// FeatureImportance is one feature's global importance score.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// ImportanceReport is the model-wide permutation importance ranking.
type ImportanceReport struct {
	BaselineAccuracy float64             `json:"baseline_accuracy"`
	Repeats          int                 `json:"repeats"`
	Features         []FeatureImportance `json:"features"`
}

// ExplanationService computes per-prediction Shapley attributions and
// dataset-wide permutation importance for the loaded classifier.
type ExplanationService struct {
	classifier ValueClassifier
	dataset    *ml.Dataset
	baseline   []float64
}

// NewExplanationService wires the classifier with its background dataset.
// The baseline point is the dataset's per-feature mean; missing features in
// a coalition are imputed from it.
func NewExplanationService(classifier ValueClassifier, dataset *ml.Dataset) *ExplanationService {
	svc := &ExplanationService{
		classifier: classifier,
		dataset:    dataset,
	}
	if dataset != nil {
		svc.baseline = dataset.Means()
	}
	return svc
}

// Available reports whether explanations can be computed.
func (s *ExplanationService) Available() bool {
	return s.classifier != nil && s.dataset != nil
}

// Explain computes exact Shapley attributions for one input by evaluating
// the model over every feature coalition. With eight features that is 256
// model calls, cheap enough to do exactly rather than sampled.
func (s *ExplanationService) Explain(ctx context.Context, input *entities.MedicalInput) (*Explanation, error) {
	if !s.Available() {
		return nil, apperrors.NewModelUnavailableError("explanations are temporarily disabled: model or background data not loaded", nil)
	}
	vector, err := entities.BuildFeatureVector(input)
	if err != nil {
		return nil, err
	}
	values, err := vector.Aligned(entities.FeatureNames)
	if err != nil {
		return nil, apperrors.NewPredictionError("feature alignment failed", err)
	}

	n := len(values)
	total := 1 << n

	// probe[mask] is the model output with masked features taken from the
	// input and the rest imputed from the baseline.
	probe := make([]float64, total)
	point := make([]float64, n)
	for mask := 0; mask < total; mask++ {
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				point[i] = values[i]
			} else {
				point[i] = s.baseline[i]
			}
		}
		p, err := s.classifier.ProbaForValues(point)
		if err != nil {
			return nil, apperrors.NewPredictionError("classifier failed during explanation", err)
		}
		probe[mask] = p
	}

	fact := factorials(n)
	attributions := make([]FeatureAttribution, n)
	for i := 0; i < n; i++ {
		bit := 1 << i
		var contribution float64
		for mask := 0; mask < total; mask++ {
			if mask&bit != 0 {
				continue
			}
			size := bits.OnesCount(uint(mask))
			weight := fact[size] * fact[n-size-1] / fact[n]
			contribution += weight * (probe[mask|bit] - probe[mask])
		}
		attributions[i] = FeatureAttribution{
			Feature:      entities.FeatureNames[i],
			Value:        values[i],
			Contribution: contribution,
		}
	}

	sort.SliceStable(attributions, func(a, b int) bool {
		return math.Abs(attributions[a].Contribution) > math.Abs(attributions[b].Contribution)
	})

	return &Explanation{
		Baseline:     probe[0],
		Prediction:   probe[total-1],
		Attributions: attributions,
	}, nil
}

// PermutationImportance scores each feature by the accuracy the model
// loses when that feature's column is shuffled across the background
// dataset. Seeded, so repeated calls rank identically.
func (s *ExplanationService) PermutationImportance(ctx context.Context) (*ImportanceReport, error) {
	if !s.Available() {
		return nil, apperrors.NewModelUnavailableError("explanations are temporarily disabled: model or background data not loaded", nil)
	}

	baseline, err := s.datasetAccuracy(s.dataset.Rows)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(permutationSeed))
	rows := s.dataset.Rows
	features := make([]FeatureImportance, len(s.dataset.Names))
	shuffled := make([][]float64, len(rows))
	for i := range shuffled {
		shuffled[i] = make([]float64, len(s.dataset.Names))
	}

	for j, name := range s.dataset.Names {
		var drop float64
		for rep := 0; rep < permutationRepeats; rep++ {
			perm := rng.Perm(len(rows))
			for i, row := range rows {
				copy(shuffled[i], row)
				shuffled[i][j] = rows[perm[i]][j]
			}
			acc, err := s.datasetAccuracy(shuffled)
			if err != nil {
				return nil, err
			}
			drop += baseline - acc
		}
		features[j] = FeatureImportance{
			Feature:    name,
			Importance: drop / permutationRepeats,
		}
	}

	sort.SliceStable(features, func(a, b int) bool {
		return features[a].Importance > features[b].Importance
	})

	return &ImportanceReport{
		BaselineAccuracy: baseline,
		Repeats:          permutationRepeats,
		Features:         features,
	}, nil
}

func (s *ExplanationService) datasetAccuracy(rows [][]float64) (float64, error) {
	if len(rows) == 0 {
		return 0, apperrors.NewPredictionError("background dataset is empty", nil)
	}
	correct := 0
	for i, row := range rows {
		code, err := s.classifier.PredictForValues(row)
		if err != nil {
			return 0, apperrors.NewPredictionError("classifier failed during importance scoring", err)
		}
		if code == s.dataset.Outcomes[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows)), nil
}

func factorials(n int) []float64 {
	fact := make([]float64, n+1)
	fact[0] = 1
	for i := 1; i <= n; i++ {
		fact[i] = fact[i-1] * float64(i)
	}
	return fact
}
