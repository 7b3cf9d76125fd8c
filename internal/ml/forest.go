package ml

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
)

// Node is one decision node. Left == -1 marks a leaf, in which case Value
// holds the class weights recorded at training time.
type Node struct {
	Feature   int        `json:"feature"`
	Threshold float64    `json:"threshold"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
	Value     [2]float64 `json:"value"`
}

// Tree is one member of the ensemble.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is the trained binary classifier, exported to JSON by the offline
// training script. Read-only after Load; shared process-wide.
type Forest struct {
	ModelVersion string   `json:"model_version"`
	Features     []string `json:"features"`
	Threshold    float64  `json:"threshold"`
	Trees        []Tree   `json:"trees"`
}

// Load reads and validates the classifier artifact. The recorded feature
// order must equal the canonical training order; a reordered artifact is
// rejected rather than silently mis-scored.
func Load(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model artifact missing: %w", err)
	}

	var forest Forest
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("model artifact corrupt: %w", err)
	}

	if err := forest.validate(); err != nil {
		return nil, fmt.Errorf("model artifact invalid: %w", err)
	}

	return &forest, nil
}

func (f *Forest) validate() error {
	if len(f.Features) != len(entities.FeatureNames) {
		return fmt.Errorf("artifact records %d features, expected %d", len(f.Features), len(entities.FeatureNames))
	}
	for i, name := range entities.FeatureNames {
		if f.Features[i] != name {
			return fmt.Errorf("artifact feature order mismatch at %d: %q, expected %q", i, f.Features[i], name)
		}
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Left == -1 {
				if node.Value[0]+node.Value[1] <= 0 {
					return fmt.Errorf("tree %d leaf %d has empty class weights", ti, ni)
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= len(f.Features) {
				return fmt.Errorf("tree %d node %d references feature %d", ti, ni, node.Feature)
			}
			if node.Left < 0 || node.Left >= len(tree.Nodes) || node.Right < 0 || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
			}
		}
	}
	if f.Threshold <= 0 || f.Threshold >= 1 {
		f.Threshold = 0.5
	}
	return nil
}

// FeatureOrder returns the artifact's recorded feature order.
func (f *Forest) FeatureOrder() []string {
	order := make([]string, len(f.Features))
	copy(order, f.Features)
	return order
}

// PredictProba returns P(positive) for the vector, aligning features by name.
func (f *Forest) PredictProba(vector *entities.FeatureVector) (float64, error) {
	values, err := vector.Aligned(f.Features)
	if err != nil {
		return 0, err
	}
	return f.ProbaForValues(values)
}

// Predict returns the 0/1 outcome for the vector. Consistent with
// PredictProba by construction: 1 iff the probability reaches the threshold.
func (f *Forest) Predict(vector *entities.FeatureVector) (int, error) {
	proba, err := f.PredictProba(vector)
	if err != nil {
		return 0, err
	}
	if proba >= f.Threshold {
		return 1, nil
	}
	return 0, nil
}

// ProbaForValues scores a raw value slice already in training order.
func (f *Forest) ProbaForValues(values []float64) (float64, error) {
	if len(values) != len(f.Features) {
		return 0, fmt.Errorf("got %d values, expected %d", len(values), len(f.Features))
	}

	var sum float64
	for i := range f.Trees {
		p, err := f.Trees[i].proba(values)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += p
	}
	return sum / float64(len(f.Trees)), nil
}

// PredictForValues returns the 0/1 outcome for a raw value slice.
func (f *Forest) PredictForValues(values []float64) (int, error) {
	proba, err := f.ProbaForValues(values)
	if err != nil {
		return 0, err
	}
	if proba >= f.Threshold {
		return 1, nil
	}
	return 0, nil
}

func (t *Tree) proba(values []float64) (float64, error) {
	idx := 0
	// Depth is bounded by node count; a longer walk means a cycle.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := t.Nodes[idx]
		if node.Left == -1 {
			return node.Value[1] / (node.Value[0] + node.Value[1]), nil
		}
		if values[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
	return 0, fmt.Errorf("cyclic node structure")
}
