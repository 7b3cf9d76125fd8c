package ml

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/Raksa1108/Diabetes-assistance-app/internal/domain/entities"
)

// Dataset is the background sample the explainer and the performance
// metrics score against. Feature columns are in training order.
type Dataset struct {
	Names    []string
	Rows     [][]float64
	Outcomes []int
}

// LoadDataset reads the background CSV. The header must be the eight
// canonical feature names followed by Outcome.
func LoadDataset(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("background dataset missing: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("background dataset unreadable: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("background dataset has no rows")
	}

	header := records[0]
	want := append(append([]string{}, entities.FeatureNames...), "Outcome")
	if len(header) != len(want) {
		return nil, fmt.Errorf("background dataset has %d columns, expected %d", len(header), len(want))
	}
	for i, name := range want {
		if header[i] != name {
			return nil, fmt.Errorf("background dataset column %d is %q, expected %q", i, header[i], name)
		}
	}

	nFeatures := len(entities.FeatureNames)
	ds := &Dataset{
		Names:    entities.FeatureNames,
		Rows:     make([][]float64, 0, len(records)-1),
		Outcomes: make([]int, 0, len(records)-1),
	}

	for line, record := range records[1:] {
		row := make([]float64, nFeatures)
		for i := 0; i < nFeatures; i++ {
			value, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("background dataset row %d column %s: %w", line+2, header[i], err)
			}
			row[i] = value
		}
		outcome, err := strconv.Atoi(record[nFeatures])
		if err != nil {
			return nil, fmt.Errorf("background dataset row %d outcome: %w", line+2, err)
		}
		if outcome != 0 && outcome != 1 {
			return nil, fmt.Errorf("background dataset row %d outcome %d out of range", line+2, outcome)
		}
		ds.Rows = append(ds.Rows, row)
		ds.Outcomes = append(ds.Outcomes, outcome)
	}

	return ds, nil
}

// Means returns the per-feature column means, the explainer's baseline.
func (d *Dataset) Means() []float64 {
	means := make([]float64, len(d.Names))
	if len(d.Rows) == 0 {
		return means
	}
	for _, row := range d.Rows {
		for i, v := range row {
			means[i] += v
		}
	}
	for i := range means {
		means[i] /= float64(len(d.Rows))
	}
	return means
}
