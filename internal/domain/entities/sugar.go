package entities

import (
	"time"
)

// SugarContext records when a blood-sugar reading was taken.
type SugarContext string

const (
	SugarContextFasting  SugarContext = "fasting"
	SugarContextPostMeal SugarContext = "post_meal"
	SugarContextBedtime  SugarContext = "bedtime"
	SugarContextRandom   SugarContext = "random"
)

// ValidSugarContext reports whether c is one of the known reading contexts.
func ValidSugarContext(c SugarContext) bool {
	switch c {
	case SugarContextFasting, SugarContextPostMeal, SugarContextBedtime, SugarContextRandom:
		return true
	}
	return false
}

// SugarReading is one logged blood-sugar measurement in mg/dL.
type SugarReading struct {
	ID        string       `json:"id" db:"id"`
	UserEmail string       `json:"user_email" db:"user_email"`
	Level     float64      `json:"sugar_level" db:"sugar_level"`
	Context   SugarContext `json:"context" db:"context"`
	Note      string       `json:"note,omitempty" db:"note"`
	Timestamp time.Time    `json:"timestamp" db:"timestamp"`
}

// SugarEvent classifies the change between consecutive readings.
type SugarEvent string

const (
	SugarEventFirstReading SugarEvent = "first_reading"
	SugarEventSpike        SugarEvent = "spike"
	SugarEventDownfall     SugarEvent = "downfall"
	SugarEventStable       SugarEvent = "stable"
)

// SugarTrend summarizes readings over a trailing window.
type SugarTrend struct {
	Days            int     `json:"days"`
	Count           int     `json:"count"`
	Mean            float64 `json:"mean"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	InRangeFraction float64 `json:"in_range_fraction"`
}

// SugarAnalysis is the result of analyzing a user's latest reading.
type SugarAnalysis struct {
	Event       SugarEvent    `json:"event"`
	Delta       float64       `json:"delta"`
	Latest      *SugarReading `json:"latest,omitempty"`
	RecentFoods []*MealEntry  `json:"recent_foods"`
	Trend       *SugarTrend   `json:"trend,omitempty"`
}
