package entities

import (
	"time"
)

// MealTime identifies which meal of the day an entry belongs to.
type MealTime string

const (
	MealTimeBreakfast MealTime = "breakfast"
	MealTimeLunch     MealTime = "lunch"
	MealTimeDinner    MealTime = "dinner"
	MealTimeSnack     MealTime = "snack"
)

// ValidMealTime reports whether t is one of the known meal times.
func ValidMealTime(t MealTime) bool {
	switch t {
	case MealTimeBreakfast, MealTimeLunch, MealTimeDinner, MealTimeSnack:
		return true
	}
	return false
}

// GIClass buckets a glycemic index value.
type GIClass string

const (
	GIClassLow     GIClass = "Low"
	GIClassMedium  GIClass = "Medium"
	GIClassHigh    GIClass = "High"
	GIClassUnknown GIClass = "Unknown"
)

// ClassifyGI buckets a glycemic index: below 55 Low, below 70 Medium,
// otherwise High.
func ClassifyGI(gi float64) GIClass {
	switch {
	case gi <= 0:
		return GIClassUnknown
	case gi < 55:
		return GIClassLow
	case gi < 70:
		return GIClassMedium
	default:
		return GIClassHigh
	}
}

// MealEntry is one logged meal for a user.
type MealEntry struct {
	ID            string    `json:"id" db:"id"`
	UserEmail     string    `json:"user_email" db:"user_email"`
	Food          string    `json:"food" db:"food"`
	Calories      float64   `json:"calories" db:"calories"`
	MealTime      MealTime  `json:"meal_time" db:"meal_time"`
	GlycemicIndex *float64  `json:"glycemic_index,omitempty" db:"glycemic_index"`
	GIClass       GIClass   `json:"gi_class" db:"gi_class"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
}

// FoodItem is one entry in the searchable food index.
type FoodItem struct {
	Name          string   `json:"name"`
	Calories      float64  `json:"calories"`
	GlycemicIndex *float64 `json:"glycemic_index,omitempty"`
}

// NutritionFacts is the per-food lookup result, per 100g serving.
type NutritionFacts struct {
	Food     string  `json:"food"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Source   string  `json:"source"`
}

// DailySummary aggregates one day of meals against the calorie goal.
type DailySummary struct {
	Date       string               `json:"date"`
	Goal       float64              `json:"goal"`
	Consumed   float64              `json:"consumed"`
	Remaining  float64              `json:"remaining"`
	ByMealTime map[MealTime]float64 `json:"by_meal_time"`
	Entries    []*MealEntry         `json:"entries"`
}
