package entities

import (
	"time"
)

// ExerciseSession is one estimated workout with its calorie burn.
type ExerciseSession struct {
	ID              string    `json:"id" db:"id"`
	UserEmail       string    `json:"user_email" db:"user_email"`
	ExerciseType    string    `json:"exercise_type" db:"exercise_type"`
	DurationMinutes float64   `json:"duration_minutes" db:"duration_minutes"`
	HeartRate       float64   `json:"heart_rate" db:"heart_rate"`
	WeightKg        float64   `json:"weight_kg" db:"weight_kg"`
	Calories        float64   `json:"calories" db:"calories"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
}

// GoalKind distinguishes the per-user daily goals the trackers keep.
type GoalKind string

const (
	GoalKindDietCalories     GoalKind = "diet_calories"
	GoalKindExerciseCalories GoalKind = "exercise_calories"
)
