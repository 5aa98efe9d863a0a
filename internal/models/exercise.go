package models

import "time"

type Exercise struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	URL         *string   `json:"url"`
	MediaURL    *string   `json:"media_url"`
	MediaType   *string   `json:"media_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type ExerciseAssignment struct {
	ID              int64      `json:"id"`
	ExerciseID      int64      `json:"exercise_id"`
	AthleteID       int64      `json:"athlete_id"`
	AssignedBy      int64      `json:"assigned_by"`
	Sets            int        `json:"sets"`
	Reps            int        `json:"reps"`
	DurationMinutes *int       `json:"duration_minutes"`
	AssignedDate    time.Time  `json:"assigned_date"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type DailyAssignment struct {
	ExerciseAssignment
	Exercise Exercise `json:"exercise"`
}
