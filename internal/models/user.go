package models

import "time"

const (
	RoleAthlete = "athlete"
	RoleCoach   = "coach"
	RoleAdmin   = "admin"
)

type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"`
	FullName        string    `json:"full_name"`
	PhoneNumber     *string   `json:"phone_number"`
	Role            string    `json:"role"`
	AssignedCoachID *int64    `json:"assigned_coach_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AthleteSummary struct {
	User
	Enrollments []EnrollmentSummary `json:"enrollments"`
}

type EnrollmentSummary struct {
	EnrollmentID int64     `json:"enrollment_id"`
	ProgramID    string    `json:"program_id"`
	ProgramName  string    `json:"program_name"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}
