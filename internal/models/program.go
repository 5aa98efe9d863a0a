package models

import "time"

// CustomProgramID is the program reference used by enrollments created through
// the custom-program wizard instead of a catalog program.
const CustomProgramID = "custom-program"

const (
	DeliveryInPerson = "in-person"
	DeliveryOnline   = "online"

	FormatIndividual = "individual"
	FormatGroup      = "group"

	CategorySportPerformance = "sport-performance"
	CategoryFitnessWellness  = "fitness-wellness"
)

type Program struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Price           float64   `json:"price"`
	Delivery        string    `json:"delivery"`
	Format          string    `json:"format"`
	Category        string    `json:"category"`
	CoachID         *int64    `json:"coach_id"`
	DurationWeeks   *int      `json:"duration_weeks"`
	MaxParticipants *int      `json:"max_participants"`
	ImageURL        *string   `json:"image_url"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Enrollment struct {
	ID            int64          `json:"id"`
	Reference     string         `json:"reference"`
	UserID        int64          `json:"user_id"`
	ProgramID     *int64         `json:"-"`
	ProgramRef    string         `json:"program_id"`
	ProgramName   string         `json:"program_name"`
	Customization *Customization `json:"customization,omitempty"`
	EnrolledAt    time.Time      `json:"enrolled_at"`
}
