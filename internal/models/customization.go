package models

// Customization captures the answers collected by the custom-program intake
// wizard. Which fields are required depends on the delivery type and program
// category chosen in the first two steps.
type Customization struct {
	DeliveryType    string `json:"delivery_type"`
	ProgramCategory string `json:"program_category"`

	Age             string `json:"age"`
	HeightCM        string `json:"height_cm"`
	WeightKG        string `json:"weight_kg"`
	SessionsPerWeek string `json:"sessions_per_week"`
	PreferredDays   string `json:"preferred_days"`
	PreferredTime   string `json:"preferred_time"`

	// Sport-performance track.
	Sport            string   `json:"sport,omitempty"`
	PerformanceGoals []string `json:"performance_goals,omitempty"`

	// Fitness-wellness track.
	HealthHistory string   `json:"health_history,omitempty"`
	FitnessGoals  []string `json:"fitness_goals,omitempty"`

	// Collected only for online delivery.
	EquipmentAccess string   `json:"equipment_access,omitempty"`
	EquipmentList   []string `json:"equipment_list,omitempty"`
}

// TotalSteps returns how many wizard steps apply to the current choices.
// Before both the delivery type and category are picked only the two choice
// steps exist; in-person programs skip the equipment step.
func (c *Customization) TotalSteps() int {
	if c.DeliveryType == "" || c.ProgramCategory == "" {
		return 2
	}
	if c.DeliveryType == DeliveryOnline {
		return 5
	}
	return 4
}
