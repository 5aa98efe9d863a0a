package services

import (
	"strings"

	"github.com/peakform/AthleteHubBack/internal/models"
)

// The custom-program wizard walks delivery type, then category, demographics,
// category-specific goals, and (online only) equipment. The same guards the UI
// applies before advancing a step are re-checked here so a client cannot
// submit an incomplete customization straight to the enroll endpoint.

// ValidateWizardStep checks the forward-transition guard for one step and
// returns an empty string when the guard holds.
func ValidateWizardStep(c *models.Customization, step int) string {
	switch step {
	case 1:
		if c.DeliveryType != models.DeliveryOnline && c.DeliveryType != models.DeliveryInPerson {
			return "delivery_type must be one of: online, in-person"
		}
	case 2:
		if c.ProgramCategory != models.CategorySportPerformance &&
			c.ProgramCategory != models.CategoryFitnessWellness {
			return "program_category must be one of: sport-performance, fitness-wellness"
		}
	case 3:
		if strings.TrimSpace(c.Age) == "" {
			return "age is required"
		}
		if strings.TrimSpace(c.HeightCM) == "" {
			return "height_cm is required"
		}
		if strings.TrimSpace(c.WeightKG) == "" {
			return "weight_kg is required"
		}
	case 4:
		if c.ProgramCategory == models.CategorySportPerformance {
			if strings.TrimSpace(c.Sport) == "" {
				return "sport is required"
			}
			if countNonEmpty(c.PerformanceGoals) == 0 {
				return "performance_goals must contain at least one item"
			}
			return ""
		}
		if countNonEmpty(c.FitnessGoals) == 0 {
			return "fitness_goals must contain at least one item"
		}
	case 5:
		if strings.TrimSpace(c.EquipmentAccess) == "" {
			return "equipment_access is required"
		}
	}
	return ""
}

// ValidateCustomization runs every step guard that applies to the chosen
// delivery type and category, in wizard order.
func ValidateCustomization(c *models.Customization) string {
	if c == nil {
		return "customization is required"
	}
	for step := 1; step <= c.TotalSteps(); step++ {
		if msg := ValidateWizardStep(c, step); msg != "" {
			return msg
		}
	}
	// TotalSteps is 2 until both choices are made, so an empty customization
	// still fails on the step 1 guard above.
	return ""
}

func countNonEmpty(values []string) int {
	count := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	return count
}
