package services

import (
	"testing"

	"github.com/peakform/AthleteHubBack/internal/models"
)

func TestTotalStepsDependsOnChoices(t *testing.T) {
	cases := []struct {
		name     string
		delivery string
		category string
		want     int
	}{
		{"no choices yet", "", "", 2},
		{"only delivery picked", models.DeliveryOnline, "", 2},
		{"online program", models.DeliveryOnline, models.CategorySportPerformance, 5},
		{"in-person program", models.DeliveryInPerson, models.CategoryFitnessWellness, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &models.Customization{DeliveryType: tc.delivery, ProgramCategory: tc.category}
			if got := c.TotalSteps(); got != tc.want {
				t.Fatalf("TotalSteps() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDemographicsStepRequiresAllThreeFields(t *testing.T) {
	c := &models.Customization{
		DeliveryType:    models.DeliveryOnline,
		ProgramCategory: models.CategoryFitnessWellness,
		Age:             "29",
		HeightCM:        "181",
	}

	if msg := ValidateWizardStep(c, 3); msg == "" {
		t.Fatal("expected step 3 guard to reject missing weight")
	}

	c.WeightKG = "74"
	if msg := ValidateWizardStep(c, 3); msg != "" {
		t.Fatalf("expected step 3 guard to pass, got %q", msg)
	}
}

func TestGoalsStepFollowsCategory(t *testing.T) {
	c := &models.Customization{
		DeliveryType:    models.DeliveryInPerson,
		ProgramCategory: models.CategorySportPerformance,
		Sport:           "rowing",
	}
	if msg := ValidateWizardStep(c, 4); msg == "" {
		t.Fatal("expected guard to require performance goals")
	}

	c.PerformanceGoals = []string{"endurance"}
	if msg := ValidateWizardStep(c, 4); msg != "" {
		t.Fatalf("expected guard to pass, got %q", msg)
	}

	// Blank entries do not count toward the minimum.
	c.PerformanceGoals = []string{"  ", ""}
	if msg := ValidateWizardStep(c, 4); msg == "" {
		t.Fatal("expected guard to reject blank-only goals")
	}
}

func TestValidateCustomizationRunsApplicableGuards(t *testing.T) {
	if msg := ValidateCustomization(nil); msg == "" {
		t.Fatal("expected nil customization to be rejected")
	}
	if msg := ValidateCustomization(&models.Customization{}); msg == "" {
		t.Fatal("expected empty customization to be rejected")
	}

	inPerson := &models.Customization{
		DeliveryType:    models.DeliveryInPerson,
		ProgramCategory: models.CategoryFitnessWellness,
		Age:             "31",
		HeightCM:        "168",
		WeightKG:        "59",
		FitnessGoals:    []string{"mobility"},
	}
	if msg := ValidateCustomization(inPerson); msg != "" {
		t.Fatalf("expected in-person customization to pass without equipment, got %q", msg)
	}

	online := *inPerson
	online.DeliveryType = models.DeliveryOnline
	if msg := ValidateCustomization(&online); msg == "" {
		t.Fatal("expected online customization to require equipment access")
	}

	online.EquipmentAccess = "full gym"
	if msg := ValidateCustomization(&online); msg != "" {
		t.Fatalf("expected online customization to pass, got %q", msg)
	}
}
