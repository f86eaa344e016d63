package patient

import "testing"

func TestEstimateGrowth_Infant(t *testing.T) {
	got := EstimateGrowth(0, GenderMale)
	if got.HeightCm != 60 || got.WeightKg != 6 {
		t.Errorf("expected {60 6}, got %+v", got)
	}
	if got := EstimateGrowth(-1, GenderFemale); got.HeightCm != 50 || got.WeightKg != 3 {
		t.Errorf("expected {50 3} for negative age, got %+v", got)
	}
}

func TestEstimateGrowth_Child(t *testing.T) {
	tests := []struct {
		age    float64
		height int
		weight int
	}{
		{1, 75, 9},
		{5, 102, 21},
		{12, 150, 42},
	}
	for _, tt := range tests {
		got := EstimateGrowth(tt.age, GenderMale)
		if got.HeightCm != tt.height || got.WeightKg != tt.weight {
			t.Errorf("age %.0f: expected {%d %d}, got %+v", tt.age, tt.height, tt.weight, got)
		}
	}
	// Child curve ignores gender.
	if m, f := EstimateGrowth(8, GenderMale), EstimateGrowth(8, GenderFemale); m != f {
		t.Errorf("child estimates should not depend on gender: %+v vs %+v", m, f)
	}
}

func TestEstimateGrowth_Teen(t *testing.T) {
	got := EstimateGrowth(15, GenderMale)
	if got.HeightCm != 161 || got.WeightKg != 54 {
		t.Errorf("male 15: expected {161 54}, got %+v", got)
	}
	got = EstimateGrowth(15, GenderFemale)
	if got.HeightCm != 154 || got.WeightKg != 48 {
		t.Errorf("female 15: expected {154 48}, got %+v", got)
	}
}

// The male teen weight cap (65) holds through age 18 exactly; the adult
// reference weight (68) applies only past 18.
func TestEstimateGrowth_AdultCapBoundary(t *testing.T) {
	at18 := EstimateGrowth(18, GenderMale)
	if at18.HeightCm != 171 || at18.WeightKg != 65 {
		t.Errorf("male 18: expected {171 65}, got %+v", at18)
	}
	past18 := EstimateGrowth(18.5, GenderMale)
	if past18.HeightCm != 171 || past18.WeightKg != 68 {
		t.Errorf("male 18.5: expected {171 68}, got %+v", past18)
	}
	if got := EstimateGrowth(40, GenderMale); got.HeightCm != 171 || got.WeightKg != 68 {
		t.Errorf("male adult: expected {171 68}, got %+v", got)
	}
	if got := EstimateGrowth(40, GenderFemale); got.HeightCm != 158 || got.WeightKg != 53 {
		t.Errorf("female adult: expected {158 53}, got %+v", got)
	}
}
