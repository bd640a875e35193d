// Package sleepcycle turns a biometric profile into sleep parameters and
// ranks candidate sleep windows built from whole sleep cycles.
//
// Everything here is a pure function of its arguments and is safe to call
// concurrently.
package sleepcycle

import "github.com/blaisecz/sleep-cycles/internal/domain"

// Latency heuristic, in minutes.
const (
	BaseLatencyMinutes = 15
	MinLatencyMinutes  = 5
)

// CalculateBMI returns weight / height² in kg/m². A zero height yields 0.
func CalculateBMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	if h == 0 {
		return 0
	}
	return weightKg / (h * h)
}

// CategorizeBMI maps a BMI value onto its band. Lower bounds are inclusive.
func CategorizeBMI(bmi float64) domain.BMICategory {
	if bmi < 18.5 {
		return domain.BMIUnderweight
	}
	if bmi < 25 {
		return domain.BMINormal
	}
	if bmi < 30 {
		return domain.BMIOverweight
	}
	return domain.BMIObese
}

// AdjustedCycleMinutes returns the sleep cycle length for an age in years.
func AdjustedCycleMinutes(age int) int {
	if age < 1 {
		return 50
	}
	if age <= 18 {
		return 95
	}
	if age <= 60 {
		return 90
	}
	return 85
}

// LatencyMinutes estimates how long it takes to fall asleep.
func LatencyMinutes(age int, gender domain.Gender) int {
	latency := BaseLatencyMinutes

	if age < 18 {
		latency -= 2
	}
	if age >= 60 {
		latency += 5
	}
	if gender == domain.GenderFemale {
		latency += 2
	}

	return max(MinLatencyMinutes, latency)
}

// BaseSleepEfficiency returns the age-based fraction of time in bed spent asleep.
func BaseSleepEfficiency(age int) float64 {
	if age < 18 {
		return 0.9
	}
	if age <= 40 {
		return 0.88
	}
	if age <= 60 {
		return 0.86
	}
	return 0.82
}

// AdjustEfficiencyForBMI lowers the base efficiency for overweight and obese BMIs.
func AdjustEfficiencyForBMI(base, bmi float64) float64 {
	if bmi < 25 {
		return base
	}
	if bmi < 30 {
		return base - 0.03
	}
	return base - 0.06
}

// BuildDerivedProfile computes all derived parameters for a profile.
func BuildDerivedProfile(p domain.SleepProfile) domain.DerivedProfile {
	bmi := CalculateBMI(p.WeightKg, p.HeightCm)

	return domain.DerivedProfile{
		BMI:                  bmi,
		BMICategory:          CategorizeBMI(bmi),
		AdjustedCycleMinutes: AdjustedCycleMinutes(p.Age),
		SleepEfficiency:      AdjustEfficiencyForBMI(BaseSleepEfficiency(p.Age), bmi),
		LatencyMinutes:       LatencyMinutes(p.Age, p.Gender),
	}
}
