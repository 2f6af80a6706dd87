package service

import "fmt"

// Policy holds the tunable constants of the calculation engine.
type Policy struct {
	// FlatHourlyRate prices every staff hour in utilization, placement and
	// stacking estimates. It is not derived from contract rates.
	FlatHourlyRate float64
	WeeksPerYear   float64
	// BillingWeeks approximates a billing cycle when turning weekly hours
	// into an expected amount.
	BillingWeeks float64

	HighEfficiencyMinResidents   int
	HighEfficiencyMinSharedHours float64
	HighEfficiencyBaseScore      float64
	HighEfficiencyPerResident    float64
	MediumEfficiencyScore        float64
	LowEfficiencyScore           float64

	VacancyWeight          float64
	SynergyPerResident     float64
	SynergyCap             float64
	RegionMatchBonus       float64
	AuthorityMatchBonus    float64
	HighlyRecommendedScore float64
	SuitableScore          float64
	PlacementSavingsFactor float64

	// StackingFactor is the share of shared hours still staffed once
	// residents are stacked; StackingFloorHours is the weekly minimum.
	StackingFactor     float64
	StackingFloorHours float64
}

func DefaultPolicy() Policy {
	return Policy{
		FlatHourlyRate: 18,
		WeeksPerYear:   52,
		BillingWeeks:   4,

		HighEfficiencyMinResidents:   3,
		HighEfficiencyMinSharedHours: 80,
		HighEfficiencyBaseScore:      85,
		HighEfficiencyPerResident:    3,
		MediumEfficiencyScore:        60,
		LowEfficiencyScore:           30,

		VacancyWeight:          30,
		SynergyPerResident:     10,
		SynergyCap:             40,
		RegionMatchBonus:       20,
		AuthorityMatchBonus:    10,
		HighlyRecommendedScore: 70,
		SuitableScore:          40,
		PlacementSavingsFactor: 0.3,

		StackingFactor:     0.3,
		StackingFloorHours: 40,
	}
}

func (p Policy) Validate() error {
	if p.FlatHourlyRate < 0 {
		return fmt.Errorf("flat hourly rate must be non-negative")
	}
	if p.WeeksPerYear <= 0 || p.BillingWeeks <= 0 {
		return fmt.Errorf("weeks per year and billing weeks must be positive")
	}
	if p.StackingFactor < 0 || p.StackingFactor > 1 {
		return fmt.Errorf("stacking factor must be between 0 and 1")
	}
	if p.PlacementSavingsFactor < 0 || p.PlacementSavingsFactor > 1 {
		return fmt.Errorf("placement savings factor must be between 0 and 1")
	}
	if p.StackingFloorHours < 0 {
		return fmt.Errorf("stacking floor must be non-negative")
	}
	if p.SuitableScore > p.HighlyRecommendedScore {
		return fmt.Errorf("suitable score band must not exceed highly recommended band")
	}
	return nil
}
