package model

import "time"

type RateChangeWorkflow string

const (
	RateChangeAuthority  RateChangeWorkflow = "authority"
	RateChangeLot        RateChangeWorkflow = "lot"
	RateChangeIndividual RateChangeWorkflow = "individual"
)

type RateChangeMethod string

const (
	RateChangePercentage RateChangeMethod = "percentage"
	RateChangeFixed      RateChangeMethod = "fixed"
)

type RateChangeRequest struct {
	Workflow           RateChangeWorkflow `json:"workflow"`
	AuthorityID        string             `json:"authority_id"`
	LotName            string             `json:"lot_name"`
	ContractIDs        []string           `json:"contract_ids"`
	Method             RateChangeMethod   `json:"method"`
	PercentageIncrease float64            `json:"percentage_increase"`
	ApplyToShared      bool               `json:"apply_to_shared"`
	ApplyToOneToOne    bool               `json:"apply_to_one_to_one"`
	ApplyToTwoToOne    bool               `json:"apply_to_two_to_one"`
	ApplyToNight       bool               `json:"apply_to_night"`
	NewSharedRate      float64            `json:"new_shared_rate"`
	NewOneToOneRate    float64            `json:"new_one_to_one_rate"`
	NewTwoToOneRate    float64            `json:"new_two_to_one_rate"`
	NewNightRate       float64            `json:"new_night_rate"`
	EffectiveFrom      time.Time          `json:"effective_from"`
	Reason             string             `json:"reason"`
}

type RateChangePreview struct {
	ContractID      string   `json:"contract_id"`
	ServiceUserName string   `json:"service_user_name"`
	OldSharedRate   float64  `json:"old_shared_rate"`
	NewSharedRate   float64  `json:"new_shared_rate"`
	OldOneToOneRate float64  `json:"old_one_to_one_rate"`
	NewOneToOneRate float64  `json:"new_one_to_one_rate"`
	OldTwoToOneRate float64  `json:"old_two_to_one_rate"`
	NewTwoToOneRate float64  `json:"new_two_to_one_rate"`
	OldNightRate    *float64 `json:"old_night_rate,omitempty"`
	NewNightRate    *float64 `json:"new_night_rate,omitempty"`
	SharedChange    float64  `json:"shared_change"`
	OneToOneChange  float64  `json:"one_to_one_change"`
	TwoToOneChange  float64  `json:"two_to_one_change"`
}
