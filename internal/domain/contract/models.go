package contract

import (
	"slices"
	"strings"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/validate"
)

// Statuses lists the accepted contract statuses in workflow order.
var Statuses = []string{model.ContractSent, model.ContractPending, model.ContractAccepted, model.ContractRejected}

// checkStatus accepts a blank status, which callers treat as unset.
func checkStatus(v *validate.Validator, status string) {
	if status == "" || slices.Contains(Statuses, status) {
		return
	}
	v.Add("status", "must be one of "+strings.Join(Statuses, ", "))
}

type Input struct {
	DealID           int64   `json:"deal_id" validate:"gt=0"`
	Details          string  `json:"details"`
	Payment          float64 `json:"payment" validate:"gte=0"`
	AgencyPercentage float64 `json:"agency_percentage" validate:"gte=0,lte=100"`
	StartDate        string  `json:"start_date" validate:"required,date"`
	EndDate          string  `json:"end_date" validate:"omitempty,date"`
	Status           string  `json:"status"`
	IsApproved       bool    `json:"is_approved"`
}

type Patch struct {
	DealID           *int64   `json:"deal_id,omitempty" validate:"omitnil,gt=0"`
	Details          *string  `json:"details,omitempty"`
	Payment          *float64 `json:"payment,omitempty" validate:"omitnil,gte=0"`
	AgencyPercentage *float64 `json:"agency_percentage,omitempty" validate:"omitnil,gte=0,lte=100"`
	StartDate        *string  `json:"start_date,omitempty" validate:"omitnil,date"`
	EndDate          *string  `json:"end_date,omitempty" validate:"omitempty,date"`
	Status           *string  `json:"status,omitempty"`
	IsApproved       *bool    `json:"is_approved,omitempty"`
}

// Summary is a contract joined with the records it hangs off, as shown on
// the exported PDF.
type Summary struct {
	Contract model.Contract
	Deal     model.Deal
	Client   model.Client
	Brand    model.Brand
	Fee      Fee
}
