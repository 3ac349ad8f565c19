package contract

import (
	"github.com/shopspring/decimal"

	"talentcrm/internal/model"
)

var hundred = decimal.NewFromInt(100)

type Fee struct {
	Payment   decimal.Decimal
	AgencyFee decimal.Decimal
	ClientNet decimal.Decimal
}

// AgencyFee splits the payment into the agency's percentage and the
// remainder, rounded to cents.
func AgencyFee(c model.Contract) Fee {
	payment := decimal.NewFromFloat(c.Payment).Round(2)
	fee := payment.Mul(decimal.NewFromFloat(c.AgencyPercentage)).Div(hundred).Round(2)
	return Fee{
		Payment:   payment,
		AgencyFee: fee,
		ClientNet: payment.Sub(fee),
	}
}

// TotalAgencyFees sums the fees of approved contracts.
func TotalAgencyFees(contracts []model.Contract) decimal.Decimal {
	total := decimal.Zero
	for _, c := range contracts {
		if c.IsApproved {
			total = total.Add(AgencyFee(c).AgencyFee)
		}
	}
	return total
}
