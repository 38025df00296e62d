package loan

import (
	loanerrors "github.com/KhushalYadav535/hrmsbackend-sub000/internal/loan/errors"

	"github.com/shopspring/decimal"
)

// EmiPeriod is one row of a repayment schedule. Balance is the outstanding
// principal after this installment has been paid.
type EmiPeriod struct {
	Sequence    int
	Installment decimal.Decimal
	Principal   decimal.Decimal
	Interest    decimal.Decimal
	Balance     decimal.Decimal
}

type EmiResult struct {
	Installment   decimal.Decimal
	TotalAmount   decimal.Decimal
	TotalInterest decimal.Decimal
	Schedule      []EmiPeriod
}

// CalculateEMI produces a fixed-installment schedule for the given principal,
// annual rate (percent) and tenor in months. The final installment absorbs
// cumulative rounding drift so the outstanding balance ends at exactly zero.
func CalculateEMI(principal decimal.Decimal, annualRate float64, tenorMonths int) (EmiResult, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return EmiResult{}, loanerrors.ErrInvalidAmount
	}
	if tenorMonths < 1 {
		return EmiResult{}, loanerrors.ErrInvalidTenor
	}
	if annualRate < 0 || annualRate > 100 {
		return EmiResult{}, loanerrors.ErrInvalidRate
	}

	if annualRate == 0 {
		return interestFreeSchedule(principal, tenorMonths), nil
	}

	one := decimal.NewFromInt(1)
	monthlyRate := decimal.NewFromFloat(annualRate).
		Div(decimal.NewFromInt(12)).
		Div(decimal.NewFromInt(100))

	// installment = P * m * (1+m)^n / ((1+m)^n - 1)
	factor := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(tenorMonths)))
	installment := principal.Mul(monthlyRate).Mul(factor).
		Div(factor.Sub(one)).
		Round(2)

	schedule := make([]EmiPeriod, 0, tenorMonths)
	balance := principal
	totalAmount := decimal.Zero
	totalInterest := decimal.Zero

	for seq := 1; seq <= tenorMonths; seq++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPart := installment.Sub(interest)
		due := installment

		if seq == tenorMonths {
			principalPart = balance
			due = principalPart.Add(interest)
		}

		balance = balance.Sub(principalPart)
		totalAmount = totalAmount.Add(due)
		totalInterest = totalInterest.Add(interest)

		schedule = append(schedule, EmiPeriod{
			Sequence:    seq,
			Installment: due,
			Principal:   principalPart,
			Interest:    interest,
			Balance:     balance,
		})
	}

	return EmiResult{
		Installment:   installment,
		TotalAmount:   totalAmount,
		TotalInterest: totalInterest,
		Schedule:      schedule,
	}, nil
}

func interestFreeSchedule(principal decimal.Decimal, tenorMonths int) EmiResult {
	installment := principal.Div(decimal.NewFromInt(int64(tenorMonths))).Round(2)

	schedule := make([]EmiPeriod, 0, tenorMonths)
	balance := principal
	totalAmount := decimal.Zero

	for seq := 1; seq <= tenorMonths; seq++ {
		principalPart := installment
		if seq == tenorMonths {
			// remainder lands on the last installment
			principalPart = balance
		}

		balance = balance.Sub(principalPart)
		totalAmount = totalAmount.Add(principalPart)

		schedule = append(schedule, EmiPeriod{
			Sequence:    seq,
			Installment: principalPart,
			Principal:   principalPart,
			Interest:    decimal.Zero,
			Balance:     balance,
		})
	}

	return EmiResult{
		Installment:   installment,
		TotalAmount:   totalAmount,
		TotalInterest: decimal.Zero,
		Schedule:      schedule,
	}
}
