package payroll

import (
	"math"
	"strings"
)

// The functions in this file are total: they never fail for numeric input.
// Rejecting malformed input (negative pay) happens upstream in the service.

// HouseRentAllowance pays the metro tier when the employee location names a
// metro city, the non-metro tier otherwise.
func HouseRentAllowance(basicPay float64, location string) float64 {
	rate := hraNonMetroRate
	if isMetroCity(location) {
		rate = hraMetroRate
	}
	return math.Round(basicPay * rate)
}

func DearnessAllowance(basicPay float64) float64 {
	return math.Round(basicPay * dearnessAllowanceRate)
}

// ProvidentFund returns the employee and employer shares, both computed on
// basic + DA and rounded to the nearest currency unit.
func ProvidentFund(basicPay, dearnessAllowance float64) (employeeShare, employerShare float64) {
	base := basicPay + dearnessAllowance
	return math.Round(base * pfRate), math.Round(base * pfRate)
}

// StateInsurance applies only while gross pay stays at or under the ESI
// ceiling; above it both shares are zero.
func StateInsurance(grossPay float64) (employeeShare, employerShare float64) {
	if grossPay > esiGrossCeiling {
		return 0, 0
	}
	return math.Round(grossPay * esiEmployeeRate), math.Round(grossPay * esiEmployerRate)
}

// ProfessionalTax selects the state by case-insensitive city keyword match on
// the location, then returns the amount of the first slab containing the
// gross pay. Unknown locations fall back to the default state.
func ProfessionalTax(grossPay float64, location string) float64 {
	state := matchTaxState(location)
	for _, slab := range state.Slabs {
		if grossPay >= slab.MinGross && grossPay <= slab.MaxGross {
			return slab.Amount
		}
	}
	return 0
}

// IncomeTaxWithholding annualizes the monthly gross, runs it through the
// fixed progressive slabs and returns one month's share, rounded.
func IncomeTaxWithholding(monthlyGross float64) float64 {
	annual := monthlyGross * 12

	var tax float64
	lower := 0.0
	for _, slab := range incomeTaxSlabs {
		if annual <= lower {
			break
		}
		taxable := math.Min(annual, slab.UpTo) - lower
		tax += taxable * slab.Rate
		lower = slab.UpTo
	}

	return math.Round(tax / 12)
}

func isMetroCity(location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	for city := range metroCities {
		if strings.Contains(loc, city) {
			return true
		}
	}
	return false
}

func matchTaxState(location string) stateTax {
	loc := strings.ToLower(location)
	for _, state := range professionalTaxTable {
		for _, keyword := range state.Keywords {
			if strings.Contains(loc, keyword) {
				return state
			}
		}
	}
	for _, state := range professionalTaxTable {
		if state.State == defaultTaxState {
			return state
		}
	}
	return stateTax{}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
