package payroll

import "math"

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusProcessed = "PROCESSED"
	StatusPaid      = "PAID"
	StatusRejected  = "REJECTED"
)

// Salary structure ratios over the monthly CTC.
const (
	basicRatio          = 0.40
	otherAllowanceRatio = 0.15
)

// Statutory rates. Illustrative constants, not a tax-compliance engine.
const (
	dearnessAllowanceRate = 0.25
	hraMetroRate          = 0.50
	hraNonMetroRate       = 0.40

	pfRate = 0.12 // both employee and employer share, on basic + DA

	esiGrossCeiling  = 21000.0
	esiEmployeeRate  = 0.0075
	esiEmployerRate  = 0.0325

	lopMonthDivisor = 30.0 // flat divisor regardless of calendar length
)

var metroCities = map[string]struct{}{
	"mumbai":    {},
	"delhi":     {},
	"kolkata":   {},
	"chennai":   {},
	"bangalore": {},
	"bengaluru": {},
	"hyderabad": {},
	"pune":      {},
}

type taxSlab struct {
	MinGross float64
	MaxGross float64
	Amount   float64
}

type stateTax struct {
	State    string
	Keywords []string
	Slabs    []taxSlab
}

// professionalTaxTable is matched top-down by case-insensitive city keyword;
// defaultTaxState applies when no keyword matches the employee location.
var professionalTaxTable = []stateTax{
	{
		State:    "maharashtra",
		Keywords: []string{"mumbai", "pune", "nagpur", "nashik", "thane"},
		Slabs: []taxSlab{
			{0, 7500, 0},
			{7501, 10000, 175},
			{10001, math.MaxFloat64, 200},
		},
	},
	{
		State:    "karnataka",
		Keywords: []string{"bangalore", "bengaluru", "mysore", "mysuru"},
		Slabs: []taxSlab{
			{0, 14999, 0},
			{15000, math.MaxFloat64, 200},
		},
	},
	{
		State:    "west bengal",
		Keywords: []string{"kolkata", "howrah", "durgapur"},
		Slabs: []taxSlab{
			{0, 10000, 0},
			{10001, 15000, 110},
			{15001, 25000, 130},
			{25001, 40000, 150},
			{40001, math.MaxFloat64, 200},
		},
	},
	{
		State:    "tamil nadu",
		Keywords: []string{"chennai", "coimbatore", "madurai"},
		Slabs: []taxSlab{
			{0, 21000, 0},
			{21001, 30000, 135},
			{30001, 45000, 315},
			{45001, 60000, 690},
			{60001, 75000, 1025},
			{75001, math.MaxFloat64, 1250},
		},
	},
	{
		State:    "telangana",
		Keywords: []string{"hyderabad", "warangal", "secunderabad"},
		Slabs: []taxSlab{
			{0, 15000, 0},
			{15001, 20000, 150},
			{20001, math.MaxFloat64, 200},
		},
	},
}

const defaultTaxState = "karnataka"

type incomeTaxSlab struct {
	UpTo float64 // annual taxable income upper bound, inclusive
	Rate float64 // marginal rate applied inside the slab
}

// Simplified progressive withholding on annualized gross. The boundaries are
// fixed constants; real slab maintenance is out of scope.
var incomeTaxSlabs = []incomeTaxSlab{
	{250000, 0},
	{500000, 0.05},
	{1000000, 0.20},
	{math.MaxFloat64, 0.30},
}
