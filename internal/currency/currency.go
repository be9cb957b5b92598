package currency

import "math"

// minorUnitExponents lists the ISO 4217 currencies whose exponent is not 2.
// The gateway expects every amount as an integer in the currency's smallest
// denomination, so these must match what it uses for reconciliation.
var minorUnitExponents = map[string]int{
	"BIF": 0,
	"CLP": 0,
	"DJF": 0,
	"GNF": 0,
	"ISK": 0,
	"JPY": 0,
	"KMF": 0,
	"KRW": 0,
	"PYG": 0,
	"RWF": 0,
	"UGX": 0,
	"VND": 0,
	"VUV": 0,
	"XAF": 0,
	"XOF": 0,
	"XPF": 0,

	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"KWD": 3,
	"LYD": 3,
	"OMR": 3,
	"TND": 3,
}

// MinorUnits returns the number of decimal places for the given currency code.
func MinorUnits(code string) int {
	if exp, ok := minorUnitExponents[code]; ok {
		return exp
	}
	return 2
}

// ToMinorUnits converts a decimal amount to an integer amount in minor units.
// Rounding is half-away-from-zero so 12.345 at two decimals becomes 1235 and
// -12.345 becomes -1235.
func ToMinorUnits(amount float64, minorUnits int) int64 {
	return int64(math.Round(amount * math.Pow10(minorUnits)))
}

// ToMajorUnits is the inverse of ToMinorUnits, used when amounts received from
// the gateway are surfaced to humans.
func ToMajorUnits(amount int64, minorUnits int) float64 {
	return float64(amount) / math.Pow10(minorUnits)
}
