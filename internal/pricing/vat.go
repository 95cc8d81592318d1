package pricing

import "math"

// DefaultRate is the VAT rate applied to every stored price.
const DefaultRate = 0.15

// Engine converts between pre-tax and tax-inclusive amounts at a fixed rate.
// The zero value is not usable; construct with New.
type Engine struct {
	rate float64
}

// New returns an Engine for the given fractional rate. Rates outside (0, 1)
// fall back to DefaultRate.
func New(rate float64) Engine {
	if rate <= 0 || rate >= 1 {
		rate = DefaultRate
	}
	return Engine{rate: rate}
}

// Rate reports the fractional VAT rate in effect.
func (e Engine) Rate() float64 {
	return e.rate
}

// VATAmount returns the tax due on a pre-tax amount, rounded for storage.
func (e Engine) VATAmount(amount float64) float64 {
	return Round2(amount * e.rate)
}

// WithVAT converts a pre-tax amount to its tax-inclusive form.
func (e Engine) WithVAT(preTax float64) float64 {
	return Round2(preTax * (1 + e.rate))
}

// WithoutVAT converts a tax-inclusive amount back to its pre-tax form.
func (e Engine) WithoutVAT(withTax float64) float64 {
	return Round2(withTax / (1 + e.rate))
}

// Round2 rounds to 2 decimals using round-half-even. Every monetary value
// passes through this exactly once, at storage time, so repeated
// with-VAT/without-VAT conversions cannot drift.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
