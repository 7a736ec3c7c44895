package domain

// TaxDisplayMode determines whether reported monetary amounts are
// tax-inclusive or tax-exclusive. One dispatch run never mixes modes: line
// item prices and the shipping amount always resolve under the same mode.
type TaxDisplayMode string

const (
	// TaxDisplayIncluding reports tax-inclusive prices and shipping.
	TaxDisplayIncluding TaxDisplayMode = "including_tax"
	// TaxDisplayExcluding reports tax-exclusive prices and shipping.
	TaxDisplayExcluding TaxDisplayMode = "excluding_tax"
)

// ParseTaxDisplayMode maps a configuration value to a TaxDisplayMode.
// Unknown values fall back to tax-inclusive reporting.
func ParseTaxDisplayMode(value string) TaxDisplayMode {
	if value == string(TaxDisplayExcluding) {
		return TaxDisplayExcluding
	}
	return TaxDisplayIncluding
}
