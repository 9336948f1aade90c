package enums

import "fmt"

// QuantityMode selects which quantity figure drives tier lookup for a product.
// In per-variant mode the unit price depends on the quantity of the single
// variant being sold; in per-product mode callers aggregate the quantity of
// every variant of the product before asking for a price.
type QuantityMode string

const (
	QuantityModePerProduct QuantityMode = "per_product"
	QuantityModePerVariant QuantityMode = "per_variant"
)

var validQuantityModes = []QuantityMode{
	QuantityModePerProduct,
	QuantityModePerVariant,
}

// String implements fmt.Stringer.
func (m QuantityMode) String() string {
	return string(m)
}

// IsValid reports whether the mode is recognized.
func (m QuantityMode) IsValid() bool {
	for _, candidate := range validQuantityModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseQuantityMode converts a raw string into a QuantityMode.
func ParseQuantityMode(value string) (QuantityMode, error) {
	for _, candidate := range validQuantityModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quantity mode %q", value)
}
