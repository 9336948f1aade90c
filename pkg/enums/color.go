package enums

import "fmt"

// VariantColor enumerates the colors offered for colored garment variants.
type VariantColor string

const (
	VariantColorRed   VariantColor = "red"
	VariantColorGreen VariantColor = "green"
	VariantColorBlue  VariantColor = "blue"
)

var validVariantColors = []VariantColor{
	VariantColorRed,
	VariantColorGreen,
	VariantColorBlue,
}

// String implements fmt.Stringer.
func (c VariantColor) String() string {
	return string(c)
}

// IsValid reports whether the color is recognized.
func (c VariantColor) IsValid() bool {
	for _, candidate := range validVariantColors {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseVariantColor converts a raw string into a VariantColor.
func ParseVariantColor(value string) (VariantColor, error) {
	for _, candidate := range validVariantColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid variant color %q", value)
}
