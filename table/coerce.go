package table

import (
	"regexp"
	"strconv"
)

// numericPattern accepts plain integers and decimals. Leading zeros,
// exponents, explicit plus signs and thousands separators are not numeric.
var numericPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Coerce infers the type of a raw (already trimmed) cell.
func Coerce(raw string) Value {
	if raw == "" {
		return Empty()
	}
	if numericPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(f)
		}
	}
	return Text(raw)
}
