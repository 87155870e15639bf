package token

import "strings"

// Number literal character classes.
const (
	NumberSeparators  = "be."
	NumberTerminators = "rif"
)

// NumberForm describes how a number literal is meant to be read.
type NumberForm uint8

const (
	NumberInteger NumberForm = iota
	NumberDecimal            // contains '.' and is read as an exact rational
	NumberRational           // 'r' suffix
	NumberImaginary          // 'i' suffix
	NumberFloat              // 'f' suffix
)

var numberFormNames = [...]string{
	NumberInteger:   "integer",
	NumberDecimal:   "decimal",
	NumberRational:  "rational",
	NumberImaginary: "imaginary",
	NumberFloat:     "float",
}

func (f NumberForm) String() string {
	if int(f) < len(numberFormNames) {
		return numberFormNames[f]
	}
	return "unknown"
}

// SplitNumber separates a number literal into its mantissa and the trailing
// terminator ('r', 'i', 'f' or 0). Only the last character counts as the
// terminator; earlier terminator characters stay in the mantissa.
func SplitNumber(raw string) (mantissa string, term byte) {
	if raw == "" {
		return "", 0
	}
	last := raw[len(raw)-1]
	if strings.IndexByte(NumberTerminators, last) >= 0 {
		return raw[:len(raw)-1], last
	}
	return raw, 0
}

// ClassifyNumber reports the form of a number literal.
func ClassifyNumber(raw string) NumberForm {
	mantissa, term := SplitNumber(raw)
	switch term {
	case 'r':
		return NumberRational
	case 'i':
		return NumberImaginary
	case 'f':
		return NumberFloat
	}
	if strings.Contains(mantissa, ".") {
		return NumberDecimal
	}
	return NumberInteger
}
