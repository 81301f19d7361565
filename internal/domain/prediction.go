package domain

import (
	"math"
	"strconv"
)

// PlaceholderDigit is shown when the endpoint response has no predicted digit.
const PlaceholderDigit = "N/A"

// maxExactInt bounds the floats converted to integers: 2^53 is the largest
// range where every integer is representable.
const maxExactInt = 1 << 53

// Prediction is the endpoint response to one classification request.
//
// Fields holds the decoded JSON object as a generic mapping; Body keeps the raw
// bytes so the response can be echoed in its original key order. Digit and
// Confidence are filled by the response extractor; a missing field leaves the
// matching *OK flag false and the accessors fall back to placeholders.
type Prediction struct {
	Fields map[string]any
	Body   []byte

	StatusCode int
	LatencyMS  int64

	Digit   any
	DigitOK bool

	Confidence   float64
	ConfidenceOK bool
}

// DigitString renders the predicted digit for display.
func (p Prediction) DigitString() string {
	if !p.DigitOK || p.Digit == nil {
		return PlaceholderDigit
	}
	switch v := p.Digit.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < maxExactInt {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return PlaceholderDigit
	}
}

// DigitInt returns the predicted digit when it is an integral number.
func (p Prediction) DigitInt() (int, bool) {
	if !p.DigitOK {
		return 0, false
	}
	switch v := p.Digit.(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= maxExactInt {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// ConfidenceValue returns the reported confidence, or 0 when absent.
func (p Prediction) ConfidenceValue() float64 {
	if !p.ConfidenceOK {
		return 0
	}
	return p.Confidence
}
