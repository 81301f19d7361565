package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/digitprobe/internal/domain"
)

// Rules holds the JSONPath expressions locating the presented fields.
type Rules struct {
	Digit      string
	Confidence string
}

// DefaultRules reads the fields at the top level of the response object.
func DefaultRules() Rules {
	return Rules{Digit: domain.DefaultDigitPath, Confidence: domain.DefaultConfidencePath}
}

// Apply fills Digit and Confidence from the decoded response fields.
//
// Policy:
// - A missing or unreadable field leaves the prediction's placeholder in place.
// - Every field that could not be read is reported as a message; the other still runs.
func Apply(p domain.Prediction, rules Rules) (domain.Prediction, []string) {
	var problems []string

	if p.Fields == nil {
		return p, []string{"response has no JSON object to extract from"}
	}
	doc := any(p.Fields)

	if val, err := lookup(doc, rules.Digit); err != nil {
		problems = append(problems, fmt.Sprintf("predicted digit (%s): %v", rules.Digit, err))
	} else if d, ok := digitValue(val); ok {
		p.Digit = d
		p.DigitOK = true
	} else {
		problems = append(problems, fmt.Sprintf("predicted digit (%s): unsupported value %v", rules.Digit, val))
	}

	if val, err := lookup(doc, rules.Confidence); err != nil {
		problems = append(problems, fmt.Sprintf("confidence (%s): %v", rules.Confidence, err))
	} else if c, ok := confidenceValue(val); ok {
		p.Confidence = c
		p.ConfidenceOK = true
	} else {
		problems = append(problems, fmt.Sprintf("confidence (%s): not a number: %v", rules.Confidence, val))
	}

	return p, problems
}

func lookup(doc any, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty jsonpath expression")
	}
	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, err
	}
	val = unwrapSingle(val)
	if isEmptyValue(val) {
		return nil, fmt.Errorf("no value found")
	}
	return val, nil
}

// unwrapSingle flattens the 1-element slices returned by filter/wildcard paths.
func unwrapSingle(v any) any {
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		return arr[0]
	}
	return v
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func digitValue(v any) (any, bool) {
	switch v.(type) {
	case float64, string, bool:
		return v, true
	default:
		return nil, false
	}
}

func confidenceValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
