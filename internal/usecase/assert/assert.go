package assert

import (
	"fmt"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

// Options tunes which checks Evaluate runs.
type Options struct {
	// MinConfidence adds a confidence check when > 0.
	MinConfidence float64
	// MaxLatencyMS adds a latency check when > 0.
	MaxLatencyMS int64
}

func Received(name string, ok bool, missing string) domain.CheckResult {
	if ok {
		return domain.CheckResult{Name: name, Passed: true, Message: name + " available"}
	}
	return domain.CheckResult{Name: name, Passed: false, Message: missing}
}

func Label(expected int, p domain.Prediction) domain.CheckResult {
	got, ok := p.DigitInt()
	if !ok {
		return domain.CheckResult{
			Name:    "label",
			Passed:  false,
			Message: fmt.Sprintf("expected digit %d, got %s", expected, p.DigitString()),
		}
	}
	if got == expected {
		return domain.CheckResult{
			Name:    "label",
			Passed:  true,
			Message: fmt.Sprintf("predicted %d", got),
		}
	}
	return domain.CheckResult{
		Name:    "label",
		Passed:  false,
		Message: fmt.Sprintf("expected digit %d, got %d", expected, got),
	}
}

func MinConfidence(threshold float64, p domain.Prediction) domain.CheckResult {
	if !p.ConfidenceOK {
		return domain.CheckResult{
			Name:    "min_confidence",
			Passed:  false,
			Message: "response has no confidence",
		}
	}
	if p.Confidence >= threshold {
		return domain.CheckResult{
			Name:    "min_confidence",
			Passed:  true,
			Message: fmt.Sprintf("confidence %.4f >= %.4f", p.Confidence, threshold),
		}
	}
	return domain.CheckResult{
		Name:    "min_confidence",
		Passed:  false,
		Message: fmt.Sprintf("expected confidence >= %.4f, got %.4f", threshold, p.Confidence),
	}
}

func MaxLatency(maxMs int64, latencyMs int64) domain.CheckResult {
	if latencyMs <= maxMs {
		return domain.CheckResult{
			Name:    "max_ms",
			Passed:  true,
			Message: fmt.Sprintf("latency %dms <= %dms", latencyMs, maxMs),
		}
	}
	return domain.CheckResult{
		Name:    "max_ms",
		Passed:  false,
		Message: fmt.Sprintf("expected latency <= %dms, got %dms", maxMs, latencyMs),
	}
}

// Evaluate runs the checks for one probe and derives its verdict.
// sample or prediction may be nil when the matching step did not complete.
func Evaluate(sample *domain.Sample, pred *domain.Prediction, opts Options) ([]domain.CheckResult, domain.Verdict) {
	out := []domain.CheckResult{
		Received("sample", sample != nil, "sample could not be loaded"),
		Received("prediction", pred != nil, "no prediction received"),
	}
	if sample == nil || pred == nil {
		return out, domain.VerdictIncomplete
	}

	label := Label(sample.Label, *pred)
	out = append(out, label)

	if opts.MinConfidence > 0 {
		out = append(out, MinConfidence(opts.MinConfidence, *pred))
	}
	if opts.MaxLatencyMS > 0 {
		out = append(out, MaxLatency(opts.MaxLatencyMS, pred.LatencyMS))
	}

	if _, ok := pred.DigitInt(); !ok {
		return out, domain.VerdictIncomplete
	}
	if !label.Passed {
		return out, domain.VerdictMismatch
	}
	return out, domain.VerdictMatch
}

// Failed counts the checks that did not pass.
func Failed(checks []domain.CheckResult) int {
	n := 0
	for _, c := range checks {
		if !c.Passed {
			n++
		}
	}
	return n
}
