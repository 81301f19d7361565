package domain

import "time"

// Verdict summarizes how a probe run ended.
type Verdict string

const (
	VerdictMatch      Verdict = "match"
	VerdictMismatch   Verdict = "mismatch"
	VerdictIncomplete Verdict = "incomplete"
)

// CheckResult is the output of a single verdict check.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Report records what one probe run produced.
// Label and Response are nil when the matching step did not complete.
type Report struct {
	Index int    `json:"index"`
	URL   string `json:"url"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Label      *int           `json:"label"`
	Predicted  string         `json:"predicted_digit"`
	Confidence float64        `json:"confidence"`
	LatencyMS  int64          `json:"latency_ms"`
	Response   map[string]any `json:"response"`

	PlotPath string   `json:"plot_path,omitempty"`
	Errors   []string `json:"errors,omitempty"`

	Verdict Verdict       `json:"verdict"`
	Checks  []CheckResult `json:"checks,omitempty"`
}

// Complete reports whether both the sample and the prediction were obtained.
func (r Report) Complete() bool {
	return r.Label != nil && r.Response != nil
}
