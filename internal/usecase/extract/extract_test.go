package extract

import (
	"testing"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

func TestApply_Success(t *testing.T) {
	p := domain.Prediction{Fields: map[string]any{"predicted_digit": float64(7), "confidence": 0.92}}

	got, problems := Apply(p, DefaultRules())

	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if got.DigitString() != "7" {
		t.Fatalf("expected digit 7, got %q", got.DigitString())
	}
	if got.ConfidenceValue() != 0.92 {
		t.Fatalf("expected confidence 0.92, got %v", got.ConfidenceValue())
	}
}

func TestApply_MissingFieldsKeepPlaceholders(t *testing.T) {
	p := domain.Prediction{Fields: map[string]any{"status": "ok"}}

	got, problems := Apply(p, DefaultRules())

	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", problems)
	}
	if got.DigitString() != domain.PlaceholderDigit {
		t.Fatalf("expected placeholder digit, got %q", got.DigitString())
	}
	if got.ConfidenceValue() != 0 {
		t.Fatalf("expected 0 confidence, got %v", got.ConfidenceValue())
	}
}

func TestApply_NestedPaths(t *testing.T) {
	p := domain.Prediction{Fields: map[string]any{
		"result": map[string]any{"digit": float64(3), "score": "0.5"},
	}}

	got, problems := Apply(p, Rules{Digit: "$.result.digit", Confidence: "$.result.score"})

	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if d, ok := got.DigitInt(); !ok || d != 3 {
		t.Fatalf("expected digit 3, got %v (ok=%v)", d, ok)
	}
	if got.ConfidenceValue() != 0.5 {
		t.Fatalf("expected numeric string confidence to parse, got %v", got.ConfidenceValue())
	}
}

func TestApply_NonNumericConfidence(t *testing.T) {
	p := domain.Prediction{Fields: map[string]any{"predicted_digit": float64(1), "confidence": true}}

	got, problems := Apply(p, DefaultRules())

	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %v", problems)
	}
	if got.ConfidenceOK {
		t.Fatalf("expected confidence to stay unset")
	}
	if got.DigitString() != "1" {
		t.Fatalf("expected digit still extracted, got %q", got.DigitString())
	}
}

func TestApply_EmptyExpression(t *testing.T) {
	p := domain.Prediction{Fields: map[string]any{"predicted_digit": float64(1)}}

	_, problems := Apply(p, Rules{Digit: " ", Confidence: "$.confidence"})
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", problems)
	}
}

func TestApply_NoFields(t *testing.T) {
	_, problems := Apply(domain.Prediction{}, DefaultRules())
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %v", problems)
	}
}

func TestApply_NullDigitUsesPlaceholder(t *testing.T) {
	p := domain.Prediction{Fields: map[string]any{"predicted_digit": nil, "confidence": 0.5}}

	got, problems := Apply(p, DefaultRules())

	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %v", problems)
	}
	if got.DigitOK || got.DigitString() != domain.PlaceholderDigit {
		t.Fatalf("expected placeholder digit for null, got %q", got.DigitString())
	}
}
