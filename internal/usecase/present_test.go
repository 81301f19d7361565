package usecase

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

type fakeRenderer struct {
	calls     int
	path      string
	predicted string
	err       error
}

func (r *fakeRenderer) Render(path string, _ domain.Sample, predicted string) error {
	r.calls++
	r.path = path
	r.predicted = predicted
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(path, []byte("png"), 0o644)
}

type fakeViewer struct {
	shown int
	err   error
}

func (v *fakeViewer) Show(_ domain.Sample, _ domain.Prediction) error {
	v.shown++
	return v.err
}

func testSample(index, label int) domain.Sample {
	pix := make([]uint8, domain.ImagePixels)
	return domain.Sample{
		Index: index,
		Image: domain.Image{Width: domain.ImageSide, Height: domain.ImageSide, Pix: pix},
		Label: label,
	}
}

func testPrediction(digit any, conf float64) domain.Prediction {
	body := []byte(`{"predicted_digit":8,"confidence":0.87}`)
	return domain.Prediction{
		Fields:       map[string]any{"predicted_digit": digit, "confidence": conf},
		Body:         body,
		StatusCode:   200,
		Digit:        digit,
		DigitOK:      digit != nil,
		Confidence:   conf,
		ConfidenceOK: true,
	}
}

func TestPresent_AbsentInputsPrintMessageOnly(t *testing.T) {
	s := testSample(77, 7)
	p := testPrediction(float64(8), 0.87)

	cases := []struct {
		name   string
		sample *domain.Sample
		pred   *domain.Prediction
	}{
		{"no sample", nil, &p},
		{"no prediction", &s, nil},
		{"neither", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			r := &fakeRenderer{}
			v := &fakeViewer{}
			plotPath := filepath.Join(t.TempDir(), "inference_result.png")

			got, err := NewPresenter(&out, r, plotPath, WithViewer(v)).Present(tc.sample, tc.pred)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "" {
				t.Fatalf("expected empty plot path, got %q", got)
			}
			if strings.TrimSpace(out.String()) != MsgNoResult {
				t.Fatalf("unexpected output: %q", out.String())
			}
			if r.calls != 0 || v.shown != 0 {
				t.Fatalf("expected no render/display, got render=%d show=%d", r.calls, v.shown)
			}
			if _, err := os.Stat(plotPath); !os.IsNotExist(err) {
				t.Fatalf("expected no plot file, stat err=%v", err)
			}
		})
	}
}

func TestPresent_PrintsResultsBlock(t *testing.T) {
	var out bytes.Buffer
	r := &fakeRenderer{}
	v := &fakeViewer{}
	plotPath := filepath.Join(t.TempDir(), "inference_result.png")

	s := testSample(77, 7)
	p := testPrediction(float64(8), 0.87)

	got, err := NewPresenter(&out, r, plotPath, WithViewer(v)).Present(&s, &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != plotPath {
		t.Fatalf("expected plot path %q, got %q", plotPath, got)
	}

	want := strings.Join([]string{
		"",
		"--- Resultados ---",
		"Índice da Imagem: 77",
		"Rótulo Verdadeiro: 7",
		"Predição do ESP32: 8",
		"Confiança: 0.8700",
		"------------------",
		"",
		"Resposta completa da API:",
		"{",
		`  "predicted_digit": 8,`,
		`  "confidence": 0.87`,
		"}",
		"",
		"Gráfico salvo como '" + plotPath + "'.",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out.String(), want)
	}
	if r.predicted != "8" {
		t.Fatalf("expected renderer to get predicted=8, got %q", r.predicted)
	}
	if v.shown != 1 {
		t.Fatalf("expected viewer to be shown once, got %d", v.shown)
	}
}

func TestPresent_MissingFieldsUsePlaceholders(t *testing.T) {
	var out bytes.Buffer
	s := testSample(3, 3)
	p := domain.Prediction{Fields: map[string]any{"status": "ok"}, Body: []byte(`{"status":"ok"}`)}

	_, err := NewPresenter(&out, &fakeRenderer{}, filepath.Join(t.TempDir(), "p.png")).Present(&s, &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Predição do ESP32: N/A\n") {
		t.Fatalf("expected N/A placeholder, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Confiança: 0.0000\n") {
		t.Fatalf("expected zero confidence, got:\n%s", out.String())
	}
}

func TestPresent_RenderErrorIsReturned(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("disk full")
	s := testSample(1, 1)
	p := testPrediction(float64(1), 0.5)

	_, err := NewPresenter(&out, &fakeRenderer{err: boom}, "x.png").Present(&s, &p)
	if !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	if strings.Contains(out.String(), "Gráfico salvo") {
		t.Fatalf("did not expect save message, got:\n%s", out.String())
	}
}

func TestPresent_ViewerErrorIsNotFatal(t *testing.T) {
	var out bytes.Buffer
	s := testSample(1, 1)
	p := testPrediction(float64(1), 0.5)
	plotPath := filepath.Join(t.TempDir(), "p.png")

	got, err := NewPresenter(&out, &fakeRenderer{}, plotPath, WithViewer(&fakeViewer{err: errors.New("no tty")})).Present(&s, &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != plotPath {
		t.Fatalf("expected %q, got %q", plotPath, got)
	}
}

func TestPrettyResponse_FallsBackToFields(t *testing.T) {
	got := PrettyResponse(domain.Prediction{Fields: map[string]any{"a": 1}})
	if got != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected pretty output: %q", got)
	}
}
