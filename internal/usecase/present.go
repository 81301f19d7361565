package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/logger"
	"github.com/aalvaropc/digitprobe/internal/ports"
)

// MsgNoResult is printed instead of the results block when a step did not complete.
const MsgNoResult = "Não foi possível processar os resultados."

// Presenter prints the outcome of a probe, saves the annotated plot and, when a
// viewer is configured, shows it interactively.
type Presenter struct {
	out      io.Writer
	renderer ports.PlotRenderer
	viewer   ports.Viewer
	plotPath string
	log      *slog.Logger
}

type PresenterOption func(*Presenter)

// WithViewer enables the interactive display step.
func WithViewer(v ports.Viewer) PresenterOption {
	return func(p *Presenter) { p.viewer = v }
}

func WithPresenterLogger(l *slog.Logger) PresenterOption {
	return func(p *Presenter) { p.log = l }
}

func NewPresenter(out io.Writer, renderer ports.PlotRenderer, plotPath string, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		out:      out,
		renderer: renderer,
		plotPath: plotPath,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present reports the result and returns the saved plot path. Nothing is rendered
// when sample or pred is nil; the returned path is then empty.
func (p *Presenter) Present(sample *domain.Sample, pred *domain.Prediction) (string, error) {
	if sample == nil || pred == nil {
		fmt.Fprintln(p.out, MsgNoResult)
		p.log.Info("present.skipped", "sample", sample != nil, "prediction", pred != nil)
		return "", nil
	}

	digit := pred.DigitString()

	fmt.Fprintln(p.out, "\n--- Resultados ---")
	fmt.Fprintf(p.out, "Índice da Imagem: %d\n", sample.Index)
	fmt.Fprintf(p.out, "Rótulo Verdadeiro: %d\n", sample.Label)
	fmt.Fprintf(p.out, "Predição do ESP32: %s\n", digit)
	fmt.Fprintf(p.out, "Confiança: %.4f\n", pred.ConfidenceValue())
	fmt.Fprint(p.out, "------------------\n\n")
	fmt.Fprintln(p.out, "Resposta completa da API:")
	fmt.Fprintln(p.out, PrettyResponse(*pred))

	if err := p.renderer.Render(p.plotPath, *sample, digit); err != nil {
		p.log.Error("present.render.failed", "path", p.plotPath, "error", err.Error())
		return "", err
	}
	fmt.Fprintf(p.out, "\nGráfico salvo como '%s'.\n", p.plotPath)
	p.log.Info("present.plot.saved", "path", p.plotPath)

	if p.viewer != nil {
		if err := p.viewer.Show(*sample, *pred); err != nil {
			// The plot is already saved; viewer failures are only logged.
			p.log.Warn("present.viewer.failed", "error", err.Error())
		}
	}
	return p.plotPath, nil
}

// PrettyResponse indents the raw response body, keeping the endpoint's key order.
func PrettyResponse(pred domain.Prediction) string {
	if len(pred.Body) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, pred.Body, "", "  "); err == nil {
			return buf.String()
		}
	}
	b, err := json.MarshalIndent(pred.Fields, "", "  ")
	if err != nil {
		return fmt.Sprint(pred.Fields)
	}
	return string(b)
}
