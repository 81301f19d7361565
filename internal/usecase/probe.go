package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/logger"
	"github.com/aalvaropc/digitprobe/internal/ports"
	ucassert "github.com/aalvaropc/digitprobe/internal/usecase/assert"
	ucextract "github.com/aalvaropc/digitprobe/internal/usecase/extract"
)

// Probe runs the load → classify → present sequence once.
//
// Failures of the first two steps never escape: they are printed, logged and
// turned into an absent sample or prediction, and the presenter always runs.
type Probe struct {
	samples    ports.SampleSource
	classifier ports.Classifier
	presenter  *Presenter
	store      ports.ArtifactStore

	out    io.Writer
	rules  ucextract.Rules
	checks ucassert.Options
	log    *slog.Logger
	now    func() time.Time
}

type ProbeOption func(*Probe)

// WithStore persists every report. A nil store disables saving.
func WithStore(s ports.ArtifactStore) ProbeOption {
	return func(p *Probe) { p.store = s }
}

func WithRules(r ucextract.Rules) ProbeOption {
	return func(p *Probe) { p.rules = r }
}

func WithChecks(o ucassert.Options) ProbeOption {
	return func(p *Probe) { p.checks = o }
}

func WithLogger(l *slog.Logger) ProbeOption {
	return func(p *Probe) { p.log = l }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) ProbeOption {
	return func(p *Probe) { p.now = now }
}

func NewProbe(out io.Writer, samples ports.SampleSource, classifier ports.Classifier, presenter *Presenter, opts ...ProbeOption) *Probe {
	p := &Probe{
		samples:    samples,
		classifier: classifier,
		presenter:  presenter,
		out:        out,
		rules:      ucextract.DefaultRules(),
		log:        logger.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute probes the sample at index against url. The returned error is set only
// when the plot could not be saved or the report could not be stored; the
// report is filled in either way.
func (uc *Probe) Execute(ctx context.Context, index int, url string) (domain.Report, error) {
	report := domain.Report{
		Index:     index,
		URL:       url,
		StartedAt: uc.now(),
	}

	sample := uc.loadSample(ctx, index, &report)

	var pred *domain.Prediction
	if sample != nil {
		pred = uc.predict(ctx, url, *sample, &report)
	}

	plotPath, presentErr := uc.presenter.Present(sample, pred)
	report.PlotPath = plotPath
	if presentErr != nil {
		report.Errors = append(report.Errors, presentErr.Error())
	}

	report.Checks, report.Verdict = ucassert.Evaluate(sample, pred, uc.checks)
	report.EndedAt = uc.now()

	uc.log.Info("probe.done",
		"index", index,
		"url", url,
		"verdict", string(report.Verdict),
		"duration_ms", report.EndedAt.Sub(report.StartedAt).Milliseconds(),
	)

	var saveErr error
	if uc.store != nil {
		id, err := uc.store.SaveReport(report)
		if err != nil {
			saveErr = err
			uc.log.Error("probe.report.save_failed", "error", err.Error())
		} else {
			uc.log.Info("probe.report.saved", "id", id)
		}
	}

	return report, errors.Join(presentErr, saveErr)
}

func (uc *Probe) loadSample(ctx context.Context, index int, report *domain.Report) *domain.Sample {
	s, err := uc.samples.Sample(ctx, index)
	if err != nil {
		fmt.Fprintf(uc.out, "Erro ao carregar dados do MNIST: %s\n", describe(err))
		report.Errors = append(report.Errors, err.Error())
		uc.log.Warn("probe.sample.failed", "index", index, "error", err.Error())
		return nil
	}

	label := s.Label
	report.Label = &label
	uc.log.Info("probe.sample.loaded", "index", index, "label", s.Label)
	return &s
}

func (uc *Probe) predict(ctx context.Context, url string, sample domain.Sample, report *domain.Report) *domain.Prediction {
	fmt.Fprintf(uc.out, "Enviando requisição para %s...\n", url)

	p, err := uc.classifier.Predict(ctx, url, sample)
	if err != nil {
		fmt.Fprintf(uc.out, "Erro na comunicação com o ESP32: %s\n", describe(err))
		report.Errors = append(report.Errors, err.Error())
		uc.log.Warn("probe.predict.failed", "url", url, "error", err.Error())
		return nil
	}

	p, problems := ucextract.Apply(p, uc.rules)
	for _, msg := range problems {
		uc.log.Warn("probe.response.field_missing", "detail", msg)
	}

	report.Response = p.Fields
	report.Predicted = p.DigitString()
	report.Confidence = p.ConfidenceValue()
	report.LatencyMS = p.LatencyMS
	return &p
}

// describe drops the operation prefix of an OpError for console output.
func describe(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Err != nil {
		return oe.Err.Error()
	}
	return err.Error()
}
