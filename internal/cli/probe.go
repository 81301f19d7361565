package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/httpclient"
	"github.com/aalvaropc/digitprobe/internal/infra/inference"
	"github.com/aalvaropc/digitprobe/internal/infra/logger"
	"github.com/aalvaropc/digitprobe/internal/infra/mnist"
	"github.com/aalvaropc/digitprobe/internal/infra/plot"
	"github.com/aalvaropc/digitprobe/internal/infra/runstore"
	"github.com/aalvaropc/digitprobe/internal/ports"
	"github.com/aalvaropc/digitprobe/internal/ui/tui"
	"github.com/aalvaropc/digitprobe/internal/usecase"
	ucassert "github.com/aalvaropc/digitprobe/internal/usecase/assert"
	ucextract "github.com/aalvaropc/digitprobe/internal/usecase/extract"
)

type probeOptions struct {
	host       string
	url        string
	index      int
	output     string
	timeout    time.Duration
	datasetDir string

	noDisplay     bool
	format        string
	saveReport    bool
	strict        bool
	minConfidence float64
	maxLatency    time.Duration
}

func (o *probeOptions) bind(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&o.host, "host", domain.DefaultHost, "classifier host (builds http://<host>/predict)")
	f.StringVar(&o.url, "url", "", "full predict URL (overrides --host)")
	f.IntVarP(&o.index, "index", "i", domain.DefaultSampleIndex, "position of the sample in the MNIST test set")
	f.StringVarP(&o.output, "output", "o", domain.DefaultPlotPath, "where the annotated PNG is written")
	f.DurationVar(&o.timeout, "timeout", domain.DefaultInferTimeout, "classifier request timeout")
	f.StringVar(&o.datasetDir, "dataset-dir", "", "MNIST cache directory (default: user cache dir)")
	f.BoolVar(&o.noDisplay, "no-display", false, "do not open the interactive viewer")
	f.StringVar(&o.format, "format", "pretty", "Output format: pretty|json")
	f.BoolVar(&o.saveReport, "save-report", false, "save the run report under runs/")
	f.BoolVar(&o.strict, "strict", false, "exit non-zero unless the prediction matches the label and every check passes")
	f.Float64Var(&o.minConfidence, "min-confidence", 0, "add a minimum confidence check (0 disables it)")
	f.DurationVar(&o.maxLatency, "max-latency", 0, "add a maximum response latency check, e.g. 500ms (0 disables it)")
}

// apply overlays the flags the user actually set on top of cfg.
func (o *probeOptions) apply(cfg *domain.Config, changed func(string) bool) error {
	if changed("host") {
		cfg.Endpoint.Host = strings.TrimSpace(o.host)
		cfg.Endpoint.URL = ""
	}
	if changed("url") {
		cfg.Endpoint.URL = strings.TrimSpace(o.url)
	}
	if changed("index") {
		cfg.Sample.Index = o.index
	}
	if changed("output") {
		cfg.Output.PlotPath = o.output
	}
	if changed("timeout") {
		if o.timeout <= 0 {
			return invalidFlag("--timeout must be positive, got %s", o.timeout)
		}
		cfg.Endpoint.Timeout = o.timeout
	}
	if changed("dataset-dir") {
		cfg.Dataset.Dir = o.datasetDir
	}
	if changed("max-latency") {
		if o.maxLatency < 0 {
			return invalidFlag("--max-latency must not be negative, got %s", o.maxLatency)
		}
		cfg.Response.MaxLatency = o.maxLatency
	}

	switch o.format {
	case "pretty", "json":
	default:
		return invalidFlag("unsupported format %q (expected pretty|json)", o.format)
	}
	if o.minConfidence < 0 || o.minConfidence > 1 {
		return invalidFlag("--min-confidence must be within [0,1], got %v", o.minConfidence)
	}
	if strings.TrimSpace(cfg.Output.PlotPath) == "" {
		return invalidFlag("output path is empty")
	}
	if strings.TrimSpace(cfg.Endpoint.PredictURL()) == "" {
		return invalidFlag("endpoint URL is empty")
	}
	return nil
}

func invalidFlag(format string, args ...any) error {
	return &domain.OpError{
		Op:   "cli.flags",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidConfig}, args...)...),
	}
}

// newSampleSource and newClassifier are replaced in tests.
var newSampleSource = func(cfg domain.Config, log *slog.Logger) ports.SampleSource {
	opts := []mnist.Option{
		mnist.WithBaseURL(cfg.Dataset.BaseURL),
		mnist.WithExecutor(newExecutor(cfg.Dataset.Timeout, 0)),
		mnist.WithLogger(log),
	}
	if cfg.Dataset.Dir != "" {
		opts = append(opts, mnist.WithDir(cfg.Dataset.Dir))
	}
	return mnist.New(opts...)
}

var newClassifier = func(cfg domain.Config, log *slog.Logger) ports.Classifier {
	return inference.New(
		inference.WithExecutor(newExecutor(cfg.Endpoint.Timeout, -1)),
		inference.WithLogger(log),
	)
}

// newExecutor builds an executor whose client and request deadline share timeout.
// maxBody < 0 keeps the executor's default bound; 0 disables it.
func newExecutor(timeout time.Duration, maxBody int64) *httpclient.Executor {
	hc := httpclient.DefaultConfig()
	if timeout > 0 {
		hc.Timeout = timeout
		hc.ResponseHeader = timeout
	}

	opts := []httpclient.ExecutorOption{
		httpclient.WithClient(httpclient.New(hc)),
		httpclient.WithTimeout(hc.Timeout),
	}
	if maxBody >= 0 {
		opts = append(opts, httpclient.WithMaxBodyBytes(maxBody))
	}
	return httpclient.NewExecutor(opts...)
}

func runProbe(cmd *cobra.Command, g *globalOptions, o *probeOptions) error {
	ws, err := loadWorkspace(g.configPath)
	if err != nil {
		return err
	}

	cleanup := setupLogging(ws.root, g.debug)
	defer cleanup()
	log := logger.L()
	if g.debug && logger.IsReady() == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "debug log: %s\n", logger.Path())
	}

	cfg := ws.cfg
	if err := o.apply(&cfg, cmd.Flags().Changed); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	console := stdout
	if o.format == "json" {
		// Keep stdout a single JSON document.
		console = cmd.ErrOrStderr()
	}

	presenterOpts := []usecase.PresenterOption{usecase.WithPresenterLogger(log)}
	if o.format == "pretty" && !o.noDisplay && isTerminal(stdout) {
		presenterOpts = append(presenterOpts, usecase.WithViewer(tui.NewViewer(
			tui.WithIO(cmd.InOrStdin(), stdout),
			tui.WithAltScreen(true),
			tui.WithLogger(log),
		)))
	}
	presenter := usecase.NewPresenter(console, plot.New(), cfg.Output.PlotPath, presenterOpts...)

	probeOpts := []usecase.ProbeOption{
		usecase.WithLogger(log),
		usecase.WithRules(ucextract.Rules{
			Digit:      cfg.Response.DigitPath,
			Confidence: cfg.Response.ConfidencePath,
		}),
		usecase.WithChecks(ucassert.Options{
			MinConfidence: o.minConfidence,
			MaxLatencyMS:  latencyMS(cfg.Response.MaxLatency),
		}),
	}
	if o.saveReport {
		probeOpts = append(probeOpts, usecase.WithStore(runstore.NewJSONStore(ws.root, cfg, runstore.WithIndex(true))))
	}

	log.Info("probe.start",
		"index", cfg.Sample.Index,
		"url", cfg.Endpoint.PredictURL(),
		"config", ws.configPath,
	)

	uc := usecase.NewProbe(console, newSampleSource(cfg, log), newClassifier(cfg, log), presenter, probeOpts...)
	report, runErr := uc.Execute(cmd.Context(), cfg.Sample.Index, cfg.Endpoint.PredictURL())

	if err := printReport(stdout, report, o.format, o.strict); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if o.strict {
		return strictError(report)
	}
	return nil
}

// latencyMS rounds a positive limit up to whole milliseconds so it never disables the check.
func latencyMS(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}

func strictError(r domain.Report) error {
	fails := ucassert.Failed(r.Checks)
	if r.Verdict == domain.VerdictMatch && fails == 0 {
		return nil
	}
	return &domain.OpError{
		Op:   "cli.probe",
		Kind: domain.KindExecution,
		Err:  fmt.Errorf("verdict %s (%d failed check(s))", r.Verdict, fails),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
