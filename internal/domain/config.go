package domain

import (
	"strings"
	"time"
)

// Defaults carried over from the bench setup the tool was written for.
const (
	DefaultHost           = "150.162.235.79"
	DefaultScheme         = "http"
	DefaultPredictPath    = "/predict"
	DefaultSampleIndex    = 77
	DefaultPlotPath       = "inference_result.png"
	DefaultInferTimeout   = 15 * time.Second
	DefaultDatasetTimeout = 60 * time.Second
	DefaultDatasetBaseURL = "https://storage.googleapis.com/cvdf-datasets/mnist/"
	DefaultDigitPath      = "$.predicted_digit"
	DefaultConfidencePath = "$.confidence"
)

// Config represents the digitprobe configuration loaded from digitprobe.yaml
// and overridden by flags.
type Config struct {
	Endpoint EndpointConfig
	Sample   SampleConfig
	Dataset  DatasetConfig
	Output   OutputConfig
	Response ResponseConfig
}

type EndpointConfig struct {
	Scheme string
	Host   string
	Path   string
	// URL, when set, is used verbatim instead of Scheme://Host+Path.
	URL     string
	Timeout time.Duration
}

type SampleConfig struct {
	Index int
}

type DatasetConfig struct {
	// Dir is the cache directory for the IDX files. Empty means the user cache dir.
	Dir     string
	BaseURL string
	Timeout time.Duration
}

type OutputConfig struct {
	PlotPath string
	RunsDir  string
}

// ResponseConfig holds the JSONPath expressions used to read the endpoint response.
type ResponseConfig struct {
	DigitPath      string
	ConfidencePath string
	// MaxLatency adds a latency check when > 0.
	MaxLatency time.Duration
}

// DefaultConfig provides sane defaults if digitprobe.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		Endpoint: EndpointConfig{
			Scheme:  DefaultScheme,
			Host:    DefaultHost,
			Path:    DefaultPredictPath,
			Timeout: DefaultInferTimeout,
		},
		Sample: SampleConfig{Index: DefaultSampleIndex},
		Dataset: DatasetConfig{
			BaseURL: DefaultDatasetBaseURL,
			Timeout: DefaultDatasetTimeout,
		},
		Output: OutputConfig{
			PlotPath: DefaultPlotPath,
			RunsDir:  "runs",
		},
		Response: ResponseConfig{
			DigitPath:      DefaultDigitPath,
			ConfidencePath: DefaultConfidencePath,
		},
	}
}

// PredictURL is the full URL the classification request is posted to.
func (c EndpointConfig) PredictURL() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		return u
	}

	scheme := strings.TrimSpace(c.Scheme)
	if scheme == "" {
		scheme = DefaultScheme
	}
	host := strings.TrimRight(strings.TrimSpace(c.Host), "/")
	path := strings.TrimSpace(c.Path)
	if path == "" {
		path = DefaultPredictPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return scheme + "://" + host + path
}
