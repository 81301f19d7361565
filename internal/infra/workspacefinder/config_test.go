package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	writeConfig(t, root, "digitprobe:\n  endpoint:\n    host: 10.0.0.7\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if got := cfg.Endpoint.PredictURL(); got != "http://10.0.0.7/predict" {
		t.Fatalf("expected overridden host, got %s", got)
	}
	if cfg.Sample.Index != 77 {
		t.Fatalf("expected default index 77, got %d", cfg.Sample.Index)
	}
	if cfg.Endpoint.Timeout != 15*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.Endpoint.Timeout)
	}
	if cfg.Output.PlotPath != "inference_result.png" {
		t.Fatalf("expected default plot path, got %s", cfg.Output.PlotPath)
	}
	if cfg.Response.DigitPath != "$.predicted_digit" {
		t.Fatalf("expected default digit path, got %s", cfg.Response.DigitPath)
	}
}

func TestLoadConfig_FullFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `digitprobe:
  endpoint:
    url: http://esp.local:8080/v1/predict
    timeout: 3s
  sample:
    index: 0
  dataset:
    dir: /data/mnist
    base_url: ""
    timeout: 2m
  output:
    plot: out/result.png
    runs_dir: history
  response:
    digit_path: $.result.digit
    confidence_path: $.result.score
    max_latency: 750ms
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Endpoint.PredictURL() != "http://esp.local:8080/v1/predict" {
		t.Fatalf("unexpected url %s", cfg.Endpoint.PredictURL())
	}
	if cfg.Endpoint.Timeout != 3*time.Second || cfg.Dataset.Timeout != 2*time.Minute {
		t.Fatalf("unexpected timeouts %s / %s", cfg.Endpoint.Timeout, cfg.Dataset.Timeout)
	}
	if cfg.Sample.Index != 0 {
		t.Fatalf("expected explicit index 0, got %d", cfg.Sample.Index)
	}
	if cfg.Dataset.Dir != "/data/mnist" || cfg.Dataset.BaseURL != "" {
		t.Fatalf("unexpected dataset config %+v", cfg.Dataset)
	}
	if cfg.Output.PlotPath != "out/result.png" || cfg.Output.RunsDir != "history" {
		t.Fatalf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Response.MaxLatency != 750*time.Millisecond {
		t.Fatalf("unexpected max latency %s", cfg.Response.MaxLatency)
	}
	if cfg.Response.ConfidencePath != "$.result.score" {
		t.Fatalf("unexpected response config %+v", cfg.Response)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if cfg.Sample.Index != domain.DefaultSampleIndex {
		t.Fatalf("expected defaults on error")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":         "digitprobe: [\n",
		"bad duration":     "digitprobe:\n  endpoint:\n    timeout: soon\n",
		"negative timeout": "digitprobe:\n  dataset:\n    timeout: -1s\n",
		"negative index":   "digitprobe:\n  sample:\n    index: -3\n",
	}
	for name, content := range cases {
		root := t.TempDir()
		writeConfig(t, root, content)

		_, err := LoadConfig(root)
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Errorf("%s: expected invalid_config, got %v", name, err)
		}
	}
}
