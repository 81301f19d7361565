package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads digitprobe.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	return LoadConfigFile(ConfigPath(root))
}

// LoadConfigFile loads a config file at an explicit path and applies defaults.
// The returned config is usable (defaults) even when an error is returned.
func LoadConfigFile(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := apply(&cfg, y); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

// apply sets parsed values on top of defaults.
func apply(cfg *domain.Config, y yamlConfig) error {
	p := y.Probe

	if p.Endpoint.Scheme != "" {
		cfg.Endpoint.Scheme = p.Endpoint.Scheme
	}
	if p.Endpoint.Host != "" {
		cfg.Endpoint.Host = p.Endpoint.Host
	}
	if p.Endpoint.Path != "" {
		cfg.Endpoint.Path = p.Endpoint.Path
	}
	if p.Endpoint.URL != "" {
		cfg.Endpoint.URL = p.Endpoint.URL
	}
	if p.Endpoint.Timeout != "" {
		d, err := parsePositiveDuration("endpoint.timeout", p.Endpoint.Timeout)
		if err != nil {
			return err
		}
		cfg.Endpoint.Timeout = d
	}

	if p.Sample.Index != nil {
		if *p.Sample.Index < 0 {
			return fmt.Errorf("sample.index must be >= 0, got %d", *p.Sample.Index)
		}
		cfg.Sample.Index = *p.Sample.Index
	}

	if p.Dataset.Dir != "" {
		cfg.Dataset.Dir = expandHome(p.Dataset.Dir)
	}
	if p.Dataset.BaseURL != nil {
		cfg.Dataset.BaseURL = *p.Dataset.BaseURL
	}
	if p.Dataset.Timeout != "" {
		d, err := parsePositiveDuration("dataset.timeout", p.Dataset.Timeout)
		if err != nil {
			return err
		}
		cfg.Dataset.Timeout = d
	}

	if p.Output.Plot != "" {
		cfg.Output.PlotPath = p.Output.Plot
	}
	if p.Output.RunsDir != "" {
		cfg.Output.RunsDir = p.Output.RunsDir
	}

	if p.Response.DigitPath != "" {
		cfg.Response.DigitPath = p.Response.DigitPath
	}
	if p.Response.ConfidencePath != "" {
		cfg.Response.ConfidencePath = p.Response.ConfidencePath
	}
	if p.Response.MaxLatency != "" {
		d, err := parsePositiveDuration("response.max_latency", p.Response.MaxLatency)
		if err != nil {
			return err
		}
		cfg.Response.MaxLatency = d
	}
	return nil
}

func parsePositiveDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", field, d)
	}
	return d, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

type yamlConfig struct {
	Probe struct {
		Endpoint struct {
			Scheme  string `yaml:"scheme"`
			Host    string `yaml:"host"`
			Path    string `yaml:"path"`
			URL     string `yaml:"url"`
			Timeout string `yaml:"timeout"`
		} `yaml:"endpoint"`

		Sample struct {
			Index *int `yaml:"index"`
		} `yaml:"sample"`

		Dataset struct {
			Dir     string  `yaml:"dir"`
			BaseURL *string `yaml:"base_url"`
			Timeout string  `yaml:"timeout"`
		} `yaml:"dataset"`

		Output struct {
			Plot    string `yaml:"plot"`
			RunsDir string `yaml:"runs_dir"`
		} `yaml:"output"`

		Response struct {
			DigitPath      string `yaml:"digit_path"`
			ConfidencePath string `yaml:"confidence_path"`
			MaxLatency     string `yaml:"max_latency"`
		} `yaml:"response"`
	} `yaml:"digitprobe"`
}
