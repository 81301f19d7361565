package cli

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error returned by a command into one console line.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindNotFound:
			if strings.Contains(oe.Op, "loadconfig") {
				return "Config file not found: " + oe.Path
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			if looksLikeYAMLProblem(err.Error()) {
				if line := extractLine(err.Error()); line != "" {
					return "Invalid YAML at " + base + " line " + line
				}
				return "Invalid YAML at " + base
			}
			if oe.Err != nil {
				return "Invalid config: " + strings.TrimPrefix(oe.Err.Error(), domain.ErrInvalidConfig.Error()+": ")
			}
			return "Invalid config"

		case domain.KindIndexOutOfRange, domain.KindDatasetUnavailable:
			if oe.Err != nil {
				return "MNIST: " + oe.Err.Error()
			}
		}
	}

	return err.Error()
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
