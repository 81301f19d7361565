package fsworkspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/digitprobe/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesLoadableConfig(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(tmp, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	for _, p := range []string{
		filepath.Join(tmp, "digitprobe.yaml"),
		filepath.Join(tmp, ".gitignore"),
		filepath.Join(tmp, "runs"),
		filepath.Join(tmp, ".digitprobe", "logs"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("template must load cleanly: %v", err)
	}
	if cfg.Sample.Index != 77 || cfg.Endpoint.PredictURL() != "http://150.162.235.79/predict" {
		t.Fatalf("unexpected template values %+v", cfg)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "digitprobe.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing digitprobe.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(tmp, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read digitprobe.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected digitprobe.yaml preserved, got %q", string(b))
	}

	if err := i.Init(tmp, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}
	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read digitprobe.yaml: %v", err)
	}
	if string(b) == "custom\n" {
		t.Fatalf("expected digitprobe.yaml overwritten with force")
	}
}
