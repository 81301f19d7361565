package plot

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

func sample() domain.Sample {
	pix := make([]uint8, domain.ImagePixels)
	for i := range pix {
		pix[i] = 200
	}
	return domain.Sample{
		Index: 77,
		Label: 2,
		Image: domain.Image{Width: domain.ImageSide, Height: domain.ImageSide, Pix: pix},
	}
}

func TestTitleLines(t *testing.T) {
	lines := TitleLines(2, "8")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Enviado para ESP32" {
		t.Fatalf("unexpected heading %q", lines[0])
	}
	if lines[1] != "Rótulo Real: 2 | Predição: 8" {
		t.Fatalf("unexpected label line %q", lines[1])
	}
}

func TestDraw_LayoutAndPixels(t *testing.T) {
	r := New(WithScale(4))
	c := r.Draw(sample(), "8")

	b := c.Bounds()
	if b.Dx() < domain.ImageSide*4 || b.Dy() < domain.ImageSide*4 {
		t.Fatalf("canvas %v smaller than upscaled image", b)
	}

	// The image sits right above the bottom margin, horizontally centered.
	got := c.RGBAAt(b.Dx()/2, b.Dy()-defaultMargin-1)
	if got.R != 200 || got.G != 200 || got.B != 200 {
		t.Fatalf("expected sample gray 200 at image bottom, got %+v", got)
	}

	// Corners are background.
	if px := c.RGBAAt(0, 0); px.R != 255 || px.G != 255 || px.B != 255 {
		t.Fatalf("expected white background, got %+v", px)
	}
}

func TestRender_WritesAndOverwritesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "inference_result.png")

	r := New()
	if err := r.Render(path, sample(), "8"); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	first, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected png written: %v", err)
	}

	if err := r.Render(path, sample(), "3"); err != nil {
		t.Fatalf("second Render error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() <= domain.ImageSide*defaultScale {
		t.Fatalf("unexpected width %d", img.Bounds().Dx())
	}
	if first.Size() == 0 {
		t.Fatalf("expected non-empty file")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected tmp file to be gone")
	}
}

func TestRender_RejectsInvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	err := New().Render(path, domain.Sample{Label: 1}, "1")
	if err == nil || !strings.Contains(err.Error(), "plot.render") {
		t.Fatalf("expected plot.render error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file for invalid image")
	}
}
