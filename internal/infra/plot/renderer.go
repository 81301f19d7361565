// Package plot renders a sample and its labels to a PNG file.
package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/ports"
)

const (
	defaultScale  = 10
	defaultMargin = 16
	lineGap       = 4
)

// Heading is the first title line of every plot.
const Heading = "Enviado para ESP32"

type Renderer struct {
	scale  int
	margin int
	face   font.Face
}

type Option func(*Renderer)

// WithScale sets the integer upscaling factor applied to the sample.
func WithScale(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.scale = n
		}
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		scale:  defaultScale,
		margin: defaultMargin,
		face:   titleFace(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// titleFace loads Go Regular, which covers the accented title characters.
// The bitmap face only has ASCII glyphs but cannot fail.
func titleFace() font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

var _ ports.PlotRenderer = (*Renderer)(nil)

// TitleLines returns the annotation drawn above the image.
func TitleLines(label int, predicted string) []string {
	return []string{
		Heading,
		fmt.Sprintf("Rótulo Real: %d | Predição: %s", label, predicted),
	}
}

// Render draws the plot and writes it to path, replacing any previous file.
func (r *Renderer) Render(path string, sample domain.Sample, predicted string) error {
	if err := sample.Image.Validate(); err != nil {
		return &domain.OpError{Op: "plot.render", Kind: domain.KindExecution, Path: path, Err: err}
	}

	canvas := r.Draw(sample, predicted)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return &domain.OpError{Op: "plot.encode", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "plot.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return &domain.OpError{Op: "plot.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "plot.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

// Draw lays out the title lines over the upscaled grayscale sample on a white canvas.
func (r *Renderer) Draw(sample domain.Sample, predicted string) *image.RGBA {
	src := &image.Gray{
		Pix:    sample.Image.Pix,
		Stride: sample.Image.Width,
		Rect:   image.Rect(0, 0, sample.Image.Width, sample.Image.Height),
	}
	up := resize.Resize(uint(sample.Image.Width*r.scale), uint(sample.Image.Height*r.scale), src, resize.NearestNeighbor)
	ub := up.Bounds()

	lines := TitleLines(sample.Label, predicted)
	metrics := r.face.Metrics()
	lineH := metrics.Height.Ceil() + lineGap

	textW := 0
	for _, l := range lines {
		if w := font.MeasureString(r.face, l).Ceil(); w > textW {
			textW = w
		}
	}

	width := max(ub.Dx(), textW) + 2*r.margin
	titleH := len(lines)*lineH + r.margin
	height := titleH + ub.Dy() + 2*r.margin

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: canvas, Src: image.NewUniform(color.Black), Face: r.face}
	for i, l := range lines {
		w := font.MeasureString(r.face, l).Ceil()
		x := (width - w) / 2
		y := r.margin + i*lineH + metrics.Ascent.Ceil()
		d.Dot = fixed.P(x, y)
		d.DrawString(l)
	}

	imgX := (width - ub.Dx()) / 2
	imgY := r.margin + titleH
	dst := image.Rect(imgX, imgY, imgX+ub.Dx(), imgY+ub.Dy())
	draw.Draw(canvas, dst, up, ub.Min, draw.Src)

	return canvas
}
