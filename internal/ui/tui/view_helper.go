package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

const halfBlock = "▀"

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func prettyBody(body []byte) string {
	if len(body) == 0 {
		return "(empty)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err == nil {
		return buf.String()
	}
	return string(bytes.TrimSpace(body))
}

func gray(v uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v))
}

// renderDigit draws two pixel rows per text line: the upper pixel is the glyph
// foreground and the lower one its background.
func renderDigit(img domain.Image) string {
	var b strings.Builder
	for y := 0; y < img.Height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < img.Width; x++ {
			var bottom uint8
			if y+1 < img.Height {
				bottom = img.At(x, y+1)
			}
			cell := lipgloss.NewStyle().
				Foreground(gray(img.At(x, y))).
				Background(gray(bottom))
			b.WriteString(cell.Render(halfBlock))
		}
	}
	return b.String()
}

func renderResponse(p domain.Prediction, width int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Status: %d\nLatency: %dms\n\n", p.StatusCode, p.LatencyMS))
	for _, line := range strings.Split(prettyBody(p.Body), "\n") {
		b.WriteString(clampString(line, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
