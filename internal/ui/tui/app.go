// Package tui shows a finished probe result in the terminal.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/plot"
	"github.com/aalvaropc/digitprobe/internal/ports"
)

// Viewer displays one sample with its prediction until the user closes it.
type Viewer struct {
	in        io.Reader
	out       io.Writer
	altScreen bool
	log       *slog.Logger
}

type Option func(*Viewer)

func WithIO(in io.Reader, out io.Writer) Option {
	return func(v *Viewer) {
		v.in = in
		v.out = out
	}
}

func WithAltScreen(enabled bool) Option {
	return func(v *Viewer) { v.altScreen = enabled }
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

func NewViewer(opts ...Option) *Viewer {
	v := &Viewer{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var _ ports.Viewer = (*Viewer)(nil)

func (v *Viewer) Show(sample domain.Sample, prediction domain.Prediction) error {
	progOpts := []tea.ProgramOption{tea.WithInput(v.in), tea.WithOutput(v.out)}
	if v.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(wrapSafe(newModel(sample, prediction), v.log), progOpts...)
	_, err := p.Run()
	return err
}

type model struct {
	theme Theme
	keys  keyMap
	help  help.Model

	sample     domain.Sample
	prediction domain.Prediction

	showResponse bool
	width        int
	toast        string
}

func newModel(sample domain.Sample, prediction domain.Prediction) model {
	return model{
		theme:      DefaultTheme(),
		keys:       defaultKeys(),
		help:       help.New(),
		sample:     sample,
		prediction: prediction,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Response):
			m.showResponse = !m.showResponse
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	lines := plot.TitleLines(m.sample.Label, m.prediction.DigitString())

	header := m.theme.Title.Render(lines[0]) + "\n" + m.verdictStyle().Render(lines[1]) + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("Índice %d • Confiança %.4f", m.sample.Index, m.prediction.ConfidenceValue()))

	body := renderDigit(m.sample.Image)
	if m.showResponse {
		body = renderResponse(m.prediction, m.responseWidth())
	}

	out := header + "\n\n" + m.theme.Card.Render(body) + "\n" + m.help.View(m.keys)
	if m.toast != "" {
		out += "\n" + m.theme.Mismatch.Render(m.toast)
	}
	return wrap.Render(out)
}

func (m model) verdictStyle() lipgloss.Style {
	got, ok := m.prediction.DigitInt()
	if !ok || got != m.sample.Label {
		return m.theme.Mismatch
	}
	return m.theme.Match
}

func (m model) responseWidth() int {
	if m.width <= 0 {
		return 72
	}
	// padding and card border
	return max(m.width-10, 20)
}
