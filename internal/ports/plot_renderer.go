package ports

import "github.com/aalvaropc/digitprobe/internal/domain"

// PlotRenderer draws the sample annotated with the true and predicted labels and
// persists it to path.
type PlotRenderer interface {
	Render(path string, sample domain.Sample, predicted string) error
}
