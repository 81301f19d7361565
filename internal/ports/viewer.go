package ports

import "github.com/aalvaropc/digitprobe/internal/domain"

// Viewer shows a finished result interactively. Show blocks until the user closes it.
type Viewer interface {
	Show(sample domain.Sample, prediction domain.Prediction) error
}
