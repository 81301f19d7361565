package ports

import (
	"context"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

// SampleSource returns the labeled image at a fixed position of the reference test set.
type SampleSource interface {
	Sample(ctx context.Context, index int) (domain.Sample, error)
}
