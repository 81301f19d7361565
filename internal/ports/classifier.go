package ports

import (
	"context"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

// Classifier sends a sample to a remote endpoint and returns its prediction.
type Classifier interface {
	Predict(ctx context.Context, url string, sample domain.Sample) (domain.Prediction, error)
}
