package ports

import "github.com/aalvaropc/digitprobe/internal/domain"

// ArtifactStore persists run reports for later comparison.
type ArtifactStore interface {
	SaveReport(report domain.Report) (id string, err error)
}
