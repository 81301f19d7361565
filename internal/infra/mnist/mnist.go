// Package mnist loads single samples from the MNIST test split, downloading and
// caching the IDX archives on first use.
package mnist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/httpclient"
	"github.com/aalvaropc/digitprobe/internal/infra/logger"
	"github.com/aalvaropc/digitprobe/internal/ports"
)

type Source struct {
	dir     string
	baseURL string
	files   Files
	exec    *httpclient.Executor
	log     *slog.Logger
}

type Option func(*Source)

// WithDir sets the cache directory holding the IDX archives.
func WithDir(dir string) Option {
	return func(s *Source) { s.dir = dir }
}

// WithBaseURL sets the mirror the archives are downloaded from when missing.
func WithBaseURL(u string) Option {
	return func(s *Source) { s.baseURL = u }
}

// WithFiles overrides the archive names and digests. Useful for tests.
func WithFiles(f Files) Option {
	return func(s *Source) { s.files = f }
}

func WithExecutor(e *httpclient.Executor) Option {
	return func(s *Source) { s.exec = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Source) { s.log = l }
}

func New(opts ...Option) *Source {
	s := &Source{
		dir:     DefaultDir(),
		baseURL: domain.DefaultDatasetBaseURL,
		files:   TestFiles,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.exec == nil {
		cfg := httpclient.DefaultConfig()
		cfg.Timeout = domain.DefaultDatasetTimeout
		s.exec = httpclient.NewExecutor(
			httpclient.WithClient(httpclient.New(cfg)),
			httpclient.WithTimeout(domain.DefaultDatasetTimeout),
			httpclient.WithMaxBodyBytes(0),
		)
	}
	return s
}

var _ ports.SampleSource = (*Source)(nil)

// DefaultDir is the per-user cache directory for the archives.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		return filepath.Join(os.TempDir(), "mnist")
	}
	return filepath.Join(base, "digitprobe", "mnist")
}

// Sample returns the image and label at index of the test split.
func (s *Source) Sample(ctx context.Context, index int) (domain.Sample, error) {
	if index < 0 {
		return domain.Sample{}, &domain.OpError{
			Op:   "mnist.sample",
			Kind: domain.KindIndexOutOfRange,
			Err:  fmt.Errorf("%w: index %d is negative", domain.ErrIndexOutOfRange, index),
		}
	}

	imgPath, err := s.ensure(ctx, s.files.Images)
	if err != nil {
		return domain.Sample{}, err
	}
	lblPath, err := s.ensure(ctx, s.files.Labels)
	if err != nil {
		return domain.Sample{}, err
	}

	pix, hdr, err := readImageAt(imgPath, index)
	if err != nil {
		return domain.Sample{}, s.readError(imgPath, err)
	}
	label, labels, err := readLabelAt(lblPath, index)
	if err != nil {
		return domain.Sample{}, s.readError(lblPath, err)
	}
	if labels != hdr.Count {
		return domain.Sample{}, &domain.OpError{
			Op:   "mnist.sample",
			Kind: domain.KindDatasetUnavailable,
			Path: lblPath,
			Err:  fmt.Errorf("%w: %d images but %d labels", domain.ErrDatasetUnavailable, hdr.Count, labels),
		}
	}

	sample := domain.Sample{
		Index: index,
		Image: domain.Image{Width: hdr.Cols, Height: hdr.Rows, Pix: pix},
		Label: label,
	}
	if err := sample.Validate(); err != nil {
		return domain.Sample{}, &domain.OpError{
			Op:   "mnist.sample",
			Kind: domain.KindDatasetUnavailable,
			Path: imgPath,
			Err:  err,
		}
	}

	s.log.Debug("mnist.sample.loaded", "index", index, "label", label, "count", hdr.Count)
	return sample, nil
}

func (s *Source) readError(path string, err error) error {
	var ie *indexError
	if errors.As(err, &ie) {
		return &domain.OpError{
			Op:   "mnist.sample",
			Kind: domain.KindIndexOutOfRange,
			Err:  fmt.Errorf("%w: %s", domain.ErrIndexOutOfRange, ie.Error()),
		}
	}
	return &domain.OpError{
		Op:   "mnist.read",
		Kind: domain.KindDatasetUnavailable,
		Path: path,
		Err:  err,
	}
}

// ensure returns the local path of f, downloading it when the cached copy is
// missing or fails its digest.
func (s *Source) ensure(ctx context.Context, f File) (string, error) {
	path := filepath.Join(s.dir, f.Name)

	if _, err := os.Stat(path); err == nil {
		ok, err := matchesDigest(path, f.SHA256)
		if err != nil {
			return "", unavailable("mnist.verify", path, err)
		}
		if ok {
			return path, nil
		}
		s.log.Warn("mnist.cache.digest_mismatch", "path", path)
		_ = os.Remove(path)
	} else if !os.IsNotExist(err) {
		return "", unavailable("mnist.stat", path, err)
	}

	if err := s.download(ctx, f, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Source) download(ctx context.Context, f File, path string) error {
	base := strings.TrimSpace(s.baseURL)
	if base == "" {
		return unavailable("mnist.download", path, errors.New("file not cached and no download url configured"))
	}
	url := strings.TrimRight(base, "/") + "/" + f.Name

	s.log.Info("mnist.download.start", "url", url, "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return unavailable("mnist.download", url, err)
	}
	resp, err := s.exec.Do(ctx, req)
	if err != nil {
		return unavailable("mnist.download", url, err)
	}
	if resp.Status != http.StatusOK {
		return unavailable("mnist.download", url, fmt.Errorf("unexpected status %d", resp.Status))
	}

	if f.SHA256 != "" {
		sum := sha256.Sum256(resp.BodyBytes)
		if got := hex.EncodeToString(sum[:]); got != f.SHA256 {
			return unavailable("mnist.download", url, fmt.Errorf("sha256 mismatch: got %s", got))
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return unavailable("mnist.mkdir", s.dir, err)
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, resp.BodyBytes, 0o644); err != nil {
		return unavailable("mnist.write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return unavailable("mnist.rename", path, err)
	}

	s.log.Info("mnist.download.done", "path", path, "bytes", len(resp.BodyBytes), "duration", resp.Duration.String())
	return nil
}

func matchesDigest(path, want string) (bool, error) {
	if want == "" {
		return true, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, err
	}
	return hex.EncodeToString(h.Sum(nil)) == want, nil
}

func unavailable(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindDatasetUnavailable,
		Path: path,
		Err:  fmt.Errorf("%w: %v", domain.ErrDatasetUnavailable, err),
	}
}
