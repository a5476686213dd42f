package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/scottsawyer/commerce-printful/internal/config"
	"github.com/scottsawyer/commerce-printful/pkg/errors"
)

// Store downloads variant preview images and persists them under a
// configured base directory. Stored paths are recorded with the configured
// URI scheme, e.g. "public://color_tees/front.png".
type Store struct {
	baseDir    string
	scheme     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStore creates a new asset store.
func NewStore(cfg config.AssetsConfig, logger *zap.Logger) *Store {
	return &Store{
		baseDir: cfg.Directory,
		scheme:  cfg.Scheme,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// FetchAndStore downloads the asset at url and writes it to
// {baseDir}/{directory}/{filename}, creating the directory if needed.
// It returns the scheme-qualified path recorded on the variation.
func (s *Store) FetchAndStore(ctx context.Context, url, directory, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &errors.ErrAsset{URL: url, Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &errors.ErrAsset{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &errors.ErrAsset{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	destDir := filepath.Join(s.baseDir, directory)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", &errors.ErrAsset{URL: url, Err: fmt.Errorf("target directory %s: %w", destDir, err)}
	}

	destination := filepath.Join(destDir, filename)
	file, err := os.Create(destination)
	if err != nil {
		return "", &errors.ErrAsset{URL: url, Err: err}
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(destination)
		return "", &errors.ErrAsset{URL: url, Err: err}
	}

	s.logger.Debug("Stored variant asset",
		zap.String("url", url),
		zap.String("destination", destination),
	)

	return s.scheme + "://" + directory + "/" + filename, nil
}
