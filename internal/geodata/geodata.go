// Package geodata fetches and caches the region geometry document.
package geodata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"geoquiz/internal/geom"
	"geoquiz/internal/logger"
	"geoquiz/internal/metrics"
)

// ErrNoRegions is returned when a document decodes but nothing passes the
// load filter.
var ErrNoRegions = errors.New("geodata: no usable regions")

// ErrTooLarge is returned when a remote document exceeds the size cap.
var ErrTooLarge = errors.New("geodata: document too large")

// maxDocumentSize caps remote downloads unless Loader.MaxBytes is set.
const maxDocumentSize = 64 << 20

// Loader fetches a GeoJSON document over HTTP, caching the raw bytes on disk.
type Loader struct {
	URL      string
	CacheDir string // empty disables the disk cache
	Client   *http.Client
	Options  geom.DecodeOptions
	MaxBytes int64 // 0 means maxDocumentSize
}

// Load returns the filtered regions. A cached copy is used when present; a
// cached copy that no longer decodes is discarded and refetched.
func (l *Loader) Load(ctx context.Context) ([]geom.Region, error) {
	path := l.cachePath()
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			regions, err := l.decode(data, "cache")
			if err == nil {
				return regions, nil
			}
			logger.L().Warn("geodata_cache_invalid", "path", path, "err", err)
			_ = os.Remove(path)
		}
	}

	data, err := l.fetch(ctx)
	if err != nil {
		metrics.GeometryLoadsTotal.WithLabelValues("remote", "error").Inc()
		return nil, err
	}
	regions, err := l.decode(data, "remote")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := writeCache(path, data); err != nil {
			logger.L().Warn("geodata_cache_write", "path", path, "err", err)
		}
	}
	return regions, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("geodata request: %w", err)
	}
	req.Header.Set("User-Agent", "geoquiz/1.0")
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	t0 := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geodata fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geodata fetch: server returned status %d", resp.StatusCode)
	}
	limit := l.MaxBytes
	if limit <= 0 {
		limit = maxDocumentSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("geodata read: %w", err)
	}
	if int64(len(data)) > limit {
		metrics.GeometryLoadsTotal.WithLabelValues("remote", "error").Inc()
		return nil, fmt.Errorf("geodata fetch %s: %w (over %d bytes)", l.URL, ErrTooLarge, limit)
	}
	logger.L().Info("geodata_fetched", "url", l.URL, "bytes", len(data), "duration_ms", time.Since(t0).Milliseconds())
	return data, nil
}

func (l *Loader) decode(data []byte, source string) ([]geom.Region, error) {
	regions, stats, err := geom.DecodeFeatureCollection(data, l.Options)
	if err == nil && len(regions) == 0 {
		err = ErrNoRegions
	}
	if err != nil {
		metrics.GeometryLoadsTotal.WithLabelValues(source, "error").Inc()
		return nil, err
	}
	metrics.GeometryLoadsTotal.WithLabelValues(source, "ok").Inc()
	logger.L().Info("geodata_decoded", "source", source,
		"features", stats.Features, "kept", stats.Kept(),
		"no_geometry", stats.NoGeometry, "unsupported", stats.Unsupported,
		"empty", stats.Empty, "unnamed", stats.Unnamed)
	return regions, nil
}

func (l *Loader) cachePath() string {
	if l.CacheDir == "" || l.URL == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(l.URL))
	return filepath.Join(l.CacheDir, hex.EncodeToString(sum[:8])+".geojson")
}

// writeCache writes through a temp file so a crash never leaves a torn document.
func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadFile reads a local document through the same filter.
func LoadFile(path string, opts geom.DecodeOptions) ([]geom.Region, error) {
	regions, stats, err := geom.LoadFile(path, opts)
	if err == nil && len(regions) == 0 {
		err = ErrNoRegions
	}
	if err != nil {
		metrics.GeometryLoadsTotal.WithLabelValues("file", "error").Inc()
		return nil, fmt.Errorf("geodata %s: %w", path, err)
	}
	metrics.GeometryLoadsTotal.WithLabelValues("file", "ok").Inc()
	logger.L().Info("geodata_decoded", "source", "file", "features", stats.Features, "kept", stats.Kept())
	return regions, nil
}
