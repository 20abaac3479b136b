package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultHTTPTimeout = 10 * time.Second
)

// Source provides the raw bytes of a calendar CSV
type Source interface {
	// Open returns a reader over the calendar content
	Open(ctx context.Context) (io.ReadCloser, error)

	// String describes the source for logs and errors
	String() string
}

// NewSource picks an HTTP source for http(s) locations and a file source otherwise
func NewSource(location string, timeout time.Duration, logger *zap.Logger) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout, logger)
	}
	return NewFileSource(location)
}

// FileSource reads the calendar from a local file
type FileSource struct {
	path string
}

// NewFileSource creates a new FileSource
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Open opens the calendar file
func (fs *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if fs.path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSourceNotFound)
	}

	file, err := os.Open(fs.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, fs.path, err)
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s is not a readable file", ErrSourceNotFound, fs.path)
	}

	return file, nil
}

func (fs *FileSource) String() string {
	return fs.path
}

// HTTPSource downloads the calendar from a URL
type HTTPSource struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPSource creates a new HTTPSource instance
func NewHTTPSource(url string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Open fetches the calendar; the caller closes the returned body
func (hs *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	hs.logger.Debug("Fetching calendar data", zap.String("url", hs.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hs.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, hs.url, err)
	}

	resp, err := hs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %v", ErrSourceNotFound, hs.url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned status %d", ErrSourceNotFound, hs.url, resp.StatusCode)
	}

	return resp.Body, nil
}

func (hs *HTTPSource) String() string {
	return hs.url
}

// FallbackSource opens the primary source and falls back to a second one
type FallbackSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger

	mu     sync.Mutex
	opened Source // source behind the last successful Open
}

// NewFallbackSource creates a new FallbackSource
func NewFallbackSource(primary, fallback Source, logger *zap.Logger) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Open tries the primary source first
func (fs *FallbackSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := fs.primary.Open(ctx)
	if err == nil {
		fs.setOpened(fs.primary)
		return rc, nil
	}

	fs.logger.Warn("Primary calendar source failed, falling back",
		zap.String("primary", fs.primary.String()),
		zap.String("fallback", fs.fallback.String()),
		zap.Error(err))

	rc, fallbackErr := fs.fallback.Open(ctx)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}

	fs.setOpened(fs.fallback)
	return rc, nil
}

func (fs *FallbackSource) setOpened(src Source) {
	fs.mu.Lock()
	fs.opened = src
	fs.mu.Unlock()
}

// String names the source actually read once Open has succeeded
func (fs *FallbackSource) String() string {
	fs.mu.Lock()
	opened := fs.opened
	fs.mu.Unlock()

	if opened != nil {
		return opened.String()
	}
	return fs.primary.String() + " (fallback: " + fs.fallback.String() + ")"
}
