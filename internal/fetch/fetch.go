// Package fetch retrieves corpus and word-list content from files, URLs,
// and standard input.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Size limits to prevent memory overload. Sentence corpora can be large
// but a 200MB TSV is already tens of millions of sentences.
const (
	MaxFileSizeBytes = 200 * 1024 * 1024
	MaxHTTPSizeBytes = 200 * 1024 * 1024
)

// HTTP client timeout configuration
const HTTPRequestTimeout = 30 * time.Second

var (
	httpDialTimeout           = HTTPRequestTimeout / 6
	httpTLSTimeout            = HTTPRequestTimeout / 6
	httpResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is shared across fetches; safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: httpDialTimeout,
		}).Dial,
		TLSHandshakeTimeout:   httpTLSTimeout,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// GetContent retrieves content from a source and returns an io.ReadCloser.
// Three source shapes are supported:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
//
// ctx allows cancellation of HTTP fetches.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return fetchURL(ctx, source)
	default:
		return fetchFile(source)
	}
}

func fetchURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "lexsift/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// a declared Content-Length beyond the limit fails fast
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)",
				size, MaxHTTPSizeBytes)
		}
	}

	// responses without Content-Length are limited while reading
	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, nil
}

func fetchFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}

	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return file, nil
}
