// Package resource loads pages and stylesheets from files and HTTP.
package resource

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/config"
	"github.com/Arun03Kumar/browser/pkg/logging"
)

// Resource is a fetched document.
type Resource struct {
	// URL is the absolute URL the body came from, used as the base for
	// relative links inside it.
	URL         string
	Body        []byte
	ContentType string
}

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (*Resource, error)
}

// DefaultFetcher loads http and https URLs with an HTTP client, and
// file URLs and plain paths from disk.
type DefaultFetcher struct {
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

func NewFetcher(cfg config.FetchConfig) *DefaultFetcher {
	return &DefaultFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		log:       logging.L().Named("fetch"),
	}
}

// Fetch retrieves the resource at uri.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) (*Resource, error) {
	u, err := Normalize(uri)
	if err != nil {
		return nil, err
	}
	f.log.Debug("fetching", zap.String("url", u))
	if IsNetworkURL(u) {
		return f.fetchHTTP(ctx, u)
	}
	return fetchFile(u)
}

func (f *DefaultFetcher) fetchHTTP(ctx context.Context, rawURL string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return f.do(req)
}

// Post submits an urlencoded form body to an http or https URL, as a form
// with method="post" does.
func (f *DefaultFetcher) Post(ctx context.Context, uri, body string) (*Resource, error) {
	if !IsNetworkURL(uri) {
		return nil, fmt.Errorf("cannot post to %s: not an http URL", uri)
	}
	f.log.Debug("posting", zap.String("url", uri), zap.Int("bytes", len(body)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *DefaultFetcher) do(req *http.Request) (*Resource, error) {
	rawURL := req.URL.String()
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Resource{
		URL:         resp.Request.URL.String(),
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func fetchFile(fileURL string) (*Resource, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileURL, err)
	}
	path := filepath.FromSlash(u.Path)
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Resource{
		URL:         fileURL,
		Body:        body,
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

// FetchCSS fetches a stylesheet and returns its text. A response whose
// content type is neither text nor CSS is rejected.
func FetchCSS(ctx context.Context, f Fetcher, uri string) (string, error) {
	res, err := f.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(res.ContentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", res.ContentType)
	}
	return string(res.Body), nil
}

// Normalize turns uri into an absolute URL. Plain paths become file URLs.
func Normalize(uri string) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("empty URL")
	}
	if u, err := url.Parse(uri); err == nil {
		switch u.Scheme {
		case "http", "https", "file":
			return u.String(), nil
		case "":
		default:
			if len(u.Scheme) > 1 {
				return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
			}
			// A one-letter scheme is a Windows drive letter.
		}
	}
	return FileURL(uri)
}

// FileURL returns the file URL of path, made absolute.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

// ResolveURL resolves a possibly-relative reference against base. If
// either fails to parse, ref is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL reports whether s is an http or https URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// MayLoad reports whether a document at base may load uri. Pages served
// over the network never reach local files.
func MayLoad(base, uri string) bool {
	return !IsNetworkURL(base) || IsNetworkURL(uri)
}
