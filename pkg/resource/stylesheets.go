package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/Arun03Kumar/browser/pkg/html"
)

// LinkedStylesheets fetches every <link rel="stylesheet" href> under root,
// resolving hrefs against base, and returns the sheets concatenated in
// document order. A sheet that fails to load, or that a network page may
// not load, is skipped and its error returned alongside the rest.
func LinkedStylesheets(ctx context.Context, f Fetcher, root *html.Node, base string) (string, []error) {
	var sb strings.Builder
	var errs []error
	for _, link := range root.FindAll("link") {
		rel, _ := link.GetAttribute("rel")
		href, ok := link.GetAttribute("href")
		if !ok || strings.TrimSpace(href) == "" || !hasToken(rel, "stylesheet") {
			continue
		}
		uri := ResolveURL(base, strings.TrimSpace(href))
		if !MayLoad(base, uri) {
			errs = append(errs, fmt.Errorf("stylesheet %s: refusing local resource from network page", uri))
			continue
		}
		css, err := FetchCSS(ctx, f, uri)
		if err != nil {
			errs = append(errs, fmt.Errorf("stylesheet %s: %w", uri, err))
			continue
		}
		sb.WriteString(css)
		sb.WriteByte('\n')
	}
	return sb.String(), errs
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
