package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StdinSource is the source name that reads the snapshot from stdin.
const StdinSource = "-"

// IsURL reports whether source is an http(s) URL.
func IsURL(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load reads a page snapshot from source: "-" (or empty) reads stdin, an
// http(s) URL goes through f, anything else is a file path.
func Load(ctx context.Context, source string, stdin io.Reader, f Fetcher, opts Options) (Page, error) {
	switch {
	case source == "" || source == StdinSource:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return Page{}, fmt.Errorf("read stdin: %w", err)
		}
		return localPage("stdin", data), nil

	case IsURL(source):
		if f == nil {
			return Page{}, fmt.Errorf("no fetcher for %s", source)
		}
		return f.Fetch(ctx, source, opts)

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return Page{}, fmt.Errorf("read %s: %w", source, err)
		}
		abs, err := filepath.Abs(source)
		if err != nil {
			abs = source
		}
		return localPage("file://"+filepath.ToSlash(abs), data), nil
	}
}

func localPage(url string, data []byte) Page {
	html := string(data)
	return Page{
		URL:         url,
		HTML:        html,
		Title:       titleOf(html),
		ContentType: "text/html",
		FetchedAt:   time.Now(),
	}
}
