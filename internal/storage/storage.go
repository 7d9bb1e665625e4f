// Package storage holds the object store used for product images.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"
)

// ObjectStore stores binary blobs by key and exposes them via public URLs.
type ObjectStore interface {
	// Upload stores body under key and returns its public retrieval URL.
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
	// Remove deletes the blob stored under key.
	Remove(ctx context.Context, key string) error
}

// ObjectKey derives a storage key from the upload time, the file's position in
// its batch and the client file name:
// "<unix millis>-<seq>-<base name with whitespace replaced by _>".
func ObjectKey(at time.Time, seq int, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" {
		name = "upload"
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("%d-%d-%s", at.UnixMilli(), seq, name)
}

// KeyFromURL returns the trailing path segment of a public URL.
func KeyFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return raw[strings.LastIndex(raw, "/")+1:]
}
