// Package cookies reads named values out of a browser-style cookie string.
package cookies

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Source provides the raw "name=value; name2=value2" cookie string.
// Implementations are read-only from the reader's point of view.
type Source interface {
	CookieString() (string, error)
}

// Static is a Source backed by a fixed cookie string
type Static string

func (s Static) CookieString() (string, error) {
	return string(s), nil
}

// JarSource renders the cookies an http.CookieJar holds for URL as a cookie string
type JarSource struct {
	Jar http.CookieJar
	URL *url.URL
}

func (j JarSource) CookieString() (string, error) {
	if j.Jar == nil || j.URL == nil {
		return "", nil
	}

	parts := make([]string, 0)
	for _, c := range j.Jar.Cookies(j.URL) {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; "), nil
}

// Reader looks up cookies from a Source
type Reader struct {
	source Source
	logger *slog.Logger
}

// NewReader creates a Reader; a nil logger falls back to slog.Default
func NewReader(source Source, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{source: source, logger: logger}
}

// Get returns the decoded value of the first cookie called name.
// An unreadable source is treated as an empty cookie store.
func (r *Reader) Get(name string) (string, bool) {
	if r == nil || r.source == nil {
		return "", false
	}

	raw, err := r.source.CookieString()
	if err != nil {
		r.logger.Debug("cookie source unavailable", "error", err)
		return "", false
	}

	return Lookup(raw, name)
}

// Lookup scans raw for the first "name=value" segment and returns the
// percent-decoded value. Segments are trimmed before matching and segments
// that do not start with "name=" are skipped. Malformed percent-encoding,
// or escapes that decode to invalid UTF-8, yield the undecoded value.
func Lookup(raw, name string) (string, bool) {
	if raw == "" {
		return "", false
	}

	prefix := name + "="
	for _, segment := range strings.Split(raw, ";") {
		segment = strings.TrimSpace(segment)
		if !strings.HasPrefix(segment, prefix) {
			continue
		}

		value := segment[len(prefix):]
		if decoded, err := url.PathUnescape(value); err == nil && utf8.ValidString(decoded) {
			return decoded, true
		}
		return value, true
	}

	return "", false
}
