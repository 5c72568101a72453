package http

import (
	"io"
	"net/url"
	"strings"
)

// Outgoing is the flattened form of a request handed to a transport.
// Every header name maps to all of its values joined into one line.
type Outgoing struct {
	Method string
	URL    *url.URL
	Header map[string]string

	// Body is nil when the request has no content.
	Body io.Reader
	// ContentLength is -1 when the body length is not known up front.
	ContentLength int64
}

// Incoming is what a transport hands back.
type Incoming struct {
	StatusCode int
	Header     []Field

	// Body is nil when the response has no body.
	Body io.ReadCloser
}

// Field is a single header line.
type Field struct{ Name, Value string }

// Text returns the field formatted as a header line, without line terminator.
func (f Field) Text() string {
	b := new(strings.Builder)
	b.Grow(len(f.Name) + len(f.Value) + 2)
	b.WriteString(f.Name)
	b.WriteString(": ")
	b.WriteString(f.Value)
	return b.String()
}

// Values splits a joined field value into its individual values.
// Surrounding spaces are trimmed and empty pieces are dropped.
func (f Field) Values(sep string) []string {
	parts := strings.Split(f.Value, sep)

	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		values = append(values, part)
	}
	return values
}
