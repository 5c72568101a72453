package content

import (
	"bytes"
	"context"
	"encoding/json"
	"httpmsg/application/http/semantic"
	"io"

	"github.com/pkg/errors"
)

const (
	defaultBytesType  = "application/octet-stream"
	defaultStringType = "text/plain"
	jsonType          = "application/json"
)

// Bytes is content backed by a byte slice.
// The slice is shared, not copied.
type Bytes struct {
	disposable

	headers *semantic.Headers
	b       []byte
}

// NewBytes creates content over b. An empty contentType selects application/octet-stream.
func NewBytes(b []byte, contentType string) *Bytes {
	if contentType == "" {
		contentType = defaultBytesType
	}
	return &Bytes{headers: newHeadersWithType(contentType), b: b}
}

// NewString creates content over the UTF-8 bytes of s. An empty contentType selects text/plain.
func NewString(s, contentType string) *Bytes {
	if contentType == "" {
		contentType = defaultStringType
	}
	return NewBytes([]byte(s), contentType)
}

type jsonOptions struct {
	prefix, indent string
}

type JSONOption func(*jsonOptions)

func WithIndent(prefix, indent string) JSONOption {
	return func(o *jsonOptions) {
		o.prefix = prefix
		o.indent = indent
	}
}

// NewJSON creates application/json content from the encoding of v.
func NewJSON(v any, opts ...JSONOption) (*Bytes, error) {
	var o jsonOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		b   []byte
		err error
	)
	if o.prefix == "" && o.indent == "" {
		b, err = json.Marshal(v)
	} else {
		b, err = json.MarshalIndent(v, o.prefix, o.indent)
	}
	if err != nil {
		return nil, errors.Wrapf(semantic.ErrValidation, "encoding json content: %s", err)
	}

	return NewBytes(b, jsonType), nil
}

func (c *Bytes) Headers() *semantic.Headers { return c.headers }

func (c *Bytes) ReadAsStream(ctx context.Context) (io.ReadCloser, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(c.b)), nil
}

func (c *Bytes) ReadAsBytes(ctx context.Context) ([]byte, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	return c.b, nil
}

func (c *Bytes) Close() error {
	c.dispose()
	return nil
}

// Empty is content without a body.
type Empty struct {
	disposable

	headers *semantic.Headers
}

func NewEmpty() *Empty {
	return &Empty{headers: semantic.NewHeaders()}
}

func (c *Empty) Headers() *semantic.Headers { return c.headers }

func (c *Empty) ReadAsStream(ctx context.Context) (io.ReadCloser, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (c *Empty) ReadAsBytes(ctx context.Context) ([]byte, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	return []byte{}, nil
}

func (c *Empty) Close() error {
	c.dispose()
	return nil
}
