package content

import (
	"bytes"
	"context"
	"httpmsg/application/http"
	"httpmsg/application/http/semantic"
	iolib "httpmsg/lib/io"
	"io"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	boundaryDelimiter = "--"
	crlf              = "\r\n"
	defaultSubtype    = "mixed"
)

// Multipart is content made of other contents, separated by a boundary.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc2046#section-5.1
type Multipart struct {
	disposable

	headers  *semantic.Headers
	boundary string

	mu    sync.Mutex
	parts []Content
}

// NewMultipart creates multipart content of the given subtype ("mixed" when empty).
// An empty boundary is replaced with a random one.
func NewMultipart(subtype, boundary string) (*Multipart, error) {
	if subtype == "" {
		subtype = defaultSubtype
	}

	if boundary == "" {
		var err error
		if boundary, err = generateBoundary(); err != nil {
			return nil, err
		}
	}
	if err := validateBoundary(boundary); err != nil {
		return nil, err
	}

	headers := semantic.NewHeaders()
	if err := headers.Add("Content-Type", "multipart/"+subtype); err != nil {
		return nil, errors.Wrap(err, "invalid subtype")
	}
	if err := headers.Append("Content-Type", `boundary="`+boundary+`"`); err != nil {
		return nil, err
	}

	return &Multipart{headers: headers, boundary: boundary}, nil
}

func (c *Multipart) Headers() *semantic.Headers { return c.headers }

func (c *Multipart) Boundary() string { return c.boundary }

// Add appends part. The multipart takes ownership of it.
func (c *Multipart) Add(part Content) error {
	if err := c.ensureOpen(); err != nil {
		return err
	}
	if part == nil {
		return errors.Wrap(semantic.ErrValidation, "part cannot be nil")
	}

	c.mu.Lock()
	c.parts = append(c.parts, part)
	c.mu.Unlock()

	return nil
}

func (c *Multipart) Parts() []Content {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts := make([]Content, len(c.parts))
	copy(parts, c.parts)
	return parts
}

// ReadAsStream materializes every part concurrently and assembles them in order.
func (c *Multipart) ReadAsStream(ctx context.Context) (io.ReadCloser, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	parts := c.Parts()
	if len(parts) == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}

	bodies := make([][]byte, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			b, err := ReadAsBytes(gctx, part)
			if err != nil {
				return errors.Wrapf(err, "reading part %d", i)
			}
			bodies[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b, err := c.assemble(parts, bodies)
	if err != nil {
		return nil, errors.Wrap(err, "assembling multipart body")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// assemble writes:
//
//	--boundary CRLF
//	(Name: v1; v2 CRLF)* CRLF body CRLF --boundary   for every part
//	--
func (c *Multipart) assemble(parts []Content, bodies [][]byte) ([]byte, error) {
	delimiter := boundaryDelimiter + c.boundary

	size := len(delimiter) + len(crlf) + len(boundaryDelimiter)
	for _, body := range bodies {
		size += len(body) + 2*len(crlf) + len(delimiter)
	}

	sink, err := iolib.NewSink(size)
	if err != nil {
		return nil, err
	}

	if _, err := iolib.WriteStrings(sink, delimiter, crlf); err != nil {
		return nil, err
	}

	for i, part := range parts {
		var werr error
		part.Headers().Range(func(name string, values []string) bool {
			field := http.Field{Name: name, Value: semantic.Join(values)}
			_, werr = iolib.WriteStrings(sink, field.Text(), crlf)
			return werr == nil
		})
		if werr != nil {
			return nil, werr
		}

		if _, err := iolib.WriteStrings(sink, crlf); err != nil {
			return nil, err
		}
		if _, err := iolib.WriteFull(sink, bodies[i]); err != nil {
			return nil, err
		}
		if _, err := iolib.WriteStrings(sink, crlf, delimiter); err != nil {
			return nil, err
		}
	}

	if _, err := iolib.WriteStrings(sink, boundaryDelimiter); err != nil {
		return nil, err
	}

	if err := sink.Close(); err != nil {
		return nil, err
	}
	return sink.Written()
}

// Close closes every part, even when some of them fail.
func (c *Multipart) Close() error {
	if !c.dispose() {
		return nil
	}

	var first error
	for i, part := range c.Parts() {
		if err := part.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "closing part %d", i)
		}
	}
	return first
}
