package content

import (
	"context"
	"encoding/json"
	"httpmsg/application/http"
	"httpmsg/application/http/semantic"
	iolib "httpmsg/lib/io"
	"io"
	"sync/atomic"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Content is a message body together with its own headers.
type Content interface {
	Headers() *semantic.Headers

	// ReadAsStream returns the body as a reader.
	// Callers must close the returned reader.
	ReadAsStream(ctx context.Context) (io.ReadCloser, error)

	// Close releases resources owned by the content.
	// Calling Close more than once is a no-op.
	io.Closer
}

// BytesReader is implemented by contents that can hand out their bytes
// without going through a stream.
type BytesReader interface {
	ReadAsBytes(ctx context.Context) ([]byte, error)
}

const initialSinkCapacity = 256

var ErrInvalidUTF8 = errors.Wrap(semantic.ErrValidation, "content is not valid UTF-8")

// ReadAsBytes materializes the whole body of c.
func ReadAsBytes(ctx context.Context, c Content) ([]byte, error) {
	if r, ok := c.(BytesReader); ok {
		return r.ReadAsBytes(ctx)
	}

	stream, err := c.ReadAsStream(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "opening content stream")
	}
	defer stream.Close()

	sink, err := iolib.NewSink(initialSinkCapacity)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(sink, &ctxReader{ctx: ctx, r: stream}); err != nil {
		return nil, errors.Wrap(err, "draining content stream")
	}
	if err := sink.Close(); err != nil {
		return nil, err
	}

	return sink.Written()
}

// ReadAsString decodes the body as UTF-8, rejecting invalid sequences.
func ReadAsString(ctx context.Context, c Content) (string, error) {
	b, err := ReadAsBytes(ctx, c)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// ReadAsJSON decodes the body into v.
func ReadAsJSON(ctx context.Context, c Content, v any) error {
	b, err := ReadAsBytes(ctx, c)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrap(err, "decoding json content")
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

type disposable struct{ disposed atomic.Bool }

func (d *disposable) ensureOpen() error {
	if d.disposed.Load() {
		return semantic.ErrObjectDisposed
	}
	return nil
}

// dispose reports whether this call is the one that disposed.
func (d *disposable) dispose() bool {
	return d.disposed.CompareAndSwap(false, true)
}

// newHeadersWithType creates headers carrying the given media type.
// Parameters in contentType become separate values.
func newHeadersWithType(contentType string) *semantic.Headers {
	h := semantic.NewHeaders()

	field := http.Field{Name: "Content-Type", Value: contentType}
	for _, v := range field.Values(semantic.HeaderSeparator) {
		// Values are split on the separator and the name is constant.
		_ = h.Append(field.Name, v)
	}
	return h
}
