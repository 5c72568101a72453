package content

import (
	"context"
	"httpmsg/application/http/semantic"
	"io"
	"sync"

	"github.com/pkg/errors"
)

var ErrStreamInUse = errors.Wrap(semantic.ErrInvalidOperation, "stream content is already being read")

type streamState int

const (
	streamNotStarted streamState = iota
	streamInProgress
	streamConsumed
	streamCancelled
)

// Stream is content over an externally supplied reader. It can be read only once.
type Stream struct {
	headers *semantic.Headers

	mu      sync.Mutex
	state   streamState
	rc      io.ReadCloser
	release func() error
}

// NewStream takes ownership of rc. An empty contentType selects application/octet-stream.
func NewStream(rc io.ReadCloser, contentType string) *Stream {
	if contentType == "" {
		contentType = defaultBytesType
	}

	return &Stream{
		headers: newHeadersWithType(contentType),
		rc:      rc,
		release: sync.OnceValue(rc.Close),
	}
}

func (c *Stream) Headers() *semantic.Headers { return c.headers }

func (c *Stream) ReadAsStream(ctx context.Context) (io.ReadCloser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case streamNotStarted:
		c.state = streamInProgress
		return &streamReader{c: c}, nil
	case streamInProgress:
		return nil, ErrStreamInUse
	default:
		return nil, semantic.ErrObjectDisposed
	}
}

// Close cancels a stream which is not drained yet.
func (c *Stream) Close() error {
	c.mu.Lock()
	if c.state == streamCancelled {
		c.mu.Unlock()
		return nil
	}
	if c.state != streamConsumed {
		c.state = streamCancelled
	}
	c.mu.Unlock()

	return c.release()
}

// finish moves an in-progress stream to consumed.
func (c *Stream) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == streamInProgress {
		c.state = streamConsumed
	}
}

func (c *Stream) cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state == streamCancelled
}

type streamReader struct{ c *Stream }

func (r *streamReader) Read(p []byte) (int, error) {
	if r.c.cancelled() {
		return 0, semantic.ErrObjectDisposed
	}

	n, err := r.c.rc.Read(p)
	if err == io.EOF {
		r.c.finish()
	}
	return n, err
}

func (r *streamReader) Close() error {
	r.c.finish()
	return r.c.release()
}
