package handler

import (
	"context"
	"httpmsg/application/http/message"
	"httpmsg/application/http/semantic"
	"io"
	"sync/atomic"
)

// Handler processes a request into a response.
// Close releases the handler. Calling Close more than once is a no-op.
type Handler interface {
	Send(ctx context.Context, req *message.Request) (*message.Response, error)
	io.Closer
}

// Delegating forwards every request to an inner handler.
// Handlers adding behavior embed it and override Send.
type Delegating struct {
	inner        Handler
	disposeInner bool

	closed atomic.Bool
}

// NewDelegating wraps inner. If disposeInner is false, inner may be shared
// and is left open when the delegating handler is closed.
func NewDelegating(inner Handler, disposeInner bool) *Delegating {
	return &Delegating{inner: inner, disposeInner: disposeInner}
}

func (d *Delegating) Inner() Handler { return d.inner }

func (d *Delegating) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	if d.closed.Load() {
		return nil, semantic.ErrObjectDisposed
	}
	return d.inner.Send(ctx, req)
}

func (d *Delegating) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}

	if d.disposeInner {
		return d.inner.Close()
	}
	return nil
}
