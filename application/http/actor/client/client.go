package client

import (
	"context"
	"httpmsg/application/http/content"
	"httpmsg/application/http/handler"
	"httpmsg/application/http/message"
	"httpmsg/application/http/semantic"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

type Client struct {
	handler        handler.Handler
	disposeHandler bool

	mu          sync.RWMutex
	baseAddress *url.URL
	defaults    *semantic.Headers

	logger *slog.Logger
	closed atomic.Bool
}

func New(h handler.Handler, logger *slog.Logger, opts Options) (*Client, error) {
	if h == nil {
		return nil, errors.Wrap(semantic.ErrValidation, "handler is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	defaults, err := semantic.HeadersFrom(opts.DefaultHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "default headers")
	}

	client := &Client{
		handler:        h,
		disposeHandler: opts.DisposeHandler,
		defaults:       defaults,
		logger:         logger,
	}
	if err := client.SetBaseAddress(opts.BaseAddress); err != nil {
		return nil, err
	}

	return client, nil
}

func (c *Client) BaseAddress() *url.URL {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.baseAddress
}

// SetBaseAddress sets the address relative request URIs resolve against.
// nil clears it.
func (c *Client) SetBaseAddress(u *url.URL) error {
	if u != nil && !u.IsAbs() {
		return errors.Wrapf(semantic.ErrValidation, "base address %q is not absolute", u)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.baseAddress = u
	return nil
}

// DefaultRequestHeaders returns the live default headers of the client.
func (c *Client) DefaultRequestHeaders() *semantic.Headers {
	return c.defaults
}

// Send dispatches req through the handler chain.
// Once the handler has been called, req is closed regardless of the outcome.
// The returned response is owned by the caller.
func (c *Client) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	if c.closed.Load() {
		return nil, semantic.ErrObjectDisposed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := c.resolveURL(req); err != nil {
		return nil, err
	}

	body, err := req.Content()
	if err != nil {
		return nil, err
	}
	c.mergeHeaders(req.Headers(), body)

	c.logger.DebugContext(ctx, "dispatching request",
		slog.String("method", req.Method().String()),
		slog.Any("url", req.URL()),
	)

	res, err := c.dispatch(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "sending request")
	}

	return res, nil
}

func (c *Client) dispatch(ctx context.Context, req *message.Request) (*message.Response, error) {
	defer func() {
		if err := req.Close(); err != nil {
			c.logger.WarnContext(ctx, "closing request", slog.String("error", err.Error()))
		}
	}()

	return c.handler.Send(ctx, req)
}

func (c *Client) resolveURL(req *message.Request) error {
	u := req.URL()
	if u.IsAbs() {
		return nil
	}

	base := c.BaseAddress()
	if base == nil {
		return errors.Wrapf(semantic.ErrInvalidOperation,
			"request uri %q is relative and no base address is set", u)
	}

	req.SetURL(base.ResolveReference(u))
	return nil
}

// mergeHeaders applies content headers over request headers, then fills in
// client defaults the request does not have.
func (c *Client) mergeHeaders(dst *semantic.Headers, body content.Content) {
	if body != nil {
		body.Headers().Range(func(name string, values []string) bool {
			dst.Del(name)
			for _, v := range values {
				// Values were validated when they entered body's headers.
				_ = dst.Append(name, v)
			}
			return true
		})
	}

	c.defaults.Range(func(name string, values []string) bool {
		if dst.Has(name) {
			return true
		}
		for _, v := range values {
			_ = dst.Append(name, v)
		}
		return true
	})
}

// Close is idempotent. The handler is closed only when the client owns it.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if !c.disposeHandler {
		return nil
	}
	return errors.Wrap(c.handler.Close(), "closing handler")
}

func (c *Client) Get(ctx context.Context, rawURI string) (*message.Response, error) {
	return c.send(ctx, semantic.MethodGet, rawURI, nil)
}

func (c *Client) Delete(ctx context.Context, rawURI string) (*message.Response, error) {
	return c.send(ctx, semantic.MethodDelete, rawURI, nil)
}

func (c *Client) Post(ctx context.Context, rawURI string, body content.Content) (*message.Response, error) {
	return c.send(ctx, semantic.MethodPost, rawURI, body)
}

func (c *Client) Put(ctx context.Context, rawURI string, body content.Content) (*message.Response, error) {
	return c.send(ctx, semantic.MethodPut, rawURI, body)
}

func (c *Client) Patch(ctx context.Context, rawURI string, body content.Content) (*message.Response, error) {
	return c.send(ctx, semantic.MethodPatch, rawURI, body)
}

func (c *Client) send(ctx context.Context, method semantic.Method, rawURI string, body content.Content) (*message.Response, error) {
	req, err := message.NewRequest(method, rawURI)
	if err != nil {
		return nil, err
	}
	if body != nil {
		if err := req.SetContent(body); err != nil {
			return nil, err
		}
	}
	return c.Send(ctx, req)
}
