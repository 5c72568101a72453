package handler

import (
	"bytes"
	"context"
	"httpmsg/application/http"
	"httpmsg/application/http/content"
	"httpmsg/application/http/message"
	"httpmsg/application/http/semantic"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Transport performs the actual network exchange.
type Transport interface {
	Exchange(ctx context.Context, out *http.Outgoing) (*http.Incoming, error)
}

type TransportFunc func(ctx context.Context, out *http.Outgoing) (*http.Incoming, error)

func (f TransportFunc) Exchange(ctx context.Context, out *http.Outgoing) (*http.Incoming, error) {
	return f(ctx, out)
}

// TransportHandler terminates a handler chain by calling a [Transport].
type TransportHandler struct {
	transport Transport
	logger    *slog.Logger

	closed atomic.Bool
}

func NewTransportHandler(t Transport, logger *slog.Logger) *TransportHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TransportHandler{transport: t, logger: logger}
}

func (h *TransportHandler) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	if h.closed.Load() {
		return nil, semantic.ErrObjectDisposed
	}

	out, err := h.outgoing(ctx, req)
	if err != nil {
		return nil, err
	}
	if c, ok := out.Body.(io.Closer); ok {
		defer c.Close()
	}

	in, err := h.transport.Exchange(ctx, out)
	if err != nil {
		return nil, errors.Wrap(err, "transport exchange")
	}
	if in == nil {
		return nil, errors.Wrap(semantic.ErrInvalidOperation, "transport returned no response")
	}

	return h.response(in), nil
}

func (h *TransportHandler) outgoing(ctx context.Context, req *message.Request) (*http.Outgoing, error) {
	out := &http.Outgoing{
		Method:        req.Method().String(),
		URL:           req.URL(),
		Header:        make(map[string]string, req.Headers().Len()),
		ContentLength: -1,
	}

	req.Headers().Range(func(name string, values []string) bool {
		out.Header[name] = semantic.Join(values)
		return true
	})

	c, err := req.Content()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return out, nil
	}

	if r, ok := c.(content.BytesReader); ok {
		b, err := r.ReadAsBytes(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "opening request content")
		}
		out.Body = bytes.NewReader(b)
		out.ContentLength = int64(len(b))
		return out, nil
	}

	body, err := c.ReadAsStream(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "opening request content")
	}
	out.Body = body

	return out, nil
}

func (h *TransportHandler) response(in *http.Incoming) *message.Response {
	res := message.NewResponse(semantic.StatusCode(in.StatusCode))

	if in.Body != nil {
		res.SetContent(content.NewStream(in.Body, ""))
	}

	headers := res.Headers()
	for _, field := range in.Header {
		values := field.Values(semantic.HeaderSeparator)
		if len(values) == 0 {
			// An empty field is still present.
			values = []string{""}
		}
		for _, v := range values {
			if err := headers.Append(field.Name, v); err != nil {
				h.logger.Debug("skipping response header", slog.String("name", field.Name), slog.String("error", err.Error()))
				break
			}
		}
	}

	return res
}

func (h *TransportHandler) Close() error {
	h.closed.Store(true)
	return nil
}
