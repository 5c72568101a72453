package handler

import (
	"context"
	"httpmsg/application/http/message"
	"log/slog"

	"github.com/benbjohnson/clock"
)

// Logging logs every request passing through it.
type Logging struct {
	*Delegating

	logger *slog.Logger
	clock  clock.Clock
}

func NewLogging(inner Handler, disposeInner bool, logger *slog.Logger, clk clock.Clock) *Logging {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if clk == nil {
		clk = clock.New()
	}

	return &Logging{
		Delegating: NewDelegating(inner, disposeInner),
		logger:     logger,
		clock:      clk,
	}
}

func (l *Logging) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	start := l.clock.Now()
	attrs := []any{
		slog.String("method", req.Method().String()),
		slog.Any("url", req.URL()),
	}

	res, err := l.Delegating.Send(ctx, req)
	elapsed := l.clock.Since(start)
	if err != nil {
		l.logger.WarnContext(ctx, "request failed", append(attrs,
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)...)
		return nil, err
	}

	l.logger.DebugContext(ctx, "request completed", append(attrs,
		slog.Int("status", int(res.StatusCode())),
		slog.Duration("elapsed", elapsed),
	)...)
	return res, nil
}
