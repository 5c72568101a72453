package client

import (
	"context"
	"httpmsg/application/http/content"
	"httpmsg/application/http/message"
	"httpmsg/application/http/semantic"
	"log/slog"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingHandler snapshots what reaches the end of the chain.
type recordingHandler struct {
	calls   int
	closes  int
	ctx     context.Context
	url     string
	method  semantic.Method
	headers map[string][]string
	open    bool

	res *message.Response
	err error
}

func (h *recordingHandler) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	h.calls++
	h.ctx = ctx
	h.url = req.URL().String()
	h.method = req.Method()
	h.headers = req.Headers().Fields()
	h.open = !req.IsClosed()
	return h.res, h.err
}

func (h *recordingHandler) Close() error {
	h.closes++
	return nil
}

type ClientTestSuite struct {
	suite.Suite

	handler *recordingHandler
	client  *Client
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.handler = &recordingHandler{res: message.NewResponse(semantic.StatusOK)}
	s.client = s.newClient(Options{})
}

func (s *ClientTestSuite) newClient(opts Options) *Client {
	c, err := New(s.handler, slog.New(slog.DiscardHandler), opts)
	s.Require().NoError(err)
	return c
}

func (s *ClientTestSuite) newRequest(method semantic.Method, uri string) *message.Request {
	req, err := message.NewRequest(method, uri)
	s.Require().NoError(err)
	return req
}

func (s *ClientTestSuite) mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	s.Require().NoError(err)
	return u
}

func (s *ClientTestSuite) TestSend() {
	req := s.newRequest(semantic.MethodGet, "https://example.com/items")

	res, err := s.client.Send(context.Background(), req)
	s.Require().NoError(err)
	s.Same(s.handler.res, res)
	s.Equal(1, s.handler.calls)
	s.Equal("https://example.com/items", s.handler.url)
	s.Equal(semantic.MethodGet, s.handler.method)
}

func (s *ClientTestSuite) TestHeaderPrecedence() {
	s.client = s.newClient(Options{DefaultHeaders: map[string][]string{
		"H": {"def"},
		"Y": {"def"},
		"Z": {"def"},
	}})

	req := s.newRequest(semantic.MethodPost, "https://example.com/")
	s.Require().NoError(req.Headers().Add("H", "req"))
	s.Require().NoError(req.Headers().Add("z", "req"))

	body := content.NewString("abc", "text/plain")
	s.Require().NoError(body.Headers().Add("h", "content"))
	s.Require().NoError(req.SetContent(body))

	_, err := s.client.Send(context.Background(), req)
	s.Require().NoError(err)

	s.Equal(map[string][]string{
		"h":            {"content"},
		"Y":            {"def"},
		"z":            {"req"},
		"Content-Type": {"text/plain"},
	}, s.handler.headers)
}

func (s *ClientTestSuite) TestContentHeadersReplaceAllValues() {
	req := s.newRequest(semantic.MethodPost, "https://example.com/")
	s.Require().NoError(req.Headers().Append("Content-Type", "text/html"))
	s.Require().NoError(req.Headers().Append("Content-Type", "charset=latin1"))
	s.Require().NoError(req.SetContent(content.NewString("abc", "text/plain; charset=utf-8")))

	_, err := s.client.Send(context.Background(), req)
	s.Require().NoError(err)

	s.Equal([]string{"text/plain", "charset=utf-8"}, s.handler.headers["Content-Type"])
}

func (s *ClientTestSuite) TestDefaultRequestHeaders() {
	s.Require().NoError(s.client.DefaultRequestHeaders().Add("User-Agent", "httpmsg"))

	_, err := s.client.Send(context.Background(), s.newRequest(semantic.MethodGet, "https://example.com/"))
	s.Require().NoError(err)

	s.Equal([]string{"httpmsg"}, s.handler.headers["User-Agent"])
}

func (s *ClientTestSuite) TestInvalidDefaultHeaders() {
	_, err := New(s.handler, nil, Options{DefaultHeaders: map[string][]string{
		"X": {"a;b"},
	}})
	s.ErrorIs(err, semantic.ErrValidation)
}

func (s *ClientTestSuite) TestResolveURL() {
	testcases := []struct {
		desc     string
		base     string
		uri      string
		expected string
	}{
		{desc: "relative path", base: "https://example.com/api/", uri: "v1/items", expected: "https://example.com/api/v1/items"},
		{desc: "base without trailing slash", base: "https://example.com/api", uri: "v1/items", expected: "https://example.com/v1/items"},
		{desc: "absolute path", base: "https://example.com/api/", uri: "/health", expected: "https://example.com/health"},
		{desc: "query only", base: "https://example.com/api/items", uri: "?page=2", expected: "https://example.com/api/items?page=2"},
		{desc: "absolute uri ignores base", base: "https://example.com/api/", uri: "http://other.test/x", expected: "http://other.test/x"},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.Require().NoError(s.client.SetBaseAddress(s.mustParse(tc.base)))
			req := s.newRequest(semantic.MethodGet, tc.uri)

			_, err := s.client.Send(context.Background(), req)
			s.Require().NoError(err)
			s.Equal(tc.expected, s.handler.url)
			s.Equal(tc.expected, req.URL().String())
		})
	}
}

func (s *ClientTestSuite) TestRelativeWithoutBase() {
	body := content.NewString("abc", "")
	req := s.newRequest(semantic.MethodPost, "v1/items")
	s.Require().NoError(req.SetContent(body))

	_, err := s.client.Send(context.Background(), req)
	s.ErrorIs(err, semantic.ErrInvalidOperation)
	s.NotErrorIs(err, semantic.ErrObjectDisposed)
	s.Zero(s.handler.calls)

	// The request was not consumed.
	s.False(req.IsClosed())
	s.False(req.Headers().Has("Content-Type"))
}

func (s *ClientTestSuite) TestSetBaseAddress() {
	s.Nil(s.client.BaseAddress())

	err := s.client.SetBaseAddress(s.mustParse("/relative/"))
	s.ErrorIs(err, semantic.ErrValidation)
	s.Nil(s.client.BaseAddress())

	base := s.mustParse("https://example.com/")
	s.Require().NoError(s.client.SetBaseAddress(base))
	s.Same(base, s.client.BaseAddress())

	s.Require().NoError(s.client.SetBaseAddress(nil))
	s.Nil(s.client.BaseAddress())

	_, err = New(s.handler, nil, Options{BaseAddress: s.mustParse("api/")})
	s.ErrorIs(err, semantic.ErrValidation)
}

func (s *ClientTestSuite) TestRequestClosedAfterSend() {
	body := content.NewString("abc", "")
	req := s.newRequest(semantic.MethodPost, "https://example.com/")
	s.Require().NoError(req.SetContent(body))

	_, err := s.client.Send(context.Background(), req)
	s.Require().NoError(err)

	s.True(s.handler.open)
	s.True(req.IsClosed())
	_, err = body.ReadAsStream(context.Background())
	s.ErrorIs(err, semantic.ErrObjectDisposed)
}

func (s *ClientTestSuite) TestRequestClosedAfterFailure() {
	cause := errors.New("connection reset")
	s.handler.res, s.handler.err = nil, cause

	body := content.NewString("abc", "")
	req := s.newRequest(semantic.MethodPost, "https://example.com/")
	s.Require().NoError(req.SetContent(body))

	res, err := s.client.Send(context.Background(), req)
	s.Nil(res)
	s.ErrorIs(err, cause)
	s.Equal(cause, errors.Cause(err))
	s.True(req.IsClosed())
}

func (s *ClientTestSuite) TestResponseStaysOpen() {
	s.handler.res.SetContent(content.NewString("pong", ""))

	res, err := s.client.Send(context.Background(), s.newRequest(semantic.MethodGet, "https://example.com/"))
	s.Require().NoError(err)

	body, err := content.ReadAsString(context.Background(), res.Content())
	s.Require().NoError(err)
	s.Equal("pong", body)
	s.NoError(res.Close())
}

func (s *ClientTestSuite) TestNilContext() {
	//nolint:staticcheck // nil context selects the non-cancellable one.
	_, err := s.client.Send(nil, s.newRequest(semantic.MethodGet, "https://example.com/"))
	s.Require().NoError(err)

	s.Require().NotNil(s.handler.ctx)
	s.Nil(s.handler.ctx.Done())
}

func (s *ClientTestSuite) TestClosed() {
	s.Require().NoError(s.client.Close())

	req := s.newRequest(semantic.MethodGet, "https://example.com/")
	_, err := s.client.Send(context.Background(), req)
	s.ErrorIs(err, semantic.ErrObjectDisposed)
	s.ErrorIs(err, semantic.ErrInvalidOperation)
	s.Zero(s.handler.calls)
	s.False(req.IsClosed())
}

func (s *ClientTestSuite) TestCloseOwnership() {
	testcases := []struct {
		desc     string
		dispose  bool
		expected int
	}{
		{desc: "owned", dispose: true, expected: 1},
		{desc: "shared", dispose: false, expected: 0},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			s.handler = &recordingHandler{}
			c := s.newClient(Options{DisposeHandler: tc.dispose})

			s.NoError(c.Close())
			s.NoError(c.Close())
			s.Equal(tc.expected, s.handler.closes)
		})
	}
}

func (s *ClientTestSuite) TestSharedHandler() {
	other := s.newClient(Options{})
	s.Require().NoError(other.Close())

	_, err := s.client.Send(context.Background(), s.newRequest(semantic.MethodGet, "https://example.com/"))
	s.NoError(err)
	s.Zero(s.handler.closes)
}

func (s *ClientTestSuite) TestHelpers() {
	s.Require().NoError(s.client.SetBaseAddress(s.mustParse("https://example.com/api/")))

	testcases := []struct {
		desc   string
		send   func() (*message.Response, error)
		method semantic.Method
		body   bool
	}{
		{desc: "get", method: semantic.MethodGet, send: func() (*message.Response, error) {
			return s.client.Get(context.Background(), "items")
		}},
		{desc: "delete", method: semantic.MethodDelete, send: func() (*message.Response, error) {
			return s.client.Delete(context.Background(), "items")
		}},
		{desc: "post", method: semantic.MethodPost, body: true, send: func() (*message.Response, error) {
			return s.client.Post(context.Background(), "items", content.NewString("x", ""))
		}},
		{desc: "put", method: semantic.MethodPut, body: true, send: func() (*message.Response, error) {
			return s.client.Put(context.Background(), "items", content.NewString("x", ""))
		}},
		{desc: "patch", method: semantic.MethodPatch, body: true, send: func() (*message.Response, error) {
			return s.client.Patch(context.Background(), "items", content.NewString("x", ""))
		}},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			_, err := tc.send()
			s.Require().NoError(err)

			s.Equal(tc.method, s.handler.method)
			s.Equal("https://example.com/api/items", s.handler.url)
			_, hasType := s.handler.headers["Content-Type"]
			s.Equal(tc.body, hasType)
		})
	}
}

func (s *ClientTestSuite) TestNilHandler() {
	_, err := New(nil, nil, Options{})
	s.ErrorIs(err, semantic.ErrValidation)
}
