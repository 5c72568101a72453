package message

import (
	"httpmsg/application/http/content"
	"httpmsg/application/http/semantic"
	"net/url"
	"sync"

	"github.com/pkg/errors"
)

// Request is an HTTP request message. It owns its headers and content.
type Request struct {
	method  semantic.Method
	url     *url.URL
	headers *semantic.Headers

	mu       sync.Mutex
	content  content.Content
	disposed bool
}

// NewRequest parses rawURI, which may be relative.
func NewRequest(method semantic.Method, rawURI string) (*Request, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, errors.Wrapf(semantic.ErrValidation, "parsing request uri: %s", err)
	}
	return NewRequestURL(method, u), nil
}

func NewRequestURL(method semantic.Method, u *url.URL) *Request {
	if u == nil {
		u = &url.URL{}
	}
	return &Request{
		method:  method,
		url:     u,
		headers: semantic.NewHeaders(),
	}
}

func (r *Request) Method() semantic.Method { return r.method }

func (r *Request) SetMethod(m semantic.Method) { r.method = m }

func (r *Request) URL() *url.URL { return r.url }

func (r *Request) SetURL(u *url.URL) { r.url = u }

func (r *Request) Headers() *semantic.Headers { return r.headers }

// Content returns nil when the request has no body.
func (r *Request) Content() (content.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return nil, semantic.ErrObjectDisposed
	}
	return r.content, nil
}

// SetContent hands the ownership of c to the request.
func (r *Request) SetContent(c content.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return semantic.ErrObjectDisposed
	}
	r.content = c
	return nil
}

func (r *Request) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.disposed
}

// Close disposes the content of the request.
func (r *Request) Close() error {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return nil
	}
	r.disposed = true
	c := r.content
	r.mu.Unlock()

	if c == nil {
		return nil
	}
	return errors.Wrap(c.Close(), "closing request content")
}
