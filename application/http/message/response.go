package message

import (
	"httpmsg/application/http/content"
	"httpmsg/application/http/semantic"

	"github.com/pkg/errors"
)

// Response is an HTTP response message.
// Headers and content are created on first access.
type Response struct {
	statusCode semantic.StatusCode
	headers    *semantic.Headers
	content    content.Content
}

func NewResponse(code semantic.StatusCode) *Response {
	return &Response{statusCode: code}
}

func (r *Response) StatusCode() semantic.StatusCode { return r.statusCode }

func (r *Response) SetStatusCode(code semantic.StatusCode) { r.statusCode = code }

func (r *Response) Headers() *semantic.Headers {
	if r.headers == nil {
		r.headers = semantic.NewHeaders()
	}
	return r.headers
}

// Content falls back to empty content when none was set.
func (r *Response) Content() content.Content {
	if r.content == nil {
		r.content = content.NewEmpty()
	}
	return r.content
}

func (r *Response) SetContent(c content.Content) { r.content = c }

func (r *Response) IsSuccessStatusCode() bool {
	return r.statusCode.IsSuccess()
}

// EnsureSuccessStatusCode returns a [*semantic.RequestError] for any non-2xx status.
func (r *Response) EnsureSuccessStatusCode() error {
	if r.IsSuccessStatusCode() {
		return nil
	}
	return semantic.NewRequestError("", r.statusCode)
}

// Close disposes the content of the response.
func (r *Response) Close() error {
	if r.content == nil {
		return nil
	}
	return errors.Wrap(r.content.Close(), "closing response content")
}
