package handler

import (
	"context"
	"httpmsg/application/http"
	nethttp "net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultNetTimeout = 30 * time.Second

// NetTransport exchanges messages through a net/http client.
type NetTransport struct {
	client *nethttp.Client
}

// NewNetTransport uses client, or a client with a 30 second timeout if nil.
func NewNetTransport(client *nethttp.Client) *NetTransport {
	if client == nil {
		client = &nethttp.Client{Timeout: defaultNetTimeout}
	}
	return &NetTransport{client: client}
}

func (t *NetTransport) Exchange(ctx context.Context, out *http.Outgoing) (*http.Incoming, error) {
	req, err := nethttp.NewRequestWithContext(ctx, out.Method, out.URL.String(), out.Body)
	if err != nil {
		return nil, errors.Wrap(err, "building net/http request")
	}

	if out.Body != nil {
		req.ContentLength = out.ContentLength
	}

	for name, value := range out.Header {
		req.Header.Set(name, value)
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	in := &http.Incoming{
		StatusCode: res.StatusCode,
		Body:       res.Body,
	}
	for name, values := range res.Header {
		for _, v := range values {
			in.Header = append(in.Header, http.Field{Name: name, Value: v})
		}
	}

	return in, nil
}
