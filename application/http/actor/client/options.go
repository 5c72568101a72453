package client

import (
	"net/url"
)

type Options struct {
	// DisposeHandler makes the client close its handler on Close.
	// Leave it false when the handler is shared between clients.
	DisposeHandler bool

	// BaseAddress resolves relative request URIs. It must be absolute.
	BaseAddress *url.URL

	// DefaultHeaders are added to every request that lacks them.
	DefaultHeaders map[string][]string
}
