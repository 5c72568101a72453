package semantic

import "strings"

type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// ParseMethod upper-cases well-known method names and keeps extension methods as given.
func ParseMethod(raw string) Method {
	upper := Method(strings.ToUpper(raw))
	switch upper {
	case MethodGet, MethodHead, MethodPost, MethodPut, MethodPatch,
		MethodDelete, MethodConnect, MethodOptions, MethodTrace:
		return upper
	}
	return Method(raw)
}

func (m Method) String() string { return string(m) }
