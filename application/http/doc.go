// Package http holds the flattened request and response shapes exchanged with a transport.
// Message semantics live in the subpackages.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc2046#section-5.1
package http
