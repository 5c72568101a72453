// Package handler implements the request processing chain.
//
// A chain is built by nesting: delegating handlers wrap an inner handler and
// the innermost one, a [TransportHandler], performs the exchange.
package handler
