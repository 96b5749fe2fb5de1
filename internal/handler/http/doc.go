// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as session-token extraction, request
// tracing, and access logging are handled in this package before requests are
// delegated to the service layer.
//
// The session token is a credential-bearing secret. It travels only in the
// session cookie or the "Authorization" header and in JSON response bodies —
// never in a URL — and no handler or middleware in this package ever writes
// it to a log line.
package http
