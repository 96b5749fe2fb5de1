// Package server wires and runs the application's transport server.
//
// It owns the HTTP server lifecycle: startup, OS signal handling, and
// graceful shutdown with a drain of in-flight requests.
package server
