package server

// Server is the lifecycle contract for the transport servers this package
// manages. RunServer blocks until the server stops; Shutdown drains
// in-flight requests and releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
