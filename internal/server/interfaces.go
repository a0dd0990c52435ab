package server

// Server is the lifecycle contract shared by the transport servers this
// package manages. RunServer blocks until shutdown is requested; Shutdown
// releases listeners and drains in-flight work.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
