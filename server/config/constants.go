package config

// Network server port constants
// The default port is selected to avoid conflicts with popular databases,
// data warehouses, and development tools commonly used alongside this server.
const (
	// HTTP Server Port - REST API exposing the data directory
	// Selected to avoid common development ports like 8080, 3000, 5000
	HTTP_SERVER_PORT = 2847
)

// Network server address constants
const (
	// Default bind address
	DEFAULT_SERVER_ADDRESS = "0.0.0.0"

	// Localhost address for development
	LOCALHOST_ADDRESS = "127.0.0.1"
)

// Port validation constants
const (
	MIN_PORT = 1
	MAX_PORT = 65535
)

// IsValidPort checks if a port number is within valid range
func IsValidPort(port int) bool {
	return port >= MIN_PORT && port <= MAX_PORT
}
