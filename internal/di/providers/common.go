// Package providers contains dependency injection providers for the
// workspace server.
package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// appVersion is stamped into default settings and the API spec.
	appVersion = "1.2.0"
)
