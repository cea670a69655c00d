// Package timeouts holds the durations gram services share.
package timeouts

import "time"

const (
	// HealthProbe bounds board -probe from dial to a SERVING answer.
	HealthProbe = 2 * time.Second
	// ReadHeader limits how long the board and MCP HTTP servers wait for
	// request headers.
	ReadHeader = 5 * time.Second
	// Shutdown bounds graceful HTTP and gRPC shutdown and the final span flush.
	Shutdown = 5 * time.Second
)
