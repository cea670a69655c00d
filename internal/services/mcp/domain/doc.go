// Package domain translates MCP tool calls into grid operations.
//
// Each tool maps one call onto the gram core or the puzzle catalog and returns
// a structured result that MCP clients can render. Failures are classified
// into platform error codes so clients see the same codes as the board API.
package domain
