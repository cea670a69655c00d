// Package service wires MCP transports to the gram domain handlers.
//
// It knows how to run MCP over stdio or streamable HTTP and leaves grid
// semantics to the domain package.
package service
