//go:build !conformance

// Package conformance holds the MCP protocol fixtures the card table server
// registers for conformance runs. Without the conformance build tag the
// package compiles to a no-op so the fixtures never ship in a regular build.
package conformance

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Register is a no-op unless the conformance build tag is enabled.
func Register(_ *mcp.Server) {}
