// Package server implements the MCP (Model Context Protocol) server that
// exposes chroma keying to MCP clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_preview: Downscaled PNG preview of the source
//
// Range Selection:
//   - image_sample_color: Get color at pixel
//   - image_suggest_range: Range around the color at a pixel
//   - keying_presets: Named ranges (White, Black, Custom)
//
// Background Removal:
//   - image_remove_background: Make every pixel inside an RGB range
//     transparent, optionally saving the result as PNG
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process and
// shared between calls. The keying pass never writes to them, so a source
// stays pristine however many times it is keyed with different ranges.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which names the failure kind
//     ("no image loaded", "invalid range", "decode error", ...)
//
// # Configuration
//
// ConfigFromEnv reads CHROMA_KEY_MCP_LOG_LEVEL (set to "debug" for request
// logging on stderr) and CHROMA_KEY_MCP_WORKERS (goroutines per pass).
package server
