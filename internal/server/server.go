package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/chroma-key-mcp/internal/imaging"
)

// Version is reported to clients during initialize. It is overwritten by
// the binary with its ldflags version.
var Version = "0.1.0"

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel = "CHROMA_KEY_MCP_LOG_LEVEL"
	EnvWorkers  = "CHROMA_KEY_MCP_WORKERS"
)

// Config holds the server's tunables.
type Config struct {
	// Debug enables per-request logging to stderr.
	Debug bool

	// Workers is the goroutine count for each transparency pass.
	// Zero means one per available CPU.
	Workers int

	// PreviewSize is the default preview bounding box in pixels.
	PreviewSize int
}

// ConfigFromEnv builds a Config from the process environment. Unparsable
// values fall back to the defaults.
func ConfigFromEnv() Config {
	cfg := Config{PreviewSize: imaging.DefaultPreviewSize}
	if strings.EqualFold(os.Getenv(EnvLogLevel), "debug") {
		cfg.Debug = true
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Workers = n
		} else {
			log.Printf("ignoring %s=%q: not a non-negative integer", EnvWorkers, v)
		}
	}
	return cfg
}

// Server handles MCP protocol communication
type Server struct {
	cache *imaging.ImageCache
	cfg   Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server with default configuration.
func New() *Server {
	return NewWithConfig(Config{PreviewSize: imaging.DefaultPreviewSize})
}

// NewWithConfig creates a server using cfg.
func NewWithConfig(cfg Config) *Server {
	if cfg.PreviewSize <= 0 {
		cfg.PreviewSize = imaging.DefaultPreviewSize
	}
	return &Server{
		cache: imaging.NewImageCache(),
		cfg:   cfg,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF,
// writing one response per line to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		if s.cfg.Debug {
			log.Printf("request id=%v method=%s", req.ID, req.Method)
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "chroma-key-mcp",
				"version": Version,
			},
		},
	}
}
