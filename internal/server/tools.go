package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// rangeFieldProperty describes one threshold field. Fields accept either a
// JSON integer or its textual form.
func rangeFieldProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        []string{"integer", "string"},
		"description": desc + " (inclusive; any integer, values outside 0-255 are allowed)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, source color model and whether it already has transparency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_preview",
			Description: "Return a downscaled PNG preview of an image, fitted inside a square box (never upscaled).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Preview bounding box in pixels. Default 250",
						"default":     250,
					},
				},
				"required": []string{"path"},
			},
		},

		// Range Selection
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate. Useful for choosing a key range.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_suggest_range",
			Description: "Suggest an RGB key range centred on the color at a pixel (default: the top-left corner, usually background).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based). Default 0",
						"default":     0,
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based). Default 0",
						"default":     0,
					},
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Distance added on both sides of every channel. Default 30",
						"default":     30,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "keying_presets",
			Description: "List the named range presets (White, Black, Custom) and the bounds they stand for.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Background Removal
		{
			Name: "image_remove_background",
			Description: "Make every pixel whose red, green and blue values all fall inside an inclusive range transparent. " +
				"Matched pixels become (255,255,255,0) unless mode is preserve_color. Returns match statistics and a preview; " +
				"saves the full-resolution result as PNG when output_path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"preset": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"White", "Black", "Custom"},
						"description": "Named range. Explicit min/max fields override it. Custom requires all six fields. Default White",
					},
					"min_r": rangeFieldProperty("Minimum red"),
					"min_g": rangeFieldProperty("Minimum green"),
					"min_b": rangeFieldProperty("Minimum blue"),
					"max_r": rangeFieldProperty("Maximum red"),
					"max_g": rangeFieldProperty("Maximum green"),
					"max_b": rangeFieldProperty("Maximum blue"),
					"min_hex": map[string]interface{}{
						"type":        "string",
						"description": "Lower corner of the range as #RRGGBB. Requires max_hex; replaces the preset, explicit min/max fields still override it",
					},
					"max_hex": map[string]interface{}{
						"type":        "string",
						"description": "Upper corner of the range as #RRGGBB. Requires min_hex",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"whiteout", "preserve_color"},
						"description": "What matched pixels become. Default whiteout",
						"default":     "whiteout",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional .png destination for the full-resolution result",
					},
					"preview_size": map[string]interface{}{
						"type":        "integer",
						"description": "Preview bounding box in pixels. Default 250",
						"default":     250,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
