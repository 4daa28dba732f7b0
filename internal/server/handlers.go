package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/chroma-key-mcp/internal/imaging"
	"github.com/ironsheep/chroma-key-mcp/internal/keying"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_remove_background").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_preview":
		return s.handleImagePreview(args)

	// Range Selection
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_suggest_range":
		return s.handleImageSuggestRange(args)
	case "keying_presets":
		return s.handleKeyingPresets(args)

	// Background Removal
	case "image_remove_background":
		return s.handleImageRemoveBackground(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imagePreviewArgs struct {
	Path    string `json:"path"`
	MaxSize int    `json:"max_size"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxSize == 0 {
		a.MaxSize = s.cfg.PreviewSize
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(img, a.MaxSize)
}

// === Range Selection Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSuggestRangeArgs struct {
	Path      string `json:"path"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Tolerance *int   `json:"tolerance"`
}

func (s *Server) handleImageSuggestRange(args json.RawMessage) (interface{}, error) {
	var a imageSuggestRangeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tolerance := 30
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	rng, err := imaging.SuggestRange(img, a.X, a.Y, tolerance)
	if err != nil {
		return nil, err
	}
	return rng, nil
}

type presetInfo struct {
	Name  string               `json:"name"`
	Range *keying.ChannelRange `json:"range,omitempty"`
}

type presetsResult struct {
	Presets []presetInfo `json:"presets"`
}

func (s *Server) handleKeyingPresets(_ json.RawMessage) (interface{}, error) {
	res := presetsResult{}
	for _, p := range keying.Presets() {
		info := presetInfo{Name: p.String()}
		if r, ok := p.Range(); ok {
			info.Range = &r
		}
		res.Presets = append(res.Presets, info)
	}
	return res, nil
}

// === Background Removal Handler ===

// rangeField is one threshold value as typed by a user. It accepts a JSON
// number or a string; parsing is deferred so that non-integers surface as
// keying.ErrInvalidRange rather than as a JSON error.
type rangeField struct {
	set  bool
	text string
}

func (f *rangeField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = rangeField{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = rangeField{set: true, text: s}
		return nil
	}
	*f = rangeField{set: true, text: string(data)}
	return nil
}

type imageRemoveBackgroundArgs struct {
	Path        string     `json:"path"`
	Preset      string     `json:"preset"`
	MinR        rangeField `json:"min_r"`
	MinG        rangeField `json:"min_g"`
	MinB        rangeField `json:"min_b"`
	MaxR        rangeField `json:"max_r"`
	MaxG        rangeField `json:"max_g"`
	MaxB        rangeField `json:"max_b"`
	MinHex      string     `json:"min_hex"`
	MaxHex      string     `json:"max_hex"`
	Mode        string     `json:"mode"`
	OutputPath  string     `json:"output_path"`
	PreviewSize int        `json:"preview_size"`
}

// RemoveBackgroundResult describes a completed transparency pass.
type RemoveBackgroundResult struct {
	Width         int                    `json:"width"`
	Height        int                    `json:"height"`
	MatchedPixels int                    `json:"matched_pixels"`
	TotalPixels   int                    `json:"total_pixels"`
	Range         keying.ChannelRange    `json:"range"`
	Mode          string                 `json:"mode"`
	SavedTo       string                 `json:"saved_to,omitempty"`
	Preview       *imaging.PreviewResult `json:"preview,omitempty"`
}

// resolveRange turns the preset, the hex corners and the six optional fields
// into a range. Precedence is fields, then min_hex/max_hex, then preset.
// Without a preset or hex corners the fields override the White preset,
// mirroring a form that starts out populated with White. Custom requires
// every field.
func (a *imageRemoveBackgroundArgs) resolveRange() (keying.ChannelRange, error) {
	var overrides [6]*string
	for i, f := range []rangeField{a.MinR, a.MinG, a.MinB, a.MaxR, a.MaxG, a.MaxB} {
		if f.set {
			text := f.text
			overrides[i] = &text
		}
	}

	if a.MinHex != "" || a.MaxHex != "" {
		base, err := imaging.RangeFromHex(a.MinHex, a.MaxHex)
		if err != nil {
			return keying.ChannelRange{}, err
		}
		return base.Override(overrides)
	}

	preset := keying.PresetWhite
	if a.Preset != "" {
		p, err := keying.ParsePreset(a.Preset)
		if err != nil {
			return keying.ChannelRange{}, err
		}
		preset = p
	}
	return keying.ResolveRange(preset, overrides)
}

func (s *Server) handleImageRemoveBackground(args json.RawMessage) (interface{}, error) {
	var a imageRemoveBackgroundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: open an image first", keying.ErrNoImageLoaded)
	}
	if a.PreviewSize == 0 {
		a.PreviewSize = s.cfg.PreviewSize
	}

	rng, err := a.resolveRange()
	if err != nil {
		return nil, err
	}
	mode, err := keying.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, stats, err := keying.ApplyWithOptions(img, rng, keying.Options{Mode: mode, Workers: s.cfg.Workers})
	if err != nil {
		return nil, err
	}
	if s.cfg.Debug {
		log.Printf("keyed %s with %v: %d/%d pixels matched", a.Path, rng, stats.Matched, stats.Total)
	}

	res := &RemoveBackgroundResult{
		Width:         out.Bounds().Dx(),
		Height:        out.Bounds().Dy(),
		MatchedPixels: stats.Matched,
		TotalPixels:   stats.Total,
		Range:         rng,
		Mode:          mode.String(),
	}

	if a.OutputPath != "" {
		if err := imaging.SavePNG(out, a.OutputPath); err != nil {
			return nil, err
		}
		// The file on disk changed; a cached decode of it is stale.
		s.cache.Evict(a.OutputPath)
		res.SavedTo = a.OutputPath
	}

	// PNG cannot represent an empty image, so there is nothing to preview.
	if stats.Total > 0 {
		preview, err := imaging.Preview(out, a.PreviewSize)
		if err != nil {
			return nil, err
		}
		res.Preview = preview
	}

	return res, nil
}
