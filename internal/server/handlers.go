package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/contour"
	"github.com/ironsheep/region-tools-mcp/internal/imaging"
	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/quadtree"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
	"github.com/ironsheep/region-tools-mcp/internal/seedfill"
	"github.com/ironsheep/region-tools-mcp/internal/watershed"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "region_label").
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging or region-engine function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Preparation
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_binarize":
		return s.handleImageBinarize(args)

	// Connected Components
	case "region_label":
		return s.handleRegionLabel(args)
	case "region_borders":
		return s.handleRegionBorders(args)
	case "region_render_labels":
		return s.handleRegionRenderLabels(args)

	// Morphology
	case "region_fill_holes":
		return s.handleRegionFillHoles(args)
	case "region_clear_border":
		return s.handleRegionClearBorder(args)
	case "region_seedfill":
		return s.handleRegionSeedfill(args)
	case "region_distance_transform":
		return s.handleRegionDistanceTransform(args)

	// Statistics
	case "quadtree_stats":
		return s.handleQuadtreeStats(args)

	// Segmentation
	case "watershed_segment":
		return s.handleWatershedSegment(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// parseConnectivity maps the wire values 4 and 8 to engine connectivities.
// Zero (field omitted) selects 8.
func parseConnectivity(n int) (regions.Connectivity, error) {
	switch n {
	case 0, 8:
		return regions.EightWay, nil
	case 4:
		return regions.FourWay, nil
	}
	return 0, fmt.Errorf("invalid connectivity %d: must be 4 or 8", n)
}

// binarizeArgs are the thresholding parameters shared by the region tools.
// A nil Threshold selects Otsu's method.
type binarizeArgs struct {
	Path      string `json:"path"`
	Threshold *int   `json:"threshold,omitempty"`
	Invert    bool   `json:"invert"`
}

// loadBinary loads an image from the cache and binarizes it, returning the
// 1-bit buffer and the threshold that was applied.
func (s *Server) loadBinary(a binarizeArgs) (*pixmap.Pix, int, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, 0, err
	}
	threshold := -1
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	return imaging.BinarizeToPix(img, threshold, a.Invert)
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

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Preparation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

func (s *Server) handleImageBinarize(args json.RawMessage) (interface{}, error) {
	var a binarizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	threshold := -1
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	return imaging.Binarize(img, threshold, a.Invert)
}

// === Connected Component Handlers ===

type regionLabelArgs struct {
	binarizeArgs
	Connectivity int `json:"connectivity"`
}

// RegionLabelResult lists the connected components of the binarized image.
type RegionLabelResult struct {
	Width          int                 `json:"width"`
	Height         int                 `json:"height"`
	Threshold      int                 `json:"threshold"`
	Connectivity   string              `json:"connectivity"`
	ComponentCount int                 `json:"component_count"`
	Components     []regions.Component `json:"components"`
}

func (s *Server) handleRegionLabel(args json.RawMessage) (interface{}, error) {
	var a regionLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	p, threshold, err := s.loadBinary(a.binarizeArgs)
	if err != nil {
		return nil, err
	}

	_, components, err := regions.Label(p, conn)
	if err != nil {
		return nil, err
	}
	return &RegionLabelResult{
		Width:          p.Width(),
		Height:         p.Height(),
		Threshold:      threshold,
		Connectivity:   conn.String(),
		ComponentCount: len(components),
		Components:     components,
	}, nil
}

type regionBordersArgs struct {
	binarizeArgs
	IncludeHoles bool `json:"include_holes"`
	ChainCodes   bool `json:"chain_codes"`
}

// BorderPayload is one traced border, as points or as a chain code.
type BorderPayload struct {
	Kind   contour.BorderKind `json:"kind"`
	Points []contour.Point    `json:"points,omitempty"`
	Chain  *contour.ChainCode `json:"chain,omitempty"`
}

// ComponentBordersPayload groups one component's borders.
type ComponentBordersPayload struct {
	Label int             `json:"label"`
	Outer BorderPayload   `json:"outer"`
	Holes []BorderPayload `json:"holes,omitempty"`
}

// RegionBordersResult lists the traced borders of every component.
type RegionBordersResult struct {
	Width          int                       `json:"width"`
	Height         int                       `json:"height"`
	Threshold      int                       `json:"threshold"`
	ComponentCount int                       `json:"component_count"`
	Components     []ComponentBordersPayload `json:"components"`
}

func (s *Server) handleRegionBorders(args json.RawMessage) (interface{}, error) {
	var a regionBordersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, threshold, err := s.loadBinary(a.binarizeArgs)
	if err != nil {
		return nil, err
	}

	traced, err := contour.TraceAll(p)
	if err != nil {
		return nil, err
	}

	result := &RegionBordersResult{
		Width:          p.Width(),
		Height:         p.Height(),
		Threshold:      threshold,
		ComponentCount: len(traced),
		Components:     make([]ComponentBordersPayload, 0, len(traced)),
	}
	for _, cb := range traced {
		payload := ComponentBordersPayload{Label: cb.Label}
		payload.Outer, err = borderPayload(cb.Outer, a.ChainCodes)
		if err != nil {
			return nil, err
		}
		if a.IncludeHoles {
			for _, hole := range cb.Holes {
				hp, err := borderPayload(hole, a.ChainCodes)
				if err != nil {
					return nil, err
				}
				payload.Holes = append(payload.Holes, hp)
			}
		}
		result.Components = append(result.Components, payload)
	}
	return result, nil
}

// borderPayload converts a traced border to its wire form, encoding to a
// chain code when requested. Traced borders step through 8-adjacent pixels,
// so they always encode with 8-way codes.
func borderPayload(b contour.Border, asChain bool) (BorderPayload, error) {
	if !asChain {
		return BorderPayload{Kind: b.Kind, Points: b.Points}, nil
	}
	chain, err := contour.ToChainCode(b.Points, regions.EightWay)
	if err != nil {
		return BorderPayload{}, err
	}
	return BorderPayload{Kind: b.Kind, Chain: chain}, nil
}

func (s *Server) handleRegionRenderLabels(args json.RawMessage) (interface{}, error) {
	var a regionLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	p, _, err := s.loadBinary(a.binarizeArgs)
	if err != nil {
		return nil, err
	}

	labels, _, err := regions.Label(p, conn)
	if err != nil {
		return nil, err
	}
	return imaging.RenderLabels(labels, nil)
}

// === Morphology Handlers ===

// MorphologyResult reports a binary-to-binary transformation: foreground
// counts before and after, plus a rendering of the output.
type MorphologyResult struct {
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Threshold        int    `json:"threshold"`
	ForegroundBefore uint64 `json:"foreground_before"`
	ForegroundAfter  uint64 `json:"foreground_after"`
	ImageBase64      string `json:"image_base64"`
	MimeType         string `json:"mime_type"`
}

// morphologyResult packages the input and output of a binary transformation.
func morphologyResult(in, out *pixmap.Pix, threshold int) (*MorphologyResult, error) {
	rendered, err := imaging.RenderPix(out)
	if err != nil {
		return nil, err
	}
	return &MorphologyResult{
		Width:            out.Width(),
		Height:           out.Height(),
		Threshold:        threshold,
		ForegroundBefore: in.CountForeground(),
		ForegroundAfter:  out.CountForeground(),
		ImageBase64:      rendered.ImageBase64,
		MimeType:         rendered.MimeType,
	}, nil
}

func (s *Server) handleRegionFillHoles(args json.RawMessage) (interface{}, error) {
	var a regionLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	p, threshold, err := s.loadBinary(a.binarizeArgs)
	if err != nil {
		return nil, err
	}

	filled, err := seedfill.FillHoles(p, conn)
	if err != nil {
		return nil, err
	}
	return morphologyResult(p, filled, threshold)
}

func (s *Server) handleRegionClearBorder(args json.RawMessage) (interface{}, error) {
	var a regionLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	p, threshold, err := s.loadBinary(a.binarizeArgs)
	if err != nil {
		return nil, err
	}

	cleared, err := seedfill.ClearBorder(p, conn)
	if err != nil {
		return nil, err
	}
	return morphologyResult(p, cleared, threshold)
}

type regionSeedfillArgs struct {
	binarizeArgs
	Seeds []struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"seeds"`
	Connectivity int  `json:"connectivity"`
	MaxSteps     *int `json:"max_steps,omitempty"`
}

func (s *Server) handleRegionSeedfill(args json.RawMessage) (interface{}, error) {
	var a regionSeedfillArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Seeds) == 0 {
		return nil, fmt.Errorf("at least one seed point is required")
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	p, threshold, err := s.loadBinary(a.binarizeArgs)
	if err != nil {
		return nil, err
	}

	points := make([][2]int, len(a.Seeds))
	for i, pt := range a.Seeds {
		points[i] = [2]int{pt.X, pt.Y}
	}
	seed, err := seedfill.SeedFromPoints(p.Width(), p.Height(), points)
	if err != nil {
		return nil, err
	}

	maxSteps := -1
	if a.MaxSteps != nil {
		maxSteps = *a.MaxSteps
	}
	filled, err := seedfill.BinaryRestricted(seed, p, conn, maxSteps)
	if err != nil {
		return nil, err
	}
	return morphologyResult(p, filled, threshold)
}

// DistanceTransformResult reports the chessboard distance map of the
// binarized image.
type DistanceTransformResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Threshold   int    `json:"threshold"`
	MaxDistance uint32 `json:"max_distance"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleRegionDistanceTransform(args json.RawMessage) (interface{}, error) {
	var a regionLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	p, threshold, err := s.loadBinary(a.binarizeArgs)
	if err != nil {
		return nil, err
	}

	dist, err := seedfill.DistanceTransform(p, conn)
	if err != nil {
		return nil, err
	}

	var maxDist uint32
	for y := 0; y < dist.Height(); y++ {
		for x := 0; x < dist.Width(); x++ {
			if v := dist.At(x, y); v > maxDist {
				maxDist = v
			}
		}
	}

	rendered, err := imaging.RenderPix(dist)
	if err != nil {
		return nil, err
	}
	return &DistanceTransformResult{
		Width:       dist.Width(),
		Height:      dist.Height(),
		Threshold:   threshold,
		MaxDistance: maxDist,
		ImageBase64: rendered.ImageBase64,
		MimeType:    rendered.MimeType,
	}, nil
}

// === Statistics Handlers ===

type quadtreeStatsArgs struct {
	Path            string `json:"path"`
	Levels          *int   `json:"levels,omitempty"`
	IncludeVariance bool   `json:"include_variance"`
}

// QuadtreeStatsResult holds the per-level block statistics of the image.
type QuadtreeStatsResult struct {
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Levels   int              `json:"levels"`
	Mean     *quadtree.Result `json:"mean"`
	Variance *quadtree.Result `json:"variance,omitempty"`
}

func (s *Server) handleQuadtreeStats(args json.RawMessage) (interface{}, error) {
	var a quadtreeStatsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	gray := pixmap.FromImage(img)

	levels := quadtree.MaxLevels(gray.Width(), gray.Height())
	if a.Levels != nil {
		levels = *a.Levels
	}

	result := &QuadtreeStatsResult{
		Width:  gray.Width(),
		Height: gray.Height(),
		Levels: levels,
	}
	if a.IncludeVariance {
		result.Mean, result.Variance, err = quadtree.MeanVariance(gray, levels)
	} else {
		result.Mean, err = quadtree.Mean(gray, levels)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// === Segmentation Handlers ===

type watershedSegmentArgs struct {
	Path         string  `json:"path"`
	BlurRadius   float64 `json:"blur_radius"`
	MinDepth     uint32  `json:"min_depth"`
	Connectivity int     `json:"connectivity"`
}

// WatershedSegmentResult reports a watershed segmentation with a rendering
// of the basins and their dividing lines.
type WatershedSegmentResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BasinCount  int    `json:"basin_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleWatershedSegment(args json.RawMessage) (interface{}, error) {
	var a watershedSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	conn, err := parseConnectivity(a.Connectivity)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	gradient := imaging.GradientMagnitude(img, a.BlurRadius)
	segmented, err := watershed.Segment(gradient, watershed.Options{
		Connectivity: conn,
		MinDepth:     a.MinDepth,
	})
	if err != nil {
		return nil, err
	}

	rendered, err := imaging.RenderLabels(segmented.Basins, segmented.Boundary)
	if err != nil {
		return nil, err
	}
	return &WatershedSegmentResult{
		Width:       gradient.Width(),
		Height:      gradient.Height(),
		BasinCount:  segmented.BasinCount,
		ImageBase64: rendered.ImageBase64,
		MimeType:    rendered.MimeType,
	}, nil
}
