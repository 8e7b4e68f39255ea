package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool: the image to
// operate on.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// binarizationProperties returns the schema fragments for the thresholding
// parameters shared by the region tools, which all operate on a binary view
// of the image.
func binarizationProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Grayscale threshold 0-255. Omit to select automatically (Otsu)",
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Treat dark pixels as foreground (for scanned documents). Default false",
			"default":     false,
		},
	}
}

// connectivityProperty is the schema fragment for pixel adjacency selection.
func connectivityProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"enum":        []int{4, 8},
		"description": "Pixel adjacency: 4 (edge neighbors) or 8 (edge and corner neighbors). Default 8",
		"default":     8,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Caches the image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Preparation
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to restrict analysis to an area of interest.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_binarize",
			Description: "Threshold an image to binary and return it as base64-encoded PNG with foreground statistics. This is the view the region tools operate on; use it to verify the threshold before analysis.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": binarizationProperties(),
				"required":   []string{"path"},
			},
		},

		// Connected Components
		{
			Name:        "region_label",
			Description: "Find the connected components of the binarized image. Returns each component's label, pixel count, and bounding box in raster discovery order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(binarizationProperties(), map[string]interface{}{
					"connectivity": connectivityProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "region_borders",
			Description: "Trace the boundary contours of each connected component: the clockwise outer border and, optionally, counter-clockwise borders of interior holes. Contours can also be returned as chain codes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(binarizationProperties(), map[string]interface{}{
					"include_holes": map[string]interface{}{
						"type":        "boolean",
						"description": "Also trace hole borders inside each component. Default false",
						"default":     false,
					},
					"chain_codes": map[string]interface{}{
						"type":        "boolean",
						"description": "Return each border as a direction chain code instead of a point list. Default false",
						"default":     false,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "region_render_labels",
			Description: "Label the connected components and return a color-coded rendering, one distinct color per component on a black background.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(binarizationProperties(), map[string]interface{}{
					"connectivity": connectivityProperty(),
				}),
				"required": []string{"path"},
			},
		},

		// Morphology
		{
			Name:        "region_fill_holes",
			Description: "Fill the interior holes of every connected component and return the solid result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(binarizationProperties(), map[string]interface{}{
					"connectivity": connectivityProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "region_clear_border",
			Description: "Remove every connected component touching the image frame, keeping only fully interior regions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(binarizationProperties(), map[string]interface{}{
					"connectivity": connectivityProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "region_seedfill",
			Description: "Grow seed points through the binarized image, selecting exactly the connected components the seeds touch. An optional step limit bounds the growth distance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(binarizationProperties(), map[string]interface{}{
					"seeds": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Seed coordinates to grow from",
					},
					"connectivity": connectivityProperty(),
					"max_steps": map[string]interface{}{
						"type":        "integer",
						"description": "Limit growth to this many adjacency steps from the seeds. Omit for unbounded fill",
					},
				}),
				"required": []string{"path", "seeds"},
			},
		},
		{
			Name:        "region_distance_transform",
			Description: "Compute each foreground pixel's chessboard distance to the nearest background pixel. Returns the maximum distance and a rendering with brighter pixels deeper inside their region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": mergeProperties(binarizationProperties(), map[string]interface{}{
					"connectivity": connectivityProperty(),
				}),
				"required": []string{"path"},
			},
		},

		// Statistics
		{
			Name:        "quadtree_stats",
			Description: "Compute mean (and optionally variance) of grayscale intensity over a quadtree subdivision: level k splits the image into a 2^k x 2^k grid of blocks.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"levels": map[string]interface{}{
						"type":        "integer",
						"description": "Deepest subdivision level. Omit for the deepest level the image supports",
					},
					"include_variance": map[string]interface{}{
						"type":        "boolean",
						"description": "Also compute per-block variance. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// Segmentation
		{
			Name:        "watershed_segment",
			Description: "Segment the image into catchment basins by flooding its gradient magnitude from the regional minima. Returns the basin count and a color-coded rendering with watershed lines in white.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before the gradient, to suppress noise basins. Default 0 (no blur)",
						"default":     0,
					},
					"min_depth": map[string]interface{}{
						"type":        "integer",
						"description": "Suppress regional minima shallower than this many intensity levels. Default 0 (keep all)",
						"default":     0,
					},
					"connectivity": connectivityProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

// mergeProperties overlays extra schema properties onto a base property map.
func mergeProperties(base, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
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
