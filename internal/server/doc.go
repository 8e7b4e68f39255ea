// Package server implements the MCP (Model Context Protocol) server for the
// region-analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes binary-image
// region analysis through the MCP protocol. It's designed to work with
// Claude and other MCP-compatible clients, enabling AI systems to measure
// and segment image content with precision.
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
// The server provides 13 tools organized into categories:
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Preparation:
//   - image_crop: Extract rectangular region
//   - image_binarize: Threshold to binary, the view the region tools see
//
// Connected Components:
//   - region_label: Find components with pixel counts and bounding boxes
//   - region_borders: Trace outer and hole contours, optionally as chain codes
//   - region_render_labels: Color-coded component rendering
//
// Morphology:
//   - region_fill_holes: Make every component solid
//   - region_clear_border: Drop components touching the frame
//   - region_seedfill: Grow seed points through the foreground
//   - region_distance_transform: Chessboard distance to background
//
// Statistics:
//   - quadtree_stats: Per-block mean and variance over a quadtree subdivision
//
// Segmentation:
//   - watershed_segment: Flood the gradient into labeled catchment basins
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
