// Package imaging provides the image-handling support around the
// region-analysis engine: loading and caching source images, converting them
// to the pixel buffers the engine consumes, and rendering engine output back
// to viewable images.
//
// The package bridges two currencies. Toward disk and the MCP tools it works
// with standard Go image.Image values (decoded from PNG, JPEG, GIF, TIFF,
// BMP, or WebP, and encoded to base64 PNG for tool results). Toward the
// engine it produces pixmap.Pix buffers: 8-bit grayscale via luminance
// conversion, and 1-bit binary via fixed or Otsu thresholding.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Crop regions use an
// inclusive top-left and exclusive bottom-right corner.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The conversion and rendering
// functions are stateless and can be called concurrently on different
// images.
package imaging
