// Package pixmap provides the pixel-buffer and geometry types shared by every
// region-analysis package in this module.
//
// The central type is Pix, a dense 2-D raster with an explicit sample depth of
// 1, 8, 16, or 32 bits. The region engine treats a 1-bit buffer as a binary
// image with foreground = nonzero sample; 8-bit buffers carry grayscale
// intensity; 16- and 32-bit buffers carry wide values such as distances or
// component labels.
//
// # Coordinate System
//
// All pixel coordinates are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Get returns (0, false) for out-of-bounds coordinates rather than panicking,
// so callers probing across an image edge need no explicit bounds guard.
//
// # Ownership
//
// Every operation in this module borrows its input buffers for the duration
// of the call and returns freshly allocated results. No package retains a
// reference to a caller's buffer after returning, and no package keeps state
// between calls, so independent calls on independent buffers are safe to run
// concurrently from caller goroutines without locking.
//
// # Error Handling
//
// Precondition failures are reported through the sentinel errors in this
// package (ErrUnsupportedDepth, ErrDimensionMismatch, ErrInvalidParameters,
// ErrInvalidSeed), wrapped with context at the failure site. They are never
// encoded as magic pixel values or counts.
package pixmap
