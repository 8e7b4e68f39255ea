package pixmap

import "errors"

var (
	// ErrUnsupportedDepth indicates an operation received a buffer of a bit
	// depth it does not operate on (e.g. a grayscale buffer passed to a
	// binary-only operation).
	ErrUnsupportedDepth = errors.New("pixmap: unsupported bit depth for operation")

	// ErrDimensionMismatch indicates two buffers that must share dimensions
	// do not.
	ErrDimensionMismatch = errors.New("pixmap: buffers differ in width or height")

	// ErrInvalidParameters indicates an out-of-range or inconsistent
	// parameter, such as a quadtree level count exceeding the image size or a
	// non-positive buffer dimension.
	ErrInvalidParameters = errors.New("pixmap: invalid parameters")

	// ErrInvalidSeed indicates a seed coordinate outside the image bounds.
	ErrInvalidSeed = errors.New("pixmap: seed coordinate outside image bounds")
)
