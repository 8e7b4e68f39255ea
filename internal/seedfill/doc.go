// Package seedfill implements flood-fill and morphological-reconstruction
// primitives on binary and grayscale pixel buffers, plus the derived
// operations built from them: hole filling, border clearing, seeded-component
// removal, and the chessboard/city-block distance transform.
//
// Binary reconstruction floods a seed outward through mask foreground: the
// result is exactly the set of mask pixels reachable from a seed pixel by a
// connectivity-respecting path inside the mask. It is idempotent: filling an
// already-filled result changes nothing.
//
// Grayscale reconstruction by dilation (Gray) raises each pixel to the
// maximum of itself and its neighbors, clipped above by the mask, until a
// fixed point is reached. The implementation is the classic hybrid scheme:
// one forward and one backward raster sweep, then a FIFO work queue of
// pixels whose neighborhood can still change, so cost tracks the area
// actually filled rather than image size times pass count. GrayInverse is
// the erosion-based dual, computed through sample complementation.
//
// All operations are pure functions of their inputs: inputs are borrowed for
// the call, results are freshly allocated, and no state survives a return.
package seedfill
