// Package contour traces component boundaries on binary pixel buffers and
// converts the traced point sequences to and from chain codes.
//
// Tracing uses Moore-neighbor boundary following: from each boundary pixel
// the walk examines the 8-neighborhood, rotating clockwise (outer borders) or
// counter-clockwise (hole borders) from the backtrack position until the next
// foreground pixel is found. The walk terminates when it repeats the first
// move (same pixel entered from the same direction), which handles
// single-pixel and one-pixel-wide components that a plain "reached the start
// pixel" test would loop on forever.
//
// By convention outer borders are emitted clockwise and hole borders
// counter-clockwise (in image coordinates, y growing downward), so winding
// direction alone distinguishes solid exterior from interior void.
//
// Holes are discovered by labeling the background under the connectivity
// complementary to the foreground's: a background component that never
// touches the image frame is a hole in the unique foreground component
// enclosing it.
//
// Chain codes encode a border as unit steps: codes 0-7 for 8-connected
// walks (0 = east, increasing clockwise with y down) and 0-3 for 4-connected
// paths (E, S, W, N). Encoding then decoding reproduces the original point
// sequence exactly.
package contour
