// Package regions implements connected-component discovery and labeling on
// binary pixel buffers.
//
// Label performs a single forward raster scan over a 1-bit buffer, building a
// union-find forest over provisional labels, then flattens the forest and
// renumbers components to a contiguous range starting at 1 in order of first
// appearance in raster order. The renumbering pass makes label assignment
// deterministic regardless of the internal shape of the union-find trees, so
// two runs over the same image always produce identical output.
//
// Adjacency is governed by Connectivity, shared with the other
// region-analysis packages:
//   - FourWay: N, S, E, W neighbors
//   - EightWay: FourWay plus the four diagonals
//
// Because diagonal adjacency can only merge components, never split them, the
// component count under EightWay is always less than or equal to the count
// under FourWay for the same image.
//
// Complexity: O(N) over N pixels, with amortized near-constant union-find
// operations (path compression on every lookup). The union-find arena is a
// flat slice of parent indices; component identities are indices into it, not
// pointers, so the forest cannot form cycles or dangle.
package regions
