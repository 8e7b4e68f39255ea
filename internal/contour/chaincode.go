package contour

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

// four is the 4-neighborhood step table for 4-connected chain codes:
// E, S, W, N.
var four = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// ChainCode is a border encoded as unit direction steps from a start point.
//
// For EightWay the codes are 0-7 indexing E, SE, S, SW, W, NW, N, NE
// (clockwise with y down); for FourWay they are 0-3 indexing E, S, W, N.
type ChainCode struct {
	Start        Point                `json:"start"`
	Connectivity regions.Connectivity `json:"connectivity"`
	Codes        []byte               `json:"codes"`
}

// ToChainCode encodes an ordered point sequence as direction codes relative
// to its first point.
//
// Every consecutive pair must differ by one unit step of the given
// connectivity; otherwise ErrInvalidParameters is returned. An empty sequence
// is also ErrInvalidParameters; a single point encodes to zero codes.
func ToChainCode(points []Point, conn regions.Connectivity) (*ChainCode, error) {
	if !conn.Valid() {
		return nil, fmt.Errorf("%w: connectivity %d", pixmap.ErrInvalidParameters, int(conn))
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty point sequence", pixmap.ErrInvalidParameters)
	}

	cc := &ChainCode{
		Start:        points[0],
		Connectivity: conn,
		Codes:        make([]byte, 0, len(points)-1),
	}
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		code := stepCode(dx, dy, conn)
		if code < 0 {
			return nil, fmt.Errorf("%w: step (%d,%d) at index %d is not a %s unit step",
				pixmap.ErrInvalidParameters, dx, dy, i, conn)
		}
		cc.Codes = append(cc.Codes, byte(code))
	}
	return cc, nil
}

// Points decodes the chain back to the point sequence it was built from.
func (c *ChainCode) Points() ([]Point, error) {
	if !c.Connectivity.Valid() {
		return nil, fmt.Errorf("%w: connectivity %d", pixmap.ErrInvalidParameters, int(c.Connectivity))
	}
	limit := 8
	if c.Connectivity == regions.FourWay {
		limit = 4
	}

	points := make([]Point, 0, len(c.Codes)+1)
	points = append(points, c.Start)
	x, y := c.Start.X, c.Start.Y
	for i, code := range c.Codes {
		if int(code) >= limit {
			return nil, fmt.Errorf("%w: code %d at index %d exceeds %s range",
				pixmap.ErrInvalidParameters, code, i, c.Connectivity)
		}
		var d [2]int
		if c.Connectivity == regions.FourWay {
			d = four[code]
		} else {
			d = moore[code]
		}
		x += d[0]
		y += d[1]
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

func stepCode(dx, dy int, conn regions.Connectivity) int {
	if conn == regions.FourWay {
		for i, d := range four {
			if d[0] == dx && d[1] == dy {
				return i
			}
		}
		return -1
	}
	return dirIndex(dx, dy)
}
