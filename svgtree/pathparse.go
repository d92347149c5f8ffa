package svgtree

import (
	"fmt"
	"math"
	"unicode"

	"golang.org/x/image/math/fixed"
)

// This file implements the parsing of the 'd' path attribute

// pathCursor accumulates the current path while parsing,
// with the state needed to resolve relative coordinates
// and shorthand control points.
type pathCursor struct {
	path                   Path
	points                 []float64
	placeX, placeY         float64
	curX, curY             float64 // offset applied by the use element
	cntlPtX, cntlPtY       float64 // reflection control point for the S and T commands
	pathStartX, pathStartY float64
	errorMode              ErrorMode
	lastKey                uint8
	inPath                 bool
}

// fixedPoint applies the use offset and converts to the fixed point format
func (c *pathCursor) fixedPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6((x + c.curX) * 64),
		Y: fixed.Int26_6((y + c.curY) * 64),
	}
}

// getPoints reads a set of floating point values from the SVG format number string,
// and stores them in the cursor points slice.
func (c *pathCursor) getPoints(dataPoints string) error {
	lastIndex := -1
	c.points = c.points[:0]
	lr := ' '
	for i, r := range dataPoints {
		if !unicode.IsNumber(r) && r != '.' && !(r == '-' && lr == 'e') && r != 'e' {
			if lastIndex != -1 {
				value, err := parseFloat(dataPoints[lastIndex:i], 64)
				if err != nil {
					return err
				}
				c.points = append(c.points, value)
			}
			if r == '-' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
		} else if lastIndex == -1 {
			lastIndex = i
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		value, err := parseFloat(dataPoints[lastIndex:], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, value)
	}
	return nil
}

// valsToAbs converts a run of relative values to absolute values,
// starting from `last`
func (c *pathCursor) valsToAbs(last float64) {
	for i := 0; i < len(c.points); i++ {
		last += c.points[i]
		c.points[i] = last
	}
}

// pointsToAbs converts relative point sets of size sz
// to absolute coordinates
func (c *pathCursor) pointsToAbs(sz int) {
	lastX := c.placeX
	lastY := c.placeY
	for j := 0; j < len(c.points); j += sz {
		for i := 0; i < sz; i += 2 {
			c.points[i+j] += lastX
			c.points[i+1+j] += lastY
		}
		lastX = c.points[(j+sz)-2]
		lastY = c.points[(j+sz)-1]
	}
}

func (c *pathCursor) hasSetsOrPoints() bool {
	return len(c.points) > 0 && len(c.points)%2 == 0
}

// reflectControl returns the reflection of the last control point
// around the current place, or the place itself if the previous
// command did not leave a control point of the right kind
func (c *pathCursor) reflectControl(quad bool) (x, y float64) {
	var ok bool
	if quad {
		ok = c.lastKey == 'q' || c.lastKey == 'Q' || c.lastKey == 't' || c.lastKey == 'T'
	} else {
		ok = c.lastKey == 'c' || c.lastKey == 'C' || c.lastKey == 's' || c.lastKey == 'S'
	}
	if !ok {
		return c.placeX, c.placeY
	}
	return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
}

// compilePath translates the svgStr path description
// into path operations appended to the cursor path.
// All valid SVG path commands are supported, in their
// absolute and relative variants.
func (c *pathCursor) compilePath(svgStr string) error {
	lastIndex := -1
	c.points = c.points[:0]
	c.inPath = false
	c.lastKey = ' '
	for i, v := range svgStr {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(svgStr[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgStr[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

// addSeg decodes an SVG segment string into equivalent
// raster path commands
func (c *pathCursor) addSeg(segString string) error {
	// Parse the string describing the numeric points in SVG format
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := false
	switch k {
	case 'z', 'Z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX = c.pathStartX
			c.placeY = c.pathStartY
			c.inPath = false
		}
	case 'm':
		rel = true
		fallthrough
	case 'M':
		if !c.hasSetsOrPoints() {
			return errParamMismatch
		}
		if rel {
			c.pointsToAbs(2)
		}
		for i := 0; i < l; i += 2 {
			if i == 0 {
				c.pathStartX, c.pathStartY = c.points[0], c.points[1]
				c.inPath = true
				c.path.Start(c.fixedPoint(c.points[0], c.points[1]))
			} else {
				c.path.Line(c.fixedPoint(c.points[i], c.points[i+1]))
			}
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'l':
		rel = true
		fallthrough
	case 'L':
		if !c.hasSetsOrPoints() {
			return errParamMismatch
		}
		if rel {
			c.pointsToAbs(2)
		}
		for i := 0; i < l; i += 2 {
			c.path.Line(c.fixedPoint(c.points[i], c.points[i+1]))
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'v':
		c.valsToAbs(c.placeY)
		fallthrough
	case 'V':
		if l == 0 {
			return errParamMismatch
		}
		for _, y := range c.points {
			c.path.Line(c.fixedPoint(c.placeX, y))
		}
		c.placeY = c.points[l-1]
	case 'h':
		c.valsToAbs(c.placeX)
		fallthrough
	case 'H':
		if l == 0 {
			return errParamMismatch
		}
		for _, x := range c.points {
			c.path.Line(c.fixedPoint(x, c.placeY))
		}
		c.placeX = c.points[l-1]
	case 'q':
		rel = true
		fallthrough
	case 'Q':
		if l%4 != 0 || l == 0 {
			return errParamMismatch
		}
		if rel {
			c.pointsToAbs(4)
		}
		for i := 0; i < l; i += 4 {
			c.path.QuadBezier(
				c.fixedPoint(c.points[i], c.points[i+1]),
				c.fixedPoint(c.points[i+2], c.points[i+3]))
		}
		c.cntlPtX, c.cntlPtY = c.points[l-4], c.points[l-3]
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 't':
		rel = true
		fallthrough
	case 'T':
		if !c.hasSetsOrPoints() {
			return errParamMismatch
		}
		if rel {
			c.pointsToAbs(2)
		}
		for i := 0; i < l; i += 2 {
			cx, cy := c.reflectControl(true)
			c.path.QuadBezier(
				c.fixedPoint(cx, cy),
				c.fixedPoint(c.points[i], c.points[i+1]))
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = cx, cy
			c.placeX = c.points[i]
			c.placeY = c.points[i+1]
		}
	case 'c':
		rel = true
		fallthrough
	case 'C':
		if l%6 != 0 || l == 0 {
			return errParamMismatch
		}
		if rel {
			c.pointsToAbs(6)
		}
		for i := 0; i < l; i += 6 {
			c.path.CubeBezier(
				c.fixedPoint(c.points[i], c.points[i+1]),
				c.fixedPoint(c.points[i+2], c.points[i+3]),
				c.fixedPoint(c.points[i+4], c.points[i+5]))
		}
		c.cntlPtX, c.cntlPtY = c.points[l-4], c.points[l-3]
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 's':
		rel = true
		fallthrough
	case 'S':
		if l%4 != 0 || l == 0 {
			return errParamMismatch
		}
		if rel {
			c.pointsToAbs(4)
		}
		for i := 0; i < l; i += 4 {
			cx, cy := c.reflectControl(false)
			c.path.CubeBezier(
				c.fixedPoint(cx, cy),
				c.fixedPoint(c.points[i], c.points[i+1]),
				c.fixedPoint(c.points[i+2], c.points[i+3]))
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX = c.points[i+2]
			c.placeY = c.points[i+3]
		}
	case 'a', 'A':
		if l%7 != 0 || l == 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			c.addArcFromA(c.points[i:])
		}
	default:
		if c.errorMode == StrictErrorMode {
			return fmt.Errorf("%w: %s", errCommandUnknown, string(k))
		}
	}
	c.lastKey = k
	return nil
}

// ellipseAt adds a path of an ellipse centered at cx, cy of radius rx and ry
// to the pathCursor
func (c *pathCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.placeX, c.placeY = cx+rx, cy
	c.points = c.points[:0]
	c.points = append(c.points, rx, ry, 0.0, 1.0, 0.0, c.placeX, c.placeY)
	c.path.Start(toFixedP(c.placeX, c.placeY))
	// the center is already known: findEllipseCenter assumes distinct
	// start and end points, which does not hold for a closed ellipse
	c.placeX, c.placeY = c.path.addArc(c.points, cx, cy, c.placeX, c.placeY)
	c.path.Stop(true)
}

// addArcFromA adds a path of an arc element to the cursor path
func (c *pathCursor) addArcFromA(points []float64) {
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180, c.placeX,
		c.placeY, points[5], points[6], points[4] == 0, points[3] == 0)
	c.placeX, c.placeY = c.path.addArc(points, cx, cy, c.placeX, c.placeY)
}
