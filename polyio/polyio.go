// Package polyio reads polygons from SVG documents and from plain text.
package polyio

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"

	"github.com/niflight/nigeom/geom"
)

var (
	ErrNoPolygons = errors.New("polyio: no polygons found")
	ErrMalformed  = errors.New("polyio: malformed point list")
)

// ReadSVG returns every <polygon> element of the document, in document order.
// Coordinates are taken as written; SVG's downward Y axis is not flipped, so a
// polygon drawn counterclockwise on screen comes back clockwise.
func ReadSVG(r io.Reader) ([]*geom.Polygon2D, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}
	if root == nil {
		return nil, ErrNoPolygons
	}
	elements := root.FindAll("polygon")
	if len(elements) == 0 {
		return nil, ErrNoPolygons
	}
	polygons := make([]*geom.Polygon2D, 0, len(elements))
	for i, el := range elements {
		points, err := ParsePoints(el.Attributes["points"])
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		polygons = append(polygons, geom.NewPolygon2D(points...))
	}
	return polygons, nil
}

// ParsePoints parses an SVG points attribute. Pairs may be written "x,y x,y"
// or as a flat whitespace separated list.
func ParsePoints(s string) ([]geom.Point2D, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformed, "odd number of coordinates (%d)", len(fields))
	}
	points := make([]geom.Point2D, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		p, err := parsePair(fields[i], fields[i+1])
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// ReadText reads points written one "x y" pair per line. A blank line ends a
// polygon; lines starting with '#' are ignored.
func ReadText(r io.Reader) ([]*geom.Polygon2D, error) {
	var polygons []*geom.Polygon2D
	var points []geom.Point2D
	flush := func() {
		if len(points) > 0 {
			polygons = append(polygons, geom.NewPolygon2D(points...))
			points = nil
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			flush()
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, errors.Wrapf(ErrMalformed, "line %d: want \"x y\", got %q", lineNo, line)
		}
		p, err := parsePair(parts[0], parts[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	flush()
	if len(polygons) == 0 {
		return nil, ErrNoPolygons
	}
	return polygons, nil
}

func parsePair(xs, ys string) (geom.Point2D, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geom.Point2D{}, errors.Wrapf(ErrMalformed, "invalid x value %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geom.Point2D{}, errors.Wrapf(ErrMalformed, "invalid y value %q", ys)
	}
	p := geom.P2(x, y)
	if !p.IsFinite() {
		return geom.Point2D{}, errors.Wrapf(ErrMalformed, "non-finite point (%s, %s)", xs, ys)
	}
	return p, nil
}
