package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ctessum/geom/proj"
)

// Reference systems used by the Cook East survey.
const (
	// SurveyCRS is WGS 84 / UTM zone 11N, the system the sample spreadsheet uses.
	SurveyCRS = "EPSG:32611"
	// GeographicCRS is WGS 84 longitude/latitude, the system of the grid and the output.
	GeographicCRS = "EPSG:4326"
)

// ErrOutOfDomain is returned when a coordinate cannot be transformed.
var ErrOutOfDomain = errors.New("coordinate out of domain")

// Definition resolves an EPSG code to a PROJ.4 definition. Only WGS 84
// geographic and the WGS 84 UTM zones are known. Strings that already start
// with "+proj=" are returned unchanged.
func Definition(code string) (string, error) {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, "+proj=") {
		return code, nil
	}

	upper := strings.ToUpper(code)
	if !strings.HasPrefix(upper, "EPSG:") {
		return "", fmt.Errorf("unsupported reference system %q", code)
	}
	n, err := strconv.Atoi(upper[len("EPSG:"):])
	if err != nil {
		return "", fmt.Errorf("unsupported reference system %q", code)
	}

	switch {
	case n == 4326:
		return "+proj=longlat +datum=WGS84 +no_defs", nil
	case n >= 32601 && n <= 32660:
		return fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", n-32600), nil
	case n >= 32701 && n <= 32760:
		return fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", n-32700), nil
	}
	return "", fmt.Errorf("unsupported reference system %q", code)
}

// Projector converts positions between a projected and a geographic reference
// system. It holds no mutable state.
type Projector struct {
	source  string
	target  string
	forward proj.Transformer
	inverse proj.Transformer
}

// NewProjector builds a projector from source to target. Both arguments accept
// EPSG codes known to Definition or raw PROJ.4 strings.
func NewProjector(source, target string) (*Projector, error) {
	srcDef, err := Definition(source)
	if err != nil {
		return nil, err
	}
	dstDef, err := Definition(target)
	if err != nil {
		return nil, err
	}

	srcSR, err := proj.Parse(srcDef)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	dstSR, err := proj.Parse(dstDef)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}

	fwd, err := srcSR.NewTransform(dstSR)
	if err != nil {
		return nil, fmt.Errorf("transform %s -> %s: %w", source, target, err)
	}
	inv, err := dstSR.NewTransform(srcSR)
	if err != nil {
		return nil, fmt.Errorf("transform %s -> %s: %w", target, source, err)
	}

	return &Projector{source: source, target: target, forward: fwd, inverse: inv}, nil
}

// NewSurveyProjector returns the EPSG:32611 -> EPSG:4326 projector.
func NewSurveyProjector() (*Projector, error) {
	return NewProjector(SurveyCRS, GeographicCRS)
}

// Forward maps a projected (easting, northing) to (longitude, latitude).
func (p *Projector) Forward(easting, northing float64) (lon, lat float64, err error) {
	return apply(p.forward, easting, northing)
}

// Inverse maps (longitude, latitude) back to (easting, northing).
func (p *Projector) Inverse(lon, lat float64) (easting, northing float64, err error) {
	return apply(p.inverse, lon, lat)
}

func (p *Projector) String() string {
	return p.source + " -> " + p.target
}

func apply(t proj.Transformer, x, y float64) (float64, float64, error) {
	if !finite(x) || !finite(y) {
		return 0, 0, fmt.Errorf("(%g, %g): %w", x, y, ErrOutOfDomain)
	}
	ox, oy, err := t(x, y)
	if err != nil {
		return 0, 0, fmt.Errorf("(%g, %g): %w: %v", x, y, ErrOutOfDomain, err)
	}
	if !finite(ox) || !finite(oy) {
		return 0, 0, fmt.Errorf("(%g, %g): %w", x, y, ErrOutOfDomain)
	}
	return ox, oy, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
