package geo

import (
	"errors"
	"fmt"

	"github.com/ctessum/geom"
	"github.com/dhconnelly/rtreego"

	"github.com/couchcryptid/soil-series-etl/internal/domain"
)

var (
	// ErrEmptyGrid is returned when matching against a grid with no points.
	ErrEmptyGrid = errors.New("reference grid is empty")
	// ErrNoMatch is returned when no grid point equals the nearest point of the union.
	ErrNoMatch = errors.New("no grid point matches nearest point")
)

// R-tree node fan-out.
const (
	minChildren = 25
	maxChildren = 50
)

// gridItem adapts a grid point to rtreego.Spatial.
type gridItem struct {
	pt    geom.Point
	index int
}

func (g *gridItem) Bounds() rtreego.Rect {
	return rtreego.Point{g.pt.X, g.pt.Y}.ToRect(0)
}

// Index answers nearest-point queries against a read-only reference grid.
//
// The grid is held as the union of its points (a multipoint). A query is
// answered in two steps, as a planar nearest-points operation would: first the
// nearest point of the union is found, then the grid is scanned in load order
// for the first point equal to it. Among equidistant points the one loaded
// first is returned.
type Index struct {
	points []domain.GridPoint
	union  geom.MultiPoint
	extent *geom.Bounds
	tree   *rtreego.Rtree
}

// NewIndex builds an index over points. The slice is not copied and must not
// be modified afterwards.
func NewIndex(points []domain.GridPoint) *Index {
	union := make(geom.MultiPoint, len(points))
	items := make([]rtreego.Spatial, len(points))
	var extent *geom.Bounds
	for i, p := range points {
		union[i] = geom.Point{X: p.Lon, Y: p.Lat}
		items[i] = &gridItem{pt: union[i], index: i}
		extent = extend(extent, union[i])
	}

	return &Index{
		points: points,
		union:  union,
		extent: extent,
		tree:   rtreego.NewTree(2, minChildren, maxChildren, items...),
	}
}

// Len returns the number of grid points.
func (ix *Index) Len() int {
	return len(ix.points)
}

// Union returns the multipoint formed by all grid points.
func (ix *Index) Union() geom.MultiPoint {
	return ix.union
}

// Extent returns the bounding box of the grid. It is nil for an empty grid.
func (ix *Index) Extent() *geom.Bounds {
	return ix.extent
}

// Contains reports whether (lon, lat) lies inside the grid's bounding box.
func (ix *Index) Contains(lon, lat float64) bool {
	b := ix.Extent()
	if b == nil {
		return false
	}
	return lon >= b.Min.X && lon <= b.Max.X && lat >= b.Min.Y && lat <= b.Max.Y
}

// Nearest returns the point of the grid union closest to q.
func (ix *Index) Nearest(q geom.Point) (geom.Point, error) {
	i, err := ix.nearestIndex(q)
	if err != nil {
		return geom.Point{}, err
	}
	return ix.union[i], nil
}

// Match returns the grid point nearest to (lon, lat).
func (ix *Index) Match(lon, lat float64) (domain.GridPoint, error) {
	nearest, err := ix.Nearest(geom.Point{X: lon, Y: lat})
	if err != nil {
		return domain.GridPoint{}, err
	}

	for _, p := range ix.points {
		if p.Lon == nearest.X && p.Lat == nearest.Y {
			return p, nil
		}
	}
	return domain.GridPoint{}, fmt.Errorf("(%g, %g): %w", lon, lat, ErrNoMatch)
}

// nearestIndex asks the tree for any nearest candidate, then widens to every
// point within that distance so ties resolve to the lowest load index.
func (ix *Index) nearestIndex(q geom.Point) (int, error) {
	if len(ix.points) == 0 {
		return 0, ErrEmptyGrid
	}

	qp := rtreego.Point{q.X, q.Y}
	candidate, ok := ix.tree.NearestNeighbor(qp).(*gridItem)
	if !ok || candidate == nil {
		return 0, ErrEmptyGrid
	}

	best := candidate.index
	bestD := squaredDistance(q, candidate.pt)

	// rtreego intersection is strict, so pad the window past the candidate distance.
	radius := PlanarDistance(q.X, q.Y, candidate.pt.X, candidate.pt.Y)
	radius += radius*1e-9 + 1e-12

	for _, s := range ix.tree.SearchIntersect(qp.ToRect(radius)) {
		item := s.(*gridItem)
		d := squaredDistance(q, item.pt)
		if d < bestD || (d == bestD && item.index < best) {
			best, bestD = item.index, d
		}
	}
	return best, nil
}

func squaredDistance(a, b geom.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

func extend(b *geom.Bounds, p geom.Point) *geom.Bounds {
	if b == nil {
		return &geom.Bounds{Min: p, Max: p}
	}
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	return b
}
