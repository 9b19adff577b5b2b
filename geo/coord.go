package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

//*******************************************
// coordinates
//*******************************************

// Longitude/latitude pair in degrees.
type Coord [2]float32

func NewCoord(lon, lat float64) Coord {
	return Coord{float32(lon), float32(lat)}
}

func (self Coord) Lon() float64 {
	return float64(self[0])
}
func (self Coord) Lat() float64 {
	return float64(self[1])
}
func (self Coord) Point() orb.Point {
	return orb.Point{self.Lon(), self.Lat()}
}

// Great-circle distance in meters.
func Distance(a, b Coord) float64 {
	return orbgeo.Distance(a.Point(), b.Point())
}

// Bounding box of the given coordinates.
func Bounds(coords []Coord) orb.Bound {
	if len(coords) == 0 {
		return orb.Bound{}
	}
	bound := orb.Bound{Min: coords[0].Point(), Max: coords[0].Point()}
	for _, c := range coords[1:] {
		bound = bound.Extend(c.Point())
	}
	return bound
}

//*******************************************
// local projection
//*******************************************

const EARTH_RADIUS = 6371008.8

// Equirectangular projection around a reference latitude, good enough for
// nearest-edge queries over a metropolitan area.
type LocalProjection struct {
	cos_lat float64
}

func NewLocalProjection(ref_lat float64) LocalProjection {
	return LocalProjection{cos_lat: math.Cos(ref_lat * math.Pi / 180)}
}

// Projects to planar meters.
func (self LocalProjection) Proj(c Coord) (float64, float64) {
	x := c.Lon() * math.Pi / 180 * EARTH_RADIUS * self.cos_lat
	y := c.Lat() * math.Pi / 180 * EARTH_RADIUS
	return x, y
}

// Projects p onto the segment a-b (all planar).
//
// Returns the fraction along the segment (0..1) and the distance from p to the projected point.
func ProjectOnSegment(px, py, ax, ay, bx, by float64) (float64, float64) {
	dx := bx - ax
	dy := by - ay
	len2 := dx*dx + dy*dy
	frac := 0.0
	if len2 > 0 {
		frac = ((px-ax)*dx + (py-ay)*dy) / len2
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	qx := ax + frac*dx
	qy := ay + frac*dy
	return frac, math.Hypot(px-qx, py-qy)
}

//*******************************************
// web mercator
//*******************************************

// Pixel coordinates of a coordinate at the given zoom level (256 pixels per tile).
func LonToPixel(lon float64, zoom int) float64 {
	return (lon + 180) / 360 * math.Pow(2, float64(zoom)) * 256
}
func LatToPixel(lat float64, zoom int) float64 {
	lat_rad := lat * math.Pi / 180
	return (1 - math.Log(math.Tan(lat_rad)+1/math.Cos(lat_rad))/math.Pi) / 2 * math.Pow(2, float64(zoom)) * 256
}
func PixelToLon(x float64, zoom int) float64 {
	return x/(math.Pow(2, float64(zoom))*256)*360 - 180
}
func PixelToLat(y float64, zoom int) float64 {
	n := math.Pi - 2*math.Pi*y/(math.Pow(2, float64(zoom))*256)
	return 180 / math.Pi * math.Atan(math.Sinh(n))
}
