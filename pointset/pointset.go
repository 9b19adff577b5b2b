package pointset

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/paulmach/orb"
	"github.com/ttpr0/go-traveltime/geo"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// point set
//*******************************************

// Ordered destination set with stable indices 0..FeatureCount()-1.
type PointSet interface {
	// Identifies the geography, equal keys mean equal point sets.
	Key() string
	FeatureCount() int
	GetCoord(index int) geo.Coord
}

//*******************************************
// web-mercator grid
//*******************************************

// Rectangular block of web-mercator pixels, points are the pixel centres in row-major order.
type WebMercatorGrid struct {
	Zoom   int
	West   int
	North  int
	Width  int
	Height int
}

func NewWebMercatorGrid(zoom, west, north, width, height int) *WebMercatorGrid {
	return &WebMercatorGrid{
		Zoom:   zoom,
		West:   west,
		North:  north,
		Width:  width,
		Height: height,
	}
}

// Creates the smallest grid at zoom covering bounds.
func NewWebMercatorGridForBounds(bounds orb.Bound, zoom int) *WebMercatorGrid {
	west := int(math.Floor(geo.LonToPixel(bounds.Min.Lon(), zoom)))
	east := int(math.Ceil(geo.LonToPixel(bounds.Max.Lon(), zoom)))
	north := int(math.Floor(geo.LatToPixel(bounds.Max.Lat(), zoom)))
	south := int(math.Ceil(geo.LatToPixel(bounds.Min.Lat(), zoom)))
	return NewWebMercatorGrid(zoom, west, north, max(east-west, 1), max(south-north, 1))
}

func (self *WebMercatorGrid) Key() string {
	return fmt.Sprintf("grid_%d_%d_%d_%d_%d", self.Zoom, self.West, self.North, self.Width, self.Height)
}

func (self *WebMercatorGrid) FeatureCount() int {
	return self.Width * self.Height
}

func (self *WebMercatorGrid) GetCoord(index int) geo.Coord {
	x := index % self.Width
	y := index / self.Width
	lon := geo.PixelToLon(float64(self.West+x)+0.5, self.Zoom)
	lat := geo.PixelToLat(float64(self.North+y)+0.5, self.Zoom)
	return geo.NewCoord(lon, lat)
}

//*******************************************
// free-form point set
//*******************************************

type FreeFormPointSet struct {
	key    string
	ids    Array[string]
	coords Array[geo.Coord]
}

// Creates a point set from explicit coordinates. The key is derived from the coordinates.
func NewFreeFormPointSet(coords Array[geo.Coord]) *FreeFormPointSet {
	hash := fnv.New64a()
	buf := make([]byte, 8)
	for _, c := range coords {
		for _, v := range c {
			bits := math.Float32bits(v)
			buf[0], buf[1], buf[2], buf[3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
			hash.Write(buf[:4])
		}
	}
	ids := NewArray[string](coords.Length())
	for i := range ids {
		ids[i] = fmt.Sprint(i)
	}
	return &FreeFormPointSet{
		key:    fmt.Sprintf("points_%d_%x", coords.Length(), hash.Sum64()),
		ids:    ids,
		coords: coords,
	}
}

func (self *FreeFormPointSet) Key() string {
	return self.key
}

func (self *FreeFormPointSet) FeatureCount() int {
	return self.coords.Length()
}

func (self *FreeFormPointSet) GetCoord(index int) geo.Coord {
	return self.coords[index]
}

func (self *FreeFormPointSet) GetID(index int) string {
	return self.ids[index]
}

type csvPoint struct {
	ID  string  `csv:"id"`
	Lon float64 `csv:"lon"`
	Lat float64 `csv:"lat"`
}

// Reads a point set from a delimited file with id, lon and lat columns.
func LoadFreeFormPointSet(filename string, delimiter rune) (*FreeFormPointSet, error) {
	rows, closer, err := ReadCSVFromFile[csvPoint](filename, delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to open point set: %w", err)
	}
	defer closer()
	ids := NewList[string](100)
	coords := NewList[geo.Coord](100)
	for row := range rows {
		if row.Lon == 0 && row.Lat == 0 {
			continue
		}
		ids.Add(row.ID)
		coords.Add(geo.NewCoord(row.Lon, row.Lat))
	}
	points := NewFreeFormPointSet(Array[geo.Coord](coords))
	points.ids = Array[string](ids)
	return points, nil
}
