package pointset

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ttpr0/go-traveltime/geo"
	. "github.com/ttpr0/go-traveltime/util"
)

// Destinations of a request, either a web-mercator grid or explicit points.
type DestinationSpec struct {
	Zoom   int          `json:"zoom" validate:"omitempty,min=1,max=20"`
	West   int          `json:"west"`
	North  int          `json:"north"`
	Width  int          `json:"width" validate:"omitempty,min=1"`
	Height int          `json:"height" validate:"omitempty,min=1"`
	Points [][2]float64 `json:"points"`
}

func (self DestinationSpec) IsGrid() bool {
	return self.Points == nil
}

// Resolves a destination specification to a point set.
type DestinationProvider interface {
	GetPointSet(spec DestinationSpec) (PointSet, error)
}

//*******************************************
// grid cache
//*******************************************

// Bounded cache of destination point sets.
type GridCache struct {
	cache *lru.Cache[string, PointSet]
}

func NewGridCache(size int) (*GridCache, error) {
	cache, err := lru.New[string, PointSet](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid cache: %w", err)
	}
	return &GridCache{cache: cache}, nil
}

func (self *GridCache) GetPointSet(spec DestinationSpec) (PointSet, error) {
	var points PointSet
	if spec.IsGrid() {
		if spec.Zoom <= 0 || spec.Width <= 0 || spec.Height <= 0 {
			return nil, errors.New("grid destinations need zoom, width and height")
		}
		points = NewWebMercatorGrid(spec.Zoom, spec.West, spec.North, spec.Width, spec.Height)
	} else {
		if len(spec.Points) == 0 {
			return nil, errors.New("no destination points given")
		}
		coords := NewArray[geo.Coord](len(spec.Points))
		for i, p := range spec.Points {
			coords[i] = geo.NewCoord(p[0], p[1])
		}
		points = NewFreeFormPointSet(coords)
	}
	if cached, ok := self.cache.Get(points.Key()); ok {
		return cached, nil
	}
	self.cache.Add(points.Key(), points)
	return points, nil
}

func (self *GridCache) Len() int {
	return self.cache.Len()
}
