package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	a := NewCoord(13.0, 52.0)
	b := NewCoord(13.0, 52.1)
	// one tenth of a degree latitude is about 11.1 km
	assert.InDelta(t, 11119, Distance(a, b), 50)
}

func TestPixelRoundTrip(t *testing.T) {
	lon, lat := 8.68, 50.11
	for _, zoom := range []int{9, 12} {
		x := LonToPixel(lon, zoom)
		y := LatToPixel(lat, zoom)
		assert.InDelta(t, lon, PixelToLon(x, zoom), 1e-9)
		assert.InDelta(t, lat, PixelToLat(y, zoom), 1e-9)
	}
}

func TestProjectOnSegment(t *testing.T) {
	frac, dist := ProjectOnSegment(5, 3, 0, 0, 10, 0)
	assert.InDelta(t, 0.5, frac, 1e-9)
	assert.InDelta(t, 3, dist, 1e-9)

	frac, dist = ProjectOnSegment(-4, 3, 0, 0, 10, 0)
	assert.Equal(t, 0.0, frac)
	assert.InDelta(t, 5, dist, 1e-9)
}

func TestBounds(t *testing.T) {
	b := Bounds([]Coord{NewCoord(1, 2), NewCoord(-1, 5), NewCoord(0, 3)})
	assert.Equal(t, -1.0, b.Min[0])
	assert.Equal(t, 5.0, b.Max[1])
}
