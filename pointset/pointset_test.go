package pointset_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/internal/testnet"
	"github.com/ttpr0/go-traveltime/pointset"
	. "github.com/ttpr0/go-traveltime/util"
)

func TestEval(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	network := grid.Network(nil, nil, nil)
	points := pointset.NewFreeFormPointSet(Array[geo.Coord]{
		grid.Offset(10, 50),
		grid.Offset(50000, 0),
	})
	linked := pointset.Link(network, points, graph.WALK, pointset.DefaultLinkOptions(graph.WALK))
	require.True(t, linked.IsLinked(0))
	assert.False(t, linked.IsLinked(1))

	first := func(v int32) int32 {
		switch v {
		case grid.Vertex(0, 0):
			return 0
		case grid.Vertex(0, 1):
			return 100
		}
		return UNREACHED
	}
	// 50 m along the street and 10 m offset at 1 m/s
	times := linked.Eval(first, 1000)
	assert.InDelta(t, 60, times[0], 1)
	assert.Equal(t, UNREACHED, times[1])

	second := func(v int32) int32 {
		if v == grid.Vertex(0, 1) {
			return 5
		}
		return UNREACHED
	}
	assert.InDelta(t, 65, linked.Eval(second, 1000)[0], 1)
	assert.Equal(t, times, linked.Eval(first, 1000))

	none := func(v int32) int32 { return UNREACHED }
	assert.Equal(t, Array[int32]{UNREACHED, UNREACHED}, linked.Eval(none, 1000))
}

func TestEgressTree(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	transit := grid.Transit(testnet.Line{
		Vertices: []int32{grid.Vertex(0, 0), grid.Vertex(2, 2)},
		First:    3600, Headway: 600, Count: 2, Hop: 300,
	})
	network := grid.Network(transit, nil, nil)
	points := pointset.NewFreeFormPointSet(Array[geo.Coord]{
		grid.Offset(0, 50),
		grid.Offset(200, 200),
	})
	options := pointset.LinkOptions{LinkRadiusMeters: 500, StopTreeRadiusMM: 150000}
	linked := pointset.Link(network, points, graph.WALK, options)

	tree := linked.EgressTree(0)
	require.Equal(t, 1, tree.Length())
	assert.Equal(t, int32(0), tree[0].Point)
	assert.InDelta(t, 50000, tree[0].Distance, 500)

	tree = linked.EgressTree(1)
	require.Equal(t, 1, tree.Length())
	assert.Equal(t, int32(1), tree[0].Point)
	assert.InDelta(t, 0, tree[0].Distance, 500)
}

func TestLinkageMemoization(t *testing.T) {
	var builds atomic.Int32
	cache := pointset.NewLinkageCache(func(points pointset.PointSet, mode graph.StreetMode) *pointset.LinkedPointSet {
		builds.Add(1)
		return &pointset.LinkedPointSet{}
	})
	grid := pointset.NewWebMercatorGrid(10, 100, 100, 4, 4)

	results := make([]*pointset.LinkedPointSet, 32)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Get(grid, graph.WALK)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}

	// same geography, new instance
	again := pointset.NewWebMercatorGrid(10, 100, 100, 4, 4)
	assert.Same(t, results[0], cache.Get(again, graph.WALK))
	assert.Equal(t, int32(1), builds.Load())

	cache.Get(grid, graph.BICYCLE)
	assert.Equal(t, int32(2), builds.Load())
}

func TestWebMercatorGrid(t *testing.T) {
	grid := pointset.NewWebMercatorGrid(12, 2200, 1340, 3, 2)
	assert.Equal(t, 6, grid.FeatureCount())
	first := grid.GetCoord(0)
	last := grid.GetCoord(5)
	assert.Less(t, first.Lon(), last.Lon())
	assert.Greater(t, first.Lat(), last.Lat())
	// pixel centre, coordinates are float32 so a hundredth of a pixel is lost at zoom 12
	assert.InDelta(t, 2200.5, geo.LonToPixel(first.Lon(), 12), 0.05)

	bounds := geo.Bounds([]geo.Coord{first, last})
	covering := pointset.NewWebMercatorGridForBounds(bounds, 12)
	assert.Equal(t, 2200, covering.West)
	assert.Equal(t, 1340, covering.North)
}

func TestGridCache(t *testing.T) {
	cache, err := pointset.NewGridCache(2)
	require.NoError(t, err)

	spec := pointset.DestinationSpec{Zoom: 9, West: 10, North: 20, Width: 5, Height: 4}
	a, err := cache.GetPointSet(spec)
	require.NoError(t, err)
	b, err := cache.GetPointSet(spec)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 20, a.FeatureCount())

	points, err := cache.GetPointSet(pointset.DestinationSpec{Points: [][2]float64{{13.0, 52.0}, {13.1, 52.1}}})
	require.NoError(t, err)
	assert.Equal(t, 2, points.FeatureCount())
	assert.Equal(t, 2, cache.Len())

	_, err = cache.GetPointSet(pointset.DestinationSpec{Zoom: 9})
	assert.Error(t, err)
}

func TestLoadFreeFormPointSet(t *testing.T) {
	points, err := pointset.LoadFreeFormPointSet("testdata/destinations.csv", ';')
	require.NoError(t, err)
	require.Equal(t, 3, points.FeatureCount())
	assert.Equal(t, "b", points.GetID(1))
	assert.InDelta(t, 13.0010, points.GetCoord(1).Lon(), 1e-5)

	_, err = pointset.LoadFreeFormPointSet("testdata/missing.csv", ';')
	assert.Error(t, err)
}
