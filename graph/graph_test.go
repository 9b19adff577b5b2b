package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/internal/testnet"
	. "github.com/ttpr0/go-traveltime/util"
)

func TestTopology(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	streets := grid.Streets
	assert.Equal(t, 9, streets.NodeCount())
	// 12 undirected streets
	assert.Equal(t, 24, streets.EdgeCount())

	neighbours := NewList[int32](4)
	streets.ForAdjacentEdges(grid.Vertex(1, 1), func(ref graph.EdgeRef) {
		neighbours.Add(ref.OtherID)
	})
	assert.ElementsMatch(t, []int32{grid.Vertex(0, 1), grid.Vertex(1, 0), grid.Vertex(1, 2), grid.Vertex(2, 1)}, neighbours)

	for i := 0; i < streets.EdgeCount(); i++ {
		rev := streets.GetReverseEdge(int32(i))
		require.NotEqual(t, int32(-1), rev)
		assert.Equal(t, streets.GetEdge(int32(i)).NodeA, streets.GetEdge(rev).NodeB)
	}
}

func TestEdgeSeconds(t *testing.T) {
	grid := testnet.NewGrid(2, 2, 100)
	// 100 m at 1.3 m/s
	assert.Equal(t, int32(77), grid.Streets.GetEdgeSeconds(0, graph.WALK, 1300))
	// car uses the default speed of 40 km/h
	assert.Equal(t, int32(9), grid.Streets.GetEdgeSeconds(0, graph.CAR, 1300))
}

func TestSplitMidEdge(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	// 30 m east of vertex (0,0), 10 m north of the street
	point := grid.Offset(10, 30)
	split, ok := grid.Streets.Split(point, graph.WALK, 500)
	require.True(t, ok)

	ends := []int32{split.NodeA, split.NodeB}
	assert.ElementsMatch(t, []int32{grid.Vertex(0, 0), grid.Vertex(0, 1)}, ends)
	dist_to_origin := split.DistanceA
	if split.NodeB == grid.Vertex(0, 0) {
		dist_to_origin = split.DistanceB
	}
	assert.InDelta(t, 30000, dist_to_origin, 500)
	assert.InDelta(t, 10000, split.Offset, 500)
	assert.Equal(t, int32(100000), split.DistanceA+split.DistanceB)
}

func TestSplitOutsideRadius(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	far := grid.Offset(50000, 0)
	_, ok := grid.Streets.Split(far, graph.WALK, 1000)
	assert.False(t, ok)
}

func TestSplitRespectsPermissions(t *testing.T) {
	nodes := Array[graph.Node]{
		{Loc: geo.NewCoord(13.0, 52.0)},
		{Loc: geo.NewCoord(13.001, 52.0)},
	}
	edges := Array[graph.Edge]{
		{NodeA: 0, NodeB: 1, Length: 68000, Permissions: graph.ALLOWS_WALK},
		{NodeA: 1, NodeB: 0, Length: 68000, Permissions: graph.ALLOWS_WALK},
	}
	streets := graph.NewStreetLayer(nodes, edges)
	_, ok := streets.Split(geo.NewCoord(13.0005, 52.0), graph.WALK, 100)
	assert.True(t, ok)
	_, ok = streets.Split(geo.NewCoord(13.0005, 52.0), graph.CAR, 100)
	assert.False(t, ok)
}

func TestTransitLayer(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	transit := grid.Transit(
		testnet.Line{Vertices: []int32{0, 1, 2}, First: 3600, Headway: 600, Count: 3, Hop: 60},
		testnet.Line{Vertices: []int32{2, 5, 8}, First: 3600, Headway: 600, Count: 3, Hop: 60},
	)
	assert.Equal(t, 5, transit.StopCount())
	assert.Equal(t, 2, transit.PatternCount())
	shared := transit.MapVertexToStop(2)
	require.NotEqual(t, int32(-1), shared)
	assert.Len(t, transit.GetPatternsForStop(shared), 2)
	assert.Equal(t, int32(-1), transit.MapVertexToStop(4))
	assert.Equal(t, int32(8), transit.MapStopToVertex(transit.MapVertexToStop(8)))
}
