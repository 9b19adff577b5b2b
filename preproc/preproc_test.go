package preproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/internal/testnet"
	. "github.com/ttpr0/go-traveltime/util"
)

func gridTransit(grid *testnet.Grid) *graph.TransitLayer {
	stops := Array[graph.Stop]{
		{ID: "s0", Loc: grid.Coord(0, 0)},
		{ID: "s1", Loc: grid.Coord(0, 1)},
		{ID: "s2", Loc: grid.Coord(2, 2)},
		{ID: "far", Loc: grid.Offset(10000, 10000)},
	}
	patterns := Array[graph.Pattern]{{
		RouteID: "A",
		Stops:   []int32{0, 1, 2},
		Trips: []graph.TripSchedule{{
			TripID:     "A0",
			Arrivals:   []int32{100, 200, 300},
			Departures: []int32{100, 200, 300},
		}},
	}}
	options := DefaultTransitOptions()
	options.MaxTransferDistance = 150_000
	return PrepareTransit(grid.Streets, stops, patterns, options)
}

func TestPrepareTransitLinksStops(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	transit := gridTransit(grid)

	assert.Equal(t, grid.Vertex(0, 0), transit.MapStopToVertex(0))
	assert.Equal(t, grid.Vertex(0, 1), transit.MapStopToVertex(1))
	assert.Equal(t, grid.Vertex(2, 2), transit.MapStopToVertex(2))
	assert.Equal(t, int32(-1), transit.MapStopToVertex(3))
	assert.Equal(t, int32(2), transit.MapVertexToStop(grid.Vertex(2, 2)))
}

func TestBuildTransfers(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	transit := gridTransit(grid)

	assert.Equal(t, List[graph.Transfer]{{ToStop: 1, Distance: 100_000}}, transit.GetTransfers(0))
	assert.Equal(t, List[graph.Transfer]{{ToStop: 0, Distance: 100_000}}, transit.GetTransfers(1))
	assert.Empty(t, transit.GetTransfers(2))
	assert.Empty(t, transit.GetTransfers(3))
}

func TestBuildParkRides(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	transit := gridTransit(grid)
	options := DefaultTransitOptions()
	options.MaxParkRideDistance = 250_000

	facilities := List[geo.Coord]{grid.Coord(1, 1), grid.Offset(10000, 10000)}
	park_rides := BuildParkRides(grid.Streets, transit, facilities, options)

	require.Equal(t, 1, park_rides.Length())
	assert.Equal(t, grid.Vertex(1, 1), park_rides[0].Vertex)
	assert.Equal(t, []graph.StopDistance{
		{Stop: 1, Distance: 100_000},
		{Stop: 0, Distance: 200_000},
		{Stop: 2, Distance: 200_000},
	}, park_rides[0].Stops)
}

func TestLinkBikeRentals(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	stations := List[geo.Coord]{grid.Coord(1, 2), grid.Coord(1, 2), grid.Offset(10000, 10000)}

	rentals := LinkBikeRentals(grid.Streets, stations, DefaultTransitOptions())
	assert.Equal(t, List[int32]{grid.Vertex(1, 2)}, rentals)
}
