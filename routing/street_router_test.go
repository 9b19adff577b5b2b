package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/internal/testnet"
	"github.com/ttpr0/go-traveltime/routing"
	. "github.com/ttpr0/go-traveltime/util"
)

func walkSearch(variable routing.RoutingVariable) routing.StreetSearch {
	return routing.StreetSearch{
		Mode:      graph.WALK,
		Variable:  variable,
		WalkSpeed: 1300,
		BikeSpeed: 4000,
	}
}

func TestRouteDistance(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	router := routing.NewStreetRouter(grid.Network(nil, nil, nil), routing.DefaultRouterOptions())

	origin, ok := router.SetOrigin(grid.Coord(0, 0), graph.WALK)
	require.True(t, ok)
	result := router.Route(origin, walkSearch(routing.DISTANCE_MILLIMETERS))

	assert.Equal(t, int32(0), result.GetDistanceToVertex(grid.Vertex(0, 0)))
	assert.Equal(t, int32(200000), result.GetDistanceToVertex(grid.Vertex(0, 2)))
	assert.Equal(t, int32(400000), result.GetDistanceToVertex(grid.Vertex(2, 2)))
	assert.Equal(t, 9, result.GetReachedVertices(nil).Length())

	path := result.PathTo(grid.Vertex(2, 2))
	require.True(t, path.Length() >= 4)
	assert.Equal(t, grid.Vertex(2, 2), path[path.Length()-1])
	assert.Contains(t, []int32{grid.Vertex(0, 0), grid.Vertex(0, 1)}, path[0])
}

func TestRouteTimeLimit(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	router := routing.NewStreetRouter(grid.Network(nil, nil, nil), routing.DefaultRouterOptions())
	origin, ok := router.SetOrigin(grid.Coord(0, 0), graph.WALK)
	require.True(t, ok)

	search := walkSearch(routing.DURATION_SECONDS)
	search.TimeLimitSeconds = 100
	result := router.Route(origin, search)

	assert.Equal(t, int32(0), result.GetTravelTimeToVertex(grid.Vertex(0, 0)))
	assert.Equal(t, int32(76), result.GetTravelTimeToVertex(grid.Vertex(0, 1)))
	assert.Equal(t, UNREACHED, result.GetTravelTimeToVertex(grid.Vertex(0, 2)))
	_, reached := result.GetState(grid.Vertex(2, 2))
	assert.False(t, reached)
}

func TestRerunDoesNotLeak(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	router := routing.NewStreetRouter(grid.Network(nil, nil, nil), routing.DefaultRouterOptions())
	origin, _ := router.SetOrigin(grid.Coord(0, 0), graph.WALK)

	limited := walkSearch(routing.DISTANCE_MILLIMETERS)
	limited.DistanceLimitMM = 150000
	first := router.Route(origin, limited)
	second := router.Route(origin, walkSearch(routing.DISTANCE_MILLIMETERS))
	third := router.Route(origin, limited)

	assert.Equal(t, UNREACHED, first.GetDistanceToVertex(grid.Vertex(2, 2)))
	assert.Equal(t, int32(400000), second.GetDistanceToVertex(grid.Vertex(2, 2)))
	assert.Equal(t, first.GetReachedVertices(nil), third.GetReachedVertices(nil))
}

func TestOriginOutsideNetwork(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	router := routing.NewStreetRouter(grid.Network(nil, nil, nil), routing.DefaultRouterOptions())
	_, ok := router.SetOrigin(grid.Offset(50000, 0), graph.WALK)
	assert.False(t, ok)
}

func TestReachedStops(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	transit := grid.Transit(testnet.Line{
		Vertices: []int32{grid.Vertex(0, 2), grid.Vertex(1, 2), grid.Vertex(2, 2)},
		First:    3600, Headway: 600, Count: 3, Hop: 120,
	})
	router := routing.NewStreetRouter(grid.Network(transit, nil, nil), routing.DefaultRouterOptions())
	origin, _ := router.SetOrigin(grid.Coord(0, 0), graph.WALK)

	search := walkSearch(routing.DISTANCE_MILLIMETERS)
	search.DistanceLimitMM = 250000
	stops := router.Route(origin, search).GetReachedStops()

	assert.Equal(t, Dict[int32, int32]{0: 200000}, stops)
}

func TestParkRide(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	park_rides := List[graph.ParkRide]{
		{Vertex: grid.Vertex(2, 2), Stops: []graph.StopDistance{{Stop: 0, Distance: 130000}}},
	}
	router := routing.NewStreetRouter(grid.Network(nil, park_rides, nil), routing.DefaultRouterOptions())
	origin, ok := router.SetOrigin(grid.Coord(0, 0), graph.CAR)
	require.True(t, ok)

	car := routing.StreetSearch{Mode: graph.CAR, TimeLimitSeconds: 600}
	access, ok := router.RouteParkRide(origin, car, 1300)
	require.True(t, ok)
	// 36 s driving, 60 s switching, 100 s walking
	assert.Equal(t, Dict[int32, int32]{0: 196}, access)

	car.TimeLimitSeconds = 5
	_, ok = router.RouteParkRide(origin, car, 1300)
	assert.False(t, ok)
}

func TestBikeRental(t *testing.T) {
	grid := testnet.NewGrid(3, 3, 100)
	walk := walkSearch(routing.DURATION_SECONDS)
	walk.TimeLimitSeconds = 600
	bike := walkSearch(routing.DURATION_SECONDS)
	bike.Mode = graph.BICYCLE
	bike.TimeLimitSeconds = 1800

	without := routing.NewStreetRouter(grid.Network(nil, nil, nil), routing.DefaultRouterOptions())
	origin, _ := without.SetOrigin(grid.Coord(0, 0), graph.WALK)
	_, ok := without.RouteBikeRental(origin, walk, bike)
	assert.False(t, ok)

	rentals := List[int32]{grid.Vertex(0, 1), grid.Vertex(2, 1)}
	router := routing.NewStreetRouter(grid.Network(nil, nil, rentals), routing.DefaultRouterOptions())
	result, ok := router.RouteBikeRental(origin, walk, bike)
	require.True(t, ok)
	assert.True(t, result.IsReached(grid.Vertex(2, 2)))

	walk.TimeLimitSeconds = 10
	_, ok = router.RouteBikeRental(origin, walk, bike)
	assert.False(t, ok)
}
