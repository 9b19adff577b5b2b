package preproc

import (
	"fmt"

	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/routing"
	. "github.com/ttpr0/go-traveltime/util"
	"golang.org/x/exp/slog"
)

type TransitOptions struct {
	// radius for linking stops and facilities to the street network in meters
	LinkRadiusMeters float64
	// maximum walking distance of a transfer in millimeters
	MaxTransferDistance int32
	// maximum walking distance between a park-and-ride facility and a stop in millimeters
	MaxParkRideDistance int32
}

func DefaultTransitOptions() TransitOptions {
	return TransitOptions{
		LinkRadiusMeters:    300,
		MaxTransferDistance: 1_000_000,
		MaxParkRideDistance: 500_000,
	}
}

//*******************************************
// prepare transit-data
//*******************************************

// Builds the transit layer on top of streets. Stops are placed at the closest
// walkable vertex, unlinked stops get -1.
func PrepareTransit(streets *graph.StreetLayer, stops Array[graph.Stop], patterns Array[graph.Pattern], options TransitOptions) *graph.TransitLayer {
	stop_vertices := LinkPoints(streets, _StopCoords(stops), graph.WALK, options.LinkRadiusMeters)
	unlinked := 0
	for _, v := range stop_vertices {
		if v == -1 {
			unlinked += 1
		}
	}
	if unlinked > 0 {
		slog.Warn(fmt.Sprintf("%v of %v stops could not be linked to the street network", unlinked, stops.Length()))
	}
	transfers := BuildTransfers(streets, stop_vertices, options.MaxTransferDistance)
	return graph.NewTransitLayer(stops, patterns, stop_vertices, transfers)
}

func _StopCoords(stops Array[graph.Stop]) Array[geo.Coord] {
	coords := NewArray[geo.Coord](stops.Length())
	for i, stop := range stops {
		coords[i] = stop.Loc
	}
	return coords
}

// Maps every point to the closer endpoint of its split edge, -1 if not linkable.
func LinkPoints(streets *graph.StreetLayer, points Array[geo.Coord], mode graph.StreetMode, radius float64) Array[int32] {
	vertices := NewArray[int32](points.Length())
	for i, point := range points {
		split, ok := streets.Split(point, mode, radius)
		if !ok {
			vertices[i] = -1
			continue
		}
		if split.DistanceA <= split.DistanceB {
			vertices[i] = split.NodeA
		} else {
			vertices[i] = split.NodeB
		}
	}
	return vertices
}

// Computes walking transfers between all stops within max_distance millimeters.
func BuildTransfers(streets *graph.StreetLayer, stop_vertices Array[int32], max_distance int32) Array[List[graph.Transfer]] {
	transfers := NewArray[List[graph.Transfer]](stop_vertices.Length())
	stops_at_vertex := NewDict[int32, List[int32]](stop_vertices.Length())
	for stop, vertex := range stop_vertices {
		if vertex == -1 {
			continue
		}
		list := stops_at_vertex[vertex]
		list.Add(int32(stop))
		stops_at_vertex[vertex] = list
	}

	router := routing.NewStreetRouter(graph.NewNetwork(streets, nil, nil, nil), routing.DefaultRouterOptions())
	search := routing.StreetSearch{
		Mode:            graph.WALK,
		Variable:        routing.DISTANCE_MILLIMETERS,
		DistanceLimitMM: max_distance,
	}
	count := 0
	for stop, vertex := range stop_vertices {
		if vertex == -1 {
			continue
		}
		seeds := NewList[routing.Seed](1)
		seeds.Add(routing.Seed{Vertex: vertex})
		result := router.RouteFrom(seeds, search)
		list := NewList[graph.Transfer](4)
		for _, v := range result.GetReachedVertices(stops_at_vertex.ContainsKey) {
			distance := result.GetDistanceToVertex(v)
			for _, other := range stops_at_vertex[v] {
				if other == int32(stop) {
					continue
				}
				list.Add(graph.Transfer{ToStop: other, Distance: distance})
			}
		}
		transfers[stop] = list
		count += list.Length()
	}
	slog.Debug(fmt.Sprintf("computed %v transfers", count))
	return transfers
}

// Links park-and-ride facilities for cars and tabulates the walking distance to
// every stop within max_distance millimeters.
func BuildParkRides(streets *graph.StreetLayer, transit *graph.TransitLayer, facilities List[geo.Coord], options TransitOptions) List[graph.ParkRide] {
	park_rides := NewList[graph.ParkRide](facilities.Length())
	vertices := LinkPoints(streets, Array[geo.Coord](facilities), graph.CAR, options.LinkRadiusMeters)
	router := routing.NewStreetRouter(graph.NewNetwork(streets, transit, nil, nil), routing.DefaultRouterOptions())
	search := routing.StreetSearch{
		Mode:            graph.WALK,
		Variable:        routing.DISTANCE_MILLIMETERS,
		DistanceLimitMM: options.MaxParkRideDistance,
	}
	for _, vertex := range vertices {
		if vertex == -1 {
			continue
		}
		seeds := NewList[routing.Seed](1)
		seeds.Add(routing.Seed{Vertex: vertex})
		reached := router.RouteFrom(seeds, search).GetReachedStops()
		if reached.Length() == 0 {
			continue
		}
		stops := make([]graph.StopDistance, 0, reached.Length())
		for stop, distance := range reached {
			stops = append(stops, graph.StopDistance{Stop: stop, Distance: distance})
		}
		SortStopDistances(stops)
		park_rides.Add(graph.ParkRide{Vertex: vertex, Stops: stops})
	}
	slog.Debug(fmt.Sprintf("linked %v of %v park-and-ride facilities", park_rides.Length(), facilities.Length()))
	return park_rides
}

// Links bike-rental stations to vertices usable by pedestrians and cyclists.
func LinkBikeRentals(streets *graph.StreetLayer, stations List[geo.Coord], options TransitOptions) List[int32] {
	rentals := NewList[int32](stations.Length())
	seen := NewDict[int32, bool](stations.Length())
	for _, vertex := range LinkPoints(streets, Array[geo.Coord](stations), graph.BICYCLE, options.LinkRadiusMeters) {
		if vertex == -1 || seen.ContainsKey(vertex) {
			continue
		}
		seen[vertex] = true
		rentals.Add(vertex)
	}
	return rentals
}
