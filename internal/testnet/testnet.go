// Package testnet builds small synthetic networks for tests.
package testnet

import (
	"math"

	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

const (
	BASE_LON = 13.0
	BASE_LAT = 52.0

	METERS_PER_DEGREE = math.Pi / 180 * geo.EARTH_RADIUS
)

// Square grid of two-way streets open to every mode.
type Grid struct {
	Rows    int
	Cols    int
	Spacing float64
	Streets *graph.StreetLayer
}

// Creates a rows x cols grid with spacing meters between neighbouring vertices.
func NewGrid(rows, cols int, spacing float64) *Grid {
	g := &Grid{Rows: rows, Cols: cols, Spacing: spacing}
	nodes := NewArray[graph.Node](rows * cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			nodes[g.Vertex(r, c)] = graph.Node{Loc: g.Offset(float64(r)*spacing, float64(c)*spacing)}
		}
	}
	length := int32(math.Round(spacing * 1000))
	edges := NewList[graph.Edge](rows * cols * 4)
	add := func(a, b int32) {
		edges.Add(graph.Edge{NodeA: a, NodeB: b, Length: length, Permissions: graph.ALLOWS_ALL})
		edges.Add(graph.Edge{NodeA: b, NodeB: a, Length: length, Permissions: graph.ALLOWS_ALL})
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				add(g.Vertex(r, c), g.Vertex(r, c+1))
			}
			if r+1 < rows {
				add(g.Vertex(r, c), g.Vertex(r+1, c))
			}
		}
	}
	g.Streets = graph.NewStreetLayer(nodes, Array[graph.Edge](edges))
	return g
}

func (self *Grid) Vertex(r, c int) int32 {
	return int32(r*self.Cols + c)
}

// Coordinate north meters north and east meters east of the grid's south-west corner.
func (self *Grid) Offset(north, east float64) geo.Coord {
	lat := BASE_LAT + north/METERS_PER_DEGREE
	lon := BASE_LON + east/(METERS_PER_DEGREE*math.Cos(BASE_LAT*math.Pi/180))
	return geo.NewCoord(lon, lat)
}

func (self *Grid) Coord(r, c int) geo.Coord {
	return self.Offset(float64(r)*self.Spacing, float64(c)*self.Spacing)
}

// Line description: stops at the given vertices served by count trips.
//
// Trip k leaves the first stop at first + k*headway and needs hop seconds between stops.
type Line struct {
	Vertices []int32
	First    int32
	Headway  int32
	Count    int
	Hop      int32
}

// Builds a transit layer with one pattern per line. Lines sharing a vertex share the stop.
func (self *Grid) Transit(lines ...Line) *graph.TransitLayer {
	stops := NewList[graph.Stop](10)
	stop_vertices := NewList[int32](10)
	stop_at := NewDict[int32, int32](10)
	patterns := NewList[graph.Pattern](len(lines))
	for l, line := range lines {
		pattern := graph.Pattern{RouteID: "line", RouteType: 3}
		for _, v := range line.Vertices {
			stop, ok := stop_at[v]
			if !ok {
				stop = int32(stops.Length())
				stop_at[v] = stop
				stops.Add(graph.Stop{ID: "s" + string(rune('a'+stop)), Loc: self.Streets.GetNodeGeom(v)})
				stop_vertices.Add(v)
			}
			pattern.Stops = append(pattern.Stops, stop)
		}
		for k := 0; k < line.Count; k++ {
			start := line.First + int32(k)*line.Headway
			trip := graph.TripSchedule{TripID: string(rune('A'+l)) + string(rune('0'+k%10))}
			for j := range line.Vertices {
				t := start + int32(j)*line.Hop
				trip.Arrivals = append(trip.Arrivals, t)
				trip.Departures = append(trip.Departures, t)
			}
			pattern.Trips = append(pattern.Trips, trip)
		}
		patterns.Add(pattern)
	}
	return graph.NewTransitLayer(Array[graph.Stop](stops), Array[graph.Pattern](patterns), Array[int32](stop_vertices), nil)
}

// Network over the grid streets.
func (self *Grid) Network(transit *graph.TransitLayer, park_rides List[graph.ParkRide], rentals List[int32]) *graph.Network {
	return graph.NewNetwork(self.Streets, transit, park_rides, rentals)
}
