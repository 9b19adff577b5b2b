package graph

import (
	"sort"

	"github.com/ttpr0/go-traveltime/geo"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// transit layer
//*******************************************

// Read-only scheduled transit network.
type TransitLayer struct {
	stops             Array[Stop]
	patterns          Array[Pattern]
	patterns_for_stop Array[List[int32]]
	stop_to_vertex    Array[int32]
	vertex_to_stop    Dict[int32, int32]
	transfers         Array[List[Transfer]]
}

// Creates the transit layer. Trips of every pattern are sorted by their first departure.
//
// stop_vertices maps stops to street vertices (-1 if unlinked), transfers holds the
// walking transfers leaving each stop (may be nil).
func NewTransitLayer(stops Array[Stop], patterns Array[Pattern], stop_vertices Array[int32], transfers Array[List[Transfer]]) *TransitLayer {
	patterns_for_stop := NewArray[List[int32]](stops.Length())
	for i := range patterns {
		p := &patterns[i]
		sort.SliceStable(p.Trips, func(a, b int) bool {
			return p.Trips[a].Departures[0] < p.Trips[b].Departures[0]
		})
		for _, stop := range p.Stops {
			list := patterns_for_stop[stop]
			if list.Length() > 0 && list[list.Length()-1] == int32(i) {
				continue
			}
			list.Add(int32(i))
			patterns_for_stop[stop] = list
		}
	}
	if transfers == nil {
		transfers = NewArray[List[Transfer]](stops.Length())
	}
	vertex_to_stop := NewDict[int32, int32](stops.Length())
	for stop, vertex := range stop_vertices {
		if vertex == -1 {
			continue
		}
		if !vertex_to_stop.ContainsKey(vertex) {
			vertex_to_stop[vertex] = int32(stop)
		}
	}
	return &TransitLayer{
		stops:             stops,
		patterns:          patterns,
		patterns_for_stop: patterns_for_stop,
		stop_to_vertex:    stop_vertices,
		vertex_to_stop:    vertex_to_stop,
		transfers:         transfers,
	}
}

func (self *TransitLayer) StopCount() int {
	return self.stops.Length()
}
func (self *TransitLayer) GetStop(stop int32) Stop {
	return self.stops[stop]
}
func (self *TransitLayer) GetStopGeom(stop int32) geo.Coord {
	return self.stops[stop].Loc
}
func (self *TransitLayer) PatternCount() int {
	return self.patterns.Length()
}
func (self *TransitLayer) GetPattern(pattern int32) *Pattern {
	return &self.patterns[pattern]
}
func (self *TransitLayer) GetPatternsForStop(stop int32) List[int32] {
	return self.patterns_for_stop[stop]
}
func (self *TransitLayer) GetTransfers(stop int32) List[Transfer] {
	return self.transfers[stop]
}

// Returns the street vertex of the stop or -1.
func (self *TransitLayer) MapStopToVertex(stop int32) int32 {
	return self.stop_to_vertex[stop]
}

// Returns the stop located at vertex or -1.
func (self *TransitLayer) MapVertexToStop(vertex int32) int32 {
	if stop, ok := self.vertex_to_stop[vertex]; ok {
		return stop
	}
	return -1
}

//*******************************************
// network
//*******************************************

// Street and transit layers shared read-only by all computations.
type Network struct {
	Streets     *StreetLayer
	Transit     *TransitLayer
	ParkRides   List[ParkRide]
	BikeRentals List[int32]

	rental_vertices Dict[int32, bool]
}

func NewNetwork(streets *StreetLayer, transit *TransitLayer, park_rides List[ParkRide], bike_rentals List[int32]) *Network {
	rental_vertices := NewDict[int32, bool](bike_rentals.Length())
	for _, v := range bike_rentals {
		rental_vertices[v] = true
	}
	return &Network{
		Streets:         streets,
		Transit:         transit,
		ParkRides:       park_rides,
		BikeRentals:     bike_rentals,
		rental_vertices: rental_vertices,
	}
}

func (self *Network) HasTransit() bool {
	return self.Transit != nil && self.Transit.StopCount() > 0
}

func (self *Network) HasBikeSharing() bool {
	return self.BikeRentals.Length() > 0
}

func (self *Network) IsBikeRental(vertex int32) bool {
	return self.rental_vertices.ContainsKey(vertex)
}
