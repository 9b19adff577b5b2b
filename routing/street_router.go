package routing

import (
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// search configuration
//*******************************************

// Quantity minimized by a street search.
type RoutingVariable byte

const (
	DURATION_SECONDS     RoutingVariable = 0
	DISTANCE_MILLIMETERS RoutingVariable = 1
)

// Immutable configuration of a single street search.
type StreetSearch struct {
	Mode     graph.StreetMode
	Variable RoutingVariable
	// 0 disables the limit
	TimeLimitSeconds int32
	// 0 disables the limit
	DistanceLimitMM int32
	// mm/s, cars use the edge speeds
	WalkSpeed int32
	BikeSpeed int32
}

// default speeds in mm/s
const (
	DEFAULT_WALK_SPEED int32 = 1300
	DEFAULT_BIKE_SPEED int32 = 4000
)

func (self StreetSearch) Speed() int32 {
	switch self.Mode {
	case graph.BICYCLE:
		if self.BikeSpeed <= 0 {
			return DEFAULT_BIKE_SPEED
		}
		return self.BikeSpeed
	case graph.CAR:
		return graph.DEFAULT_CAR_SPEED
	default:
		if self.WalkSpeed <= 0 {
			return DEFAULT_WALK_SPEED
		}
		return self.WalkSpeed
	}
}

type RouterOptions struct {
	// max distance between a coordinate and the street it is linked to
	LinkRadiusMeters float64
	// at most this many park-and-ride facilities are used, closest first
	MaxParkRides int
	// time to park the car and leave the facility
	ParkRideSwitchSeconds int32
	RentalPickupSeconds   int32
	RentalDropoffSeconds  int32
}

func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		LinkRadiusMeters:      1000,
		MaxParkRides:          20,
		ParkRideSwitchSeconds: 60,
		RentalPickupSeconds:   60,
		RentalDropoffSeconds:  30,
	}
}

//*******************************************
// street router
//*******************************************

// Reusable street search engine. Holds no per-search state, every Route call
// starts from scratch.
type StreetRouter struct {
	network *graph.Network
	options RouterOptions
}

func NewStreetRouter(network *graph.Network, options RouterOptions) *StreetRouter {
	return &StreetRouter{
		network: network,
		options: options,
	}
}

// Origin linked to the street network.
type Origin struct {
	Coord geo.Coord
	Mode  graph.StreetMode
	Split graph.Split
}

// Links point to the street network for mode.
//
// Returns false if the point is not close to any street usable with mode.
func (self *StreetRouter) SetOrigin(point geo.Coord, mode graph.StreetMode) (Origin, bool) {
	split, ok := self.network.Streets.Split(point, mode, self.options.LinkRadiusMeters)
	if !ok {
		return Origin{}, false
	}
	return Origin{Coord: point, Mode: mode, Split: split}, true
}

// Initial state of a search.
type Seed struct {
	Vertex   int32
	Duration int32
	Distance int32
}

func (self *StreetRouter) _OriginSeeds(origin Origin, search StreetSearch) List[Seed] {
	streets := self.network.Streets
	split := origin.Split
	speed := search.Speed()
	if search.Mode == graph.CAR {
		if s := streets.GetEdge(split.Edge).CarSpeed; s > 0 {
			speed = s
		}
	}
	seeds := NewList[Seed](2)
	seeds.Add(Seed{Vertex: split.NodeB, Duration: split.DistanceB / speed, Distance: split.DistanceB})
	rev := streets.GetReverseEdge(split.Edge)
	if rev != -1 && streets.GetEdge(rev).Permissions.Allows(search.Mode) {
		seeds.Add(Seed{Vertex: split.NodeA, Duration: split.DistanceA / speed, Distance: split.DistanceA})
	}
	return seeds
}

// Runs a search from the linked origin.
func (self *StreetRouter) Route(origin Origin, search StreetSearch) *StreetResult {
	return self.RouteFrom(self._OriginSeeds(origin, search), search)
}

type pqState struct {
	vertex int32
	value  int32
}

// Runs a search starting at several vertices at once.
func (self *StreetRouter) RouteFrom(seeds List[Seed], search StreetSearch) *StreetResult {
	streets := self.network.Streets
	result := _NewStreetResult(self.network, search)
	states := result.states
	heap := NewPriorityQueue[pqState, int32](100)

	for _, seed := range seeds {
		if !search._WithinLimits(seed.Duration, seed.Distance) {
			continue
		}
		value := search._Value(seed.Duration, seed.Distance)
		curr := &states[seed.Vertex]
		if curr.Vertex != -1 && search._Value(curr.Duration, curr.Distance) <= value {
			continue
		}
		*curr = State{Vertex: seed.Vertex, BackEdge: -1, BackVertex: -1, Duration: seed.Duration, Distance: seed.Distance}
		heap.Enqueue(pqState{seed.Vertex, value}, value)
	}

	speed := search.Speed()
	for {
		item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr := states[item.vertex]
		if search._Value(curr.Duration, curr.Distance) < item.value {
			continue
		}
		streets.ForAdjacentEdges(item.vertex, func(ref graph.EdgeRef) {
			edge := streets.GetEdge(ref.EdgeID)
			if !edge.Permissions.Allows(search.Mode) {
				return
			}
			duration := curr.Duration + streets.GetEdgeSeconds(ref.EdgeID, search.Mode, speed)
			distance := curr.Distance + edge.Length
			if !search._WithinLimits(duration, distance) {
				return
			}
			value := search._Value(duration, distance)
			other := &states[ref.OtherID]
			if other.Vertex != -1 && search._Value(other.Duration, other.Distance) <= value {
				return
			}
			*other = State{
				Vertex:     ref.OtherID,
				BackEdge:   ref.EdgeID,
				BackVertex: item.vertex,
				Duration:   duration,
				Distance:   distance,
			}
			heap.Enqueue(pqState{ref.OtherID, value}, value)
		})
	}
	return result
}

func (self StreetSearch) _Value(duration, distance int32) int32 {
	if self.Variable == DISTANCE_MILLIMETERS {
		return distance
	}
	return duration
}

func (self StreetSearch) _WithinLimits(duration, distance int32) bool {
	if self.TimeLimitSeconds > 0 && duration > self.TimeLimitSeconds {
		return false
	}
	if self.DistanceLimitMM > 0 && distance > self.DistanceLimitMM {
		return false
	}
	return true
}
