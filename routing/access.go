package routing

import (
	"sort"

	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// park and ride
//*******************************************

// Two-stage park-and-ride access.
//
// Drives from the origin to the closest park-and-ride facilities within the car
// search's time limit, then walks from each facility to its precomputed stops.
// Returns the best time per stop and false if no facility was reached.
func (self *StreetRouter) RouteParkRide(origin Origin, car StreetSearch, walk_speed int32) (Dict[int32, int32], bool) {
	access := NewDict[int32, int32](10)
	if self.network.ParkRides.Length() == 0 || walk_speed <= 0 {
		return access, false
	}
	car.Mode = graph.CAR
	car.Variable = DURATION_SECONDS
	result := self.Route(origin, car)

	reached := NewList[Tuple[int, int32]](10)
	for i, facility := range self.network.ParkRides {
		t := result.GetTravelTimeToVertex(facility.Vertex)
		if t == UNREACHED {
			continue
		}
		reached.Add(MakeTuple(i, t))
	}
	if reached.Length() == 0 {
		return access, false
	}
	sort.SliceStable(reached, func(i, j int) bool {
		return reached[i].B < reached[j].B
	})
	if self.options.MaxParkRides > 0 && reached.Length() > self.options.MaxParkRides {
		reached = reached[:self.options.MaxParkRides]
	}

	for _, item := range reached {
		facility := self.network.ParkRides[item.A]
		start := item.B + self.options.ParkRideSwitchSeconds
		for _, sd := range facility.Stops {
			total := start + sd.Distance/walk_speed
			if curr, ok := access[sd.Stop]; ok && curr <= total {
				continue
			}
			access[sd.Stop] = total
		}
	}
	return access, true
}

//*******************************************
// bike rental
//*******************************************

// Walks to a rental station, rides to another station and walks on from there.
//
// The walk search limits the first leg, the bike search's time limit bounds the whole
// trip. Returns false if the network has no stations or no station pair is reached.
func (self *StreetRouter) RouteBikeRental(origin Origin, walk StreetSearch, bike StreetSearch) (*StreetResult, bool) {
	if !self.network.HasBikeSharing() {
		return nil, false
	}
	walk.Mode = graph.WALK
	walk.Variable = DURATION_SECONDS
	bike.Mode = graph.BICYCLE
	bike.Variable = DURATION_SECONDS

	to_station := self.Route(origin, walk)
	pickups := self._RentalSeeds(to_station, self.options.RentalPickupSeconds)
	if pickups.Length() == 0 {
		return nil, false
	}
	riding := self.RouteFrom(pickups, bike)
	dropoffs := self._RentalSeeds(riding, self.options.RentalDropoffSeconds)
	if dropoffs.Length() == 0 {
		return nil, false
	}
	walk.TimeLimitSeconds = bike.TimeLimitSeconds
	walk.DistanceLimitMM = 0
	return self.RouteFrom(dropoffs, walk), true
}

func (self *StreetRouter) _RentalSeeds(result *StreetResult, penalty int32) List[Seed] {
	seeds := NewList[Seed](10)
	for _, vertex := range self.network.BikeRentals {
		state, ok := result.GetState(vertex)
		if !ok {
			continue
		}
		seeds.Add(Seed{Vertex: vertex, Duration: state.Duration + penalty, Distance: state.Distance})
	}
	return seeds
}
