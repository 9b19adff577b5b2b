package analyst

import (
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/routing"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// street searches
//*******************************************

// Street search policy of a mode, shared by access and direct searches.
//
// Walking minimizes distance up to the walk distance limit and converts to time
// afterwards, matching the distance-based egress trees. Other modes minimize
// duration up to their max access time.
func (self *computation) _StreetSearch(mode graph.StreetMode) routing.StreetSearch {
	req := self.request
	search := routing.StreetSearch{
		Mode:      mode,
		WalkSpeed: req.GetSpeedForMode(graph.WALK),
		BikeSpeed: req.GetSpeedForMode(graph.BICYCLE),
	}
	if mode == graph.WALK {
		search.Variable = routing.DISTANCE_MILLIMETERS
		search.DistanceLimitMM = int32(req.WalkDistanceLimitMeters * 1000)
	} else {
		search.Variable = routing.DURATION_SECONDS
		search.TimeLimitSeconds = req.GetMaxAccessTimeForMode(mode)
	}
	return search
}

// Per-vertex travel time in seconds of a finished street search.
func (self *computation) _VertexTimes(result *routing.StreetResult) func(int32) int32 {
	search := result.Search()
	if search.Variable == routing.DURATION_SECONDS {
		return result.GetTravelTimeToVertex
	}
	speed := self.request.GetSpeedForMode(search.Mode)
	return func(v int32) int32 {
		d := result.GetDistanceToVertex(v)
		if d == UNREACHED {
			return UNREACHED
		}
		return d / speed
	}
}

// Travel times to every destination linked for mode.
func (self *computation) _EvalDestinations(result *routing.StreetResult, mode graph.StreetMode) Array[int32] {
	linkage := self.linkages.Get(self.points, mode)
	return linkage.Eval(self._VertexTimes(result), self.request.GetSpeedForMode(mode))
}

// Travel times to the reached stops in seconds.
func (self *computation) _StopTimes(result *routing.StreetResult) Dict[int32, int32] {
	stops := result.GetReachedStops()
	if result.Search().Variable == routing.DURATION_SECONDS {
		return stops
	}
	speed := self.request.GetSpeedForMode(result.Search().Mode)
	for stop, d := range stops {
		stops[stop] = d / speed
	}
	return stops
}

//*******************************************
// access strategies
//*******************************************

// Searches the stops reachable from the origin together with the travel times to
// destinations without transit.
type accessStrategy interface {
	Search(c *computation, origin routing.Origin) (Dict[int32, int32], Array[int32])
}

func _SelectAccessStrategy(modes LegModeSet) accessStrategy {
	if modes.Contains(CAR_PARK) {
		return parkRideAccess{}
	}
	return streetAccess{mode: GetDominantStreetMode(modes)}
}

// Drive to park-and-ride facilities then walk to transit. Destinations cannot be
// reached without transit.
type parkRideAccess struct{}

func (self parkRideAccess) Search(c *computation, origin routing.Origin) (Dict[int32, int32], Array[int32]) {
	car := c._StreetSearch(graph.CAR)
	access, ok := c.router.RouteParkRide(origin, car, c.request.GetSpeedForMode(graph.WALK))
	if !ok {
		access = NewDict[int32, int32](0)
	}
	non_transit := NewArray[int32](c.points.FeatureCount())
	non_transit.Fill(UNREACHED)
	return access, non_transit
}

// Single street search, walking by distance and other modes by duration.
type streetAccess struct {
	mode graph.StreetMode
}

func (self streetAccess) Search(c *computation, origin routing.Origin) (Dict[int32, int32], Array[int32]) {
	result := c.router.Route(origin, c._StreetSearch(self.mode))
	return c._StopTimes(result), c._EvalDestinations(result, self.mode)
}

//*******************************************
// direct candidates
//*******************************************

// Travel times of one direct mode, false with a reason if the computation has to abort.
func (self *computation) _DirectCandidate(mode LegMode) (Array[int32], AbortReason, bool) {
	if mode == BICYCLE_RENT {
		return self._BikeRentalCandidate()
	}
	street_mode := mode.StreetMode()
	origin, ok := self.router.SetOrigin(self.request.Origin(), street_mode)
	if !ok {
		return _Unreached(self.points.FeatureCount()), 0, true
	}
	result := self.router.Route(origin, self._StreetSearch(street_mode))
	return self._EvalDestinations(result, street_mode), 0, true
}

func (self *computation) _BikeRentalCandidate() (Array[int32], AbortReason, bool) {
	if !self.network.HasBikeSharing() {
		self.logger.Warn("bike rental requested but the network has no bike rental stations")
		return nil, NO_BIKE_RENTAL_STATIONS, false
	}
	origin, ok := self.router.SetOrigin(self.request.Origin(), graph.WALK)
	if !ok {
		self.logger.Warn("bike rental search could not link the origin", "mode", BICYCLE_RENT.String())
		return nil, BIKE_RENTAL_SEARCH_FAILED, false
	}
	walk := self._StreetSearch(graph.WALK)
	walk.Variable = routing.DURATION_SECONDS
	walk.DistanceLimitMM = 0
	walk.TimeLimitSeconds = self.request.GetMaxAccessTimeForMode(graph.WALK)
	bike := self._StreetSearch(graph.BICYCLE)
	bike.TimeLimitSeconds = self.request.MaxTripDurationSeconds()
	result, ok := self.router.RouteBikeRental(origin, walk, bike)
	if !ok {
		self.logger.Warn("no bike rental station pair reached from the origin", "mode", BICYCLE_RENT.String())
		return nil, BIKE_RENTAL_SEARCH_FAILED, false
	}
	return self._EvalDestinations(result, graph.WALK), 0, true
}

// Element-wise minimum of equally sized arrays as a new array.
func MinOfArrays(arrays []Array[int32]) Array[int32] {
	if len(arrays) == 0 {
		return nil
	}
	result := arrays[0].Copy()
	for _, arr := range arrays[1:] {
		for i, v := range arr {
			if v < result[i] {
				result[i] = v
			}
		}
	}
	return result
}

func _Unreached(n int) Array[int32] {
	values := NewArray[int32](n)
	values.Fill(UNREACHED)
	return values
}
