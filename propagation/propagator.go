package propagation

import (
	"github.com/ttpr0/go-traveltime/pointset"
	"github.com/ttpr0/go-traveltime/raptor"
	"github.com/ttpr0/go-traveltime/reducer"
	. "github.com/ttpr0/go-traveltime/util"
)

type stopEgress struct {
	stop int32
	// seconds
	time int32
}

//*******************************************
// propagator
//*******************************************

// Merges transit arrival times at stops with the egress linkage into travel times
// per destination and iteration.
type Propagator struct {
	linkage     *pointset.LinkedPointSet
	stop_times  [][]int32
	non_transit Array[int32]
	speed       int32
	reducer     *reducer.TravelTimeReducer

	// optional journeys per iteration and stop
	Paths [][]*raptor.Path
}

// stop_times holds the elapsed seconds per iteration and stop, non_transit the
// travel time per destination without transit, speed the egress speed in mm/s.
func NewPropagator(linkage *pointset.LinkedPointSet, stop_times [][]int32, non_transit Array[int32], speed int32, red *reducer.TravelTimeReducer) *Propagator {
	return &Propagator{
		linkage:     linkage,
		stop_times:  stop_times,
		non_transit: non_transit,
		speed:       speed,
		reducer:     red,
	}
}

func (self *Propagator) Propagate() *reducer.OneOriginResult {
	targets := self._InvertStopTrees()
	iterations := len(self.stop_times)
	samples := make([]int32, iterations)
	var paths []*raptor.Path
	if self.Paths != nil {
		paths = make([]*raptor.Path, iterations)
	}
	for target, egress := range targets {
		self._PropagateTarget(target, egress, samples, paths)
		self.reducer.RecordTravelTimesForTarget(target, samples)
		if paths != nil {
			self.reducer.RecordPathsForTarget(target, paths)
		}
	}
	return self.reducer.Finish()
}

func (self *Propagator) _PropagateTarget(target int, egress List[stopEgress], samples []int32, paths []*raptor.Path) {
	base := UNREACHED
	if self.non_transit != nil {
		base = self.non_transit[target]
	}
	for i, times := range self.stop_times {
		best := base
		best_stop := int32(-1)
		for _, e := range egress {
			t := times[e.stop]
			if t == UNREACHED {
				continue
			}
			if t+e.time < best {
				best = t + e.time
				best_stop = e.stop
			}
		}
		samples[i] = best
		if paths != nil {
			if best_stop == -1 {
				paths[i] = nil
			} else {
				paths[i] = self.Paths[i][best_stop]
			}
		}
	}
}

// Egress times per destination, built from the per-stop trees so only stops near a
// destination are visited.
func (self *Propagator) _InvertStopTrees() Array[List[stopEgress]] {
	targets := NewArray[List[stopEgress]](self.linkage.FeatureCount())
	for stop := 0; stop < self.linkage.StopCount(); stop++ {
		for _, pd := range self.linkage.EgressTree(int32(stop)) {
			list := targets[pd.Point]
			list.Add(stopEgress{stop: int32(stop), time: pd.Distance / self.speed})
			targets[pd.Point] = list
		}
	}
	return targets
}
