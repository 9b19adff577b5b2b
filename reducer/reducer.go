package reducer

import (
	"slices"

	"github.com/ttpr0/go-traveltime/raptor"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// travel time reducer
//*******************************************

// Collects per-destination samples and reduces them to percentiles.
//
// Percentiles use the nearest-rank rule on the ascending samples: index ceil(p/100*n)-1
// clamped to [0, n-1]. UNREACHED sorts after every finite sample, samples above the max
// trip duration count as UNREACHED. Destinations without samples are UNREACHED.
type TravelTimeReducer struct {
	percentiles  []int
	max_duration int32

	times Array[[]int32]
	paths Array[[]PathCount]
}

// Creates a reducer for target_count destinations, max_duration <= 0 disables the cut-off.
func NewTravelTimeReducer(percentiles []int, target_count int, max_duration int32) *TravelTimeReducer {
	times := NewArray[[]int32](target_count)
	for i := range times {
		times[i] = _Unreached(len(percentiles))
	}
	return &TravelTimeReducer{
		percentiles:  percentiles,
		max_duration: max_duration,
		times:        times,
	}
}

func _Unreached(n int) []int32 {
	values := make([]int32, n)
	for i := range values {
		values[i] = UNREACHED
	}
	return values
}

func (self *TravelTimeReducer) TargetCount() int {
	return self.times.Length()
}

// Records the samples of one destination, one per iteration. Samples are not modified.
func (self *TravelTimeReducer) RecordTravelTimesForTarget(target int, samples []int32) {
	self.times[target] = ComputePercentiles(samples, self.percentiles, self.max_duration)
}

// Records the journeys of one destination, one per iteration (nil if not reached by transit).
func (self *TravelTimeReducer) RecordPathsForTarget(target int, paths []*raptor.Path) {
	if self.paths == nil {
		self.paths = NewArray[[]PathCount](self.times.Length())
	}
	counts := make([]PathCount, 0, 4)
	index := NewDict[string, int](4)
	for _, path := range paths {
		if path == nil {
			continue
		}
		key := path.Key()
		if i, ok := index[key]; ok {
			counts[i].Iterations += 1
			continue
		}
		index[key] = len(counts)
		counts = append(counts, PathCount{Path: path, Iterations: 1})
	}
	slices.SortStableFunc(counts, func(a, b PathCount) int {
		return b.Iterations - a.Iterations
	})
	self.paths[target] = counts
}

// Returns the result. Can be called without any recorded samples.
func (self *TravelTimeReducer) Finish() *OneOriginResult {
	result := &OneOriginResult{
		Percentiles: self.percentiles,
		TravelTimes: self.times,
	}
	if self.paths != nil {
		result.Paths = self.paths
	}
	return result
}

// Nearest-rank percentiles of samples.
func ComputePercentiles(samples []int32, percentiles []int, max_duration int32) []int32 {
	if len(samples) == 0 {
		return _Unreached(len(percentiles))
	}
	sorted := make([]int32, len(samples))
	for i, s := range samples {
		if s < 0 || (max_duration > 0 && s > max_duration) {
			s = UNREACHED
		}
		sorted[i] = s
	}
	slices.Sort(sorted)
	n := len(sorted)
	values := make([]int32, len(percentiles))
	for i, p := range percentiles {
		index := (p*n+99)/100 - 1
		index = max(0, min(index, n-1))
		values[i] = sorted[index]
	}
	return values
}
