package reducer

import (
	"github.com/ttpr0/go-traveltime/raptor"
)

// Journey with the number of iterations it was the fastest option.
type PathCount struct {
	Path       *raptor.Path
	Iterations int
}

// Travel times from one origin, ordered like the destination set.
type OneOriginResult struct {
	Percentiles []int
	// [destination][percentile] seconds or UNREACHED
	TravelTimes [][]int32
	// [destination] journeys, only with path retention
	Paths [][]PathCount
}

func (self *OneOriginResult) DestinationCount() int {
	return len(self.TravelTimes)
}

// Travel times of all destinations for the i-th percentile.
func (self *OneOriginResult) GetPercentile(i int) []int32 {
	values := make([]int32, len(self.TravelTimes))
	for d, times := range self.TravelTimes {
		values[d] = times[i]
	}
	return values
}
