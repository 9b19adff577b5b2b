package preproc

import (
	"sort"

	"github.com/ttpr0/go-traveltime/graph"
)

// Sorts by distance, ties by stop index.
func SortStopDistances(stops []graph.StopDistance) {
	sort.Slice(stops, func(i, j int) bool {
		if stops[i].Distance != stops[j].Distance {
			return stops[i].Distance < stops[j].Distance
		}
		return stops[i].Stop < stops[j].Stop
	})
}
