package reducer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-traveltime/raptor"
	"github.com/ttpr0/go-traveltime/reducer"
	. "github.com/ttpr0/go-traveltime/util"
)

func TestNearestRank(t *testing.T) {
	samples := []int32{50, 10, 40, 20, 30}
	values := reducer.ComputePercentiles(samples, []int{0, 20, 50, 90, 100}, 0)
	assert.Equal(t, []int32{10, 10, 30, 50, 50}, values)
	// input untouched
	assert.Equal(t, []int32{50, 10, 40, 20, 30}, samples)
}

func TestUnreachedSortsLast(t *testing.T) {
	samples := []int32{UNREACHED, 100, UNREACHED, 200}
	values := reducer.ComputePercentiles(samples, []int{25, 50, 75}, 0)
	assert.Equal(t, []int32{100, 200, UNREACHED}, values)
}

func TestMaxDurationCutoff(t *testing.T) {
	values := reducer.ComputePercentiles([]int32{100, 5000, 200}, []int{50, 100}, 3600)
	assert.Equal(t, []int32{200, UNREACHED}, values)
}

func TestPercentileMonotonicity(t *testing.T) {
	samples := []int32{900, 120, UNREACHED, 450, 450, 3000, 60, UNREACHED, 1800}
	percentiles := []int{1, 5, 10, 25, 33, 50, 66, 75, 90, 95, 99, 100}
	values := reducer.ComputePercentiles(samples, percentiles, 0)
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i-1], values[i])
	}
}

func TestFinishWithoutSamples(t *testing.T) {
	r := reducer.NewTravelTimeReducer([]int{5, 50, 95}, 4, 7200)
	result := r.Finish()
	require.Equal(t, 4, result.DestinationCount())
	for _, times := range result.TravelTimes {
		assert.Equal(t, []int32{UNREACHED, UNREACHED, UNREACHED}, times)
	}
	assert.Nil(t, result.Paths)
}

func TestRecordTargets(t *testing.T) {
	r := reducer.NewTravelTimeReducer([]int{50}, 3, 0)
	r.RecordTravelTimesForTarget(0, []int32{300})
	r.RecordTravelTimesForTarget(2, []int32{})
	result := r.Finish()
	assert.Equal(t, []int32{300, UNREACHED, UNREACHED}, result.GetPercentile(0))
}

func TestRecordPaths(t *testing.T) {
	fast := &raptor.Path{AccessStop: 1, Legs: []raptor.Leg{{TripID: "a", BoardStop: 1, AlightStop: 2}}}
	fast_later := &raptor.Path{AccessStop: 1, Legs: []raptor.Leg{{TripID: "a", BoardStop: 1, AlightStop: 2, BoardTime: 60}}}
	slow := &raptor.Path{AccessStop: 3}

	r := reducer.NewTravelTimeReducer([]int{50}, 2, 0)
	r.RecordPathsForTarget(1, []*raptor.Path{slow, fast, nil, fast_later})
	result := r.Finish()

	require.Len(t, result.Paths, 2)
	assert.Empty(t, result.Paths[0])
	require.Len(t, result.Paths[1], 2)
	assert.Equal(t, 2, result.Paths[1][0].Iterations)
	assert.Same(t, fast, result.Paths[1][0].Path)
	assert.Equal(t, 1, result.Paths[1][1].Iterations)
}
