package main

import (
	"github.com/ttpr0/go-traveltime/analyst"
	"github.com/ttpr0/go-traveltime/reducer"
	. "github.com/ttpr0/go-traveltime/util"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Stops   int    `json:"stops"`
	Transit bool   `json:"transit"`
}

// Travel times in seconds per destination and percentile, -1 for unreached.
type TravelTimeSurfaceResponse struct {
	Finished    bool          `json:"finished"`
	Reason      string        `json:"reason,omitempty"`
	Percentiles []int         `json:"percentiles,omitempty"`
	TravelTimes [][]int32     `json:"travelTimes,omitempty"`
	Paths       [][]PathEntry `json:"paths,omitempty"`
}

type PathEntry struct {
	AccessStop int32      `json:"accessStop"`
	Legs       []LegEntry `json:"legs"`
	Iterations int        `json:"iterations"`
}

type LegEntry struct {
	Trip       string `json:"trip"`
	BoardStop  int32  `json:"boardStop"`
	AlightStop int32  `json:"alightStop"`
	BoardTime  int32  `json:"boardTime"`
	AlightTime int32  `json:"alightTime"`
}

func NewTravelTimeSurfaceResponse(outcome analyst.Outcome) TravelTimeSurfaceResponse {
	result, ok := outcome.Result()
	if !ok {
		reason, _ := outcome.Reason()
		return TravelTimeSurfaceResponse{Finished: false, Reason: reason.String()}
	}
	resp := TravelTimeSurfaceResponse{
		Finished:    true,
		Percentiles: result.Percentiles,
		TravelTimes: make([][]int32, len(result.TravelTimes)),
	}
	for i, times := range result.TravelTimes {
		values := make([]int32, len(times))
		for j, t := range times {
			if t == UNREACHED {
				values[j] = -1
			} else {
				values[j] = t
			}
		}
		resp.TravelTimes[i] = values
	}
	if result.Paths != nil {
		resp.Paths = make([][]PathEntry, len(result.Paths))
		for i, paths := range result.Paths {
			resp.Paths[i] = _PathEntries(paths)
		}
	}
	return resp
}

func _PathEntries(paths []reducer.PathCount) []PathEntry {
	entries := make([]PathEntry, 0, len(paths))
	for _, pc := range paths {
		entry := PathEntry{
			AccessStop: pc.Path.AccessStop,
			Legs:       make([]LegEntry, 0, pc.Path.Rides()),
			Iterations: pc.Iterations,
		}
		for _, leg := range pc.Path.Legs {
			entry.Legs = append(entry.Legs, LegEntry{
				Trip:       leg.TripID,
				BoardStop:  leg.BoardStop,
				AlightStop: leg.AlightStop,
				BoardTime:  leg.BoardTime,
				AlightTime: leg.AlightTime,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}
