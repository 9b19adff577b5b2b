package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/patrickbr/gtfsparser"
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// gtfs parser
//*******************************************

type GTFSData struct {
	Stops    Array[graph.Stop]
	Patterns Array[graph.Pattern]
}

// Reads stops and trips from a gtfs zip or directory.
// Trips running the same stop sequence on the same route are grouped into a pattern.
// Service calendars are not evaluated, every trip is kept.
func ParseGTFS(path string) (*GTFSData, error) {
	feed := gtfsparser.NewFeed()
	if err := feed.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse gtfs feed: %w", err)
	}

	stop_ids := NewList[string](len(feed.Stops))
	for id := range feed.Stops {
		stop_ids.Add(id)
	}
	sort.Strings(stop_ids)
	stop_mapping := NewDict[string, int32](stop_ids.Length())
	stops := NewArray[graph.Stop](stop_ids.Length())
	for i, id := range stop_ids {
		s := feed.Stops[id]
		stop_mapping[id] = int32(i)
		stops[i] = graph.Stop{
			ID:   id,
			Name: s.Name,
			Loc:  geo.NewCoord(float64(s.Lon), float64(s.Lat)),
		}
	}

	trip_ids := NewList[string](len(feed.Trips))
	for id := range feed.Trips {
		trip_ids.Add(id)
	}
	sort.Strings(trip_ids)
	trips := NewList[TripStops](trip_ids.Length())
	skipped := 0
	for _, id := range trip_ids {
		trip := feed.Trips[id]
		if trip.Route == nil {
			skipped += 1
			continue
		}
		ts := TripStops{
			TripID:    id,
			RouteID:   trip.Route.Id,
			RouteType: trip.Route.Type,
		}
		for _, st := range trip.StopTimes {
			s, ok := stop_mapping[st.Stop().Id]
			if !ok {
				continue
			}
			ts.Stops = append(ts.Stops, s)
			ts.Arrivals = append(ts.Arrivals, int32(st.Arrival_time().SecondsSinceMidnight()))
			ts.Departures = append(ts.Departures, int32(st.Departure_time().SecondsSinceMidnight()))
		}
		if len(ts.Stops) < 2 {
			skipped += 1
			continue
		}
		trips.Add(ts)
	}
	patterns := GroupPatterns(trips)
	if skipped > 0 {
		slog.Warn(fmt.Sprintf("skipped %v trips without route or with less than two stops", skipped))
	}
	slog.Info(fmt.Sprintf("parsed gtfs: %v stops, %v patterns, %v trips", stops.Length(), patterns.Length(), trip_ids.Length()-skipped))
	return &GTFSData{
		Stops:    stops,
		Patterns: patterns,
	}, nil
}

// Stop sequence of one trip, times in seconds after midnight.
type TripStops struct {
	TripID     string
	RouteID    string
	RouteType  int16
	Stops      []int32
	Arrivals   []int32
	Departures []int32
}

// Groups trips running the same stop sequence on the same route into patterns.
// Patterns are ordered by their first trip.
func GroupPatterns(trips List[TripStops]) Array[graph.Pattern] {
	pattern_mapping := NewDict[string, int](100)
	patterns := NewList[graph.Pattern](100)
	for _, trip := range trips {
		key := strings.Builder{}
		key.WriteString(trip.RouteID)
		for _, s := range trip.Stops {
			fmt.Fprintf(&key, "|%d", s)
		}
		p, ok := pattern_mapping[key.String()]
		if !ok {
			p = patterns.Length()
			pattern_mapping[key.String()] = p
			patterns.Add(graph.Pattern{
				RouteID:   trip.RouteID,
				RouteType: trip.RouteType,
				Stops:     trip.Stops,
			})
		}
		patterns[p].Trips = append(patterns[p].Trips, graph.TripSchedule{
			TripID:     trip.TripID,
			Arrivals:   trip.Arrivals,
			Departures: trip.Departures,
		})
	}
	return Array[graph.Pattern](patterns)
}
