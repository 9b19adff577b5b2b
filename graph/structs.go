package graph

import (
	"github.com/ttpr0/go-traveltime/geo"
)

//*******************************************
// street structs
//*******************************************

type Node struct {
	Loc geo.Coord
}

// Directed street edge. Two-way streets are stored as a pair of edges.
type Edge struct {
	NodeA int32
	NodeB int32
	// length in millimeters
	Length      int32
	Permissions Permission
	// car speed in millimeters per second, 0 means the default speed
	CarSpeed int32
}

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}

// Location of a point on the street network.
type Split struct {
	Edge  int32
	NodeA int32
	NodeB int32
	// distance along the edge from NodeA / NodeB to the split point in millimeters
	DistanceA int32
	DistanceB int32
	// perpendicular distance between the point and the edge in millimeters
	Offset int32
}

//*******************************************
// transit structs
//*******************************************

type Stop struct {
	ID   string
	Name string
	Loc  geo.Coord
}

// One scheduled vehicle run over a pattern, times in seconds after midnight.
type TripSchedule struct {
	TripID     string
	Arrivals   []int32
	Departures []int32
}

// Ordered stop sequence shared by a set of trips.
type Pattern struct {
	RouteID   string
	RouteType int16
	Stops     []int32
	Trips     []TripSchedule
}

type Transfer struct {
	ToStop int32
	// walking distance in millimeters
	Distance int32
}

type StopDistance struct {
	Stop     int32
	Distance int32
}

//*******************************************
// facilities
//*******************************************

// Park-and-ride facility with its walking distances to nearby stops.
type ParkRide struct {
	Vertex int32
	Stops  []StopDistance
}
