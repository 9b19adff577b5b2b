package parser

import (
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Point geo.Coord
	Count int32
}
type OSMNode struct {
	Point geo.Coord
	Edges List[int32]
}
type OSMEdge struct {
	NodeA int
	NodeB int
	Attr  EdgeAttribs
	Nodes List[geo.Coord]
}

type EdgeAttribs struct {
	Type RoadType
	// permissions in way direction
	Forward graph.Permission
	// permissions against way direction
	Backward graph.Permission
	// km/h
	Maxspeed int32
}

// Street data extracted from an OSM file.
type OSMData struct {
	Nodes       List[OSMNode]
	Edges       List[OSMEdge]
	BikeRentals List[geo.Coord]
	ParkRides   List[geo.Coord]
}
