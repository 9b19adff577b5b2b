package parser

import (
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeEdge(tags Dict[string, string]) EdgeAttribs
	IsBikeRental(tags Dict[string, string]) bool
	IsParkRide(tags Dict[string, string]) bool
}

// Decodes streets usable by pedestrians, cyclists or cars.
type StreetDecoder struct {
}

var street_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true,
	"footway": true, "pedestrian": true, "path": true, "steps": true, "cycleway": true, "bridleway": true}

func (self *StreetDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !street_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("area") == "yes" {
		return false
	}
	return true
}

func (self *StreetDecoder) DecodeEdge(tags Dict[string, string]) EdgeAttribs {
	e := EdgeAttribs{}
	e.Type = _GetType(tags.Get("highway"))
	e.Maxspeed = _GetCarSpeed(e.Type, tags.Get("maxspeed"), tags.Get("tracktype"), tags.Get("surface"))

	perm := _GetPermissions(e.Type, tags)
	e.Forward = perm
	e.Backward = perm
	switch _GetOneway(tags.Get("oneway"), e.Type) {
	case 1:
		e.Backward = perm &^ graph.ALLOWS_CAR
		if tags.Get("oneway:bicycle") != "no" {
			e.Backward &^= graph.ALLOWS_BICYCLE
		}
	case -1:
		e.Forward = perm &^ graph.ALLOWS_CAR
		if tags.Get("oneway:bicycle") != "no" {
			e.Forward &^= graph.ALLOWS_BICYCLE
		}
	}
	return e
}

func (self *StreetDecoder) IsBikeRental(tags Dict[string, string]) bool {
	return tags.Get("amenity") == "bicycle_rental"
}

func (self *StreetDecoder) IsParkRide(tags Dict[string, string]) bool {
	if tags.Get("amenity") != "parking" {
		return false
	}
	park_ride := tags.Get("park_ride")
	return park_ride != "" && park_ride != "no"
}
