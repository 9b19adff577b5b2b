package parser

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

//*******************************************
// road types
//*******************************************

type RoadType byte

const (
	MOTORWAY       RoadType = 1
	MOTORWAY_LINK  RoadType = 2
	TRUNK          RoadType = 3
	TRUNK_LINK     RoadType = 4
	PRIMARY        RoadType = 5
	PRIMARY_LINK   RoadType = 6
	SECONDARY      RoadType = 7
	SECONDARY_LINK RoadType = 8
	TERTIARY       RoadType = 9
	TERTIARY_LINK  RoadType = 10
	RESIDENTIAL    RoadType = 11
	LIVING_STREET  RoadType = 12
	UNCLASSIFIED   RoadType = 13
	ROAD           RoadType = 14
	TRACK          RoadType = 15
	SERVICE        RoadType = 16
	FOOTWAY        RoadType = 17
	PATH           RoadType = 18
	STEPS          RoadType = 19
	CYCLEWAY       RoadType = 20
)

//*******************************************
// utility methods
//*******************************************

// 1 for oneway in way direction, -1 against it, 0 for two-way.
func _GetOneway(oneway string, str_type RoadType) int {
	switch oneway {
	case "yes", "true", "1":
		return 1
	case "-1", "reverse":
		return -1
	case "no", "false", "0":
		return 0
	}
	if str_type == MOTORWAY || str_type == TRUNK || str_type == MOTORWAY_LINK || str_type == TRUNK_LINK {
		return 1
	}
	return 0
}

func _GetPermissions(str_type RoadType, tags Dict[string, string]) graph.Permission {
	var perm graph.Permission
	switch str_type {
	case MOTORWAY, MOTORWAY_LINK, TRUNK, TRUNK_LINK:
		perm = graph.ALLOWS_CAR
	case FOOTWAY, STEPS:
		perm = graph.ALLOWS_WALK
	case PATH, CYCLEWAY:
		perm = graph.ALLOWS_WALK | graph.ALLOWS_BICYCLE
	default:
		perm = graph.ALLOWS_ALL
	}
	if _IsDenied(tags.Get("access")) {
		perm = 0
	}
	if value := tags.Get("foot"); value != "" {
		perm = _Override(perm, graph.ALLOWS_WALK, value)
	}
	if value := tags.Get("bicycle"); value != "" {
		perm = _Override(perm, graph.ALLOWS_BICYCLE, value)
	}
	if value := tags.Get("motor_vehicle"); value != "" {
		perm = _Override(perm, graph.ALLOWS_CAR, value)
	}
	return perm
}

func _IsDenied(value string) bool {
	return value == "no" || value == "private"
}

func _Override(perm graph.Permission, bit graph.Permission, value string) graph.Permission {
	if _IsDenied(value) {
		return perm &^ bit
	}
	return perm | bit
}

func _GetType(typ string) RoadType {
	switch typ {
	case "motorway":
		return MOTORWAY
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk":
		return TRUNK
	case "trunk_link":
		return TRUNK_LINK
	case "primary":
		return PRIMARY
	case "primary_link":
		return PRIMARY_LINK
	case "secondary":
		return SECONDARY
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary":
		return TERTIARY
	case "tertiary_link":
		return TERTIARY_LINK
	case "residential":
		return RESIDENTIAL
	case "living_street":
		return LIVING_STREET
	case "unclassified":
		return UNCLASSIFIED
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "service":
		return SERVICE
	case "footway", "pedestrian", "bridleway":
		return FOOTWAY
	case "path":
		return PATH
	case "steps":
		return STEPS
	case "cycleway":
		return CYCLEWAY
	}
	return 0
}

var default_speeds = Dict[RoadType, int32]{
	MOTORWAY: 100, TRUNK: 85, MOTORWAY_LINK: 60, TRUNK_LINK: 60, PRIMARY: 65, SECONDARY: 60,
	TERTIARY: 50, PRIMARY_LINK: 50, SECONDARY_LINK: 50, TERTIARY_LINK: 40, UNCLASSIFIED: 30,
	RESIDENTIAL: 30, LIVING_STREET: 10, ROAD: 20,
}

var track_speeds = Dict[string, int32]{"grade1": 40, "grade2": 30, "grade3": 20, "grade4": 15, "grade5": 10}

var surface_limits = map[int32][]string{
	80: {"cement", "compacted"},
	60: {"fine_gravel"},
	40: {"paving_stones", "metal", "bricks"},
	30: {"grass", "wood", "sett", "grass_paver", "gravel", "unpaved", "ground", "dirt", "pebblestone", "tartan"},
	20: {"cobblestone", "clay"},
	15: {"earth", "stone", "rocky", "sand"},
	10: {"mud"},
}

// Car speed in km/h from maxspeed, road type and surface.
func _GetCarSpeed(str_type RoadType, maxspeed string, tracktype string, surface string) int32 {
	var speed int32
	switch {
	case maxspeed == "walk":
		speed = 9
	case maxspeed == "none":
		speed = 99
	case maxspeed != "":
		t, err := strconv.Atoi(strings.TrimSuffix(maxspeed, " km/h"))
		if err != nil {
			t = 20
		}
		speed = int32(0.9 * float32(t))
	case str_type == TRACK:
		speed = 15
		if s, ok := track_speeds[tracktype]; ok {
			speed = s
		}
	default:
		speed = 20
		if s, ok := default_speeds[str_type]; ok {
			speed = s
		}
	}

	for limit, surfaces := range surface_limits {
		if speed > limit && slices.Contains(surfaces, surface) {
			speed = limit
		}
	}

	if speed <= 0 {
		speed = 10
	}
	return speed
}
