package analyst

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
	"gopkg.in/yaml.v3"
)

//*******************************************
// leg modes
//*******************************************

type LegMode byte

const (
	WALK         LegMode = 0
	BICYCLE      LegMode = 1
	CAR          LegMode = 2
	BICYCLE_RENT LegMode = 3
	CAR_PARK     LegMode = 4
)

func (self LegMode) String() string {
	switch self {
	case WALK:
		return "WALK"
	case BICYCLE:
		return "BICYCLE"
	case CAR:
		return "CAR"
	case BICYCLE_RENT:
		return "BICYCLE_RENT"
	case CAR_PARK:
		return "CAR_PARK"
	default:
		panic("unknown leg mode")
	}
}

// Street mode used to search this leg mode on its own.
func (self LegMode) StreetMode() graph.StreetMode {
	switch self {
	case BICYCLE:
		return graph.BICYCLE
	case CAR, CAR_PARK:
		return graph.CAR
	default:
		return graph.WALK
	}
}

func (self LegMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *LegMode) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	mode, err := LegModeFromString(typ)
	*self = mode
	return err
}
func (self LegMode) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *LegMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := LegModeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = mode
	return nil
}

func LegModeFromString(s string) (LegMode, error) {
	switch s {
	case "WALK":
		return WALK, nil
	case "BICYCLE":
		return BICYCLE, nil
	case "CAR":
		return CAR, nil
	case "BICYCLE_RENT":
		return BICYCLE_RENT, nil
	case "CAR_PARK":
		return CAR_PARK, nil
	default:
		return WALK, errors.New("unknown leg mode")
	}
}

type LegModeSet []LegMode

func (self LegModeSet) Contains(mode LegMode) bool {
	return slices.Contains(self, mode)
}

// Compares as sets, order and duplicates are ignored.
func (self LegModeSet) Equals(other LegModeSet) bool {
	for _, m := range self {
		if !other.Contains(m) {
			return false
		}
	}
	for _, m := range other {
		if !self.Contains(m) {
			return false
		}
	}
	return true
}

// Dominant street mode of a set of leg modes.
//
// CAR if the set contains CAR or CAR_PARK, BICYCLE if it contains BICYCLE, WALK otherwise.
func GetDominantStreetMode(modes LegModeSet) graph.StreetMode {
	if modes.Contains(CAR) || modes.Contains(CAR_PARK) {
		return graph.CAR
	}
	if modes.Contains(BICYCLE) {
		return graph.BICYCLE
	}
	return graph.WALK
}

//*******************************************
// transit modes
//*******************************************

type TransitMode byte

const (
	TRANSIT   TransitMode = 0
	TRAM      TransitMode = 1
	SUBWAY    TransitMode = 2
	RAIL      TransitMode = 3
	BUS       TransitMode = 4
	FERRY     TransitMode = 5
	CABLE_CAR TransitMode = 6
	GONDOLA   TransitMode = 7
	FUNICULAR TransitMode = 8
	AIR       TransitMode = 9
)

var transit_mode_names = [...]string{"TRANSIT", "TRAM", "SUBWAY", "RAIL", "BUS", "FERRY", "CABLE_CAR", "GONDOLA", "FUNICULAR", "AIR"}

func (self TransitMode) String() string {
	if int(self) >= len(transit_mode_names) {
		panic("unknown transit mode")
	}
	return transit_mode_names[self]
}

// GTFS route types served by the mode, nil for TRANSIT.
func (self TransitMode) RouteTypes() []int16 {
	switch self {
	case TRAM:
		return []int16{0}
	case SUBWAY:
		return []int16{1}
	case RAIL:
		return []int16{2}
	case BUS:
		return []int16{3, 11}
	case FERRY:
		return []int16{4}
	case CABLE_CAR:
		return []int16{5}
	case GONDOLA:
		return []int16{6}
	case FUNICULAR:
		return []int16{7}
	case AIR:
		return []int16{1100}
	default:
		return nil
	}
}

func (self TransitMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *TransitMode) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	mode, err := TransitModeFromString(typ)
	*self = mode
	return err
}

func TransitModeFromString(s string) (TransitMode, error) {
	for i, name := range transit_mode_names {
		if name == s {
			return TransitMode(i), nil
		}
	}
	return TRANSIT, errors.New("unknown transit mode")
}

type TransitModeSet []TransitMode

// Allowed route types, nil if every route type is allowed.
func (self TransitModeSet) RouteTypes() Dict[int16, bool] {
	if slices.Contains(self, TRANSIT) {
		return nil
	}
	types := NewDict[int16, bool](len(self))
	for _, mode := range self {
		for _, t := range mode.RouteTypes() {
			types[t] = true
		}
	}
	return types
}
