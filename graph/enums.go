package graph

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

//*******************************************
// street modes
//*******************************************

type StreetMode byte

const (
	WALK    StreetMode = 0
	BICYCLE StreetMode = 1
	CAR     StreetMode = 2
)

var STREET_MODES = [3]StreetMode{WALK, BICYCLE, CAR}

func (self StreetMode) String() string {
	switch self {
	case WALK:
		return "WALK"
	case BICYCLE:
		return "BICYCLE"
	case CAR:
		return "CAR"
	default:
		panic("unknown street mode")
	}
}

// Permission bit of edges traversable with this mode.
func (self StreetMode) Permission() Permission {
	return Permission(1 << self)
}

func (self StreetMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *StreetMode) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	mode, err := StreetModeFromString(typ)
	*self = mode
	return err
}
func (self StreetMode) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *StreetMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := StreetModeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = mode
	return nil
}

func StreetModeFromString(s string) (StreetMode, error) {
	switch s {
	case "WALK":
		return WALK, nil
	case "BICYCLE":
		return BICYCLE, nil
	case "CAR":
		return CAR, nil
	default:
		return WALK, errors.New("unknown street mode")
	}
}

//*******************************************
// edge permissions
//*******************************************

type Permission byte

const (
	ALLOWS_WALK    Permission = 1 << WALK
	ALLOWS_BICYCLE Permission = 1 << BICYCLE
	ALLOWS_CAR     Permission = 1 << CAR
	ALLOWS_ALL     Permission = ALLOWS_WALK | ALLOWS_BICYCLE | ALLOWS_CAR
)

func (self Permission) Allows(mode StreetMode) bool {
	return self&mode.Permission() != 0
}
