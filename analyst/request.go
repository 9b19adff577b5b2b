package analyst

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/pointset"
)

//*******************************************
// travel time request
//*******************************************

// One-origin travel time request. Speeds in m/s, limits in minutes, times of day in
// seconds after midnight.
type Request struct {
	FromLat float64 `json:"fromLat" validate:"min=-90,max=90"`
	FromLon float64 `json:"fromLon" validate:"min=-180,max=180"`

	AccessModes  LegModeSet     `json:"accessModes"`
	EgressModes  LegModeSet     `json:"egressModes"`
	DirectModes  LegModeSet     `json:"directModes"`
	TransitModes TransitModeSet `json:"transitModes"`

	WalkSpeed float64 `json:"walkSpeed" validate:"gte=0,lte=10"`
	BikeSpeed float64 `json:"bikeSpeed" validate:"gte=0,lte=20"`
	CarSpeed  float64 `json:"carSpeed" validate:"gte=0,lte=50"`

	MaxWalkTime             int `json:"maxWalkTime" validate:"gte=0"`
	MaxBikeTime             int `json:"maxBikeTime" validate:"gte=0"`
	MaxCarTime              int `json:"maxCarTime" validate:"gte=0"`
	MaxTripDurationMinutes  int `json:"maxTripDurationMinutes" validate:"gte=0,lte=1440"`
	WalkDistanceLimitMeters int `json:"walkDistanceLimitMeters" validate:"gte=0"`

	FromTime        int   `json:"fromTime" validate:"gte=0,lte=172800"`
	ToTime          int   `json:"toTime" validate:"gte=0,lte=172800,gtefield=FromTime"`
	MonteCarloDraws int   `json:"monteCarloDraws" validate:"gte=0,lte=10000"`
	MaxRides        int   `json:"maxRides" validate:"gte=0,lte=20"`
	RandomSeed      int64 `json:"randomSeed"`

	Percentiles         []int `json:"percentiles" validate:"dive,min=0,max=100"`
	ReturnPaths         bool  `json:"returnPaths"`
	TravelTimeBreakdown bool  `json:"travelTimeBreakdown"`

	Destinations pointset.DestinationSpec `json:"destinations"`
}

// Fills unset fields with the defaults used for analysis requests.
func (self *Request) ApplyDefaults() {
	if len(self.AccessModes) == 0 {
		self.AccessModes = LegModeSet{WALK}
	}
	if len(self.EgressModes) == 0 {
		self.EgressModes = LegModeSet{WALK}
	}
	if len(self.DirectModes) == 0 {
		self.DirectModes = LegModeSet{WALK}
	}
	if self.WalkSpeed == 0 {
		self.WalkSpeed = 1.3
	}
	if self.BikeSpeed == 0 {
		self.BikeSpeed = 4
	}
	if self.CarSpeed == 0 {
		self.CarSpeed = 11.11
	}
	if self.MaxWalkTime == 0 {
		self.MaxWalkTime = 20
	}
	if self.MaxBikeTime == 0 {
		self.MaxBikeTime = 20
	}
	if self.MaxCarTime == 0 {
		self.MaxCarTime = 45
	}
	if self.MaxTripDurationMinutes == 0 {
		self.MaxTripDurationMinutes = 120
	}
	if self.WalkDistanceLimitMeters == 0 {
		self.WalkDistanceLimitMeters = 2000
	}
	if self.FromTime == 0 && self.ToTime == 0 {
		self.FromTime = 7 * 3600
		self.ToTime = 9 * 3600
	}
	if self.MaxRides == 0 {
		self.MaxRides = 8
	}
	if len(self.Percentiles) == 0 {
		self.Percentiles = []int{50}
	}
}

var validate = validator.New()

func (self *Request) Validate() error {
	if err := validate.Struct(self); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func (self *Request) Origin() geo.Coord {
	return geo.NewCoord(self.FromLon, self.FromLat)
}

// Speed of the street mode in mm/s.
func (self *Request) GetSpeedForMode(mode graph.StreetMode) int32 {
	switch mode {
	case graph.BICYCLE:
		return _ToMMPS(self.BikeSpeed)
	case graph.CAR:
		return _ToMMPS(self.CarSpeed)
	default:
		return _ToMMPS(self.WalkSpeed)
	}
}

// Max time spent on the street mode to reach transit, in seconds.
func (self *Request) GetMaxAccessTimeForMode(mode graph.StreetMode) int32 {
	switch mode {
	case graph.BICYCLE:
		return int32(self.MaxBikeTime * 60)
	case graph.CAR:
		return int32(self.MaxCarTime * 60)
	default:
		return int32(self.MaxWalkTime * 60)
	}
}

func (self *Request) MaxTripDurationSeconds() int32 {
	return int32(self.MaxTripDurationMinutes * 60)
}

func (self *Request) RetainsPaths() bool {
	return self.ReturnPaths || self.TravelTimeBreakdown
}

func _ToMMPS(speed float64) int32 {
	return max(int32(math.Round(speed*1000)), 1)
}
