package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-traveltime/analyst"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/pointset"
	"github.com/ttpr0/go-traveltime/preproc"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// Reads the yaml config. Missing values keep their defaults.
func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file " + file)
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

type Config struct {
	Source   SourceOptions   `yaml:"source"`
	Analysis AnalysisOptions `yaml:"analysis"`
	Server   ServerOptions   `yaml:"server"`
}

func DefaultConfig() Config {
	return Config{
		Analysis: DefaultAnalysisOptions(),
		Server: ServerOptions{
			Port: 5002,
		},
	}
}

type SourceOptions struct {
	OSM  string `yaml:"osm" validate:"required"`
	GTFS string `yaml:"gtfs"`
}

type ServerOptions struct {
	Port int `yaml:"port" validate:"gt=0,lt=65536"`
}

//**********************************************************
// analysis options
//**********************************************************

type AnalysisOptions struct {
	Engine analyst.Options `yaml:"engine"`

	// maximum walking distance of transfers
	TransferRadiusMeters int `yaml:"transfer-radius-meters" validate:"gte=0"`
	// maximum walking distance between park-and-ride facilities and stops
	ParkRideRadiusMeters int `yaml:"park-ride-radius-meters" validate:"gte=0"`
	// radius for linking stops and facilities to the street network
	StopLinkRadiusMeters float64 `yaml:"stop-link-radius-meters" validate:"gt=0"`

	// maximum egress distance per street mode
	StopTrees struct {
		Walk    int `yaml:"walk" validate:"gt=0"`
		Bicycle int `yaml:"bicycle" validate:"gt=0"`
		Car     int `yaml:"car" validate:"gt=0"`
	} `yaml:"stop-tree-radius-meters"`

	GridCacheSize int `yaml:"grid-cache-size" validate:"gt=0"`
}

func DefaultAnalysisOptions() AnalysisOptions {
	transit := preproc.DefaultTransitOptions()
	options := AnalysisOptions{
		Engine:               analyst.DefaultOptions(),
		TransferRadiusMeters: int(transit.MaxTransferDistance / 1000),
		ParkRideRadiusMeters: int(transit.MaxParkRideDistance / 1000),
		StopLinkRadiusMeters: transit.LinkRadiusMeters,
		GridCacheSize:        16,
	}
	options.StopTrees.Walk = int(pointset.DefaultLinkOptions(graph.WALK).StopTreeRadiusMM / 1000)
	options.StopTrees.Bicycle = int(pointset.DefaultLinkOptions(graph.BICYCLE).StopTreeRadiusMM / 1000)
	options.StopTrees.Car = int(pointset.DefaultLinkOptions(graph.CAR).StopTreeRadiusMM / 1000)
	return options
}

func (self AnalysisOptions) TransitOptions() preproc.TransitOptions {
	return preproc.TransitOptions{
		LinkRadiusMeters:    self.StopLinkRadiusMeters,
		MaxTransferDistance: int32(self.TransferRadiusMeters) * 1000,
		MaxParkRideDistance: int32(self.ParkRideRadiusMeters) * 1000,
	}
}

func (self AnalysisOptions) LinkOptions(mode graph.StreetMode) pointset.LinkOptions {
	options := pointset.DefaultLinkOptions(mode)
	options.LinkRadiusMeters = self.Engine.LinkRadiusMeters
	switch mode {
	case graph.WALK:
		options.StopTreeRadiusMM = int32(self.StopTrees.Walk) * 1000
	case graph.BICYCLE:
		options.StopTreeRadiusMM = int32(self.StopTrees.Bicycle) * 1000
	case graph.CAR:
		options.StopTreeRadiusMM = int32(self.StopTrees.Car) * 1000
	}
	return options
}
