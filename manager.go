package main

import (
	"fmt"

	"github.com/ttpr0/go-traveltime/analyst"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/pointset"
	"github.com/ttpr0/go-traveltime/preproc"
	"golang.org/x/exp/slog"
)

// Loads the network described by config and builds the travel time computer on it.
func NewNetworkManager(config Config) (*NetworkManager, error) {
	network, err := preproc.LoadNetwork(config.Source.OSM, config.Source.GTFS, config.Analysis.TransitOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load network: %w", err)
	}
	return NewNetworkManagerFromNetwork(network, config)
}

func NewNetworkManagerFromNetwork(network *graph.Network, config Config) (*NetworkManager, error) {
	grids, err := pointset.NewGridCache(config.Analysis.GridCacheSize)
	if err != nil {
		return nil, err
	}
	linkages := pointset.NewNetworkLinkageCache(network, config.Analysis.LinkOptions)
	computer := analyst.NewTravelTimeComputer(network, linkages, grids, nil, config.Analysis.Engine, slog.Default())
	return &NetworkManager{
		network:  network,
		computer: computer,
	}, nil
}

type NetworkManager struct {
	network  *graph.Network
	computer *analyst.TravelTimeComputer
}

func (self *NetworkManager) GetNetwork() *graph.Network {
	return self.network
}

func (self *NetworkManager) GetComputer() *analyst.TravelTimeComputer {
	return self.computer
}
