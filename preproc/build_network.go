package preproc

import (
	"fmt"

	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/parser"
	. "github.com/ttpr0/go-traveltime/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// build network
//*******************************************

// Assembles the network from parsed street and transit data. transit may be nil.
func BuildNetwork(streets *parser.OSMData, transit *parser.GTFSData, options TransitOptions) *graph.Network {
	street_layer := parser.BuildStreetLayer(streets)
	slog.Info(fmt.Sprintf("street layer: %v nodes, %v edges", street_layer.NodeCount(), street_layer.EdgeCount()))

	var transit_layer *graph.TransitLayer
	park_rides := NewList[graph.ParkRide](0)
	if transit != nil {
		transit_layer = PrepareTransit(street_layer, transit.Stops, transit.Patterns, options)
		park_rides = BuildParkRides(street_layer, transit_layer, streets.ParkRides, options)
		slog.Info(fmt.Sprintf("transit layer: %v stops, %v patterns", transit_layer.StopCount(), transit_layer.PatternCount()))
	}
	rentals := LinkBikeRentals(street_layer, streets.BikeRentals, options)
	return graph.NewNetwork(street_layer, transit_layer, park_rides, rentals)
}

// Parses the osm file and the optional gtfs feed and builds the network.
func LoadNetwork(osm_file string, gtfs_path string, options TransitOptions) (*graph.Network, error) {
	streets, err := parser.ParseOSM(osm_file, &parser.StreetDecoder{})
	if err != nil {
		return nil, err
	}
	var transit *parser.GTFSData
	if gtfs_path != "" {
		transit, err = parser.ParseGTFS(gtfs_path)
		if err != nil {
			return nil, err
		}
	}
	return BuildNetwork(streets, transit, options), nil
}
