package parser

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/ttpr0/go-traveltime/geo"
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
	"golang.org/x/exp/slog"
)

// Reads streets and facilities from an .osm.pbf or .osm (xml) file.
func ParseOSM(filename string, decoder IOSMDecoder) (*OSMData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open osm file: %w", err)
	}
	defer file.Close()

	xml := strings.HasSuffix(filename, ".osm") || strings.HasSuffix(filename, ".xml")
	data, err := ParseOSMReader(file, xml, decoder)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("parsed osm: %v nodes, %v edges", data.Nodes.Length(), data.Edges.Length()))
	return data, nil
}

// Parses OSM data in three passes over r: way nodes, node locations and ways.
func ParseOSMReader(r io.ReadSeeker, xml bool, decoder IOSMDecoder) (*OSMData, error) {
	data := &OSMData{
		Nodes:       NewList[OSMNode](10000),
		Edges:       NewList[OSMEdge](10000),
		BikeRentals: NewList[geo.Coord](10),
		ParkRides:   NewList[geo.Coord](10),
	}
	osm_nodes := NewDict[int64, TempNode](1000)
	index_mapping := NewDict[int64, int](10000)

	passes := []func(osm.Scanner){
		func(scanner osm.Scanner) { _InitWayHandler(scanner, decoder, osm_nodes) },
		func(scanner osm.Scanner) { _NodeHandler(scanner, decoder, osm_nodes, data, index_mapping) },
		func(scanner osm.Scanner) { _WayHandler(scanner, decoder, osm_nodes, data, index_mapping) },
	}
	for _, pass := range passes {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		scanner := _NewScanner(r, xml)
		pass(scanner)
		err := scanner.Err()
		scanner.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to scan osm data: %w", err)
		}
	}
	for i, e := range data.Edges {
		node_a := data.Nodes[e.NodeA]
		node_a.Edges.Add(int32(i))
		data.Nodes[e.NodeA] = node_a
		node_b := data.Nodes[e.NodeB]
		node_b.Edges.Add(int32(i))
		data.Nodes[e.NodeB] = node_b
	}
	return data, nil
}

func _NewScanner(r io.Reader, xml bool) osm.Scanner {
	if xml {
		return osmxml.New(context.Background(), r)
	}
	return osmpbf.New(context.Background(), r, runtime.GOMAXPROCS(-1))
}

// Builds the street layer, every way segment becomes a pair of directed edges.
func BuildStreetLayer(data *OSMData) *graph.StreetLayer {
	nodes := NewArray[graph.Node](data.Nodes.Length())
	for i, node := range data.Nodes {
		nodes[i] = graph.Node{Loc: node.Point}
	}
	edges := NewList[graph.Edge](data.Edges.Length() * 2)
	for _, osmedge := range data.Edges {
		length := int32(math.Round(_PolylineLength(osmedge.Nodes) * 1000))
		speed := osmedge.Attr.Maxspeed * 1_000_000 / 3600
		if osmedge.Attr.Forward != 0 {
			edges.Add(graph.Edge{
				NodeA:       int32(osmedge.NodeA),
				NodeB:       int32(osmedge.NodeB),
				Length:      length,
				Permissions: osmedge.Attr.Forward,
				CarSpeed:    speed,
			})
		}
		if osmedge.Attr.Backward != 0 {
			edges.Add(graph.Edge{
				NodeA:       int32(osmedge.NodeB),
				NodeB:       int32(osmedge.NodeA),
				Length:      length,
				Permissions: osmedge.Attr.Backward,
				CarSpeed:    speed,
			})
		}
	}
	return graph.NewStreetLayer(nodes, Array[graph.Edge](edges))
}

func _PolylineLength(coords List[geo.Coord]) float64 {
	length := 0.0
	for i := 1; i < coords.Length(); i++ {
		length += geo.Distance(coords[i-1], coords[i])
	}
	return length
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner osm.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode]) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				node := osm_nodes[ndref]
				node.Count += 1
				osm_nodes[ndref] = node
			}
			// way ends always become graph nodes
			for _, end := range [2]int64{nodes[0].FeatureID().Ref(), nodes[l-1].FeatureID().Ref()} {
				node := osm_nodes[end]
				node.Count += 1
				osm_nodes[end] = node
			}
		default:
			continue
		}
	}
}

func _NodeHandler(scanner osm.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode], data *OSMData, index_mapping Dict[int64, int]) {
	c := 0
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			tags := Dict[string, string](object.TagMap())
			point := geo.NewCoord(object.Lon, object.Lat)
			if decoder.IsBikeRental(tags) {
				data.BikeRentals.Add(point)
			}
			if decoder.IsParkRide(tags) {
				data.ParkRides.Add(point)
			}
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			c += 1
			if c%100000 == 0 {
				slog.Debug(fmt.Sprintf("%v nodes", c))
			}
			on := osm_nodes[id]
			if on.Count > 1 {
				index_mapping[id] = data.Nodes.Length()
				data.Nodes.Add(OSMNode{Point: point, Edges: NewList[int32](3)})
			}
			on.Point = point
			osm_nodes[id] = on
		default:
			continue
		}
	}
}

func _WayHandler(scanner osm.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode], data *OSMData, index_mapping Dict[int64, int]) {
	c := 0
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("%v ways", c))
			}

			edge_attr := decoder.DecodeEdge(tags)
			start := nodes[0].FeatureID().Ref()
			e := OSMEdge{}
			e.Nodes.Add(osm_nodes[start].Point)
			for i := 1; i < l; i++ {
				curr := nodes[i].FeatureID().Ref()
				on := osm_nodes[curr]
				e.Nodes.Add(on.Point)
				if on.Count > 1 && curr != start {
					e.NodeA = index_mapping[start]
					e.NodeB = index_mapping[curr]
					e.Attr = edge_attr
					data.Edges.Add(e)
					start = curr
					e = OSMEdge{}
					e.Nodes.Add(on.Point)
				}
			}
		default:
			continue
		}
	}
}
