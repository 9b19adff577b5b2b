package graph

import (
	"github.com/ttpr0/go-traveltime/geo"
	. "github.com/ttpr0/go-traveltime/util"
)

// default car speed for edges without a speed (40 km/h) in mm/s
const DEFAULT_CAR_SPEED int32 = 11111

//*******************************************
// street layer
//*******************************************

// Read-only street graph. Safe for concurrent use once built.
type StreetLayer struct {
	nodes   Array[Node]
	edges   Array[Edge]
	reverse Array[int32]

	// forward adjacency in compressed form
	first_edge Array[int32]
	adj_edges  Array[int32]

	index [len(STREET_MODES)]*StreetIndex
}

func NewStreetLayer(nodes Array[Node], edges Array[Edge]) *StreetLayer {
	layer := &StreetLayer{
		nodes: nodes,
		edges: edges,
	}
	layer.first_edge, layer.adj_edges = _BuildTopology(nodes, edges)
	layer.reverse = _FindReverseEdges(edges)
	for _, mode := range STREET_MODES {
		layer.index[mode] = NewStreetIndex(layer, mode)
	}
	return layer
}

func _BuildTopology(nodes Array[Node], edges Array[Edge]) (Array[int32], Array[int32]) {
	first_edge := NewArray[int32](nodes.Length() + 1)
	for _, edge := range edges {
		first_edge[edge.NodeA+1] += 1
	}
	for i := 1; i < first_edge.Length(); i++ {
		first_edge[i] += first_edge[i-1]
	}
	fill := first_edge.Copy()
	adj_edges := NewArray[int32](edges.Length())
	for i, edge := range edges {
		adj_edges[fill[edge.NodeA]] = int32(i)
		fill[edge.NodeA] += 1
	}
	return first_edge, adj_edges
}

func _FindReverseEdges(edges Array[Edge]) Array[int32] {
	lookup := NewDict[[2]int32, int32](edges.Length())
	for i, edge := range edges {
		key := [2]int32{edge.NodeA, edge.NodeB}
		if !lookup.ContainsKey(key) {
			lookup[key] = int32(i)
		}
	}
	reverse := NewArray[int32](edges.Length())
	for i, edge := range edges {
		if id, ok := lookup[[2]int32{edge.NodeB, edge.NodeA}]; ok {
			reverse[i] = id
		} else {
			reverse[i] = -1
		}
	}
	return reverse
}

func (self *StreetLayer) NodeCount() int {
	return self.nodes.Length()
}
func (self *StreetLayer) EdgeCount() int {
	return self.edges.Length()
}
func (self *StreetLayer) IsNode(node int32) bool {
	return node >= 0 && node < int32(self.nodes.Length())
}
func (self *StreetLayer) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *StreetLayer) GetEdge(edge int32) Edge {
	return self.edges[edge]
}
func (self *StreetLayer) GetNodeGeom(node int32) geo.Coord {
	return self.nodes[node].Loc
}

// Returns the edge running in the opposite direction or -1.
func (self *StreetLayer) GetReverseEdge(edge int32) int32 {
	return self.reverse[edge]
}

// Iterates the outgoing edges of node.
func (self *StreetLayer) ForAdjacentEdges(node int32, callback func(EdgeRef)) {
	start := self.first_edge[node]
	end := self.first_edge[node+1]
	for i := start; i < end; i++ {
		edge_id := self.adj_edges[i]
		callback(EdgeRef{
			EdgeID:  edge_id,
			OtherID: self.edges[edge_id].NodeB,
		})
	}
}

// Travel time over a distance in seconds, rounded to the nearest second.
func (self *StreetLayer) GetEdgeSeconds(edge int32, mode StreetMode, speed int32) int32 {
	e := self.edges[edge]
	if mode == CAR {
		speed = e.CarSpeed
		if speed <= 0 {
			speed = DEFAULT_CAR_SPEED
		}
	}
	return (e.Length + speed/2) / speed
}

// Links a coordinate to the closest edge traversable with mode.
//
// Returns false if no such edge lies within radius meters.
func (self *StreetLayer) Split(point geo.Coord, mode StreetMode, radius float64) (Split, bool) {
	return self.index[mode].Split(point, radius)
}
