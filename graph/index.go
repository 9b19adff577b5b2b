package graph

import (
	"math"

	"github.com/kyroy/kdtree"
	"github.com/kyroy/kdtree/points"
	"github.com/ttpr0/go-traveltime/geo"
	. "github.com/ttpr0/go-traveltime/util"
)

// spacing of the sample points inserted along each edge in meters
const INDEX_SAMPLE_SPACING = 50.0

// number of sample points inspected per query
const INDEX_CANDIDATES = 24

//*******************************************
// street index
//*******************************************

// Spatial index over the edges usable by one street mode.
type StreetIndex struct {
	layer *StreetLayer
	mode  StreetMode
	proj  geo.LocalProjection
	tree  *kdtree.KDTree
	size  int
}

func NewStreetIndex(layer *StreetLayer, mode StreetMode) *StreetIndex {
	ref_lat := 0.0
	if layer.NodeCount() > 0 {
		for _, node := range layer.nodes {
			ref_lat += node.Loc.Lat()
		}
		ref_lat /= float64(layer.NodeCount())
	}
	proj := geo.NewLocalProjection(ref_lat)

	samples := NewList[kdtree.Point](layer.EdgeCount())
	for i, edge := range layer.edges {
		if !edge.Permissions.Allows(mode) {
			continue
		}
		ax, ay := proj.Proj(layer.nodes[edge.NodeA].Loc)
		bx, by := proj.Proj(layer.nodes[edge.NodeB].Loc)
		count := int(math.Hypot(bx-ax, by-ay)/INDEX_SAMPLE_SPACING) + 1
		for j := 0; j <= count; j++ {
			frac := float64(j) / float64(count)
			samples.Add(points.NewPoint([]float64{ax + frac*(bx-ax), ay + frac*(by-ay)}, int32(i)))
		}
	}
	index := &StreetIndex{
		layer: layer,
		mode:  mode,
		proj:  proj,
		size:  samples.Length(),
	}
	if samples.Length() > 0 {
		index.tree = kdtree.New(samples)
	}
	return index
}

func (self *StreetIndex) Split(point geo.Coord, radius float64) (Split, bool) {
	if self.tree == nil {
		return Split{}, false
	}
	px, py := self.proj.Proj(point)
	candidates := self.tree.KNN(points.NewPoint([]float64{px, py}, nil), INDEX_CANDIDATES)

	best_edge := int32(-1)
	best_dist := math.Inf(1)
	best_frac := 0.0
	for _, c := range candidates {
		edge_id := c.(*points.Point).Data.(int32)
		if best_edge != -1 && edge_id == best_edge {
			continue
		}
		edge := self.layer.edges[edge_id]
		ax, ay := self.proj.Proj(self.layer.nodes[edge.NodeA].Loc)
		bx, by := self.proj.Proj(self.layer.nodes[edge.NodeB].Loc)
		frac, dist := geo.ProjectOnSegment(px, py, ax, ay, bx, by)
		if dist < best_dist || (dist == best_dist && edge_id < best_edge) {
			best_edge = edge_id
			best_dist = dist
			best_frac = frac
		}
	}
	if best_edge == -1 || best_dist > radius {
		return Split{}, false
	}
	edge := self.layer.edges[best_edge]
	dist_a := int32(math.Round(best_frac * float64(edge.Length)))
	return Split{
		Edge:      best_edge,
		NodeA:     edge.NodeA,
		NodeB:     edge.NodeB,
		DistanceA: dist_a,
		DistanceB: edge.Length - dist_a,
		Offset:    int32(math.Round(best_dist * 1000)),
	}, true
}
