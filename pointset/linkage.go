package pointset

import (
	"sort"

	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/routing"
	. "github.com/ttpr0/go-traveltime/util"
)

type LinkOptions struct {
	// max distance between a point and its street
	LinkRadiusMeters float64
	// distance limit of the stop egress trees in millimeters
	StopTreeRadiusMM int32
}

func DefaultLinkOptions(mode graph.StreetMode) LinkOptions {
	switch mode {
	case graph.BICYCLE:
		return LinkOptions{LinkRadiusMeters: 1000, StopTreeRadiusMM: 5_000_000}
	case graph.CAR:
		return LinkOptions{LinkRadiusMeters: 1000, StopTreeRadiusMM: 10_000_000}
	default:
		return LinkOptions{LinkRadiusMeters: 1000, StopTreeRadiusMM: 2_000_000}
	}
}

type PointDistance struct {
	Point int32
	// millimeters
	Distance int32
}

//*******************************************
// linked point set
//*******************************************

// Point set linked to the street edges of one mode. Read-only after Link.
type LinkedPointSet struct {
	points PointSet
	mode   graph.StreetMode

	edges  Array[int32]
	node_a Array[int32]
	node_b Array[int32]
	dist_a Array[int32]
	dist_b Array[int32]
	offset Array[int32]

	// egress trees keyed by stop
	stop_trees Array[List[PointDistance]]
}

// Links every point to its closest street usable with mode and builds the stop egress trees.
func Link(network *graph.Network, points PointSet, mode graph.StreetMode, options LinkOptions) *LinkedPointSet {
	count := points.FeatureCount()
	linked := &LinkedPointSet{
		points: points,
		mode:   mode,
		edges:  NewArray[int32](count),
		node_a: NewArray[int32](count),
		node_b: NewArray[int32](count),
		dist_a: NewArray[int32](count),
		dist_b: NewArray[int32](count),
		offset: NewArray[int32](count),
	}
	for i := 0; i < count; i++ {
		split, ok := network.Streets.Split(points.GetCoord(i), mode, options.LinkRadiusMeters)
		if !ok {
			linked.edges[i] = -1
			linked.node_a[i] = -1
			linked.node_b[i] = -1
			continue
		}
		linked.edges[i] = split.Edge
		linked.node_a[i] = split.NodeA
		linked.node_b[i] = split.NodeB
		linked.dist_a[i] = split.DistanceA
		linked.dist_b[i] = split.DistanceB
		linked.offset[i] = split.Offset
	}
	if network.HasTransit() {
		linked.stop_trees = linked._BuildStopTrees(network, options.StopTreeRadiusMM)
	}
	return linked
}

func (self *LinkedPointSet) PointSet() PointSet {
	return self.points
}

func (self *LinkedPointSet) Mode() graph.StreetMode {
	return self.mode
}

func (self *LinkedPointSet) FeatureCount() int {
	return self.edges.Length()
}

func (self *LinkedPointSet) IsLinked(point int) bool {
	return self.edges[point] != -1
}

// Evaluates a per-vertex cost (seconds) into a per-point cost.
//
// The cost of a point is the best over both edge endpoints of cost plus the time to
// cover the along-edge distance at speed (mm/s), plus the time for the perpendicular
// offset. Points whose endpoints were not reached are UNREACHED.
func (self *LinkedPointSet) Eval(cost func(vertex int32) int32, speed int32) Array[int32] {
	times := NewArray[int32](self.edges.Length())
	for i := range times {
		times[i] = self._EvalPoint(i, cost, speed)
	}
	return times
}

func (self *LinkedPointSet) _EvalPoint(i int, cost func(int32) int32, speed int32) int32 {
	if self.edges[i] == -1 {
		return UNREACHED
	}
	best := UNREACHED
	if c := cost(self.node_a[i]); c != UNREACHED {
		best = min(best, c+self.dist_a[i]/speed)
	}
	if c := cost(self.node_b[i]); c != UNREACHED {
		best = min(best, c+self.dist_b[i]/speed)
	}
	if best == UNREACHED {
		return UNREACHED
	}
	return best + self.offset[i]/speed
}

// Street distances from the stop to nearby points in ascending point order.
func (self *LinkedPointSet) EgressTree(stop int32) List[PointDistance] {
	if self.stop_trees == nil || int(stop) >= self.stop_trees.Length() {
		return nil
	}
	return self.stop_trees[stop]
}

func (self *LinkedPointSet) StopCount() int {
	return self.stop_trees.Length()
}

func (self *LinkedPointSet) _BuildStopTrees(network *graph.Network, radius int32) Array[List[PointDistance]] {
	// points attached to every vertex, so each tree only visits points near reached vertices
	points_at := NewDict[int32, List[int32]](self.edges.Length())
	for i, edge := range self.edges {
		if edge == -1 {
			continue
		}
		for _, v := range [2]int32{self.node_a[i], self.node_b[i]} {
			list := points_at[v]
			list.Add(int32(i))
			points_at[v] = list
		}
	}

	router := routing.NewStreetRouter(network, routing.DefaultRouterOptions())
	search := routing.StreetSearch{
		Mode:            self.mode,
		Variable:        routing.DISTANCE_MILLIMETERS,
		DistanceLimitMM: radius,
	}
	transit := network.Transit
	trees := NewArray[List[PointDistance]](transit.StopCount())
	for stop := 0; stop < transit.StopCount(); stop++ {
		vertex := transit.MapStopToVertex(int32(stop))
		if vertex == -1 {
			continue
		}
		result := router.RouteFrom(List[routing.Seed]{{Vertex: vertex}}, search)
		distances := NewDict[int32, int32](16)
		for _, v := range result.GetReachedVertices(points_at.ContainsKey) {
			for _, p := range points_at[v] {
				if distances.ContainsKey(p) {
					continue
				}
				d := self._EvalPoint(int(p), result.GetDistanceToVertex, 1)
				if d == UNREACHED || d > radius {
					continue
				}
				distances[p] = d
			}
		}
		tree := NewList[PointDistance](distances.Length())
		for p, d := range distances {
			tree.Add(PointDistance{Point: p, Distance: d})
		}
		sort.Slice(tree, func(i, j int) bool {
			return tree[i].Point < tree[j].Point
		})
		trees[stop] = tree
	}
	return trees
}
