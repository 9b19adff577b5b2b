package routing

import (
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

// Search state at a reached vertex.
type State struct {
	Vertex     int32
	BackEdge   int32
	BackVertex int32
	// seconds
	Duration int32
	// millimeters
	Distance int32
}

//*******************************************
// street result
//*******************************************

// Outcome of one street search. Only reached vertices carry a state.
type StreetResult struct {
	network *graph.Network
	search  StreetSearch
	states  Array[State]
}

func _NewStreetResult(network *graph.Network, search StreetSearch) *StreetResult {
	states := NewArray[State](network.Streets.NodeCount())
	states.Fill(State{Vertex: -1, BackEdge: -1, BackVertex: -1})
	return &StreetResult{
		network: network,
		search:  search,
		states:  states,
	}
}

func (self *StreetResult) Search() StreetSearch {
	return self.search
}

func (self *StreetResult) GetState(vertex int32) (State, bool) {
	state := self.states[vertex]
	return state, state.Vertex != -1
}

func (self *StreetResult) IsReached(vertex int32) bool {
	return self.states[vertex].Vertex != -1
}

func (self *StreetResult) GetTravelTimeToVertex(vertex int32) int32 {
	state := self.states[vertex]
	if state.Vertex == -1 {
		return UNREACHED
	}
	return state.Duration
}

func (self *StreetResult) GetDistanceToVertex(vertex int32) int32 {
	state := self.states[vertex]
	if state.Vertex == -1 {
		return UNREACHED
	}
	return state.Distance
}

// Value of the minimized quantity at vertex.
func (self *StreetResult) GetValue(vertex int32) int32 {
	state := self.states[vertex]
	if state.Vertex == -1 {
		return UNREACHED
	}
	return self.search._Value(state.Duration, state.Distance)
}

// Reached transit stops mapped to the minimized quantity (seconds or millimeters).
func (self *StreetResult) GetReachedStops() Dict[int32, int32] {
	reached := NewDict[int32, int32](10)
	transit := self.network.Transit
	if transit == nil {
		return reached
	}
	for i := 0; i < transit.StopCount(); i++ {
		vertex := transit.MapStopToVertex(int32(i))
		if vertex == -1 || !self.IsReached(vertex) {
			continue
		}
		reached[int32(i)] = self.GetValue(vertex)
	}
	return reached
}

// Reached vertices accepted by filter in ascending order.
func (self *StreetResult) GetReachedVertices(filter func(int32) bool) List[int32] {
	vertices := NewList[int32](10)
	for i, state := range self.states {
		if state.Vertex == -1 {
			continue
		}
		if filter != nil && !filter(int32(i)) {
			continue
		}
		vertices.Add(int32(i))
	}
	return vertices
}

// Vertex sequence from the search origin to vertex, empty if unreached.
func (self *StreetResult) PathTo(vertex int32) List[int32] {
	path := NewList[int32](10)
	if !self.IsReached(vertex) {
		return path
	}
	for curr := vertex; curr != -1; curr = self.states[curr].BackVertex {
		path.Add(curr)
	}
	for i, j := 0, path.Length()-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
