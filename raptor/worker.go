package raptor

import (
	"math/rand"
	"sort"

	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

type Config struct {
	// departure window in seconds after midnight
	FromTime int32
	ToTime   int32
	MaxRides int
	// 0 disables the limit
	MaxTripDurationSeconds int32
	BoardSlackSeconds      int32
	// transfer walking speed in mm/s
	WalkSpeed int32
	// 0 runs one iteration per minute of the window
	MonteCarloDraws int
	Seed            int64
	// allowed route types, nil allows all
	RouteTypes Dict[int16, bool]
}

func DefaultConfig() Config {
	return Config{
		FromTime:          7 * 3600,
		ToTime:            9 * 3600,
		MaxRides:          4,
		BoardSlackSeconds: 60,
		WalkSpeed:         1300,
	}
}

const (
	_ACCESS   byte = 1
	_RIDE     byte = 2
	_TRANSFER byte = 3
)

type label struct {
	kind       byte
	round      int
	pattern    int32
	trip       int32
	board_stop int32
	board_time int32
	from_stop  int32
}

//*******************************************
// raptor worker
//*******************************************

// Round-based transit router for a single origin.
//
// Each iteration simulates one departure instant, access times are the initial
// condition of every iteration. Not safe for concurrent use.
type Worker struct {
	transit *graph.TransitLayer
	config  Config
	access  Dict[int32, int32]

	RetainPaths bool
	// per iteration and stop the journey reaching the stop, nil if unreached
	PathsPerIteration [][]*Path

	departures []int32
}

func NewWorker(transit *graph.TransitLayer, config Config, access Dict[int32, int32]) *Worker {
	if config.WalkSpeed <= 0 {
		config.WalkSpeed = 1300
	}
	return &Worker{
		transit:    transit,
		config:     config,
		access:     access,
		departures: _DepartureTimes(config),
	}
}

func _DepartureTimes(config Config) []int32 {
	if config.ToTime <= config.FromTime {
		return []int32{config.FromTime}
	}
	if config.MonteCarloDraws > 0 {
		rng := rand.New(rand.NewSource(config.Seed))
		window := int64(config.ToTime - config.FromTime)
		times := make([]int32, config.MonteCarloDraws)
		for i := range times {
			times[i] = config.FromTime + int32(rng.Int63n(window))
		}
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		return times
	}
	times := make([]int32, 0, (config.ToTime-config.FromTime)/60+1)
	for t := config.FromTime; t < config.ToTime; t += 60 {
		times = append(times, t)
	}
	return times
}

// Departure instant of every iteration in ascending order.
func (self *Worker) DepartureTimes() []int32 {
	return self.departures
}

func (self *Worker) IterationCount() int {
	return len(self.departures)
}

// Runs all iterations and returns the elapsed seconds per iteration and stop.
func (self *Worker) Route() [][]int32 {
	times := make([][]int32, len(self.departures))
	if self.RetainPaths {
		self.PathsPerIteration = make([][]*Path, len(self.departures))
	}
	for i, dep := range self.departures {
		best, labels, rides := self._RunIteration(dep)
		elapsed := make([]int32, len(best))
		for s, t := range best {
			if t == UNREACHED {
				elapsed[s] = UNREACHED
			} else {
				elapsed[s] = t - dep
			}
		}
		times[i] = elapsed
		if self.RetainPaths {
			self.PathsPerIteration[i] = self._ExtractPaths(best, labels, rides)
		}
	}
	return times
}

func (self *Worker) _AllowsPattern(pattern *graph.Pattern) bool {
	if self.config.RouteTypes == nil {
		return true
	}
	return self.config.RouteTypes[pattern.RouteType]
}

func (self *Worker) _WithinDuration(dep, t int32) bool {
	return self.config.MaxTripDurationSeconds <= 0 || t-dep <= self.config.MaxTripDurationSeconds
}

// Returns the arrival clock time per stop and, with path retention, the labels per round.
func (self *Worker) _RunIteration(dep int32) (Array[int32], [][]label, [][]label) {
	stop_count := self.transit.StopCount()
	best := NewArray[int32](stop_count)
	best.Fill(UNREACHED)
	var labels [][]label
	var rides [][]label
	if self.RetainPaths {
		labels = make([][]label, 1, self.config.MaxRides+1)
		rides = make([][]label, 1, self.config.MaxRides+1)
		labels[0] = make([]label, stop_count)
	}

	marked := NewList[int32](self.access.Length())
	for stop, t := range self.access {
		if !self._WithinDuration(dep, dep+t) {
			continue
		}
		best[stop] = dep + t
		marked.Add(stop)
		if labels != nil {
			labels[0][stop] = label{kind: _ACCESS}
		}
	}
	// deterministic pattern order
	sort.Slice(marked, func(i, j int) bool { return marked[i] < marked[j] })

	prev := best.Copy()
	improved := NewFlags[bool](int32(stop_count), false)
	for round := 1; round <= self.config.MaxRides && marked.Length() > 0; round++ {
		var round_labels, ride_labels []label
		if labels != nil {
			round_labels = make([]label, stop_count)
			copy(round_labels, labels[round-1])
			ride_labels = make([]label, stop_count)
			labels = append(labels, round_labels)
			rides = append(rides, ride_labels)
		}

		ride_improved := self._RideStage(dep, round, prev, best, marked, &improved, ride_labels, round_labels)
		self._TransferStage(dep, round, best, ride_improved, &improved, round_labels)

		marked = append(marked[:0], improved.Touched()...)
		improved.Reset()
		sort.Slice(marked, func(i, j int) bool { return marked[i] < marked[j] })
		prev = best.Copy()
	}
	return best, labels, rides
}

func (self *Worker) _RideStage(dep int32, round int, prev, best Array[int32], marked List[int32], improved *Flags[bool], ride_labels, round_labels []label) List[int32] {
	patterns := NewDict[int32, bool](marked.Length())
	pattern_order := NewList[int32](marked.Length())
	for _, stop := range marked {
		for _, p := range self.transit.GetPatternsForStop(stop) {
			if patterns.ContainsKey(p) {
				continue
			}
			patterns[p] = true
			pattern_order.Add(p)
		}
	}
	sort.Slice(pattern_order, func(i, j int) bool { return pattern_order[i] < pattern_order[j] })

	ride_improved := NewList[int32](10)
	ride_time := NewDict[int32, int32](10)
	for _, p := range pattern_order {
		pattern := self.transit.GetPattern(p)
		if !self._AllowsPattern(pattern) {
			continue
		}
		trip := int32(-1)
		board_stop := int32(-1)
		board_time := int32(0)
		for pos, stop := range pattern.Stops {
			if trip != -1 {
				arr := pattern.Trips[trip].Arrivals[pos]
				if arr < best[stop] && self._WithinDuration(dep, arr) {
					best[stop] = arr
					*improved.Get(stop) = true
					if _, ok := ride_time[stop]; !ok {
						ride_improved.Add(stop)
					}
					ride_time[stop] = arr
					if ride_labels != nil {
						l := label{kind: _RIDE, round: round, pattern: p, trip: trip, board_stop: board_stop, board_time: board_time}
						ride_labels[stop] = l
						round_labels[stop] = l
					}
				}
			}
			if prev[stop] == UNREACHED {
				continue
			}
			earliest := prev[stop] + self.config.BoardSlackSeconds
			candidate := int32(-1)
			for t := range pattern.Trips {
				d := pattern.Trips[t].Departures[pos]
				if d < earliest {
					continue
				}
				if candidate == -1 || d < pattern.Trips[candidate].Departures[pos] {
					candidate = int32(t)
				}
			}
			if candidate == -1 {
				continue
			}
			if trip == -1 || pattern.Trips[candidate].Departures[pos] < pattern.Trips[trip].Departures[pos] {
				trip = candidate
				board_stop = stop
				board_time = pattern.Trips[candidate].Departures[pos]
			}
		}
	}
	return ride_improved
}

func (self *Worker) _TransferStage(dep int32, round int, best Array[int32], ride_improved List[int32], improved *Flags[bool], round_labels []label) {
	arrivals := NewArray[int32](ride_improved.Length())
	for i, stop := range ride_improved {
		arrivals[i] = best[stop]
	}
	for i, from := range ride_improved {
		for _, tr := range self.transit.GetTransfers(from) {
			t := arrivals[i] + tr.Distance/self.config.WalkSpeed
			if t >= best[tr.ToStop] || !self._WithinDuration(dep, t) {
				continue
			}
			best[tr.ToStop] = t
			*improved.Get(tr.ToStop) = true
			if round_labels != nil {
				round_labels[tr.ToStop] = label{kind: _TRANSFER, round: round, from_stop: from}
			}
		}
	}
}

func (self *Worker) _ExtractPaths(best Array[int32], labels [][]label, rides [][]label) []*Path {
	paths := make([]*Path, len(best))
	last := len(labels) - 1
	for stop := range best {
		if best[stop] == UNREACHED {
			continue
		}
		paths[stop] = self._ExtractPath(int32(stop), labels[last][stop], labels, rides)
	}
	return paths
}

func (self *Worker) _ExtractPath(stop int32, l label, labels [][]label, rides [][]label) *Path {
	legs := make([]Leg, 0, 4)
	curr := stop
	for l.kind != _ACCESS {
		if l.kind == _TRANSFER {
			curr = l.from_stop
			l = rides[l.round][curr]
		}
		pattern := self.transit.GetPattern(l.pattern)
		trip := pattern.Trips[l.trip]
		legs = append(legs, Leg{
			Pattern:    l.pattern,
			TripID:     trip.TripID,
			BoardStop:  l.board_stop,
			AlightStop: curr,
			BoardTime:  l.board_time,
			AlightTime: trip.Arrivals[_StopPosition(pattern, l.board_stop, curr)],
		})
		curr = l.board_stop
		l = labels[l.round-1][curr]
	}
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return &Path{AccessStop: curr, Legs: legs}
}

// Position of alight in the pattern after the boarding position.
func _StopPosition(pattern *graph.Pattern, board, alight int32) int {
	boarded := false
	for pos, stop := range pattern.Stops {
		if boarded && stop == alight {
			return pos
		}
		if stop == board {
			boarded = true
		}
	}
	return len(pattern.Stops) - 1
}
