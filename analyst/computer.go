package analyst

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ttpr0/go-traveltime/graph"
	"github.com/ttpr0/go-traveltime/pointset"
	"github.com/ttpr0/go-traveltime/propagation"
	"github.com/ttpr0/go-traveltime/raptor"
	"github.com/ttpr0/go-traveltime/reducer"
	"github.com/ttpr0/go-traveltime/routing"
	. "github.com/ttpr0/go-traveltime/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// transit engine
//*******************************************

// Computes elapsed seconds per iteration and stop, and optionally the journeys.
type TransitEngine interface {
	Route(transit *graph.TransitLayer, config raptor.Config, access Dict[int32, int32], retain_paths bool) ([][]int32, [][]*raptor.Path)
}

type RaptorEngine struct{}

func (self RaptorEngine) Route(transit *graph.TransitLayer, config raptor.Config, access Dict[int32, int32], retain_paths bool) ([][]int32, [][]*raptor.Path) {
	worker := raptor.NewWorker(transit, config, access)
	worker.RetainPaths = retain_paths
	times := worker.Route()
	return times, worker.PathsPerIteration
}

//*******************************************
// options
//*******************************************

type Options struct {
	LinkRadiusMeters      float64 `yaml:"link-radius-meters" validate:"gt=0"`
	MaxParkRides          int     `yaml:"max-park-rides" validate:"gte=0"`
	ParkRideSwitchSeconds int32   `yaml:"park-ride-switch-seconds" validate:"gte=0"`
	RentalPickupSeconds   int32   `yaml:"rental-pickup-seconds" validate:"gte=0"`
	RentalDropoffSeconds  int32   `yaml:"rental-dropoff-seconds" validate:"gte=0"`
	BoardSlackSeconds     int32   `yaml:"board-slack-seconds" validate:"gte=0"`
}

func DefaultOptions() Options {
	router := routing.DefaultRouterOptions()
	return Options{
		LinkRadiusMeters:      router.LinkRadiusMeters,
		MaxParkRides:          router.MaxParkRides,
		ParkRideSwitchSeconds: router.ParkRideSwitchSeconds,
		RentalPickupSeconds:   router.RentalPickupSeconds,
		RentalDropoffSeconds:  router.RentalDropoffSeconds,
		BoardSlackSeconds:     60,
	}
}

func (self Options) RouterOptions() routing.RouterOptions {
	return routing.RouterOptions{
		LinkRadiusMeters:      self.LinkRadiusMeters,
		MaxParkRides:          self.MaxParkRides,
		ParkRideSwitchSeconds: self.ParkRideSwitchSeconds,
		RentalPickupSeconds:   self.RentalPickupSeconds,
		RentalDropoffSeconds:  self.RentalDropoffSeconds,
	}
}

//*******************************************
// travel time computer
//*******************************************

var ErrNoNetwork = errors.New("no network loaded")

// Computes travel time surfaces from single origins. Safe for concurrent use, every
// Compute call owns its search state.
type TravelTimeComputer struct {
	network      *graph.Network
	linkages     *pointset.LinkageCache
	destinations pointset.DestinationProvider
	engine       TransitEngine
	options      Options
	logger       *slog.Logger
}

// Creates the computer. A nil engine uses RaptorEngine, a nil logger slog.Default().
func NewTravelTimeComputer(network *graph.Network, linkages *pointset.LinkageCache, destinations pointset.DestinationProvider, engine TransitEngine, options Options, logger *slog.Logger) *TravelTimeComputer {
	if engine == nil {
		engine = RaptorEngine{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TravelTimeComputer{
		network:      network,
		linkages:     linkages,
		destinations: destinations,
		engine:       engine,
		options:      options,
		logger:       logger,
	}
}

// state of a single computation
type computation struct {
	network  *graph.Network
	router   *routing.StreetRouter
	linkages *pointset.LinkageCache
	points   pointset.PointSet
	request  *Request
	logger   *slog.Logger
}

// Computes the travel times from the request's origin to every destination.
//
// Errors are returned for invalid requests and unresolvable destinations only. An
// origin outside the network or unreachable destinations still finish with UNREACHED.
func (self *TravelTimeComputer) Compute(request Request) (Outcome, error) {
	if self.network == nil {
		return Outcome{}, ErrNoNetwork
	}
	request.ApplyDefaults()
	if err := request.Validate(); err != nil {
		return Outcome{}, err
	}
	points, err := self.destinations.GetPointSet(request.Destinations)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to resolve destinations: %w", err)
	}
	c := &computation{
		network:  self.network,
		router:   routing.NewStreetRouter(self.network, self.options.RouterOptions()),
		linkages: self.linkages,
		points:   points,
		request:  &request,
		logger:   self.logger.With("job", uuid.NewString()),
	}

	access_mode := GetDominantStreetMode(request.AccessModes)
	red := reducer.NewTravelTimeReducer(request.Percentiles, points.FeatureCount(), request.MaxTripDurationSeconds())

	origin, ok := c.router.SetOrigin(request.Origin(), access_mode)
	if !ok {
		c.logger.Info("origin outside the street network, skipping routing and propagation")
		return Finished(red.Finish()), nil
	}

	if len(request.TransitModes) == 0 {
		return c._ComputeDirect(red)
	}

	if !request.DirectModes.Equals(request.AccessModes) {
		c.logger.Error("direct modes differ from access modes, using access modes", "direct", request.DirectModes, "access", request.AccessModes)
	}
	access, non_transit := _SelectAccessStrategy(request.AccessModes).Search(c, origin)
	if access.Length() == 0 {
		c.logger.Info("no transit stops reached, skipping transit search")
		_RecordSingleSamples(red, non_transit)
		return Finished(red.Finish()), nil
	}

	retain := request.RetainsPaths()
	stop_times, paths := self.engine.Route(self.network.Transit, self._RaptorConfig(&request), access, retain)

	egress_mode := GetDominantStreetMode(request.EgressModes)
	egress := self.linkages.Get(points, egress_mode)
	propagator := propagation.NewPropagator(egress, stop_times, non_transit, request.GetSpeedForMode(egress_mode), red)
	if retain {
		propagator.Paths = paths
	}
	return Finished(propagator.Propagate()), nil
}

func (self *computation) _ComputeDirect(red *reducer.TravelTimeReducer) (Outcome, error) {
	candidates := make([]Array[int32], 0, len(self.request.DirectModes))
	seen := NewDict[LegMode, bool](len(self.request.DirectModes))
	for _, mode := range self.request.DirectModes {
		key := mode
		if mode == CAR_PARK {
			key = CAR
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		times, reason, ok := self._DirectCandidate(key)
		if !ok {
			return Aborted(reason), nil
		}
		candidates = append(candidates, times)
	}
	_RecordSingleSamples(red, MinOfArrays(candidates))
	return Finished(red.Finish()), nil
}

func _RecordSingleSamples(red *reducer.TravelTimeReducer, times Array[int32]) {
	for target, t := range times {
		red.RecordTravelTimesForTarget(target, []int32{t})
	}
}

func (self *TravelTimeComputer) _RaptorConfig(request *Request) raptor.Config {
	return raptor.Config{
		FromTime:               int32(request.FromTime),
		ToTime:                 int32(request.ToTime),
		MaxRides:               request.MaxRides,
		MaxTripDurationSeconds: request.MaxTripDurationSeconds(),
		BoardSlackSeconds:      self.options.BoardSlackSeconds,
		WalkSpeed:              request.GetSpeedForMode(graph.WALK),
		MonteCarloDraws:        request.MonteCarloDraws,
		Seed:                   request.RandomSeed,
		RouteTypes:             request.TransitModes.RouteTypes(),
	}
}
