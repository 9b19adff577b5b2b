package pointset

import (
	"sync"

	"github.com/ttpr0/go-traveltime/graph"
)

//*******************************************
// linkage cache
//*******************************************

type LinkageBuilder func(points PointSet, mode graph.StreetMode) *LinkedPointSet

type linkageKey struct {
	points string
	mode   graph.StreetMode
}

type linkageEntry struct {
	once    sync.Once
	linkage *LinkedPointSet
}

// Append-only cache of linkages keyed by point set and mode.
//
// Every key is built at most once. Concurrent first requests for a key wait for the
// single build, requests for other keys are not blocked.
type LinkageCache struct {
	build   LinkageBuilder
	entries sync.Map
}

func NewLinkageCache(build LinkageBuilder) *LinkageCache {
	return &LinkageCache{
		build: build,
	}
}

// Cache building linkages over network with the per-mode default options.
func NewNetworkLinkageCache(network *graph.Network, options func(graph.StreetMode) LinkOptions) *LinkageCache {
	if options == nil {
		options = DefaultLinkOptions
	}
	return NewLinkageCache(func(points PointSet, mode graph.StreetMode) *LinkedPointSet {
		return Link(network, points, mode, options(mode))
	})
}

func (self *LinkageCache) Get(points PointSet, mode graph.StreetMode) *LinkedPointSet {
	key := linkageKey{points: points.Key(), mode: mode}
	value, ok := self.entries.Load(key)
	if !ok {
		value, _ = self.entries.LoadOrStore(key, &linkageEntry{})
	}
	entry := value.(*linkageEntry)
	entry.once.Do(func() {
		entry.linkage = self.build(points, mode)
	})
	return entry.linkage
}

func (self *LinkageCache) Contains(points PointSet, mode graph.StreetMode) bool {
	_, ok := self.entries.Load(linkageKey{points: points.Key(), mode: mode})
	return ok
}
