package analyst

import (
	"github.com/ttpr0/go-traveltime/reducer"
)

type AbortReason byte

const (
	NO_BIKE_RENTAL_STATIONS   AbortReason = 1
	BIKE_RENTAL_SEARCH_FAILED AbortReason = 2
)

func (self AbortReason) String() string {
	switch self {
	case NO_BIKE_RENTAL_STATIONS:
		return "no bike rental stations in the network"
	case BIKE_RENTAL_SEARCH_FAILED:
		return "no bike rental station pair reachable from the origin"
	default:
		return "unknown"
	}
}

// Either a finished result or the reason the computation was aborted. An aborted
// computation carries no result.
type Outcome struct {
	result *reducer.OneOriginResult
	reason AbortReason
}

func Finished(result *reducer.OneOriginResult) Outcome {
	return Outcome{result: result}
}

func Aborted(reason AbortReason) Outcome {
	return Outcome{reason: reason}
}

func (self Outcome) IsFinished() bool {
	return self.result != nil
}

func (self Outcome) Result() (*reducer.OneOriginResult, bool) {
	return self.result, self.result != nil
}

func (self Outcome) Reason() (AbortReason, bool) {
	return self.reason, self.result == nil
}
