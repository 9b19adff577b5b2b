package main

import (
	"errors"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/ttpr0/go-traveltime/analyst"
)

//**********************************************************
// travel time handlers
//**********************************************************

func RegisterRoutes(app *mux.Router, manager *NetworkManager) {
	MapPost(app, "/v1/travel-time-surface", HandleTravelTimeSurfaceRequest(manager))
	MapGet(app, "/v1/health", HandleHealthRequest(manager))
}

func HandleTravelTimeSurfaceRequest(manager *NetworkManager) func(analyst.Request) Result {
	return func(req analyst.Request) Result {
		outcome, err := manager.GetComputer().Compute(req)
		if errors.Is(err, analyst.ErrNoNetwork) {
			return InternalError(err.Error())
		}
		if err != nil {
			return BadRequest(err.Error())
		}
		return OK(NewTravelTimeSurfaceResponse(outcome))
	}
}

func HandleHealthRequest(manager *NetworkManager) func(url.Values) Result {
	return func(url.Values) Result {
		network := manager.GetNetwork()
		resp := HealthResponse{
			Status:  "ok",
			Transit: network.HasTransit(),
		}
		if network.HasTransit() {
			resp.Stops = network.Transit.StopCount()
		}
		return OK(resp)
	}
}
