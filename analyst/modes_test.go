package analyst_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-traveltime/analyst"
	"github.com/ttpr0/go-traveltime/graph"
	. "github.com/ttpr0/go-traveltime/util"
)

func TestDominantStreetMode(t *testing.T) {
	cases := []struct {
		modes analyst.LegModeSet
		want  graph.StreetMode
	}{
		{analyst.LegModeSet{analyst.WALK}, graph.WALK},
		{analyst.LegModeSet{analyst.WALK, analyst.BICYCLE}, graph.BICYCLE},
		{analyst.LegModeSet{analyst.BICYCLE, analyst.CAR}, graph.CAR},
		{analyst.LegModeSet{analyst.CAR_PARK}, graph.CAR},
		{analyst.LegModeSet{analyst.BICYCLE_RENT}, graph.WALK},
		{analyst.LegModeSet{}, graph.WALK},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, analyst.GetDominantStreetMode(c.modes), "%v", c.modes)
	}
}

func TestLegModeSetEquals(t *testing.T) {
	a := analyst.LegModeSet{analyst.WALK, analyst.BICYCLE}
	assert.True(t, a.Equals(analyst.LegModeSet{analyst.BICYCLE, analyst.WALK}))
	assert.False(t, a.Equals(analyst.LegModeSet{analyst.WALK}))
	assert.False(t, a.Equals(analyst.LegModeSet{analyst.WALK, analyst.CAR}))
}

func TestTransitRouteTypes(t *testing.T) {
	assert.Nil(t, analyst.TransitModeSet{analyst.BUS, analyst.TRANSIT}.RouteTypes())
	assert.Equal(t, Dict[int16, bool]{0: true, 3: true, 11: true}, analyst.TransitModeSet{analyst.TRAM, analyst.BUS}.RouteTypes())
}

func TestDecodeRequest(t *testing.T) {
	data := `{
		"fromLat": 52.1, "fromLon": 13.2,
		"accessModes": ["BICYCLE"], "directModes": ["WALK", "BICYCLE_RENT"],
		"transitModes": ["BUS", "RAIL"],
		"fromTime": 25200, "toTime": 28800,
		"percentiles": [5, 50, 95],
		"destinations": {"zoom": 9, "west": 10, "north": 20, "width": 30, "height": 40}
	}`
	var req analyst.Request
	require.NoError(t, json.Unmarshal([]byte(data), &req))
	req.ApplyDefaults()
	require.NoError(t, req.Validate())

	assert.Equal(t, analyst.LegModeSet{analyst.BICYCLE}, req.AccessModes)
	assert.Equal(t, analyst.LegModeSet{analyst.WALK}, req.EgressModes)
	assert.Equal(t, analyst.TransitModeSet{analyst.BUS, analyst.RAIL}, req.TransitModes)
	assert.Equal(t, int32(1300), req.GetSpeedForMode(graph.WALK))
	assert.Equal(t, int32(4000), req.GetSpeedForMode(graph.BICYCLE))
	assert.Equal(t, int32(1200), req.GetMaxAccessTimeForMode(graph.BICYCLE))
	assert.Equal(t, 30, req.Destinations.Width)

	var bad analyst.Request
	assert.Error(t, json.Unmarshal([]byte(`{"accessModes": ["HOVERCRAFT"]}`), &bad))

	req.ToTime = 100
	assert.Error(t, req.Validate())
}

func TestApplyDefaultsDepartureWindow(t *testing.T) {
	req := analyst.Request{FromLat: 52.1, FromLon: 13.2}
	req.ApplyDefaults()
	require.NoError(t, req.Validate())
	assert.Equal(t, 7*3600, req.FromTime)
	assert.Equal(t, 9*3600, req.ToTime)

	// an explicit window is kept, even one starting at midnight
	req = analyst.Request{FromLat: 52.1, FromLon: 13.2, ToTime: 1800}
	req.ApplyDefaults()
	assert.Equal(t, 0, req.FromTime)
	assert.Equal(t, 1800, req.ToTime)
}
