package raptor

import (
	"strconv"
	"strings"
)

// One transit ride of a journey, times in seconds after midnight.
type Leg struct {
	Pattern    int32
	TripID     string
	BoardStop  int32
	AlightStop int32
	BoardTime  int32
	AlightTime int32
}

// Journey to a stop: access to AccessStop followed by the transit legs.
type Path struct {
	AccessStop int32
	Legs       []Leg
}

func (self *Path) Rides() int {
	return len(self.Legs)
}

// Identifies the stop and trip sequence, independent of the departure instant.
func (self *Path) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(self.AccessStop)))
	for _, leg := range self.Legs {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(int(leg.BoardStop)))
		b.WriteByte(':')
		b.WriteString(leg.TripID)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(leg.AlightStop)))
	}
	return b.String()
}

// Last stop of the journey.
func (self *Path) EgressStop() int32 {
	if len(self.Legs) == 0 {
		return self.AccessStop
	}
	return self.Legs[len(self.Legs)-1].AlightStop
}
