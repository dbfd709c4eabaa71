package types

import (
	"time"

	"elevsim/src/config"
)

type EventType int

const (
	SimulationStarted EventType = iota
	PositionChanged
	DoorPhaseChanged
	DirectionChanged
	PassengersChanged
	RequestsChanged
	SimulationEnded
)

func (t EventType) String() string {
	return [...]string{
		"simulation-started",
		"position-changed",
		"door-phase-changed",
		"direction-changed",
		"passengers-changed",
		"requests-changed",
		"simulation-ended",
	}[t]
}

// Event is a state-change notification. State is a detached copy taken after the change.
type Event struct {
	Type      EventType
	Floor     int
	State     State
	Timestamp time.Time
}

// State is everything presentation may read about a run.
type State struct {
	Running      bool
	Floor        int
	Dir          MotorDirection
	Phase        Phase
	Moving       bool
	Passengers   []Passenger
	Destinations []int
	Calls        []int
	Waiting      [config.NumFloors]int
}
