package dispatcher

import (
	"elevsim/src/types"

	"github.com/tiendc/go-deepcopy"
)

func (s *Scheduler) CurrentFloor() int {
	return s.car.Floor()
}

func (s *Scheduler) Direction() types.MotorDirection {
	return s.car.Direction()
}

func (s *Scheduler) DoorPhase() types.Phase {
	return s.phase
}

func (s *Scheduler) IsMoving() bool {
	return s.car.IsMoving()
}

func (s *Scheduler) IsSimulationRunning() bool {
	return s.running
}

func (s *Scheduler) WaitingPassengers(floor int) int {
	mustBeFloor(floor)
	return s.building.WaitingPassengers(floor)
}

func (s *Scheduler) ActiveCalls() []int {
	return s.building.Calls()
}

func (s *Scheduler) Destinations() []int {
	return s.car.Destinations()
}

func (s *Scheduler) PassengerCount() int {
	return s.car.PassengerCount()
}

// CanCall reports whether a hall call makes sense for floor: someone is waiting there.
func (s *Scheduler) CanCall(floor int) bool {
	mustBeFloor(floor)
	return s.running && s.building.HasWaitingPassengers(floor)
}

// CanSelectDestination reports whether floor is a useful in-car request right now.
func (s *Scheduler) CanSelectDestination(floor int) bool {
	mustBeFloor(floor)
	return s.running &&
		!s.car.IsEmpty() &&
		floor != s.car.Floor() &&
		!s.car.HasDestination(floor)
}

// DirectionIndicator is the arrow shown next to a floor: the car's travel direction, or
// towards the floor when the car has no direction.
func (s *Scheduler) DirectionIndicator(floor int) types.MotorDirection {
	mustBeFloor(floor)
	if dir := s.car.Direction(); dir != types.MD_Stop {
		return dir
	}
	switch {
	case floor > s.car.Floor():
		return types.MD_Up
	case floor < s.car.Floor():
		return types.MD_Down
	default:
		return types.MD_Stop
	}
}

// Snapshot returns a copy of the observable state that shares no memory with the scheduler.
func (s *Scheduler) Snapshot() types.State {
	state := types.State{
		Running:      s.running,
		Floor:        s.car.Floor(),
		Dir:          s.car.Direction(),
		Phase:        s.phase,
		Moving:       s.car.IsMoving(),
		Passengers:   s.car.Passengers(),
		Destinations: s.car.Destinations(),
		Calls:        s.building.Calls(),
		Waiting:      s.building.Waiting(),
	}
	snapshot := new(types.State)
	if err := deepcopy.Copy(snapshot, &state); err != nil {
		panic(err)
	}
	return *snapshot
}
