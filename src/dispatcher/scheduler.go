// Contains the dispatch state machine for a single elevator car.
package dispatcher

import (
	"fmt"
	"log/slog"
	"time"

	"elevsim/src/building"
	"elevsim/src/car"
	"elevsim/src/config"
	"elevsim/src/timer"
	"elevsim/src/types"
	"elevsim/src/utils"
)

// Timers is the part of timer.Set the scheduler drives.
type Timers interface {
	Start(kind timer.Kind, d time.Duration)
	StopAll()
}

// Observer is implemented by presentation. Notify and ReadyForNextTick are called from the
// goroutine running the scheduler, so they must not call back into it synchronously.
type Observer interface {
	Notify(ev types.Event)
	// ReadyForNextTick reports whether the last floor transition has been displayed.
	ReadyForNextTick() bool
}

// Scheduler owns the building, the car and every timer of a run. It is not safe for
// concurrent use; Runner serializes access to it.
type Scheduler struct {
	cfg       config.Config
	building  *building.Building
	car       *car.Car
	timers    Timers
	observers []Observer
	phase     types.Phase
	running   bool
	log       *slog.Logger
}

func NewScheduler(cfg config.Config, b *building.Building, c *car.Car, timers Timers, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		building: b,
		car:      c,
		timers:   timers,
		phase:    types.Idle,
		log:      log,
	}
}

func (s *Scheduler) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// StartSimulation resets the car to the ground floor, populates the floors and evaluates dispatch.
func (s *Scheduler) StartSimulation() {
	s.timers.StopAll()
	s.car.Reset()
	s.building.Reset()
	s.running = true
	s.phase = types.Idle
	s.log.Info("Simulation started", "waiting", s.building.Waiting())
	s.notify(types.SimulationStarted)
	s.dispatch()
}

// CallElevator registers a hall call and starts the car if it is idle.
func (s *Scheduler) CallElevator(floor int) {
	mustBeFloor(floor)
	if !s.running {
		s.log.Debug("Ignoring call, simulation not running", "floor", floor)
		return
	}
	s.building.AddCall(floor)
	s.log.Info("Hall call", "floor", floor)
	s.notify(types.RequestsChanged)
	s.dispatch()
}

// SelectDestination registers an in-car request and starts the car if it is idle.
func (s *Scheduler) SelectDestination(floor int) {
	mustBeFloor(floor)
	if !s.running {
		s.log.Debug("Ignoring destination, simulation not running", "floor", floor)
		return
	}
	s.car.AddDestination(floor)
	s.log.Info("Destination selected", "floor", floor)
	s.notify(types.RequestsChanged)
	s.dispatch()
}

// ExitPassenger lets one passenger out. Only allowed while the exit window is open.
func (s *Scheduler) ExitPassenger() {
	if !s.running || s.phase != types.DoorExit {
		s.log.Debug("Ignoring exit outside exit window", "phase", s.phase)
		return
	}
	if !s.car.Alight() {
		s.log.Debug("Ignoring exit, car is empty")
		return
	}
	s.log.Info("Passenger left", "floor", s.car.Floor(), "passengers", s.car.PassengerCount())
	s.notify(types.PassengersChanged)
}

// Stop ends the simulation immediately.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.log.Info("Simulation stopped")
	s.end()
}

// HandleTimeout is called when one of the scheduler's timers expires.
func (s *Scheduler) HandleTimeout(kind timer.Kind) {
	switch kind {
	case timer.Move:
		s.handleMoveTick()
	case timer.Arrival:
		s.handleArrival()
	case timer.DoorExit:
		s.handleExitWindowClosed()
	case timer.DoorEntry:
		s.handleEntryWindowClosed()
	case timer.IdleTimeout:
		s.handleIdleTimeout()
	}
}

// dispatch selects the next target when the car is not already busy.
//   - A hall call on the car's own floor opens the doors right away
//   - Otherwise the car starts towards the chosen target
//   - With nothing to do, the car idles and the idle timeout starts once the run is empty
func (s *Scheduler) dispatch() {
	if !s.running || (s.phase != types.Idle && s.phase != types.IdleTimeoutPending) {
		return
	}
	floor := s.car.Floor()

	if s.building.HasCall(floor) {
		s.log.Debug("Call at current floor, opening doors", "floor", floor)
		s.stopAt(floor)
		return
	}

	target, pair := ChooseDirection(floor, s.car.Direction(), s.targets())
	if pair.Phase == types.Moving {
		s.log.Info("Moving to target", "from", floor, "target", target, "direction", pair.Dir)
		s.setDirection(pair.Dir)
		s.car.SetMoving(true)
		s.enterPhase(types.Moving)
		s.timers.Start(timer.Move, s.cfg.MoveStartDelay)
		return
	}

	s.setDirection(types.MD_Stop)
	if !s.runIsEmpty() {
		s.enterPhase(types.Idle)
		return
	}
	// Keep an idle countdown that is already running.
	if s.phase == types.IdleTimeoutPending {
		return
	}
	s.enterPhase(types.IdleTimeoutPending)
	s.timers.Start(timer.IdleTimeout, s.cfg.IdleTimeout)
	s.log.Debug("No pending work, idle timeout started", "timeout", s.cfg.IdleTimeout)
}

func (s *Scheduler) handleMoveTick() {
	if s.phase != types.Moving {
		return
	}
	if !s.presentationReady() {
		s.timers.Start(timer.Move, s.cfg.AckPollInterval)
		return
	}

	s.car.AdvanceOneFloor()
	floor := s.car.Floor()
	s.log.Debug("Passing floor", "floor", floor, "direction", s.car.Direction())
	s.notify(types.PositionChanged)

	if !s.targets()[floor] {
		s.timers.Start(timer.Move, s.cfg.TickInterval)
		return
	}
	if s.presentationReady() {
		s.stopAt(floor)
		return
	}
	s.timers.Start(timer.Arrival, s.cfg.AckPollInterval)
}

// handleArrival waits for presentation to finish showing the last floor before the doors open.
func (s *Scheduler) handleArrival() {
	if s.phase != types.Moving {
		return
	}
	if !s.presentationReady() {
		s.timers.Start(timer.Arrival, s.cfg.AckPollInterval)
		return
	}
	s.stopAt(s.car.Floor())
}

// stopAt halts the car, clears the floor's call and destination and opens the exit window.
func (s *Scheduler) stopAt(floor int) {
	s.car.SetMoving(false)
	s.building.RemoveCall(floor)
	s.car.RemoveDestination(floor)
	s.log.Info("Stopped at floor", "floor", floor, "passengers", s.car.PassengerCount())
	s.notify(types.RequestsChanged)

	s.enterPhase(types.DoorExit)
	s.timers.Start(timer.DoorExit, s.cfg.ExitWindow)
}

func (s *Scheduler) handleExitWindowClosed() {
	if s.phase != types.DoorExit {
		return
	}
	s.enterPhase(types.DoorEntry)
	s.timers.Start(timer.DoorEntry, s.cfg.EntryWindow)
}

func (s *Scheduler) handleEntryWindowClosed() {
	if s.phase != types.DoorEntry {
		return
	}
	s.boardWaitingPassengers()
	s.enterPhase(types.Idle)
	s.dispatch()
}

// boardWaitingPassengers moves as many waiting passengers as fit from the current floor into the car.
func (s *Scheduler) boardWaitingPassengers() {
	floor := s.car.Floor()
	entering := min(s.building.WaitingPassengers(floor), s.car.AvailableSpace())
	for range entering {
		s.car.Board(floor)
	}
	s.building.RemovePassengers(floor, entering)
	s.log.Info("Passengers boarded", "floor", floor, "entered", entering, "passengers", s.car.PassengerCount())
	if entering > 0 {
		s.notify(types.PassengersChanged)
	}
}

// handleIdleTimeout only ends the run if it is still empty; requests may have arrived during the wait.
func (s *Scheduler) handleIdleTimeout() {
	if s.phase != types.IdleTimeoutPending {
		return
	}
	if s.runIsEmpty() {
		s.log.Info("Idle timeout elapsed with no pending work")
		s.end()
		return
	}
	s.log.Debug("Idle timeout elapsed but work arrived, resuming dispatch")
	s.enterPhase(types.Idle)
	s.dispatch()
}

func (s *Scheduler) end() {
	s.timers.StopAll()
	s.running = false
	s.phase = types.Ended
	s.car.Reset()
	s.building.Clear()
	s.log.Info("Simulation ended")
	s.notify(types.SimulationEnded)
}

// enterPhase cancels every timer of the previous phase before switching.
func (s *Scheduler) enterPhase(phase types.Phase) {
	s.timers.StopAll()
	if phase == s.phase {
		return
	}
	s.log.Debug("Phase change", "from", s.phase, "to", phase, "floor", s.car.Floor())
	s.phase = phase
	s.notify(types.DoorPhaseChanged)
}

func (s *Scheduler) setDirection(dir types.MotorDirection) {
	if dir == s.car.Direction() {
		return
	}
	s.car.SetDirection(dir)
	s.notify(types.DirectionChanged)
}

func (s *Scheduler) targets() utils.FloorSet {
	return utils.Union(s.car.DestinationSet(), s.building.CallSet())
}

func (s *Scheduler) runIsEmpty() bool {
	return !s.building.HasCalls() && !s.car.HasDestinations() && s.car.IsEmpty()
}

func (s *Scheduler) presentationReady() bool {
	for _, o := range s.observers {
		if !o.ReadyForNextTick() {
			return false
		}
	}
	return true
}

func (s *Scheduler) notify(eventType types.EventType) {
	if len(s.observers) == 0 {
		return
	}
	ev := types.Event{
		Type:      eventType,
		Floor:     s.car.Floor(),
		State:     s.Snapshot(),
		Timestamp: time.Now(),
	}
	for _, o := range s.observers {
		o.Notify(ev)
	}
}

func mustBeFloor(floor int) {
	if !config.ValidFloor(floor) {
		panic(fmt.Sprintf("dispatcher: floor %d out of range [0,%d)", floor, config.NumFloors))
	}
}
