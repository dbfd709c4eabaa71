package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"elevsim/src/building"
	"elevsim/src/car"
	"elevsim/src/config"
	"elevsim/src/timer"
	"elevsim/src/types"
)

var (
	ErrInvalidFloor = errors.New("floor out of range")
	ErrStopped      = errors.New("runner stopped")
)

// SchedulerCmd is an operation executed on the runner goroutine.
type SchedulerCmd struct {
	Exec func(s *Scheduler)
	done chan struct{}
}

// Runner owns a Scheduler and serializes commands and timer expiries through one goroutine.
type Runner struct {
	sched  *Scheduler
	timers *timer.Set
	cmds   chan SchedulerCmd
	done   chan struct{}
}

// NewRunner builds a fresh building and car. Observers are notified from the runner goroutine.
func NewRunner(cfg config.Config, rng building.Rand, log *slog.Logger, observers ...Observer) *Runner {
	done := make(chan struct{})
	timers := timer.NewSet(done)
	sched := NewScheduler(cfg, building.New(rng), car.New(), timers, log)
	for _, o := range observers {
		sched.AddObserver(o)
	}
	return &Runner{
		sched:  sched,
		timers: timers,
		cmds:   make(chan SchedulerCmd),
		done:   done,
	}
}

// Run processes commands and timer expiries until ctx is cancelled. Cancelling stops the simulation.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)
	defer r.timers.StopAll()
	for {
		select {
		case <-ctx.Done():
			r.sched.Stop()
			return
		case cmd := <-r.cmds:
			cmd.Exec(r.sched)
			close(cmd.done)
		case timeout := <-r.timers.C():
			if r.timers.Expired(timeout) {
				r.sched.HandleTimeout(timeout.Kind)
			}
		}
	}
}

// Done is closed when Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Execute runs exec on the runner goroutine and waits for it to finish.
func (r *Runner) Execute(exec func(s *Scheduler)) error {
	cmd := SchedulerCmd{Exec: exec, done: make(chan struct{})}
	select {
	case r.cmds <- cmd:
	case <-r.done:
		return ErrStopped
	}
	<-cmd.done
	return nil
}

func (r *Runner) StartSimulation() error {
	return r.Execute(func(s *Scheduler) {
		s.StartSimulation()
	})
}

func (r *Runner) CallElevator(floor int) error {
	if !config.ValidFloor(floor) {
		return fmt.Errorf("call elevator: %w: %d", ErrInvalidFloor, floor)
	}
	return r.Execute(func(s *Scheduler) {
		s.CallElevator(floor)
	})
}

func (r *Runner) SelectDestination(floor int) error {
	if !config.ValidFloor(floor) {
		return fmt.Errorf("select destination: %w: %d", ErrInvalidFloor, floor)
	}
	return r.Execute(func(s *Scheduler) {
		s.SelectDestination(floor)
	})
}

func (r *Runner) ExitPassenger() error {
	return r.Execute(func(s *Scheduler) {
		s.ExitPassenger()
	})
}

// Stop ends the running simulation. The runner keeps accepting commands, so it can be started again.
func (r *Runner) Stop() error {
	return r.Execute(func(s *Scheduler) {
		s.Stop()
	})
}

// State returns a snapshot of the simulation.
func (r *Runner) State() (types.State, error) {
	var state types.State
	err := r.Execute(func(s *Scheduler) {
		state = s.Snapshot()
	})
	return state, err
}
