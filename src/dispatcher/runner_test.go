package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"elevsim/src/config"
	"elevsim/src/logger"
	"elevsim/src/types"
)

type channelObserver struct {
	events chan types.Event
}

func (o *channelObserver) Notify(ev types.Event) {
	select {
	case o.events <- ev:
	default:
	}
}

func (o *channelObserver) ReadyForNextTick() bool {
	return true
}

func fastConfig() config.Config {
	return config.Config{
		TickInterval:    5 * time.Millisecond,
		MoveStartDelay:  5 * time.Millisecond,
		ExitWindow:      10 * time.Millisecond,
		EntryWindow:     5 * time.Millisecond,
		IdleTimeout:     200 * time.Millisecond,
		AckPollInterval: time.Millisecond,
	}
}

func startRunner(t *testing.T, observers ...Observer) (*Runner, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(fastConfig(), constRand(0), logger.Discard(), observers...)
	go r.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-r.Done()
	})
	return r, cancel
}

func TestRunnerServesCallAndEnds(t *testing.T) {
	obs := &channelObserver{events: make(chan types.Event, 256)}
	r, _ := startRunner(t, obs)

	if err := r.StartSimulation(); err != nil {
		t.Fatalf("StartSimulation: %v", err)
	}
	if err := r.CallElevator(2); err != nil {
		t.Fatalf("CallElevator: %v", err)
	}

	var floors []int
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-obs.events:
			if ev.Type == types.PositionChanged {
				floors = append(floors, ev.Floor)
			}
			if ev.Type != types.SimulationEnded {
				continue
			}
			if len(floors) != 2 || floors[1] != 2 {
				t.Errorf("Expected car to pass floors [1 2], got %v", floors)
			}
			state, err := r.State()
			if err != nil {
				t.Fatalf("State: %v", err)
			}
			if state.Running || state.Phase != types.Ended {
				t.Errorf("Expected ended simulation, got %+v", state)
			}
			return
		case <-deadline:
			t.Fatalf("Simulation did not end, floors passed: %v", floors)
		}
	}
}

func TestRunnerRejectsInvalidFloor(t *testing.T) {
	r, _ := startRunner(t)
	if err := r.StartSimulation(); err != nil {
		t.Fatalf("StartSimulation: %v", err)
	}

	if err := r.CallElevator(config.NumFloors); !errors.Is(err, ErrInvalidFloor) {
		t.Errorf("Expected ErrInvalidFloor, got %v", err)
	}
	if err := r.SelectDestination(-1); !errors.Is(err, ErrInvalidFloor) {
		t.Errorf("Expected ErrInvalidFloor, got %v", err)
	}
	state, err := r.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if !state.Running || len(state.Calls) != 0 || len(state.Destinations) != 0 {
		t.Errorf("Expected running simulation without requests, got %+v", state)
	}
}

func TestRunnerStopAndRestart(t *testing.T) {
	r, _ := startRunner(t)
	if err := r.StartSimulation(); err != nil {
		t.Fatalf("StartSimulation: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	state, _ := r.State()
	if state.Running {
		t.Fatal("Expected simulation to be stopped")
	}

	if err := r.StartSimulation(); err != nil {
		t.Fatalf("StartSimulation: %v", err)
	}
	state, _ = r.State()
	if !state.Running || state.Floor != 0 {
		t.Errorf("Expected restarted simulation at ground floor, got %+v", state)
	}
}

func TestRunnerReturnsErrStoppedAfterCancel(t *testing.T) {
	r, cancel := startRunner(t)
	if err := r.StartSimulation(); err != nil {
		t.Fatalf("StartSimulation: %v", err)
	}
	cancel()

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("Runner did not stop after cancel")
	}
	if err := r.ExitPassenger(); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped, got %v", err)
	}
	if _, err := r.State(); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped from State, got %v", err)
	}
}
