package timer

import (
	"log/slog"
	"time"
)

// Kind identifies one of the timers owned by the scheduler.
type Kind int

const (
	Move Kind = iota
	Arrival
	DoorExit
	DoorEntry
	IdleTimeout
	numKinds
)

func (k Kind) String() string {
	return [...]string{"move", "arrival", "door-exit", "door-entry", "idle-timeout"}[k]
}

// Timeout is posted when a timer expires. Gen tells a live expiry from one that was stopped or restarted meanwhile.
type Timeout struct {
	Kind Kind
	Gen  uint64
}

// Set owns one one-shot timer per Kind.
//   - Start arms (or re-arms) a timer, invalidating any expiry already in flight
//   - Expiries are delivered on C() and must be confirmed with Expired before acting
//
// Set is not safe for concurrent use; only the goroutine reading C() should call it.
type Set struct {
	timers    [numKinds]*time.Timer
	gens      [numKinds]uint64
	active    [numKinds]bool
	timeoutCh chan Timeout
	done      <-chan struct{}
}

// NewSet creates a timer set. Pending deliveries are dropped once done is closed.
func NewSet(done <-chan struct{}) *Set {
	return &Set{
		timeoutCh: make(chan Timeout, numKinds),
		done:      done,
	}
}

func (s *Set) C() <-chan Timeout {
	return s.timeoutCh
}

// Start stops the timer of this kind if running and arms it again with duration d.
func (s *Set) Start(kind Kind, d time.Duration) {
	s.Stop(kind)
	s.gens[kind]++
	s.active[kind] = true
	timeout := Timeout{Kind: kind, Gen: s.gens[kind]}
	s.timers[kind] = time.AfterFunc(d, func() {
		select {
		case s.timeoutCh <- timeout:
		case <-s.done:
		}
	})
	slog.Debug("Timer started", "kind", kind, "duration", d)
}

func (s *Set) Stop(kind Kind) {
	if s.timers[kind] != nil {
		s.timers[kind].Stop()
	}
	s.active[kind] = false
}

func (s *Set) StopAll() {
	for kind := range numKinds {
		s.Stop(kind)
	}
}

// Expired reports whether t is the latest expiry of a timer that is still armed, and disarms it.
func (s *Set) Expired(t Timeout) bool {
	if !s.active[t.Kind] || s.gens[t.Kind] != t.Gen {
		slog.Debug("Ignoring stale timeout", "kind", t.Kind, "gen", t.Gen)
		return false
	}
	s.active[t.Kind] = false
	return true
}

func (s *Set) Active(kind Kind) bool {
	return s.active[kind]
}
