// Package building keeps track of hall calls and passengers waiting on each floor.
package building

import (
	"fmt"

	"elevsim/src/config"
	"elevsim/src/utils"
)

// Rand is the random source used to populate floors. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type Building struct {
	waiting [config.NumFloors]int
	calls   utils.FloorSet
	rng     Rand
}

func New(rng Rand) *Building {
	return &Building{rng: rng}
}

// AddCall registers a hall call. Calling an already called floor is a no-op.
func (b *Building) AddCall(floor int) {
	mustBeFloor(floor)
	b.calls[floor] = true
}

func (b *Building) RemoveCall(floor int) {
	mustBeFloor(floor)
	b.calls[floor] = false
}

func (b *Building) HasCall(floor int) bool {
	mustBeFloor(floor)
	return b.calls[floor]
}

func (b *Building) HasCalls() bool {
	return utils.Any(b.calls)
}

func (b *Building) Calls() []int {
	return utils.Floors(b.calls)
}

func (b *Building) CallSet() utils.FloorSet {
	return b.calls
}

// GenerateWaitingPassengers fills every floor above ground with 0..MaxWaitingPerFloor passengers.
// The ground floor always starts empty.
func (b *Building) GenerateWaitingPassengers() {
	b.waiting[0] = 0
	for floor := 1; floor < config.NumFloors; floor++ {
		b.waiting[floor] = b.rng.IntN(config.MaxWaitingPerFloor + 1)
	}
}

func (b *Building) WaitingPassengers(floor int) int {
	mustBeFloor(floor)
	return b.waiting[floor]
}

func (b *Building) HasWaitingPassengers(floor int) bool {
	return b.WaitingPassengers(floor) > 0
}

func (b *Building) Waiting() [config.NumFloors]int {
	return b.waiting
}

// RemovePassengers takes n passengers off a floor, never going below zero.
func (b *Building) RemovePassengers(floor, n int) {
	mustBeFloor(floor)
	b.waiting[floor] = max(0, b.waiting[floor]-n)
}

// Reset clears calls and draws a fresh set of waiting passengers.
func (b *Building) Reset() {
	b.calls = utils.FloorSet{}
	b.GenerateWaitingPassengers()
}

// Clear empties the building at the end of a run.
func (b *Building) Clear() {
	b.calls = utils.FloorSet{}
	b.waiting = [config.NumFloors]int{}
}

func mustBeFloor(floor int) {
	if !config.ValidFloor(floor) {
		panic(fmt.Sprintf("building: floor %d out of range [0,%d)", floor, config.NumFloors))
	}
}
