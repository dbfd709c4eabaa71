package car

import (
	"fmt"

	"elevsim/src/config"
	"elevsim/src/types"
	"elevsim/src/utils"
)

// Car represents the position, load and requested floors of the elevator car.
type Car struct {
	floor        int
	dir          types.MotorDirection
	moving       bool
	passengers   []types.Passenger
	destinations utils.FloorSet
}

func New() *Car {
	return &Car{dir: types.MD_Stop}
}

// Reset puts the car empty and stopped at the ground floor.
func (c *Car) Reset() {
	*c = Car{dir: types.MD_Stop}
}

func (c *Car) Floor() int {
	return c.floor
}

func (c *Car) Direction() types.MotorDirection {
	return c.dir
}

func (c *Car) IsMoving() bool {
	return c.moving
}

func (c *Car) SetDirection(dir types.MotorDirection) {
	c.dir = dir
}

func (c *Car) SetMoving(moving bool) {
	c.moving = moving
}

// AddDestination is ignored for the current floor and for floors already selected.
func (c *Car) AddDestination(floor int) {
	mustBeFloor(floor)
	if floor == c.floor {
		return
	}
	c.destinations[floor] = true
}

func (c *Car) RemoveDestination(floor int) {
	mustBeFloor(floor)
	c.destinations[floor] = false
}

func (c *Car) HasDestination(floor int) bool {
	mustBeFloor(floor)
	return c.destinations[floor]
}

func (c *Car) HasDestinations() bool {
	return utils.Any(c.destinations)
}

func (c *Car) Destinations() []int {
	return utils.Floors(c.destinations)
}

func (c *Car) DestinationSet() utils.FloorSet {
	return c.destinations
}

// Board lets one passenger from origin in. A full car silently refuses.
func (c *Car) Board(origin int) bool {
	if len(c.passengers) >= config.Capacity {
		return false
	}
	c.passengers = append(c.passengers, types.Passenger{OriginFloor: origin})
	return true
}

// Alight lets the passenger who boarded first out.
func (c *Car) Alight() bool {
	if len(c.passengers) == 0 {
		return false
	}
	c.passengers = c.passengers[1:]
	return true
}

func (c *Car) Passengers() []types.Passenger {
	return c.passengers
}

func (c *Car) PassengerCount() int {
	return len(c.passengers)
}

func (c *Car) AvailableSpace() int {
	return config.Capacity - len(c.passengers)
}

func (c *Car) IsEmpty() bool {
	return len(c.passengers) == 0
}

// AdvanceOneFloor moves the car one floor in its direction. Only the scheduler calls it, while moving.
func (c *Car) AdvanceOneFloor() {
	next := c.floor + int(c.dir)
	if !config.ValidFloor(next) {
		panic(fmt.Sprintf("car: cannot move %v from floor %d", c.dir, c.floor))
	}
	c.floor = next
}

func mustBeFloor(floor int) {
	if !config.ValidFloor(floor) {
		panic(fmt.Sprintf("car: floor %d out of range [0,%d)", floor, config.NumFloors))
	}
}
