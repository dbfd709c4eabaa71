package utils

import "elevsim/src/config"

// FloorSet marks floors with a pending request.
type FloorSet [config.NumFloors]bool

// ForEachFloor is a helper function that calls action for every marked floor, lowest first
func ForEachFloor(set FloorSet, action func(floor int)) {
	for floor := range set {
		if set[floor] {
			action(floor)
		}
	}
}

// Floors lists the marked floors in ascending order.
func Floors(set FloorSet) []int {
	floors := make([]int, 0, config.NumFloors)
	ForEachFloor(set, func(floor int) {
		floors = append(floors, floor)
	})
	return floors
}

func Any(set FloorSet) bool {
	for _, marked := range set {
		if marked {
			return true
		}
	}
	return false
}

// Union merges two floor sets.
func Union(a, b FloorSet) FloorSet {
	var out FloorSet
	for floor := range out {
		out[floor] = a[floor] || b[floor]
	}
	return out
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
