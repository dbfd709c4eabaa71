package dispatcher

import (
	"elevsim/src/config"
	"elevsim/src/types"
	"elevsim/src/utils"
)

// NextTarget picks the floor the car should head for next.
//  1. If the car has a direction, take the nearest target strictly ahead of it.
//  2. Otherwise, or if nothing is ahead, take the nearest target on any other floor.
//
// Floors are scanned in ascending order and only a strictly shorter distance replaces the
// current pick, so equidistant targets resolve to the lower floor.
func NextTarget(floor int, dir types.MotorDirection, targets utils.FloorSet) (int, bool) {
	if dir != types.MD_Stop {
		ahead := func(target int) bool {
			return int(dir)*(target-floor) > 0
		}
		if target, ok := nearest(floor, targets, ahead); ok {
			return target, true
		}
	}
	elsewhere := func(target int) bool {
		return target != floor
	}
	return nearest(floor, targets, elsewhere)
}

func nearest(floor int, targets utils.FloorSet, eligible func(target int) bool) (int, bool) {
	closest, minDistance := -1, config.NumFloors
	utils.ForEachFloor(targets, func(target int) {
		if !eligible(target) {
			return
		}
		if distance := utils.Abs(target - floor); distance < minDistance {
			closest, minDistance = target, distance
		}
	})
	return closest, closest != -1
}

// ChooseDirection turns the next target into the direction and phase the car should take.
func ChooseDirection(floor int, dir types.MotorDirection, targets utils.FloorSet) (int, types.DirnPhasePair) {
	target, ok := NextTarget(floor, dir, targets)
	switch {
	case !ok:
		return -1, types.DirnPhasePair{Dir: types.MD_Stop, Phase: types.Idle}
	case target > floor:
		return target, types.DirnPhasePair{Dir: types.MD_Up, Phase: types.Moving}
	default:
		return target, types.DirnPhasePair{Dir: types.MD_Down, Phase: types.Moving}
	}
}
