package dispatcher

import (
	"testing"

	"elevsim/src/types"
	"elevsim/src/utils"
)

func floorSet(floors ...int) utils.FloorSet {
	var set utils.FloorSet
	for _, floor := range floors {
		set[floor] = true
	}
	return set
}

func TestNextTarget(t *testing.T) {
	tests := []struct {
		name    string
		floor   int
		dir     types.MotorDirection
		targets utils.FloorSet
		want    int
		wantOK  bool
	}{
		{"no targets", 4, types.MD_Stop, floorSet(), -1, false},
		{"only current floor", 4, types.MD_Up, floorSet(4), -1, false},
		{"idle picks nearest", 4, types.MD_Stop, floorSet(1, 6, 10), 6, true},
		{"idle tie goes to lower floor", 5, types.MD_Stop, floorSet(2, 8), 2, true},
		{"up prefers targets above", 4, types.MD_Up, floorSet(3, 9), 9, true},
		{"up picks nearest above", 4, types.MD_Up, floorSet(3, 7, 9), 7, true},
		{"down prefers targets below", 6, types.MD_Down, floorSet(0, 7), 0, true},
		{"up falls back when nothing above", 6, types.MD_Up, floorSet(2, 5), 5, true},
		{"down falls back when nothing below", 2, types.MD_Down, floorSet(3, 9), 3, true},
		{"fallback skips current floor", 5, types.MD_Up, floorSet(3, 5), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextTarget(tt.floor, tt.dir, tt.targets)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NextTarget(%d, %v, %v) = %d, %v; want %d, %v",
					tt.floor, tt.dir, utils.Floors(tt.targets), got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestChooseDirectionIsDeterministic(t *testing.T) {
	targets := floorSet(1, 3, 7, 9)
	firstTarget, firstPair := ChooseDirection(5, types.MD_Stop, targets)
	for range 100 {
		target, pair := ChooseDirection(5, types.MD_Stop, targets)
		if target != firstTarget || pair != firstPair {
			t.Fatalf("Expected %d %+v every time, got %d %+v", firstTarget, firstPair, target, pair)
		}
	}
	if firstTarget != 3 || firstPair != (types.DirnPhasePair{Dir: types.MD_Down, Phase: types.Moving}) {
		t.Errorf("Expected floor 3 going down, got %d %+v", firstTarget, firstPair)
	}
}

func TestChooseDirectionIdle(t *testing.T) {
	target, pair := ChooseDirection(0, types.MD_Up, floorSet())
	if target != -1 || pair != (types.DirnPhasePair{Dir: types.MD_Stop, Phase: types.Idle}) {
		t.Errorf("Expected no target and idle, got %d %+v", target, pair)
	}
}
