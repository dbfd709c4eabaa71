package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"elevsim/src/config"
	"elevsim/src/types"
)

// Display renders the building on every notification and plays the part of the animated view:
// after the car changes floor it reports not ready until the move has been "shown".
type Display struct {
	mu        sync.Mutex
	out       io.Writer
	animation time.Duration
	now       func() time.Time
	lastMove  time.Time
	last      types.State
}

func NewDisplay(out io.Writer, animation time.Duration) *Display {
	return &Display{
		out:       out,
		animation: animation,
		now:       time.Now,
	}
}

func (d *Display) Notify(ev types.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = ev.State
	switch ev.Type {
	case types.PositionChanged:
		d.lastMove = d.now()
	case types.SimulationEnded:
		fmt.Fprintln(d.out, "Simulation ended. Press s to start again or q to quit.")
		return
	}
	fmt.Fprint(d.out, Render(ev.State))
}

func (d *Display) ReadyForNextTick() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.now().Sub(d.lastMove) >= d.animation
}

// Println writes a message line without interleaving with a render.
func (d *Display) Println(a ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.out, a...)
}

func (d *Display) Help() {
	d.Println(fmt.Sprintf("keys: s start | c<floor> call | d<floor> destination | x exit | q quit | floors 0-%s",
		floorKey(config.NumFloors-1)))
}

// Render draws one line per floor, top floor first, followed by a status line.
//
//	 3 [c] ooo   |     |
//	 2 [ ]       | 2/5 | ->
func Render(state types.State) string {
	calls := floorMarks(state.Calls)
	destinations := floorMarks(state.Destinations)

	var b strings.Builder
	for floor := config.NumFloors - 1; floor >= 0; floor-- {
		callMark := " "
		if calls[floor] {
			callMark = "c"
		}
		carCell := "     "
		if state.Running && state.Floor == floor {
			carCell = fmt.Sprintf(" %d/%d ", len(state.Passengers), config.Capacity)
		}
		destMark := ""
		if destinations[floor] {
			destMark = " ->"
		}
		fmt.Fprintf(&b, "%2s [%s] %-*s |%s|%s\n",
			floorKey(floor), callMark, config.MaxWaitingPerFloor,
			strings.Repeat("o", state.Waiting[floor]), carCell, destMark)
	}
	fmt.Fprintf(&b, "phase=%v direction=%v floor=%d passengers=%d/%d\n\n",
		state.Phase, state.Dir, state.Floor, len(state.Passengers), config.Capacity)
	return b.String()
}

func floorMarks(floors []int) [config.NumFloors]bool {
	var marks [config.NumFloors]bool
	for _, floor := range floors {
		marks[floor] = true
	}
	return marks
}
