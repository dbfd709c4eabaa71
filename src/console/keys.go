package console

import (
	"fmt"

	"elevsim/src/config"
	"elevsim/src/types"

	"github.com/eiannone/keyboard"
)

type InputKind int

const (
	InputStart InputKind = iota
	InputButton
	InputExit
	InputQuit
)

// Input is one user action decoded from the keyboard.
type Input struct {
	Kind   InputKind
	Button types.ButtonEvent
}

// PollKeys reads single key presses and sends the decoded inputs to receiver.
// It returns after sending InputQuit or when the terminal cannot be read.
func PollKeys(receiver chan<- Input) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("console: open keyboard: %w", err)
	}
	defer keyboard.Close()

	var parser keyParser
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("console: read key: %w", err)
		}
		in, ok := parser.parse(char, key)
		if !ok {
			continue
		}
		receiver <- in
		if in.Kind == InputQuit {
			return nil
		}
	}
}

// keyParser turns "c" or "d" followed by a floor key into a button press.
type keyParser struct {
	pending    types.ButtonType
	hasPending bool
}

func (p *keyParser) parse(char rune, key keyboard.Key) (Input, bool) {
	switch key {
	case keyboard.KeyCtrlC:
		return Input{Kind: InputQuit}, true
	case keyboard.KeyEsc:
		p.hasPending = false
		return Input{}, false
	}

	if p.hasPending {
		if floor, ok := floorFromKey(char); ok {
			p.hasPending = false
			return Input{Kind: InputButton, Button: types.ButtonEvent{Floor: floor, Button: p.pending}}, true
		}
	}

	switch char {
	case 's', 'S':
		return Input{Kind: InputStart}, true
	case 'x', 'X':
		return Input{Kind: InputExit}, true
	case 'q', 'Q':
		return Input{Kind: InputQuit}, true
	case 'c', 'C':
		p.pending, p.hasPending = types.BT_Call, true
	case 'd', 'D':
		p.pending, p.hasPending = types.BT_Cab, true
	}
	return Input{}, false
}

// floorFromKey maps 0-9 to floors 0-9 and a, b, ... to floors 10 and up.
func floorFromKey(char rune) (int, bool) {
	var floor int
	switch {
	case char >= '0' && char <= '9':
		floor = int(char - '0')
	case char >= 'a' && char <= 'z':
		floor = 10 + int(char-'a')
	default:
		return 0, false
	}
	return floor, config.ValidFloor(floor)
}

func floorKey(floor int) string {
	if floor < 10 {
		return fmt.Sprint(floor)
	}
	return string(rune('a' + floor - 10))
}
