package console

import (
	"context"
	"errors"
	"log/slog"

	"elevsim/src/dispatcher"
	"elevsim/src/types"
)

// Commands is what the console needs from the dispatcher. *dispatcher.Runner implements it.
type Commands interface {
	StartSimulation() error
	CallElevator(floor int) error
	SelectDestination(floor int) error
	ExitPassenger() error
}

// Run forwards user inputs to the dispatcher until quit is requested or ctx is cancelled.
func Run(ctx context.Context, cmds Commands, display *Display, inputCh <-chan Input) error {
	display.Help()
	for {
		select {
		case <-ctx.Done():
			return nil
		case in := <-inputCh:
			if in.Kind == InputQuit {
				slog.Info("Quit requested")
				return nil
			}
			err := handleInput(cmds, in)
			switch {
			case errors.Is(err, dispatcher.ErrStopped):
				return err
			case errors.Is(err, dispatcher.ErrInvalidFloor):
				display.Println(err)
			case err != nil:
				slog.Error("Command failed", "input", in, "error", err)
			}
		}
	}
}

func handleInput(cmds Commands, in Input) error {
	switch in.Kind {
	case InputStart:
		return cmds.StartSimulation()
	case InputExit:
		return cmds.ExitPassenger()
	case InputButton:
		if in.Button.Button == types.BT_Cab {
			return cmds.SelectDestination(in.Button.Floor)
		}
		return cmds.CallElevator(in.Button.Floor)
	}
	return nil
}
