package types

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
	MD_Stop MotorDirection = 0
)

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "up"
	case MD_Down:
		return "down"
	default:
		return "stop"
	}
}

type ButtonType int

const (
	BT_Call ButtonType = iota
	BT_Cab
)

type ButtonEvent struct {
	Floor  int
	Button ButtonType
}

// Phase is the dispatch state of the car.
type Phase int

const (
	Idle Phase = iota
	Moving
	DoorExit
	DoorEntry
	IdleTimeoutPending
	Ended
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case DoorExit:
		return "door-exit"
	case DoorEntry:
		return "door-entry"
	case IdleTimeoutPending:
		return "idle-timeout"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// DoorOpen reports whether passengers may be exchanged in this phase.
func (p Phase) DoorOpen() bool {
	return p == DoorExit || p == DoorEntry
}

// Passenger remembers where it boarded so presentation can colour it by origin.
type Passenger struct {
	OriginFloor int
}

// Stores direction and phase so the next step of the car is decided in one place
type DirnPhasePair struct {
	Dir   MotorDirection
	Phase Phase
}
