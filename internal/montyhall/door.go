package montyhall

import (
	"errors"
	"fmt"
)

var (
	ErrorInvalidIterationCount      = errors.New("iterations must be a positive integer")
	ErrorInternalInvariantViolation = errors.New("internal invariant violation")
)

// Door identifies one of the three doors of the game.
type Door int

const (
	Door1 Door = iota
	Door2
	Door3
)

// DoorCount is the size of the door space.
const DoorCount = 3

func Doors() []Door {
	return []Door{Door1, Door2, Door3}
}

// DoorFromIndex maps a draw in 0..2 to a Door.
func DoorFromIndex(i int) (Door, error) {
	switch i {
	case 0:
		return Door1, nil
	case 1:
		return Door2, nil
	case 2:
		return Door3, nil
	default:
		return 0, fmt.Errorf("%w: door index %d outside 0..%d", ErrorInternalInvariantViolation, i, DoorCount-1)
	}
}

func (d Door) Valid() bool {
	return d >= Door1 && d <= Door3
}

func (d Door) String() string {
	switch d {
	case Door1:
		return "door 1"
	case Door2:
		return "door 2"
	case Door3:
		return "door 3"
	default:
		return fmt.Sprintf("door(%d)", int(d))
	}
}

// otherDoors lists, for each door, the two doors that are not it.
var otherDoors = [DoorCount][2]Door{
	Door1: {Door2, Door3},
	Door2: {Door1, Door3},
	Door3: {Door1, Door2},
}

// OtherDoors returns the two doors different from d.
func OtherDoors(d Door) ([2]Door, error) {
	if !d.Valid() {
		return [2]Door{}, fmt.Errorf("%w: %s", ErrorInternalInvariantViolation, d)
	}
	return otherDoors[d], nil
}

// RemainingDoor returns the only door that is neither a nor b.
func RemainingDoor(a, b Door) (Door, error) {
	if !a.Valid() || !b.Valid() {
		return 0, fmt.Errorf("%w: remaining door of %s and %s", ErrorInternalInvariantViolation, a, b)
	}
	if a == b {
		return 0, fmt.Errorf("%w: remaining door of %s and itself is ambiguous", ErrorInternalInvariantViolation, a)
	}
	for _, d := range otherDoors[a] {
		if d != b {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: no remaining door for %s and %s", ErrorInternalInvariantViolation, a, b)
}

type Award int

const (
	Goat Award = iota
	Car
)

func (a Award) String() string {
	if a == Car {
		return "car"
	}
	return "goat"
}

// DoorAssignment maps every door to an award, with exactly one car.
type DoorAssignment struct {
	car Door
}

// NewDoorAssignment places the car behind the given door and goats elsewhere.
func NewDoorAssignment(car Door) (DoorAssignment, error) {
	if !car.Valid() {
		return DoorAssignment{}, fmt.Errorf("%w: car placed behind %s", ErrorInternalInvariantViolation, car)
	}
	return DoorAssignment{car: car}, nil
}

func (a DoorAssignment) CarDoor() Door {
	return a.car
}

func (a DoorAssignment) Award(d Door) Award {
	if d == a.car {
		return Car
	}
	return Goat
}

// Awards returns the award of each door in door order.
func (a DoorAssignment) Awards() [DoorCount]Award {
	var awards [DoorCount]Award
	for _, d := range Doors() {
		awards[d] = a.Award(d)
	}
	return awards
}
