package grid

import (
	"fmt"
	"strings"
)

type Direction int

const (
	// None is the zero Direction. It stands for an absent direction and for
	// "no move available".
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists every move in enumeration order.
var Directions = []Direction{Up, Down, Left, Right}

var directionNames = map[Direction]string{
	None:  "NONE",
	Up:    "UP",
	Down:  "DOWN",
	Left:  "LEFT",
	Right: "RIGHT",
}

var directionDeltas = map[Direction]Cell{
	Up:    {Row: -1, Col: 0},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Right: {Row: 0, Col: 1},
}

var reverseOf = map[Direction]Direction{
	None:  None,
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

// Delta is the (row, col) offset applied by the direction. None has no offset.
func (d Direction) Delta() Cell {
	return directionDeltas[d]
}

func (d Direction) Reverse() Direction {
	return reverseOf[d]
}

func (d Direction) Valid() bool {
	_, ok := directionDeltas[d]
	return ok
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection is case insensitive. The empty string parses to None.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return None, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
