package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Player - the side whose mark goes on the board next.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"
)

// Other - returns the opponent. X and O toggle, anything else is treated as O so the toggle stays total.
func (that Player) Other() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Mark - the cell value this player writes.
func (that Player) Mark() Cell {
	return Cell(that)
}

func (that Player) String() string {
	return string(that)
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that *Player) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("could not decode player: %w", err)
	}

	player := Player(raw)
	if !player.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, raw)
	}

	*that = player

	return nil
}
