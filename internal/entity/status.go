package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type StatusKind int

const (
	StatusOngoing StatusKind = iota
	StatusWon
	StatusDraw
)

const (
	statusOngoingName = "Ongoing"
	statusWonName     = "Won"
	statusDrawName    = "Draw"
)

// Status - outcome of a game. The zero value is an ongoing game; Winner is only set for StatusWon.
type Status struct {
	Kind   StatusKind
	Winner Player
}

func Ongoing() Status {
	return Status{Kind: StatusOngoing}
}

func Won(winner Player) Status {
	return Status{Kind: StatusWon, Winner: winner}
}

func Draw() Status {
	return Status{Kind: StatusDraw}
}

func (that Status) IsOngoing() bool {
	return that.Kind == StatusOngoing
}

func (that Status) IsFinished() bool {
	return that.Kind == StatusWon || that.Kind == StatusDraw
}

func (that Status) String() string {
	switch that.Kind {
	case StatusOngoing:
		return statusOngoingName
	case StatusWon:
		return fmt.Sprintf("%s(%s)", statusWonName, that.Winner)
	case StatusDraw:
		return statusDrawName
	default:
		return fmt.Sprintf("Status(%d)", that.Kind)
	}
}

// MarshalJSON - "Ongoing", "Draw" or {"Won":"X"}.
func (that Status) MarshalJSON() ([]byte, error) {
	switch that.Kind {
	case StatusOngoing:
		return json.Marshal(statusOngoingName)
	case StatusDraw:
		return json.Marshal(statusDrawName)
	case StatusWon:
		if !that.Winner.IsValid() {
			return nil, fmt.Errorf("%w: won by %q", ErrUnknownPlayer, that.Winner)
		}
		return json.Marshal(map[string]Player{statusWonName: that.Winner})
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownGameStatus, that.Kind)
	}
}

func (that *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("could not decode status: %w", err)
		}

		switch name {
		case statusOngoingName:
			*that = Ongoing()
		case statusDrawName:
			*that = Draw()
		default:
			return fmt.Errorf("%w: %q", ErrUnknownGameStatus, name)
		}

		return nil
	}

	var won map[string]Player
	if err := json.Unmarshal(data, &won); err != nil {
		return fmt.Errorf("could not decode status: %w", err)
	}

	winner, ok := won[statusWonName]
	if !ok || len(won) != 1 {
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, data)
	}

	*that = Won(winner)

	return nil
}
