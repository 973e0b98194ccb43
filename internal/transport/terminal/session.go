package terminal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

type phase int

const (
	phaseAwaitingLoadChoice phase = iota
	phasePlaying
	phaseFinished
	phaseQuit
)

type messageKind int

const (
	messageNone messageKind = iota
	messageSuccess
	messageDraw
	messageFailure
)

var messageStyles = map[messageKind]tcell.Style{
	messageSuccess: tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack),
	messageDraw:    tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorBlack),
	messageFailure: tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite),
}

type message struct {
	text string
	kind messageKind
}

type position struct {
	x, y int
}

type command int

const (
	commandNone command = iota
	commandUp
	commandDown
	commandLeft
	commandRight
	commandConfirm
	commandCancel
	commandLoad
	commandFresh
)

// session - the loop's mutable state. Run owns it and hands it to every step by pointer.
type session struct {
	state   *entity.GameState
	size    int
	cursor  position
	phase   phase
	message message
	err     error
}

func (that *session) moveCursor(dx, dy int) {
	that.cursor.x = clamp(that.cursor.x+dx, 0, that.size-1)
	that.cursor.y = clamp(that.cursor.y+dy, 0, that.size-1)
}

func (that *session) cursorIndex() int {
	return that.cursor.y*that.size + that.cursor.x
}

func (that *session) fail(err error) {
	that.err = err
	that.message = message{text: fmt.Sprintf("Error: %s", err), kind: messageFailure}
	that.phase = phaseQuit
}

func clamp(value, lowest, highest int) int {
	return max(lowest, min(value, highest))
}

// keyCommand - arrows or vi keys move, Enter or w places, Esc or q leaves; y/n answer the load prompt.
func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyUp:
		return commandUp
	case tcell.KeyDown:
		return commandDown
	case tcell.KeyLeft:
		return commandLeft
	case tcell.KeyRight:
		return commandRight
	case tcell.KeyEnter:
		return commandConfirm
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return commandCancel
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return commandUp
		case 'j':
			return commandDown
		case 'h':
			return commandLeft
		case 'l':
			return commandRight
		case 'w':
			return commandConfirm
		case 'q':
			return commandCancel
		case 'y':
			return commandLoad
		case 'n':
			return commandFresh
		}
	}

	return commandNone
}

// step - applies one command to the session.
func (that *Terminal) step(ctx context.Context, s *session, cmd command) {
	switch s.phase {
	case phaseAwaitingLoadChoice:
		that.answerLoadPrompt(ctx, s, cmd)
	case phasePlaying:
		that.play(ctx, s, cmd)
	case phaseFinished, phaseQuit:
	}
}

func (that *Terminal) answerLoadPrompt(ctx context.Context, s *session, cmd command) {
	switch cmd {
	case commandLoad:
		state, err := that.games.LoadGame(ctx)
		if err != nil {
			that.logger.Warn("load failed, starting a new game", "error", err)
			that.startFresh(s)
			if s.phase == phasePlaying {
				s.message = message{text: fmt.Sprintf("Error: %s. Loading new empty game.", err), kind: messageFailure}
			}
			return
		}

		size, err := state.Size()
		if err != nil {
			s.fail(err)
			return
		}

		s.state = state
		s.size = size
		s.phase = phasePlaying
		s.message = message{text: "Game loaded successfully.", kind: messageSuccess}
	case commandFresh:
		that.startFresh(s)
	case commandCancel:
		s.phase = phaseQuit
	default:
	}
}

func (that *Terminal) startFresh(s *session) {
	state, err := that.games.NewGame(s.size)
	if err != nil {
		s.fail(err)
		return
	}

	s.state = state
	s.phase = phasePlaying
	s.message = message{}
}

func (that *Terminal) play(ctx context.Context, s *session, cmd command) {
	switch cmd {
	case commandUp:
		s.moveCursor(0, -1)
	case commandDown:
		s.moveCursor(0, 1)
	case commandLeft:
		s.moveCursor(-1, 0)
	case commandRight:
		s.moveCursor(1, 0)
	case commandCancel:
		s.phase = phaseQuit
	case commandConfirm:
		that.place(ctx, s)
	default:
	}
}

func (that *Terminal) place(ctx context.Context, s *session) {
	err := that.games.MakeTurn(ctx, s.state, s.cursorIndex())
	if errors.Is(err, apperror.ErrCellOccupied) {
		return
	}
	if err != nil {
		s.fail(err)
		return
	}

	s.message = message{}

	switch s.state.Status.Kind {
	case entity.StatusWon:
		s.phase = phaseFinished
		s.message = message{text: fmt.Sprintf("Player %s wins!", s.state.Status.Winner), kind: messageSuccess}
	case entity.StatusDraw:
		s.phase = phaseFinished
		s.message = message{text: "It's a draw!", kind: messageDraw}
	case entity.StatusOngoing:
	}
}
