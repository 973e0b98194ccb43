// Package terminal is the raw-mode front-end: one blocking read-key-then-redraw loop over tcell.
package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

type gameManager interface {
	NewGame(size int) (*entity.GameState, error)
	LoadGame(ctx context.Context) (*entity.GameState, error)
	MakeTurn(ctx context.Context, state *entity.GameState, cell int) error
}

// Result - how the loop ended. State is nil if the player quit before a board existed.
type Result struct {
	State    *entity.GameState
	Message  string
	Finished bool
}

type Terminal struct {
	logger *slog.Logger
	screen tcell.Screen
	games  gameManager
}

func New(logger *slog.Logger, screen tcell.Screen, games gameManager) *Terminal {
	return &Terminal{
		logger: logger.With("component", "terminal"),
		screen: screen,
		games:  games,
	}
}

// Run - puts the terminal in raw mode, plays one game of size×size and restores the terminal,
// also when the loop panics.
func (that *Terminal) Run(ctx context.Context, size int) (result *Result, err error) {
	if err = that.screen.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize terminal: %w", err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			that.screen.Fini()
			panic(recovered)
		}
		that.screen.Fini()
	}()

	stop := context.AfterFunc(ctx, func() {
		_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	return that.loop(ctx, size)
}

func (that *Terminal) loop(ctx context.Context, size int) (*Result, error) {
	s := &session{size: size, phase: phaseAwaitingLoadChoice}

	that.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)

	for s.phase == phaseAwaitingLoadChoice || s.phase == phasePlaying {
		that.draw(s)

		switch ev := that.screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			that.logger.Info("interrupted")
			s.phase = phaseQuit
		case *tcell.EventResize:
			that.screen.Sync()
		case *tcell.EventKey:
			that.step(ctx, s, keyCommand(ev))
		}
	}

	that.draw(s)

	result := &Result{
		State:    s.state,
		Message:  s.message.text,
		Finished: s.phase == phaseFinished,
	}

	return result, s.err
}

func (that *Terminal) draw(s *session) {
	that.screen.Clear()
	p := screenPainter{screen: that.screen}

	if s.state == nil {
		p.Print(0, 0, loadPrompt, tcell.StyleDefault)
		if s.message.text != "" {
			p.Print(0, 1, s.message.text, messageStyles[s.message.kind])
		}
		that.screen.HideCursor()
		that.screen.Show()
		return
	}

	var cursor *position
	if s.phase == phasePlaying {
		cursor = &s.cursor
	}

	drawBoard(p, s.state, s.size, cursor)

	if s.message.text != "" {
		p.Print(1, messageRow(s.size), s.message.text, messageStyles[s.message.kind])
	}

	if cursor != nil {
		that.screen.ShowCursor(cellOrigin(cursor.x, cursor.y))
	} else {
		that.screen.HideCursor()
	}

	that.screen.Show()
}
