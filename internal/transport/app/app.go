// Package app is the widget front-end: a tview cell grid over the same game manager as the raw terminal loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

const (
	pagePrompt = "prompt"
	pageBoard  = "board"

	loadPrompt = "Do you want to load the previously saved game? (y/n)"
	buttonYes  = "Yes"
	buttonNo   = "No"

	controls = "arrows/hjkl move   enter/w place   q/esc quit"
)

type gameManager interface {
	NewGame(size int) (*entity.GameState, error)
	LoadGame(ctx context.Context) (*entity.GameState, error)
	MakeTurn(ctx context.Context, state *entity.GameState, cell int) error
}

type phase int

const (
	phasePrompt phase = iota
	phasePlaying
	phaseFinished
)

// Result - how the app ended. State is nil if the player quit at the prompt.
type Result struct {
	State    *entity.GameState
	Message  string
	Finished bool
}

type App struct {
	logger *slog.Logger
	games  gameManager

	app    *tview.Application
	pages  *tview.Pages
	prompt *tview.Modal
	grid   *tview.Table
	status *tview.TextView

	size    int
	state   *entity.GameState
	phase   phase
	message string
	err     error
}

// New - builds the widgets; screen may be nil to let tview open the real terminal.
func New(logger *slog.Logger, screen tcell.Screen, games gameManager) *App {
	that := &App{
		logger: logger.With("component", "app"),
		games:  games,
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		status: tview.NewTextView(),
	}

	if screen != nil {
		that.app.SetScreen(screen)
	}

	that.prompt = tview.NewModal().
		SetText(loadPrompt).
		AddButtons([]string{buttonYes, buttonNo})

	that.grid = tview.NewTable().
		SetBorders(true).
		SetSelectable(true, true)

	board := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(that.grid, 0, 1, true).
		AddItem(that.status, 2, 0, false)

	that.pages.
		AddPage(pageBoard, board, true, false).
		AddPage(pagePrompt, that.prompt, true, true)

	that.app.SetRoot(that.pages, true)

	return that
}

// Run - shows the load prompt, then the board of size×size, until the game ends and a key is
// pressed or the player quits.
func (that *App) Run(ctx context.Context, size int) (*Result, error) {
	that.size = size
	that.bind(ctx)

	stop := context.AfterFunc(ctx, that.app.Stop)
	defer stop()

	if err := that.app.Run(); err != nil {
		return nil, fmt.Errorf("could not run app: %w", err)
	}

	result := &Result{
		State:    that.state,
		Message:  that.message,
		Finished: that.phase == phaseFinished,
	}

	return result, that.err
}

// bind - hooks the widgets' callbacks to the game for one run.
func (that *App) bind(ctx context.Context) {
	that.prompt.SetDoneFunc(func(_ int, label string) {
		switch label {
		case buttonYes:
			that.answer(ctx, true)
		case buttonNo:
			that.answer(ctx, false)
		default:
			that.app.Stop()
		}
	})

	that.grid.SetSelectedFunc(func(row, column int) {
		that.place(ctx, row, column)
	})

	that.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		return that.capture(ctx, ev)
	})
}

func (that *App) capture(ctx context.Context, ev *tcell.EventKey) *tcell.EventKey {
	switch that.phase {
	case phasePrompt:
		switch {
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'y':
			that.answer(ctx, true)
			return nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			that.answer(ctx, false)
			return nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			that.app.Stop()
			return nil
		}
	case phasePlaying:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			that.app.Stop()
			return nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'w':
			return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
		}
	case phaseFinished:
		that.app.Stop()
		return nil
	}

	return ev
}

func (that *App) answer(ctx context.Context, load bool) {
	if !load {
		that.startFresh()
		return
	}

	state, err := that.games.LoadGame(ctx)
	if err != nil {
		that.logger.Warn("load failed, starting a new game", "error", err)
		that.startFresh()
		if that.phase == phasePlaying {
			that.message = fmt.Sprintf("Error: %s. Loading new empty game.", err)
			that.refresh()
		}
		return
	}

	size, err := state.Size()
	if err != nil {
		that.fail(err)
		return
	}

	that.size = size
	that.show(state)
	that.message = "Game loaded successfully."
	that.refresh()
}

func (that *App) startFresh() {
	state, err := that.games.NewGame(that.size)
	if err != nil {
		that.fail(err)
		return
	}

	that.show(state)
}

func (that *App) show(state *entity.GameState) {
	that.state = state
	that.phase = phasePlaying
	that.message = ""

	that.grid.Select(0, 0)
	that.refresh()

	that.pages.SwitchToPage(pageBoard)
	that.app.SetFocus(that.grid)
}

func (that *App) place(ctx context.Context, row, column int) {
	if that.phase != phasePlaying {
		return
	}

	err := that.games.MakeTurn(ctx, that.state, row*that.size+column)
	if errors.Is(err, apperror.ErrCellOccupied) {
		return
	}
	if err != nil {
		that.fail(err)
		return
	}

	that.message = ""

	switch that.state.Status.Kind {
	case entity.StatusWon:
		that.phase = phaseFinished
		that.message = fmt.Sprintf("Player %s wins!", that.state.Status.Winner)
	case entity.StatusDraw:
		that.phase = phaseFinished
		that.message = "It's a draw!"
	case entity.StatusOngoing:
	}

	that.refresh()
}

func (that *App) fail(err error) {
	that.err = err
	that.message = fmt.Sprintf("Error: %s", err)
	that.logger.Error("game failed", "error", err)
	that.app.Stop()
}

// refresh - redraws the grid and the status line from the current state.
func (that *App) refresh() {
	for row := range that.size {
		for column := range that.size {
			cell := that.state.Board[row*that.size+column]

			color := tcell.ColorWhite
			if !cell.IsEmpty() {
				color = tcell.ColorGreen
			}

			that.grid.SetCell(row, column, tview.NewTableCell(" "+string(cell)+" ").
				SetAlign(tview.AlignCenter).
				SetTextColor(color).
				SetSelectable(that.phase == phasePlaying))
		}
	}

	switch {
	case that.message != "":
		that.status.SetText(that.message)
	case that.phase == phasePlaying:
		that.status.SetText(fmt.Sprintf("Player %s to move\n%s", that.state.CurrentPlayer, controls))
	}
}
