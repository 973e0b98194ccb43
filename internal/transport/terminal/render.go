package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

const loadPrompt = "Do you want to load the previously saved game? (y/n)"

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleEmpty  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFilled = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleCursor = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

// painter - where a frame goes: the tcell screen while playing, plain text once the terminal is restored.
type painter interface {
	Print(x, y int, text string, style tcell.Style)
}

type screenPainter struct {
	screen tcell.Screen
}

func (that screenPainter) Print(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		that.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

type textPainter struct {
	lines [][]rune
}

func (that *textPainter) Print(x, y int, text string, _ tcell.Style) {
	for len(that.lines) <= y {
		that.lines = append(that.lines, nil)
	}

	line := that.lines[y]
	for _, r := range text {
		for len(line) <= x {
			line = append(line, ' ')
		}
		line[x] = r
		x++
	}
	that.lines[y] = line
}

func (that *textPainter) String() string {
	var builder strings.Builder
	for _, line := range that.lines {
		builder.WriteString(strings.TrimRight(string(line), " "))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// cellOrigin - screen position of the mark inside the cell at (x, y).
func cellOrigin(x, y int) (int, int) {
	return x*4 + 3, y*2 + 1
}

// messageRow - the line right under the bottom border.
func messageRow(size int) int {
	return size*2 + 1
}

// drawBoard - box drawing grid; cursor may be nil when no cell is highlighted.
func drawBoard(p painter, state *entity.GameState, size int, cursor *position) {
	p.Print(0, 0, border(size, " ┌", "┬", "┐"), styleBorder)

	for y := range size {
		row := y*2 + 1
		p.Print(0, row, " │", styleBorder)

		for x := range size {
			cell := state.Board[y*size+x]

			style := styleEmpty
			switch {
			case cursor != nil && cursor.x == x && cursor.y == y:
				style = styleCursor
			case !cell.IsEmpty():
				style = styleFilled
			}

			p.Print(x*4+2, row, " "+string(cell)+" ", style)
			p.Print(x*4+5, row, "│", styleBorder)
		}

		if y < size-1 {
			p.Print(0, row+1, border(size, " ├", "┼", "┤"), styleBorder)
		}
	}

	p.Print(0, size*2, border(size, " └", "┴", "┘"), styleBorder)
}

func border(size int, left, middle, right string) string {
	var builder strings.Builder
	builder.WriteString(left)
	for x := range size {
		builder.WriteString("───")
		if x < size-1 {
			builder.WriteString(middle)
		}
	}
	builder.WriteString(right)
	return builder.String()
}

// RenderText - the board and an optional message as plain text.
func RenderText(state *entity.GameState, note string) (string, error) {
	size, err := state.Size()
	if err != nil {
		return "", err
	}

	canvas := &textPainter{}
	drawBoard(canvas, state, size, nil)
	if note != "" {
		canvas.Print(1, messageRow(size), note, tcell.StyleDefault)
	}

	return canvas.String(), nil
}
