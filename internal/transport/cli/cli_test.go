package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
)

type recorder struct {
	calls []Options
}

func (that *recorder) play(_ context.Context, out io.Writer, opts Options) error {
	that.calls = append(that.calls, opts)
	_, err := io.WriteString(out, "played\n")
	return err
}

func execute(t *testing.T, args ...string) (*recorder, string, error) {
	t.Helper()

	rec := &recorder{}
	cmd := NewRootCommand(rec.play)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return rec, out.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Run("No arguments plays the configured size", func(t *testing.T) {
		// When: running the bare command
		rec, out, err := execute(t)

		// Then: one game with the config default path
		require.NoError(t, err)
		require.Len(t, rec.calls, 1)
		assert.Equal(t, Options{ConfigPath: "./config.yml"}, rec.calls[0])
		assert.Equal(t, "played\n", out)
	})

	t.Run("Flags reach the player", func(t *testing.T) {
		rec, _, err := execute(t, "-l", "--config", "/etc/tictactoe.yml")

		require.NoError(t, err)
		require.Len(t, rec.calls, 1)
		assert.Equal(t, Options{ConfigPath: "/etc/tictactoe.yml", LaunchApp: true}, rec.calls[0])
	})

	t.Run("Stray arguments are rejected", func(t *testing.T) {
		rec, _, err := execute(t, "5")

		require.Error(t, err)
		assert.Empty(t, rec.calls)
	})
}

func TestBoardSizeCommand(t *testing.T) {
	t.Run("Explicit size", func(t *testing.T) {
		rec, _, err := execute(t, "board_size", "5", "--launch-app")

		require.NoError(t, err)
		require.Len(t, rec.calls, 1)
		assert.Equal(t, 5, rec.calls[0].BoardSize)
		assert.True(t, rec.calls[0].LaunchApp)
	})

	t.Run("Size defaults to 3", func(t *testing.T) {
		rec, _, err := execute(t, "board_size")

		require.NoError(t, err)
		require.Len(t, rec.calls, 1)
		assert.Equal(t, 3, rec.calls[0].BoardSize)
	})

	t.Run("Size 1 is allowed", func(t *testing.T) {
		rec, _, err := execute(t, "board_size", "1")

		require.NoError(t, err)
		assert.Equal(t, 1, rec.calls[0].BoardSize)
	})

	t.Run("Rejects sizes below 1", func(t *testing.T) {
		for _, arg := range []string{"0", "-2", "three"} {
			rec, _, err := execute(t, "board_size", "--", arg)

			require.ErrorIs(t, err, apperror.ErrInvalidBoardSize, arg)
			assert.Empty(t, rec.calls)
		}
	})

	t.Run("Rejects more than one size", func(t *testing.T) {
		rec, _, err := execute(t, "board_size", "3", "4")

		require.Error(t, err)
		assert.Empty(t, rec.calls)
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("Writes completion scripts", func(t *testing.T) {
		cases := map[string]string{
			"bash": "# bash completion V2 for tictactoe",
			"zsh":  "#compdef tictactoe",
			"fish": "# fish completion for tictactoe",
		}

		for shell, header := range cases {
			rec, out, err := execute(t, "generate", shell)

			require.NoError(t, err, shell)
			assert.Contains(t, out, header, shell)
			assert.Empty(t, rec.calls)
		}
	})

	t.Run("Rejects unknown shells", func(t *testing.T) {
		_, _, err := execute(t, "generate", "powershell")

		assert.Error(t, err)
	})

	t.Run("Is hidden from help", func(t *testing.T) {
		_, out, err := execute(t, "--help")

		require.NoError(t, err)
		assert.Contains(t, out, "board_size")
		assert.NotContains(t, out, "generate")
	})
}
