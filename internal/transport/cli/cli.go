// Package cli is the command-line transport: flags and subcommands mapped onto one play call.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-tui/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tui/internal/entity"
)

const (
	appName           = "tictactoe"
	defaultConfigPath = "./config.yml"
)

// Options - what a single invocation asks for. BoardSize 0 means the configured size.
type Options struct {
	ConfigPath string
	BoardSize  int
	LaunchApp  bool
}

// Player - plays one game; out is where the final board goes once the terminal is restored.
type Player func(ctx context.Context, out io.Writer, opts Options) error

type flags struct {
	configPath string
	launchApp  bool
}

// NewRootCommand - tictactoe, tictactoe board_size [NUMBER] and the hidden generate command.
func NewRootCommand(play Player) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:          appName,
		Short:        "Tic-tac-toe in the terminal",
		Long:         "Play tic-tac-toe on an N×N board in the terminal. The game is saved after every move.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(cmd.Context(), cmd.OutOrStdout(), f.options(0))
		},
	}

	root.PersistentFlags().StringVarP(&f.configPath, "config", "c", defaultConfigPath, "path to the config file")
	root.PersistentFlags().BoolVarP(&f.launchApp, "launch-app", "l", false, "play in the widget app instead of the raw terminal")

	root.AddCommand(newBoardSizeCommand(play, f), newGenerateCommand())

	return root
}

func (that *flags) options(size int) Options {
	return Options{
		ConfigPath: that.configPath,
		BoardSize:  size,
		LaunchApp:  that.launchApp,
	}
}

func newBoardSizeCommand(play Player, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "board_size [NUMBER]",
		Short: "Play on a NUMBER×NUMBER board",
		Long:  fmt.Sprintf("Play on a NUMBER×NUMBER board. NUMBER defaults to %d.", entity.DefaultBoardSize),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size := entity.DefaultBoardSize
			if len(args) == 1 {
				var err error
				if size, err = parseBoardSize(args[0]); err != nil {
					return err
				}
			}

			return play(cmd.Context(), cmd.OutOrStdout(), f.options(size))
		},
	}
}

func parseBoardSize(arg string) (int, error) {
	size, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", apperror.ErrInvalidBoardSize, arg)
	}

	if size < 1 {
		return 0, fmt.Errorf("%w: %d, the board needs at least one cell", apperror.ErrInvalidBoardSize, size)
	}

	return size, nil
}

func newGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "generate [bash|zsh|fish]",
		Short:     "Write a shell completion script to stdout",
		Hidden:    true,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			default:
				return root.GenFishCompletion(out, true)
			}
		},
	}
}
