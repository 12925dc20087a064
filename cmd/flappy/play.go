package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/platform/session"
	termui "github.com/vovakirdan/tui-flappy/internal/platform/term"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const (
	backendTUI   = "tui"
	backendTcell = "tcell"
)

var (
	flagBackend string
	flagLogFile string
	flagPlayer  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W   - Start, then hold to rise
  Mouse button - Hold to rise
  Enter        - Start
  R            - Restart
  Tab          - Run board (before a run or after game over)
  Q/Ctrl+C     - Quit

Backends:
  tui    - Bubble Tea (default)
  tcell  - tcell, reports mouse press and release directly

Examples:
  flappy play
  flappy play --backend tcell
  flappy play --seed 42 --log-file /tmp/flappy.log --log-level debug
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", backendTUI, "Frontend: tui or tcell")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded if empty)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded on the run board (default: $USER)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagBackend != backendTUI && flagBackend != backendTcell {
		return fmt.Errorf("unknown backend %q (want %s or %s)", flagBackend, backendTUI, backendTcell)
	}

	gameCfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	logger, closer, err := logging.OpenFile(flagLogFile, flagLogLevel, "flappy")
	if err != nil {
		return err
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("could not open run board", "error", err)
		// Continue without a board
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := session.Options{
		Game: gameCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Logger: logger,
		Player: playerName(),
	}

	logger.Info("starting", "backend", flagBackend, "seed", flagSeed, "fps", flagFPS)

	switch flagBackend {
	case backendTcell:
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := termui.Run(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("running game: %w", err)
		}
	default:
		if err := tui.Run(opts); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
	return nil
}

// playerName picks the run board name: --player, then $USER.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return session.DefaultPlayer
}
