// Package session wires one playable flappy session: the game, its frame
// driver, and the hook that logs transitions and records finished runs.
// Both terminal frontends build on it.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// DefaultPlayer names local sessions that have no user name.
const DefaultPlayer = "player"

// Options configures a session.
type Options struct {
	Game    config.FlappyConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional run board
	Logger  *log.Logger    // Optional; discards when nil
	Player  string
	Clock   core.Clock // Optional; system clock when nil
}

// Session is a driver plus the settings it was built from.
type Session struct {
	Driver  *flappy.Driver
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	Store   *storage.Store
	Player  string
}

// New builds a session in the Idle phase. A zero seed is replaced by the
// current time.
func New(opts Options) *Session {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = DefaultPlayer
	}

	driver := flappy.NewDriver(flappy.New(opts.Game, opts.Clock, rt.Seed))
	driver.OnPhaseChange(PhaseHook(logger, opts.Store, player))

	return &Session{
		Driver:  driver,
		Runtime: rt,
		Logger:  logger,
		Store:   opts.Store,
		Player:  player,
	}
}

// Frame returns the tick interval for the session's tick rate.
func (s *Session) Frame() time.Duration {
	return time.Second / time.Duration(s.Runtime.TickRate)
}

// CanBrowse reports whether the run board may be opened: only while the
// game is frozen.
func (s *Session) CanBrowse() bool {
	p := s.Driver.Game().Phase()
	return p == flappy.PhaseIdle || p == flappy.PhaseOver
}

// PhaseHook logs transitions and records finished runs on store. store may
// be nil.
func PhaseHook(logger *log.Logger, store *storage.Store, player string) flappy.PhaseFunc {
	return func(from, to flappy.Phase, snap flappy.Snapshot) {
		switch to {
		case flappy.PhaseReady:
			logger.Debug("session reset", "player", player, "from", from)
		case flappy.PhaseActive:
			logger.Debug("run started", "player", player)
		case flappy.PhaseOver:
			logger.Info("run over",
				"player", player,
				"score", snap.Score,
				"best", snap.BestScore,
				"cause", snap.Cause,
				"ticks", snap.RunTicks,
				"duration", snap.ActiveFor.Round(time.Millisecond),
			)
			if store == nil {
				return
			}
			_, err := store.SaveRun(storage.Run{
				Player:   player,
				Score:    snap.Score,
				Ticks:    snap.RunTicks,
				Duration: snap.ActiveFor,
				Cause:    snap.Cause.String(),
			})
			if err != nil {
				logger.Warn("could not record run", "player", player, "error", err)
			}
		}
	}
}
