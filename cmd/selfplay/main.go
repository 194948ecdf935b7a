// Command selfplay runs a complete game with random legal moves. Useful
// for smoke-testing the rules engine and for generating board renders.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/i-jared/catan/engine"
	"github.com/i-jared/catan/internal/cache"
	"github.com/i-jared/catan/internal/config"
	"github.com/i-jared/catan/internal/database"
	"github.com/i-jared/catan/internal/game"
)

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "game seed (0 for a fixed board)")
	players := flag.Int("players", 3, "number of seats (2-4)")
	maxSteps := flag.Int("max-steps", 5000, "abort after this many commands")
	out := flag.String("out", "", "write the final board as a PNG to this path")
	flag.Parse()

	cfg := config.Load()
	logrus.SetLevel(cfg.ParseLogLevel())

	if *players < engine.MinPlayers || *players > engine.MaxPlayers {
		logrus.WithField("players", *players).Fatal("player count out of range")
	}

	cleanup, sess := setup(cfg, *seed, *players)
	defer teardown(cleanup)

	rng := rand.New(rand.NewSource(int64(*seed)))
	seats := make([]uuid.UUID, 0, *players)
	for i := 0; i < *players; i++ {
		id := uuid.New()
		seats = append(seats, id)
		if err := sess.AddPlayer(id, playerNames[i]); err != nil {
			logrus.WithError(err).Fatal("could not seat player")
		}
	}
	if err := sess.Start(); err != nil {
		logrus.WithError(err).Fatal("could not start game")
	}

	steps := drive(sess, seats, rng, *maxSteps)

	view := sess.StateFor(uuid.Nil)
	entry := logrus.WithFields(logrus.Fields{"steps": steps, "phase": view.Phase})
	if view.Winner != "" {
		entry.WithField("winner", view.Winner).Info("game finished")
		for _, p := range view.Players {
			logrus.WithFields(logrus.Fields{
				"name":   p.Name,
				"points": p.VisiblePoints,
				"roads":  p.HasLongestRoad,
				"army":   p.HasLargestArmy,
			}).Info("final standing")
		}
	} else {
		entry.Warn("step limit reached before a winner")
	}

	if *out != "" {
		if err := sess.RenderPNG(*out); err != nil {
			logrus.WithError(err).Fatal("could not render board")
		}
		logrus.WithField("path", *out).Info("board rendered")
	}
}

var playerNames = []string{"alice", "bob", "carol", "dave"}

type cleanupCtx struct {
	dbConnected bool
}

// setup wires the optional Redis and Postgres backends and creates the
// session. Both backends are skipped when unconfigured.
func setup(cfg *config.Config, seed uint64, players int) (*cleanupCtx, *game.Session) {
	cleanup := &cleanupCtx{}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cfg.RedisAddr != "" {
		if err := cache.InitRedis(ctx, cfg.RedisAddr); err != nil {
			logrus.WithError(err).Warn("redis unavailable, action history disabled")
		}
	}
	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			logrus.WithError(err).Warn("database unavailable, persistence disabled")
		} else {
			cleanup.dbConnected = true
		}
	}

	reg := game.NewRegistry()
	sess := reg.Create(seed)
	sess.BroadcastFn = func(ev game.GameEvent) {
		entry := logrus.WithField("event", ev.Type)
		switch ev.Type {
		case game.EventLongestRoad, game.EventLargestArmy, game.EventGameEnd:
			entry.WithField("data", ev.Data).Info("event")
		default:
			entry.WithField("data", ev.Data).Debug("event")
		}
	}

	logrus.WithFields(logrus.Fields{
		"gameID":  sess.ID,
		"seed":    seed,
		"players": players,
	}).Info("session created")
	return cleanup, sess
}

func teardown(c *cleanupCtx) {
	if c.dbConnected {
		database.Close()
	}
}

// drive submits random legal commands until the game finishes or the step
// limit runs out. Returns the number of accepted commands.
func drive(sess *game.Session, seats []uuid.UUID, rng *rand.Rand, maxSteps int) int {
	steps := 0
	for ; steps < maxSteps; steps++ {
		view := sess.StateFor(uuid.Nil)
		if view.Phase == "finished" {
			break
		}

		current, err := uuid.Parse(view.CurrentPlayer)
		if err != nil {
			logrus.WithError(err).Fatal("view has no current player")
		}

		var res game.CommandResult
		switch view.Phase {
		case "setup", "setup_reverse":
			res = placeSetupPiece(sess, current, rng)
		case "rolling":
			res = sess.HandleCommand(current, game.Command{Type: game.CmdRollDice})
		case "robber":
			res = moveRobber(sess, current, view, rng)
		case "main_turn":
			res = mainTurnMove(sess, current, rng)
		default:
			logrus.WithField("phase", view.Phase).Fatal("driver cannot act in this phase")
		}

		if !res.OK {
			logrus.WithFields(logrus.Fields{
				"phase":  view.Phase,
				"reason": res.Reason,
			}).Fatal("driver submitted an illegal command")
		}
	}
	return steps
}

func placeSetupPiece(sess *game.Session, current uuid.UUID, rng *rand.Rand) game.CommandResult {
	lp := sess.LegalPlacementsFor(current)
	if len(lp.SetupRoads) > 0 {
		e := lp.SetupRoads[rng.Intn(len(lp.SetupRoads))]
		return sess.HandleCommand(current, game.Command{
			Type: game.CmdPlaceSetupRoad, HexQ: e.Q, HexR: e.R, Direction: e.Direction,
		})
	}
	v := lp.SetupSettlements[rng.Intn(len(lp.SetupSettlements))]
	return sess.HandleCommand(current, game.Command{
		Type: game.CmdPlaceSetupSettlement, HexQ: v.Q, HexR: v.R, Direction: v.Direction,
	})
}

func moveRobber(sess *game.Session, current uuid.UUID, view game.GameView, rng *rand.Rand) game.CommandResult {
	targets := make([]game.BoardHex, 0, len(view.Hexes))
	for _, h := range view.Hexes {
		if !h.HasRobber {
			targets = append(targets, h)
		}
	}
	h := targets[rng.Intn(len(targets))]
	return sess.HandleCommand(current, game.Command{
		Type: game.CmdMoveRobber, HexQ: h.Q, HexR: h.R,
	})
}

// mainTurnMove tries builds in descending value order, falls back to a dev
// card or a bank trade, and ends the turn when nothing else lands.
func mainTurnMove(sess *game.Session, current uuid.UUID, rng *rand.Rand) game.CommandResult {
	lp := sess.LegalPlacementsFor(current)

	if len(lp.Cities) > 0 {
		v := lp.Cities[rng.Intn(len(lp.Cities))]
		if res := sess.HandleCommand(current, game.Command{
			Type: game.CmdBuildCity, HexQ: v.Q, HexR: v.R, Direction: v.Direction,
		}); res.OK {
			return res
		}
	}
	if len(lp.Settlements) > 0 {
		v := lp.Settlements[rng.Intn(len(lp.Settlements))]
		if res := sess.HandleCommand(current, game.Command{
			Type: game.CmdBuildSettlement, HexQ: v.Q, HexR: v.R, Direction: v.Direction,
		}); res.OK {
			return res
		}
	}
	if len(lp.Roads) > 0 {
		e := lp.Roads[rng.Intn(len(lp.Roads))]
		if res := sess.HandleCommand(current, game.Command{
			Type: game.CmdBuildRoad, HexQ: e.Q, HexR: e.R, Direction: e.Direction,
		}); res.OK {
			return res
		}
	}

	if res, ok := tryKnight(sess, current, rng); ok {
		return res
	}
	if res, ok := tryBankTrade(sess, current, rng); ok {
		return res
	}
	if rng.Intn(3) == 0 {
		if res := sess.HandleCommand(current, game.Command{Type: game.CmdBuyDevCard}); res.OK {
			return res
		}
	}

	return sess.HandleCommand(current, game.Command{Type: game.CmdEndTurn})
}

func tryKnight(sess *game.Session, current uuid.UUID, rng *rand.Rand) (game.CommandResult, bool) {
	view := sess.StateFor(current)
	holding := false
	for _, card := range view.You.DevCards {
		if card == engine.DevKnight.String() {
			holding = true
			break
		}
	}
	if !holding || rng.Intn(2) == 0 {
		return game.CommandResult{}, false
	}

	targets := make([]game.BoardHex, 0, len(view.Hexes))
	for _, h := range view.Hexes {
		if !h.HasRobber {
			targets = append(targets, h)
		}
	}
	h := targets[rng.Intn(len(targets))]
	res := sess.HandleCommand(current, game.Command{
		Type: game.CmdPlayKnight, HexQ: h.Q, HexR: h.R,
	})
	return res, res.OK
}

func tryBankTrade(sess *game.Session, current uuid.UUID, rng *rand.Rand) (game.CommandResult, bool) {
	view := sess.StateFor(current)
	for give, n := range view.You.Hand {
		if n < sess.TradeRatioFor(current, give) {
			continue
		}
		receive := engine.Resources[rng.Intn(len(engine.Resources))].String()
		if receive == give {
			continue
		}
		res := sess.HandleCommand(current, game.Command{
			Type: game.CmdBankTrade, Give: give, Receive: receive,
		})
		return res, res.OK
	}
	return game.CommandResult{}, false
}

func init() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
