// Package engine implements the rules of a hex-grid settlement board game.
//
// The package is a pure state machine: no I/O, no goroutines, no clocks.
// Commands validate fully before mutating, so a rejected command leaves the
// game untouched. Concurrency control and player identity mapping live in
// the service adapter, not here.
package engine

// Phase is the lifecycle stage of a game.
type Phase uint8

const (
	PhaseWaitingForPlayers Phase = iota
	PhaseSetup
	PhaseSetupReverse
	PhaseRolling
	PhaseRobber
	PhaseMainTurn
	PhaseStealing // reserved; stealing resolves inside MoveRobber
	PhaseTrading  // reserved; domestic trade offers are not implemented
	PhaseFinished
)

// String returns the snake_case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWaitingForPlayers:
		return "waiting_for_players"
	case PhaseSetup:
		return "setup"
	case PhaseSetupReverse:
		return "setup_reverse"
	case PhaseRolling:
		return "rolling"
	case PhaseRobber:
		return "robber"
	case PhaseMainTurn:
		return "main_turn"
	case PhaseStealing:
		return "stealing"
	case PhaseTrading:
		return "trading"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// DiceRoll records the result of one roll.
type DiceRoll struct {
	Die1  int `json:"die1"`
	Die2  int `json:"die2"`
	Total int `json:"total"`
}

// Game is the complete state of one match.
type Game struct {
	Board   *Board    `json:"board"`
	Players []*Player `json:"players"`
	DevDeck []DevCard `json:"-"`

	Phase    Phase    `json:"phase"`
	Current  int      `json:"current"` // index of the player whose turn it is
	LastRoll DiceRoll `json:"lastRoll"`

	// Achievement records. Seeded so a claim requires beating the seed,
	// which enforces the minimum thresholds: the first longest-road holder
	// needs length 5, the first largest-army holder needs 3 knights.
	LongestRoadLength int `json:"longestRoadLength"`
	LongestRoadPlayer int `json:"longestRoadPlayer"` // -1 while unclaimed
	LargestArmySize   int `json:"largestArmySize"`
	LargestArmyPlayer int `json:"largestArmyPlayer"` // -1 while unclaimed

	// DevCardPlayed is set when the current player plays a non-VP dev card
	// and cleared on turn change.
	DevCardPlayed bool `json:"devCardPlayed"`

	// setupSettlement remembers the settlement just placed this setup turn
	// so the paired road must touch it. Nil between pairs.
	setupSettlement *VertexCoord

	Winner int `json:"winner"` // -1 until the game finishes

	rng uint64
}

// NewGame creates a game with a generated board and an empty roster.
// The same seed always produces the same board and dev deck order.
func NewGame(seed uint64) *Game {
	if seed == 0 {
		seed = 1 // xorshift must never hold zero
	}
	g := &Game{
		Phase:             PhaseWaitingForPlayers,
		Current:           0,
		LongestRoadLength: LongestRoadMinimum - 1,
		LongestRoadPlayer: -1,
		LargestArmySize:   LargestArmyMinimum - 1,
		LargestArmyPlayer: -1,
		Winner:            -1,
		rng:               seed,
	}
	g.Board = g.generateBoard()
	g.DevDeck = newDevDeck()
	shuffle(g, g.DevDeck)
	return g
}

// AddPlayer seats a new player and returns their index. Joining is only
// possible before the game starts.
func (g *Game) AddPlayer(name string) (int, error) {
	if g.Phase != PhaseWaitingForPlayers {
		return -1, ruleErrf(ErrPhaseViolation, "cannot join in phase %s", g.Phase)
	}
	if len(g.Players) >= MaxPlayers {
		return -1, ruleErrf(ErrSupplyExhaustion, "game already has %d players", MaxPlayers)
	}
	id := len(g.Players)
	g.Players = append(g.Players, newPlayer(id, name))
	return id, nil
}

// Start begins the setup phase. At least MinPlayers must have joined.
func (g *Game) Start() error {
	if g.Phase != PhaseWaitingForPlayers {
		return ruleErrf(ErrPhaseViolation, "cannot start in phase %s", g.Phase)
	}
	if len(g.Players) < MinPlayers {
		return ruleErrf(ErrPhaseViolation, "need at least %d players, have %d", MinPlayers, len(g.Players))
	}
	g.Phase = PhaseSetup
	g.Current = 0
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil before Start.
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.Current]
}

// playerByID returns the player at index id, or nil if out of range.
func (g *Game) playerByID(id int) *Player {
	if id < 0 || id >= len(g.Players) {
		return nil
	}
	return g.Players[id]
}

// requireTurn rejects unless the game is in phase want and it is player's
// turn.
func (g *Game) requireTurn(player int, want Phase) error {
	if g.Phase != want {
		return ruleErrf(ErrPhaseViolation, "action requires phase %s, game is in %s", want, g.Phase)
	}
	if player != g.Current {
		return ruleErrf(ErrPhaseViolation, "not player %d's turn", player)
	}
	return nil
}

// ---------------------------------------------------------------------------
// RNG (xorshift64)
// ---------------------------------------------------------------------------

// nextRand advances the xorshift64 state and returns it.
func (g *Game) nextRand() uint64 {
	x := g.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.rng = x
	return x
}

// randN returns a value in [0, n).
func (g *Game) randN(n int) int {
	return int(g.nextRand() % uint64(n))
}

// rollDie returns a value in [1, 6].
func (g *Game) rollDie() int {
	return g.randN(6) + 1
}

// shuffle runs an in-place Fisher-Yates over s using the game's RNG.
func shuffle[T any](g *Game, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.randN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
