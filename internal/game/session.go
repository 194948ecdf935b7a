// Package game adapts the pure rules engine for concurrent multiplayer
// use: one mutex per game, UUID player identity, string-routed commands,
// event broadcast callbacks, asynchronous action history and persistence.
package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/i-jared/catan/engine"
	"github.com/i-jared/catan/internal/cache"
	"github.com/i-jared/catan/internal/database"
	"github.com/i-jared/catan/internal/render"
)

// GameEvent is a broadcastable game occurrence.
type GameEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// Event types fired by the session.
const (
	EventPlayerJoined    = "player_joined"
	EventGameStarted     = "game_started"
	EventSetupPlaced     = "setup_placed"
	EventDiceRolled      = "dice_rolled"
	EventRobberMoved     = "robber_moved"
	EventRoadBuilt       = "road_built"
	EventSettlementBuilt = "settlement_built"
	EventCityBuilt       = "city_built"
	EventDevCardBought   = "dev_card_bought"
	EventDevCardPlayed   = "dev_card_played"
	EventBankTrade       = "bank_trade"
	EventTurnEnded       = "turn_ended"
	EventLongestRoad     = "longest_road_claimed"
	EventLargestArmy     = "largest_army_claimed"
	EventGameEnd         = "game_end"
)

// EdgeParam addresses an edge in a command payload.
type EdgeParam struct {
	Q         int `json:"q"`
	R         int `json:"r"`
	Direction int `json:"direction"`
}

// Command is the wire-level action a player submits. Type selects the
// operation; the remaining fields are read per operation and ignored
// otherwise. Resources travel as lowercase names, players as UUID strings.
type Command struct {
	Type string `json:"type"`

	HexQ      int `json:"q"`
	HexR      int `json:"r"`
	Direction int `json:"direction"`

	Give      string `json:"give,omitempty"`
	Receive   string `json:"receive,omitempty"`
	Resource  string `json:"resource,omitempty"`
	ResourceA string `json:"resourceA,omitempty"`
	ResourceB string `json:"resourceB,omitempty"`

	StealFrom string      `json:"stealFrom,omitempty"` // empty = no steal
	Edges     []EdgeParam `json:"edges,omitempty"`
}

// Command type strings accepted by HandleCommand.
const (
	CmdPlaceSetupSettlement = "place_setup_settlement"
	CmdPlaceSetupRoad       = "place_setup_road"
	CmdRollDice             = "roll_dice"
	CmdMoveRobber           = "move_robber"
	CmdBuildRoad            = "build_road"
	CmdBuildSettlement      = "build_settlement"
	CmdBuildCity            = "build_city"
	CmdBuyDevCard           = "buy_dev_card"
	CmdPlayKnight           = "play_knight"
	CmdPlayRoadBuilding     = "play_road_building"
	CmdPlayYearOfPlenty     = "play_year_of_plenty"
	CmdPlayMonopoly         = "play_monopoly"
	CmdBankTrade            = "bank_trade"
	CmdEndTurn              = "end_turn"
)

// CommandResult reports a command's outcome to the submitting client.
type CommandResult struct {
	OK     bool                   `json:"ok"`
	Reason string                 `json:"reason,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// OnGameEndFunc is called once when a game finishes.
type OnGameEndFunc func(gameID uuid.UUID, winner uuid.UUID, points map[uuid.UUID]int)

// Session wraps one engine.Game for concurrent access. All exported
// methods take Mu; unexported helpers assume the lock is held by caller.
type Session struct {
	ID uuid.UUID

	Mu  sync.Mutex
	eng *engine.Game

	PlayerToEngine map[uuid.UUID]int
	EngineToPlayer []uuid.UUID

	actionIndex int64

	// Injected callbacks. Nil callbacks are skipped.
	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc
}

// NewSession creates a session around a freshly generated game.
func NewSession(seed uint64) *Session {
	id, _ := uuid.NewRandom()
	return &Session{
		ID:             id,
		eng:            engine.NewGame(seed),
		PlayerToEngine: make(map[uuid.UUID]int),
	}
}

// AddPlayer seats playerID in the game. Only valid before Start.
func (s *Session) AddPlayer(playerID uuid.UUID, name string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	idx, err := s.eng.AddPlayer(name)
	if err != nil {
		return err
	}
	s.PlayerToEngine[playerID] = idx
	s.EngineToPlayer = append(s.EngineToPlayer, playerID)
	s.logAction(playerID, EventPlayerJoined, map[string]interface{}{"name": name, "seat": idx})
	s.fireEvent(GameEvent{Type: EventPlayerJoined, Data: map[string]interface{}{
		"playerId": playerID.String(),
		"name":     name,
		"seat":     idx,
	}})
	return nil
}

// Start begins setup.
func (s *Session) Start() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if err := s.eng.Start(); err != nil {
		return err
	}
	s.logAction(uuid.Nil, EventGameStarted, nil)
	s.fireEvent(GameEvent{Type: EventGameStarted, Data: map[string]interface{}{
		"currentPlayer": s.currentPlayerID().String(),
	}})
	return nil
}

// HandleCommand routes a player's command into the engine. Rejections come
// back as CommandResult{OK:false} with the rule error's text; only
// accepted commands generate events and history records.
func (s *Session) HandleCommand(playerID uuid.UUID, cmd Command) CommandResult {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	idx, ok := s.PlayerToEngine[playerID]
	if !ok {
		return CommandResult{OK: false, Reason: "player is not in this game"}
	}

	prevRoadHolder := s.eng.LongestRoadPlayer
	prevArmyHolder := s.eng.LargestArmyPlayer

	res, ev := s.dispatch(idx, cmd)
	if !res.OK {
		return res
	}

	s.logAction(playerID, cmd.Type, res.Data)
	if ev != nil {
		s.fireEvent(*ev)
	}
	s.afterCommand(prevRoadHolder, prevArmyHolder)
	return res
}

// dispatch executes one command against the engine. Assumes lock is held
// by caller. Returns the result plus the event to broadcast on success.
func (s *Session) dispatch(idx int, cmd Command) (CommandResult, *GameEvent) {
	hex := engine.HexCoord{Q: cmd.HexQ, R: cmd.HexR}
	vertex := engine.VertexCoord{Hex: hex, Dir: cmd.Direction}
	edge := engine.EdgeCoord{Hex: hex, Dir: cmd.Direction}
	actor := s.EngineToPlayer[idx].String()

	switch cmd.Type {
	case CmdPlaceSetupSettlement:
		if err := s.eng.PlaceSetupSettlement(idx, vertex); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventSetupPlaced, Data: map[string]interface{}{
			"playerId": actor, "piece": "settlement", "q": cmd.HexQ, "r": cmd.HexR, "direction": cmd.Direction,
		}}

	case CmdPlaceSetupRoad:
		if err := s.eng.PlaceSetupRoad(idx, edge); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventSetupPlaced, Data: map[string]interface{}{
			"playerId": actor, "piece": "road", "q": cmd.HexQ, "r": cmd.HexR, "direction": cmd.Direction,
		}}

	case CmdRollDice:
		roll, err := s.eng.Roll(idx)
		if err != nil {
			return reject(err), nil
		}
		data := map[string]interface{}{"die1": roll.Die1, "die2": roll.Die2, "total": roll.Total}
		return accept(data), &GameEvent{Type: EventDiceRolled, Data: map[string]interface{}{
			"playerId": actor, "die1": roll.Die1, "die2": roll.Die2, "total": roll.Total,
		}}

	case CmdMoveRobber:
		stealIdx, err := s.stealTarget(cmd.StealFrom)
		if err != nil {
			return CommandResult{OK: false, Reason: err.Error()}, nil
		}
		if err := s.eng.MoveRobber(idx, hex, stealIdx); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventRobberMoved, Data: map[string]interface{}{
			"playerId": actor, "q": cmd.HexQ, "r": cmd.HexR, "stole": cmd.StealFrom != "",
		}}

	case CmdBuildRoad:
		if err := s.eng.BuildRoad(idx, edge); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventRoadBuilt, Data: map[string]interface{}{
			"playerId": actor, "q": cmd.HexQ, "r": cmd.HexR, "direction": cmd.Direction,
		}}

	case CmdBuildSettlement:
		if err := s.eng.BuildSettlement(idx, vertex); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventSettlementBuilt, Data: map[string]interface{}{
			"playerId": actor, "q": cmd.HexQ, "r": cmd.HexR, "direction": cmd.Direction,
		}}

	case CmdBuildCity:
		if err := s.eng.BuildCity(idx, vertex); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventCityBuilt, Data: map[string]interface{}{
			"playerId": actor, "q": cmd.HexQ, "r": cmd.HexR, "direction": cmd.Direction,
		}}

	case CmdBuyDevCard:
		card, err := s.eng.BuyDevCard(idx)
		if err != nil {
			return reject(err), nil
		}
		// The drawn card goes only to the buyer; the table sees the purchase.
		s.fireEventToPlayer(s.EngineToPlayer[idx], GameEvent{Type: EventDevCardBought, Data: map[string]interface{}{
			"card": card.String(),
		}})
		return accept(map[string]interface{}{"card": card.String()}), &GameEvent{
			Type: EventDevCardBought, Data: map[string]interface{}{"playerId": actor},
		}

	case CmdPlayKnight:
		stealIdx, err := s.stealTarget(cmd.StealFrom)
		if err != nil {
			return CommandResult{OK: false, Reason: err.Error()}, nil
		}
		if err := s.eng.PlayKnight(idx, hex, stealIdx); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventDevCardPlayed, Data: map[string]interface{}{
			"playerId": actor, "card": engine.DevKnight.String(), "q": cmd.HexQ, "r": cmd.HexR,
		}}

	case CmdPlayRoadBuilding:
		edges := make([]engine.EdgeCoord, len(cmd.Edges))
		for i, ep := range cmd.Edges {
			edges[i] = engine.EdgeCoord{Hex: engine.HexCoord{Q: ep.Q, R: ep.R}, Dir: ep.Direction}
		}
		if err := s.eng.PlayRoadBuilding(idx, edges); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventDevCardPlayed, Data: map[string]interface{}{
			"playerId": actor, "card": engine.DevRoadBuilding.String(), "roads": len(edges),
		}}

	case CmdPlayYearOfPlenty:
		if err := s.eng.PlayYearOfPlenty(idx, engine.ParseResource(cmd.ResourceA), engine.ParseResource(cmd.ResourceB)); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventDevCardPlayed, Data: map[string]interface{}{
			"playerId": actor, "card": engine.DevYearOfPlenty.String(),
		}}

	case CmdPlayMonopoly:
		if err := s.eng.PlayMonopoly(idx, engine.ParseResource(cmd.Resource)); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventDevCardPlayed, Data: map[string]interface{}{
			"playerId": actor, "card": engine.DevMonopoly.String(), "resource": cmd.Resource,
		}}

	case CmdBankTrade:
		if err := s.eng.BankTrade(idx, engine.ParseResource(cmd.Give), engine.ParseResource(cmd.Receive)); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventBankTrade, Data: map[string]interface{}{
			"playerId": actor, "give": cmd.Give, "receive": cmd.Receive,
		}}

	case CmdEndTurn:
		if err := s.eng.EndTurn(idx); err != nil {
			return reject(err), nil
		}
		return accept(nil), &GameEvent{Type: EventTurnEnded, Data: map[string]interface{}{
			"playerId": actor, "nextPlayer": s.currentPlayerID().String(),
		}}
	}

	return CommandResult{OK: false, Reason: "unknown command type: " + cmd.Type}, nil
}

// stealTarget resolves a steal-from UUID string into an engine index.
// Assumes lock is held by caller.
func (s *Session) stealTarget(raw string) (int, error) {
	if raw == "" {
		return -1, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return -1, err
	}
	idx, ok := s.PlayerToEngine[id]
	if !ok {
		return -1, &unknownPlayerError{id}
	}
	return idx, nil
}

type unknownPlayerError struct{ id uuid.UUID }

func (e *unknownPlayerError) Error() string {
	return "player " + e.id.String() + " is not in this game"
}

// afterCommand fires achievement and end-of-game events once the engine
// has settled. Assumes lock is held by caller.
func (s *Session) afterCommand(prevRoadHolder, prevArmyHolder int) {
	if holder := s.eng.LongestRoadPlayer; holder != prevRoadHolder && holder >= 0 {
		s.fireEvent(GameEvent{Type: EventLongestRoad, Data: map[string]interface{}{
			"playerId": s.EngineToPlayer[holder].String(),
			"length":   s.eng.LongestRoadLength,
		}})
	}
	if holder := s.eng.LargestArmyPlayer; holder != prevArmyHolder && holder >= 0 {
		s.fireEvent(GameEvent{Type: EventLargestArmy, Data: map[string]interface{}{
			"playerId": s.EngineToPlayer[holder].String(),
			"size":     s.eng.LargestArmySize,
		}})
	}
	if s.eng.Finished() {
		s.finishGame()
	}
}

// finishGame broadcasts the result, persists it and notifies the owner.
// Assumes lock is held by caller.
func (s *Session) finishGame() {
	winnerID := s.EngineToPlayer[s.eng.Winner]
	points := make(map[uuid.UUID]int, len(s.eng.Players))
	for i := range s.eng.Players {
		points[s.EngineToPlayer[i]] = s.eng.VictoryPoints(i, true)
	}

	s.logAction(uuid.Nil, EventGameEnd, map[string]interface{}{"winner": winnerID.String()})
	s.fireEvent(GameEvent{Type: EventGameEnd, Data: map[string]interface{}{
		"winner": winnerID.String(),
		"points": pointsByString(points),
	}})

	s.persistFinalGameState(winnerID, points)

	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, winnerID, points)
	}
}

// persistFinalGameState stores the standings asynchronously when a
// database pool is configured. Assumes lock is held by caller.
func (s *Session) persistFinalGameState(winnerID uuid.UUID, points map[uuid.UUID]int) {
	state := database.FinalGameState{
		GameID:  s.ID,
		Winner:  winnerID,
		EndedAt: time.Now(),
	}
	for i, p := range s.eng.Players {
		playerID := s.EngineToPlayer[i]
		state.Standings = append(state.Standings, database.PlayerStanding{
			PlayerID:       playerID,
			Name:           p.Name,
			Points:         points[playerID],
			Settlements:    p.Settlements,
			Cities:         p.Cities,
			Roads:          p.Roads,
			KnightsPlayed:  p.KnightsPlayed,
			HasLongestRoad: p.HasLongestRoad,
			HasLargestArmy: p.HasLargestArmy,
		})
	}

	go func(st database.FinalGameState) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.StoreFinalGameState(ctx, st); err != nil {
			logrus.WithError(err).WithField("gameID", st.GameID).Error("failed to persist final game state")
		}
	}(state)
}

// logAction publishes one history record to Redis asynchronously. Skipped
// entirely when no Redis client is configured. Assumes lock is held by
// caller.
func (s *Session) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	s.actionIndex++
	if payload == nil {
		payload = make(map[string]interface{})
	}
	rec := cache.GameActionRecord{
		GameID:      s.ID,
		ActionIndex: s.actionIndex,
		ActorID:     actorID,
		ActionType:  actionType,
		Payload:     payload,
		Timestamp:   time.Now().UnixMilli(),
	}

	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cache.Rdb == nil {
			return
		}
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"gameID": rec.GameID,
				"index":  rec.ActionIndex,
				"type":   rec.ActionType,
			}).Error("failed publishing action history")
		}
	}(rec)
}

// fireEvent broadcasts to the whole table. Assumes lock is held by caller.
func (s *Session) fireEvent(ev GameEvent) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends one player a private event. Assumes lock is held
// by caller.
func (s *Session) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if s.BroadcastToPlayerFn != nil {
		s.BroadcastToPlayerFn(playerID, ev)
	}
}

// RenderPNG writes a snapshot of the board to path.
func (s *Session) RenderPNG(path string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return render.BoardPNG(s.eng, path)
}

// currentPlayerID maps the engine's current seat to its UUID. Assumes lock
// is held by caller.
func (s *Session) currentPlayerID() uuid.UUID {
	if len(s.EngineToPlayer) == 0 {
		return uuid.Nil
	}
	return s.EngineToPlayer[s.eng.Current]
}

// reject converts an engine error into a failed result.
func reject(err error) CommandResult {
	return CommandResult{OK: false, Reason: err.Error()}
}

// accept builds a successful result.
func accept(data map[string]interface{}) CommandResult {
	return CommandResult{OK: true, Data: data}
}

// pointsByString re-keys a points map for JSON payloads.
func pointsByString(points map[uuid.UUID]int) map[string]int {
	out := make(map[string]int, len(points))
	for id, pts := range points {
		out[id.String()] = pts
	}
	return out
}
