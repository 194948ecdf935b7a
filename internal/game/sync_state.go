package game

import (
	"github.com/google/uuid"

	"github.com/i-jared/catan/engine"
)

// BoardHex is one tile in a client-facing board snapshot.
type BoardHex struct {
	Q         int    `json:"q"`
	R         int    `json:"r"`
	Terrain   string `json:"terrain"`
	Number    int    `json:"number"`
	HasRobber bool   `json:"hasRobber"`
}

// BoardVertex is one built corner; unbuilt vertices are omitted from views.
type BoardVertex struct {
	Q         int    `json:"q"`
	R         int    `json:"r"`
	Direction int    `json:"direction"`
	Building  string `json:"building"`
	Owner     string `json:"owner"`
}

// BoardEdge is one built road; empty edges are omitted from views.
type BoardEdge struct {
	Q         int    `json:"q"`
	R         int    `json:"r"`
	Direction int    `json:"direction"`
	Owner     string `json:"owner"`
}

// BoardPort is one port and its landing corners.
type BoardPort struct {
	Kind     string        `json:"kind"`
	Vertices []VertexParam `json:"vertices"`
}

// VertexParam addresses a vertex in view payloads.
type VertexParam struct {
	Q         int `json:"q"`
	R         int `json:"r"`
	Direction int `json:"direction"`
}

// PlayerSummary is what every player may know about a seat: counts, not
// contents.
type PlayerSummary struct {
	PlayerID       string `json:"playerId"`
	Name           string `json:"name"`
	Seat           int    `json:"seat"`
	ResourceCount  int    `json:"resourceCount"`
	DevCardCount   int    `json:"devCardCount"`
	VisiblePoints  int    `json:"visiblePoints"`
	KnightsPlayed  int    `json:"knightsPlayed"`
	HasLongestRoad bool   `json:"hasLongestRoad"`
	HasLargestArmy bool   `json:"hasLargestArmy"`
}

// PrivateState is the observer's own hidden information.
type PrivateState struct {
	Hand     map[string]int `json:"hand"`
	DevCards []string       `json:"devCards"`
	Points   int            `json:"points"` // includes hidden victory points
}

// GameView is an observer-tailored snapshot: the observer's own hand and
// cards are revealed, opponents appear as public summaries only.
type GameView struct {
	GameID        string          `json:"gameId"`
	Phase         string          `json:"phase"`
	CurrentPlayer string          `json:"currentPlayer"`
	LastRoll      int             `json:"lastRoll"`
	DevDeckSize   int             `json:"devDeckSize"`
	Hexes         []BoardHex      `json:"hexes"`
	Buildings     []BoardVertex   `json:"buildings"`
	Roads         []BoardEdge     `json:"roads"`
	Ports         []BoardPort     `json:"ports"`
	Players       []PlayerSummary `json:"players"`
	You           *PrivateState   `json:"you,omitempty"`
	Winner        string          `json:"winner,omitempty"`
}

// StateFor builds the snapshot an observer is allowed to see. An unknown
// observer gets the spectator view: all public, nothing private.
func (s *Session) StateFor(observer uuid.UUID) GameView {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.stateForLocked(observer)
}

// stateForLocked assembles the view. Assumes lock is held by caller.
func (s *Session) stateForLocked(observer uuid.UUID) GameView {
	eng := s.eng
	view := GameView{
		GameID:      s.ID.String(),
		Phase:       eng.Phase.String(),
		LastRoll:    eng.LastRoll.Total,
		DevDeckSize: len(eng.DevDeck),
	}
	if len(s.EngineToPlayer) > 0 {
		view.CurrentPlayer = s.EngineToPlayer[eng.Current].String()
	}
	if eng.Finished() {
		view.Winner = s.EngineToPlayer[eng.Winner].String()
	}

	for _, hex := range eng.Board.Hexes {
		view.Hexes = append(view.Hexes, BoardHex{
			Q:         hex.Coord.Q,
			R:         hex.Coord.R,
			Terrain:   hex.Terrain.String(),
			Number:    hex.Number,
			HasRobber: hex.Coord == eng.Board.Robber,
		})
	}
	for _, vert := range eng.Board.Vertices {
		if vert.Building == engine.BuildingNone {
			continue
		}
		view.Buildings = append(view.Buildings, BoardVertex{
			Q:         vert.Coord.Hex.Q,
			R:         vert.Coord.Hex.R,
			Direction: vert.Coord.Dir,
			Building:  vert.Building.String(),
			Owner:     s.EngineToPlayer[vert.Owner].String(),
		})
	}
	for _, edge := range eng.Board.Edges {
		if !edge.HasRoad {
			continue
		}
		view.Roads = append(view.Roads, BoardEdge{
			Q:         edge.Coord.Hex.Q,
			R:         edge.Coord.Hex.R,
			Direction: edge.Coord.Dir,
			Owner:     s.EngineToPlayer[edge.Owner].String(),
		})
	}
	for _, port := range eng.Board.Ports {
		bp := BoardPort{Kind: port.Kind.String()}
		for _, vc := range port.Vertices {
			bp.Vertices = append(bp.Vertices, VertexParam{Q: vc.Hex.Q, R: vc.Hex.R, Direction: vc.Dir})
		}
		view.Ports = append(view.Ports, bp)
	}

	for i, p := range eng.Players {
		view.Players = append(view.Players, PlayerSummary{
			PlayerID:       s.EngineToPlayer[i].String(),
			Name:           p.Name,
			Seat:           i,
			ResourceCount:  p.Hand.Total(),
			DevCardCount:   len(p.DevCards),
			VisiblePoints:  eng.VisiblePoints(i),
			KnightsPlayed:  p.KnightsPlayed,
			HasLongestRoad: p.HasLongestRoad,
			HasLargestArmy: p.HasLargestArmy,
		})
	}

	if idx, ok := s.PlayerToEngine[observer]; ok {
		p := eng.Players[idx]
		private := &PrivateState{
			Hand:   make(map[string]int, len(engine.Resources)),
			Points: eng.VictoryPoints(idx, true),
		}
		for _, r := range engine.Resources {
			private.Hand[r.String()] = p.Hand.Get(r)
		}
		for _, card := range p.DevCards {
			private.DevCards = append(private.DevCards, card.String())
		}
		view.You = private
	}

	return view
}

// LegalPlacements lists where a player could currently put pieces. Which
// lists are populated depends on the phase: setup phases fill the setup
// lists, the main turn fills the build lists.
type LegalPlacements struct {
	SetupSettlements []VertexParam `json:"setupSettlements,omitempty"`
	SetupRoads       []EdgeParam   `json:"setupRoads,omitempty"`
	Settlements      []VertexParam `json:"settlements,omitempty"`
	Roads            []EdgeParam   `json:"roads,omitempty"`
	Cities           []VertexParam `json:"cities,omitempty"`
}

// LegalPlacementsFor returns the placement options for one player.
func (s *Session) LegalPlacementsFor(playerID uuid.UUID) LegalPlacements {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	var out LegalPlacements
	idx, ok := s.PlayerToEngine[playerID]
	if !ok {
		return out
	}

	switch s.eng.Phase {
	case engine.PhaseSetup, engine.PhaseSetupReverse:
		if idx != s.eng.Current {
			return out
		}
		if roads := s.eng.LegalSetupRoadSpots(); len(roads) > 0 {
			out.SetupRoads = edgeParams(roads)
		} else {
			out.SetupSettlements = vertexParams(s.eng.LegalSetupSettlementSpots())
		}
	case engine.PhaseMainTurn:
		out.Settlements = vertexParams(s.eng.LegalSettlementSpots(idx))
		out.Roads = edgeParams(s.eng.LegalRoadSpots(idx))
		out.Cities = vertexParams(s.eng.LegalCitySpots(idx))
	}
	return out
}

// TradeRatioFor exposes the player's bank ratio for a resource name.
func (s *Session) TradeRatioFor(playerID uuid.UUID, resource string) int {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	idx, ok := s.PlayerToEngine[playerID]
	if !ok {
		return 4
	}
	return s.eng.TradeRatio(idx, engine.ParseResource(resource))
}

func vertexParams(spots []engine.VertexCoord) []VertexParam {
	out := make([]VertexParam, len(spots))
	for i, v := range spots {
		out[i] = VertexParam{Q: v.Hex.Q, R: v.Hex.R, Direction: v.Dir}
	}
	return out
}

func edgeParams(spots []engine.EdgeCoord) []EdgeParam {
	out := make([]EdgeParam, len(spots))
	for i, e := range spots {
		out[i] = EdgeParam{Q: e.Hex.Q, R: e.Hex.R, Direction: e.Dir}
	}
	return out
}
