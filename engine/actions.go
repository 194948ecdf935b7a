package engine

// Commands validate every precondition before touching state. A non-nil
// error means the game is exactly as it was.

// ---------------------------------------------------------------------------
// Setup phase
// ---------------------------------------------------------------------------

// PlaceSetupSettlement places player's free settlement during Setup or
// SetupReverse. The second settlement (SetupReverse) immediately pays one
// resource for each adjacent producing hex.
func (g *Game) PlaceSetupSettlement(player int, v VertexCoord) error {
	if g.Phase != PhaseSetup && g.Phase != PhaseSetupReverse {
		return ruleErrf(ErrPhaseViolation, "setup placement requires setup phase, game is in %s", g.Phase)
	}
	if player != g.Current {
		return ruleErrf(ErrPhaseViolation, "not player %d's turn", player)
	}
	if g.setupSettlement != nil {
		return ruleErrf(ErrPhaseViolation, "settlement already placed, place its road")
	}
	vert := g.Board.VertexAt(v)
	if vert == nil {
		return ruleErrf(ErrInvalidTarget, "no vertex at (%d,%d) dir %d", v.Hex.Q, v.Hex.R, v.Dir)
	}
	if !g.vertexDistanceOK(v) {
		return ruleErrf(ErrPlacementIllegal, "vertex is occupied or too close to another building")
	}

	p := g.Players[player]
	vert.Building = BuildingSettlement
	vert.Owner = player
	p.Settlements--

	if g.Phase == PhaseSetupReverse {
		for _, hc := range vert.Coord.TouchingHexes() {
			if hex := g.Board.HexAt(hc); hex != nil {
				p.Hand.Add(ResourceOf(hex.Terrain), 1)
			}
		}
	}

	c := vert.Coord
	g.setupSettlement = &c
	return nil
}

// PlaceSetupRoad places the road paired with the settlement just placed,
// then advances the setup rotation.
func (g *Game) PlaceSetupRoad(player int, e EdgeCoord) error {
	if g.Phase != PhaseSetup && g.Phase != PhaseSetupReverse {
		return ruleErrf(ErrPhaseViolation, "setup placement requires setup phase, game is in %s", g.Phase)
	}
	if player != g.Current {
		return ruleErrf(ErrPhaseViolation, "not player %d's turn", player)
	}
	if g.setupSettlement == nil {
		return ruleErrf(ErrPhaseViolation, "place a settlement before its road")
	}
	edge := g.Board.EdgeAt(e)
	if edge == nil {
		return ruleErrf(ErrInvalidTarget, "no edge at (%d,%d) dir %d", e.Hex.Q, e.Hex.R, e.Dir)
	}
	if edge.HasRoad {
		return ruleErrf(ErrPlacementIllegal, "edge already has a road")
	}
	if !edgeTouchesVertex(edge.Coord, *g.setupSettlement) {
		return ruleErrf(ErrPlacementIllegal, "setup road must touch the settlement just placed")
	}

	p := g.Players[player]
	edge.HasRoad = true
	edge.Owner = player
	p.Roads--
	g.setupSettlement = nil
	g.advanceSetup()
	return nil
}

// advanceSetup moves the setup rotation: forward through the roster, then
// the last seat places again, then backward to seat 0, then Rolling begins.
func (g *Game) advanceSetup() {
	last := len(g.Players) - 1
	if g.Phase == PhaseSetup {
		if g.Current == last {
			g.Phase = PhaseSetupReverse // same seat places again
		} else {
			g.Current++
		}
		return
	}
	// SetupReverse
	if g.Current == 0 {
		g.Phase = PhaseRolling
	} else {
		g.Current--
	}
}

// ---------------------------------------------------------------------------
// Dice and production
// ---------------------------------------------------------------------------

// Roll rolls both dice for the current player. A 7 produces nothing and
// moves the game to the Robber phase; any other total pays production to
// every building adjacent to a matching hex not holding the robber.
func (g *Game) Roll(player int) (DiceRoll, error) {
	if err := g.requireTurn(player, PhaseRolling); err != nil {
		return DiceRoll{}, err
	}

	roll := DiceRoll{Die1: g.rollDie(), Die2: g.rollDie()}
	roll.Total = roll.Die1 + roll.Die2
	g.LastRoll = roll

	if roll.Total == 7 {
		g.Phase = PhaseRobber
		return roll, nil
	}

	g.distributeProduction(roll.Total)
	g.Phase = PhaseMainTurn
	return roll, nil
}

// distributeProduction pays out every hex whose token matches total.
// Settlements earn one card, cities two. The robber's hex is skipped.
func (g *Game) distributeProduction(total int) {
	for _, hex := range g.Board.Hexes {
		if hex.Number != total || hex.Coord == g.Board.Robber {
			continue
		}
		res := ResourceOf(hex.Terrain)
		for _, vc := range hex.Coord.Vertices() {
			vert := g.Board.VertexAt(vc)
			if vert == nil || vert.Building == BuildingNone {
				continue
			}
			n := 1
			if vert.Building == BuildingCity {
				n = 2
			}
			g.Players[vert.Owner].Hand.Add(res, n)
		}
	}
}

// MoveRobber relocates the robber for the current player and optionally
// steals one random card from stealFrom, who must have a building touching
// the destination hex. Pass stealFrom = -1 to steal from nobody.
func (g *Game) MoveRobber(player int, dest HexCoord, stealFrom int) error {
	if err := g.requireTurn(player, PhaseRobber); err != nil {
		return err
	}
	if err := g.validateRobberMove(player, dest, stealFrom); err != nil {
		return err
	}
	g.applyRobberMove(player, dest, stealFrom)
	g.Phase = PhaseMainTurn
	return nil
}

// validateRobberMove checks a robber destination and steal target without
// mutating anything. Shared by MoveRobber and PlayKnight.
func (g *Game) validateRobberMove(player int, dest HexCoord, stealFrom int) error {
	hex := g.Board.HexAt(dest)
	if hex == nil {
		return ruleErrf(ErrInvalidTarget, "no hex at (%d,%d)", dest.Q, dest.R)
	}
	if dest == g.Board.Robber {
		return ruleErrf(ErrPlacementIllegal, "robber must move to a different hex")
	}
	if stealFrom < 0 {
		return nil
	}
	if stealFrom == player {
		return ruleErrf(ErrInvalidTarget, "cannot steal from yourself")
	}
	victim := g.playerByID(stealFrom)
	if victim == nil {
		return ruleErrf(ErrInvalidTarget, "no player %d", stealFrom)
	}
	if !g.playerTouchesHex(stealFrom, dest) {
		return ruleErrf(ErrInvalidTarget, "player %d has no building on that hex", stealFrom)
	}
	return nil
}

// applyRobberMove commits a validated robber move and steal.
func (g *Game) applyRobberMove(player int, dest HexCoord, stealFrom int) {
	g.Board.Robber = dest
	if stealFrom < 0 {
		return
	}
	victim := g.Players[stealFrom]
	if victim.Hand.Total() == 0 {
		return // nothing to take
	}
	stolen := g.randomCard(victim.Hand)
	victim.Hand.Add(stolen, -1)
	g.Players[player].Hand.Add(stolen, 1)
}

// playerTouchesHex reports whether player has a building on any corner of
// hex hc.
func (g *Game) playerTouchesHex(player int, hc HexCoord) bool {
	for _, vc := range hc.Vertices() {
		if vert := g.Board.VertexAt(vc); vert != nil && vert.Building != BuildingNone && vert.Owner == player {
			return true
		}
	}
	return false
}

// randomCard picks a uniformly random card from a non-empty hand.
func (g *Game) randomCard(h ResourceHand) Resource {
	n := g.randN(h.Total())
	for _, r := range Resources {
		c := h.Get(r)
		if n < c {
			return r
		}
		n -= c
	}
	return ResourceNone // unreachable for non-empty hands
}

// ---------------------------------------------------------------------------
// Builds
// ---------------------------------------------------------------------------

// BuildRoad builds a road for the current player on edge e.
func (g *Game) BuildRoad(player int, e EdgeCoord) error {
	if err := g.requireTurn(player, PhaseMainTurn); err != nil {
		return err
	}
	edge := g.Board.EdgeAt(e)
	if edge == nil {
		return ruleErrf(ErrInvalidTarget, "no edge at (%d,%d) dir %d", e.Hex.Q, e.Hex.R, e.Dir)
	}
	if edge.HasRoad {
		return ruleErrf(ErrPlacementIllegal, "edge already has a road")
	}
	if !g.roadConnected(player, edge.Coord) {
		return ruleErrf(ErrPlacementIllegal, "road must connect to your network")
	}
	p := g.Players[player]
	if p.Roads == 0 {
		return ruleErrf(ErrSupplyExhaustion, "no road pieces left")
	}
	if !p.Hand.CanAfford(RoadCost) {
		return ruleErrf(ErrResourceShortfall, "road costs 1 wood and 1 brick")
	}

	p.Hand.Subtract(RoadCost)
	edge.HasRoad = true
	edge.Owner = player
	p.Roads--
	g.refreshLongestRoad()
	g.checkGameEnd()
	return nil
}

// BuildSettlement builds a settlement for the current player on vertex v.
func (g *Game) BuildSettlement(player int, v VertexCoord) error {
	if err := g.requireTurn(player, PhaseMainTurn); err != nil {
		return err
	}
	vert := g.Board.VertexAt(v)
	if vert == nil {
		return ruleErrf(ErrInvalidTarget, "no vertex at (%d,%d) dir %d", v.Hex.Q, v.Hex.R, v.Dir)
	}
	if !g.vertexDistanceOK(vert.Coord) {
		return ruleErrf(ErrPlacementIllegal, "vertex is occupied or too close to another building")
	}
	if !g.settlementConnected(player, vert.Coord) {
		return ruleErrf(ErrPlacementIllegal, "settlement must connect to your road")
	}
	p := g.Players[player]
	if p.Settlements == 0 {
		return ruleErrf(ErrSupplyExhaustion, "no settlement pieces left")
	}
	if !p.Hand.CanAfford(SettlementCost) {
		return ruleErrf(ErrResourceShortfall, "settlement costs 1 wood, 1 brick, 1 wheat and 1 sheep")
	}

	p.Hand.Subtract(SettlementCost)
	vert.Building = BuildingSettlement
	vert.Owner = player
	p.Settlements--
	// A new settlement can split an opponent's road, so every length is
	// recomputed, not just the builder's.
	g.refreshLongestRoad()
	g.checkGameEnd()
	return nil
}

// BuildCity upgrades the current player's settlement at v to a city. The
// settlement piece returns to the pool.
func (g *Game) BuildCity(player int, v VertexCoord) error {
	if err := g.requireTurn(player, PhaseMainTurn); err != nil {
		return err
	}
	vert := g.Board.VertexAt(v)
	if vert == nil {
		return ruleErrf(ErrInvalidTarget, "no vertex at (%d,%d) dir %d", v.Hex.Q, v.Hex.R, v.Dir)
	}
	if vert.Building != BuildingSettlement || vert.Owner != player {
		return ruleErrf(ErrPlacementIllegal, "city requires your own settlement on the vertex")
	}
	p := g.Players[player]
	if p.Cities == 0 {
		return ruleErrf(ErrSupplyExhaustion, "no city pieces left")
	}
	if !p.Hand.CanAfford(CityCost) {
		return ruleErrf(ErrResourceShortfall, "city costs 2 wheat and 3 ore")
	}

	p.Hand.Subtract(CityCost)
	vert.Building = BuildingCity
	p.Cities--
	p.Settlements++
	g.checkGameEnd()
	return nil
}

// ---------------------------------------------------------------------------
// Development cards
// ---------------------------------------------------------------------------

// BuyDevCard sells the current player the top card of the dev deck.
func (g *Game) BuyDevCard(player int) (DevCard, error) {
	if err := g.requireTurn(player, PhaseMainTurn); err != nil {
		return 0, err
	}
	if len(g.DevDeck) == 0 {
		return 0, ruleErrf(ErrSupplyExhaustion, "development deck is empty")
	}
	p := g.Players[player]
	if !p.Hand.CanAfford(DevCardCost) {
		return 0, ruleErrf(ErrResourceShortfall, "development card costs 1 wheat, 1 sheep and 1 ore")
	}

	p.Hand.Subtract(DevCardCost)
	card := g.DevDeck[len(g.DevDeck)-1]
	g.DevDeck = g.DevDeck[:len(g.DevDeck)-1]
	p.DevCards = append(p.DevCards, card)
	// A victory point card can end the game the moment it is bought.
	g.checkGameEnd()
	return card, nil
}

// requireDevPlay checks the shared preconditions for playing a non-VP dev
// card: main turn, card held, and no other dev card played this turn.
func (g *Game) requireDevPlay(player int, card DevCard) error {
	if err := g.requireTurn(player, PhaseMainTurn); err != nil {
		return err
	}
	if g.DevCardPlayed {
		return ruleErrf(ErrPhaseViolation, "already played a development card this turn")
	}
	if g.Players[player].devCardCount(card) == 0 {
		return ruleErrf(ErrInvalidTarget, "player holds no %s card", card)
	}
	return nil
}

// PlayKnight plays a knight: the robber moves (with an optional steal, as
// in MoveRobber) and the player's army grows.
func (g *Game) PlayKnight(player int, dest HexCoord, stealFrom int) error {
	if err := g.requireDevPlay(player, DevKnight); err != nil {
		return err
	}
	if err := g.validateRobberMove(player, dest, stealFrom); err != nil {
		return err
	}

	p := g.Players[player]
	p.removeDevCard(DevKnight)
	g.DevCardPlayed = true
	p.KnightsPlayed++
	g.applyRobberMove(player, dest, stealFrom)
	g.refreshLargestArmy()
	g.checkGameEnd()
	return nil
}

// PlayRoadBuilding plays road building: one or two free roads, each
// connected to the player's network (the second may chain off the first).
func (g *Game) PlayRoadBuilding(player int, edges []EdgeCoord) error {
	if err := g.requireDevPlay(player, DevRoadBuilding); err != nil {
		return err
	}
	if len(edges) < 1 || len(edges) > 2 {
		return ruleErrf(ErrInvalidTarget, "road building places one or two roads, got %d", len(edges))
	}
	p := g.Players[player]
	if p.Roads < len(edges) {
		return ruleErrf(ErrSupplyExhaustion, "only %d road pieces left", p.Roads)
	}

	first := g.Board.EdgeAt(edges[0])
	if first == nil {
		return ruleErrf(ErrInvalidTarget, "no edge at (%d,%d) dir %d", edges[0].Hex.Q, edges[0].Hex.R, edges[0].Dir)
	}
	if first.HasRoad {
		return ruleErrf(ErrPlacementIllegal, "edge already has a road")
	}
	if !g.roadConnected(player, first.Coord) {
		return ruleErrf(ErrPlacementIllegal, "road must connect to your network")
	}

	var second *Edge
	if len(edges) == 2 {
		second = g.Board.EdgeAt(edges[1])
		if second == nil {
			return ruleErrf(ErrInvalidTarget, "no edge at (%d,%d) dir %d", edges[1].Hex.Q, edges[1].Hex.R, edges[1].Dir)
		}
		if second == first {
			return ruleErrf(ErrPlacementIllegal, "both roads target the same edge")
		}
		if second.HasRoad {
			return ruleErrf(ErrPlacementIllegal, "edge already has a road")
		}
		if !g.roadConnected(player, second.Coord) && !edgesShareVertex(first.Coord, second.Coord) {
			return ruleErrf(ErrPlacementIllegal, "second road must connect to your network or the first road")
		}
	}

	p.removeDevCard(DevRoadBuilding)
	g.DevCardPlayed = true
	first.HasRoad = true
	first.Owner = player
	p.Roads--
	if second != nil {
		second.HasRoad = true
		second.Owner = player
		p.Roads--
	}
	g.refreshLongestRoad()
	g.checkGameEnd()
	return nil
}

// edgesShareVertex reports whether two edges meet at a vertex.
func edgesShareVertex(a, b EdgeCoord) bool {
	a1, a2 := a.Endpoints()
	b1, b2 := b.Endpoints()
	return a1.Equal(b1) || a1.Equal(b2) || a2.Equal(b1) || a2.Equal(b2)
}

// PlayYearOfPlenty plays year of plenty: the player takes any two resources
// from the bank.
func (g *Game) PlayYearOfPlenty(player int, first, second Resource) error {
	if err := g.requireDevPlay(player, DevYearOfPlenty); err != nil {
		return err
	}
	if first == ResourceNone || second == ResourceNone {
		return ruleErrf(ErrInvalidTarget, "year of plenty requires two real resources")
	}

	p := g.Players[player]
	p.removeDevCard(DevYearOfPlenty)
	g.DevCardPlayed = true
	p.Hand.Add(first, 1)
	p.Hand.Add(second, 1)
	return nil
}

// PlayMonopoly plays monopoly: every opponent hands over all cards of the
// named resource.
func (g *Game) PlayMonopoly(player int, target Resource) error {
	if err := g.requireDevPlay(player, DevMonopoly); err != nil {
		return err
	}
	if target == ResourceNone {
		return ruleErrf(ErrInvalidTarget, "monopoly requires a real resource")
	}

	p := g.Players[player]
	p.removeDevCard(DevMonopoly)
	g.DevCardPlayed = true
	for _, other := range g.Players {
		if other.ID == player {
			continue
		}
		n := other.Hand.Get(target)
		other.Hand.Add(target, -n)
		p.Hand.Add(target, n)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Trading
// ---------------------------------------------------------------------------

// TradeRatio returns how many cards of resource give the player must pay
// the bank for one card: 4 by default, 3 with a generic port, 2 with the
// matching resource port. ResourceNone always reports the default 4.
func (g *Game) TradeRatio(player int, give Resource) int {
	if give == ResourceNone {
		return 4
	}
	ratio := 4
	matching := portKindFor(give)
	for _, port := range g.Board.Ports {
		if !g.playerOnPort(player, port) {
			continue
		}
		if port.Kind == matching {
			return 2
		}
		if port.Kind == PortGeneric && ratio > 3 {
			ratio = 3
		}
	}
	return ratio
}

// playerOnPort reports whether player has a building on either landing
// vertex of the port.
func (g *Game) playerOnPort(player int, port Port) bool {
	for _, vc := range port.Vertices {
		if vert := g.Board.VertexAt(vc); vert != nil && vert.Building != BuildingNone && vert.Owner == player {
			return true
		}
	}
	return false
}

// BankTrade exchanges the current player's resources with the bank at the
// player's best ratio for the given resource.
func (g *Game) BankTrade(player int, give, receive Resource) error {
	if err := g.requireTurn(player, PhaseMainTurn); err != nil {
		return err
	}
	if give == ResourceNone || receive == ResourceNone {
		return ruleErrf(ErrInvalidTarget, "bank trade requires real resources on both sides")
	}
	p := g.Players[player]
	ratio := g.TradeRatio(player, give)
	if p.Hand.Get(give) < ratio {
		return ruleErrf(ErrResourceShortfall, "trading %s requires %d cards, have %d", give, ratio, p.Hand.Get(give))
	}

	p.Hand.Add(give, -ratio)
	p.Hand.Add(receive, 1)
	return nil
}

// ---------------------------------------------------------------------------
// Turn rotation
// ---------------------------------------------------------------------------

// EndTurn passes play to the next seat and re-arms the dice.
func (g *Game) EndTurn(player int) error {
	if err := g.requireTurn(player, PhaseMainTurn); err != nil {
		return err
	}
	g.DevCardPlayed = false
	g.Current = (g.Current + 1) % len(g.Players)
	g.Phase = PhaseRolling
	return nil
}
