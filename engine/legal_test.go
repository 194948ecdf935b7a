package engine

import "testing"

// putSettlement drops a settlement directly onto the board, bypassing
// costs, so tests can arrange positions.
func putSettlement(t *testing.T, g *Game, player int, v VertexCoord) {
	t.Helper()
	vert := g.Board.VertexAt(v)
	if vert == nil {
		t.Fatalf("no vertex at %v", v)
	}
	vert.Building = BuildingSettlement
	vert.Owner = player
}

// putCity drops a city directly onto the board.
func putCity(t *testing.T, g *Game, player int, v VertexCoord) {
	t.Helper()
	vert := g.Board.VertexAt(v)
	if vert == nil {
		t.Fatalf("no vertex at %v", v)
	}
	vert.Building = BuildingCity
	vert.Owner = player
}

// putRoad drops a road directly onto the board.
func putRoad(t *testing.T, g *Game, player int, e EdgeCoord) {
	t.Helper()
	edge := g.Board.EdgeAt(e)
	if edge == nil {
		t.Fatalf("no edge at %v", e)
	}
	edge.HasRoad = true
	edge.Owner = player
}

// center-hex shorthand used across placement tests.
func cv(d int) VertexCoord { return VertexCoord{Hex: HexCoord{0, 0}, Dir: d} }
func ce(d int) EdgeCoord   { return EdgeCoord{Hex: HexCoord{0, 0}, Dir: d} }

// TestVertexDistanceRule verifies a building excludes its own vertex and
// all three neighbors, using every coordinate representation.
func TestVertexDistanceRule(t *testing.T) {
	g := newStartedGame(t, 42, 2)
	putSettlement(t, g, 0, cv(0))

	if g.vertexDistanceOK(cv(0)) {
		t.Error("occupied vertex passed the distance rule")
	}
	for _, rep := range cv(0).representations() {
		if g.vertexDistanceOK(rep) {
			t.Errorf("representation %v of occupied vertex passed the distance rule", rep)
		}
	}
	for _, adj := range cv(0).AdjacentVertices() {
		if g.vertexDistanceOK(adj) {
			t.Errorf("vertex %v adjacent to a building passed the distance rule", adj)
		}
	}
	if !g.vertexDistanceOK(cv(2)) {
		t.Error("vertex two steps away failed the distance rule")
	}
	if g.vertexDistanceOK(VertexCoord{Hex: HexCoord{5, 5}, Dir: 0}) {
		t.Error("off-board vertex passed the distance rule")
	}
}

// TestRoadConnected verifies connectivity via buildings and via roads, and
// that an opponent's building does not affect placement.
func TestRoadConnected(t *testing.T) {
	g := newStartedGame(t, 42, 2)

	if g.roadConnected(0, ce(0)) {
		t.Error("road connected with an empty board")
	}

	// A building at a corner connects the edges meeting there.
	putSettlement(t, g, 0, cv(0))
	for _, e := range cv(0).TouchingEdges() {
		if !g.roadConnected(0, e) {
			t.Errorf("edge %v touching own settlement not connected", e)
		}
		if g.roadConnected(1, e) {
			t.Errorf("edge %v connected for a player with no pieces", e)
		}
	}

	// A road extends the network: edge 0 runs corner 0 to corner 1, so
	// edge 1 (corner 1 to corner 2) becomes reachable.
	putRoad(t, g, 0, ce(0))
	if !g.roadConnected(0, ce(1)) {
		t.Error("edge beyond own road not connected")
	}

	// An opponent settlement on the shared corner leaves the edge
	// buildable; it only matters when measuring road length.
	putSettlement(t, g, 1, cv(1))
	if !g.roadConnected(0, ce(1)) {
		t.Error("opponent building on the shared corner blocked placement")
	}
}

// TestLegalSetupSettlementSpots verifies the open-board count and the
// shrink after one placement.
func TestLegalSetupSettlementSpots(t *testing.T) {
	g := newStartedGame(t, 42, 2)

	spots := g.LegalSetupSettlementSpots()
	if len(spots) != 54 {
		t.Fatalf("open board setup spots = %d, want 54", len(spots))
	}

	putSettlement(t, g, 0, cv(0))
	spots = g.LegalSetupSettlementSpots()
	// The settlement removes its own vertex and its three neighbors.
	if len(spots) != 50 {
		t.Errorf("setup spots after one settlement = %d, want 50", len(spots))
	}
	for _, s := range spots {
		if s.Equal(cv(0)) {
			t.Errorf("occupied vertex %v still listed", s)
		}
	}
}

// TestLegalSetupRoadSpots verifies road options exist only after the
// paired settlement and all touch it.
func TestLegalSetupRoadSpots(t *testing.T) {
	g := newStartedGame(t, 42, 2)

	if spots := g.LegalSetupRoadSpots(); spots != nil {
		t.Fatalf("setup road spots before settlement = %v, want none", spots)
	}

	if err := g.PlaceSetupSettlement(0, cv(0)); err != nil {
		t.Fatalf("PlaceSetupSettlement: %v", err)
	}
	spots := g.LegalSetupRoadSpots()
	if len(spots) != 3 {
		t.Fatalf("setup road spots = %d, want 3 for an interior vertex", len(spots))
	}
	for _, e := range spots {
		if !edgeTouchesVertex(e, cv(0)) {
			t.Errorf("setup road spot %v does not touch the settlement", e)
		}
	}
}

// TestLegalSettlementSpots verifies main-game settlement spots demand road
// connectivity on top of the distance rule.
func TestLegalSettlementSpots(t *testing.T) {
	g := newStartedGame(t, 42, 2)

	if spots := g.LegalSettlementSpots(0); len(spots) != 0 {
		t.Fatalf("settlement spots with no roads = %d, want 0", len(spots))
	}

	putSettlement(t, g, 0, cv(0))
	putRoad(t, g, 0, ce(0))
	putRoad(t, g, 0, ce(1))

	spots := g.LegalSettlementSpots(0)
	// Corner 2 is road-connected and two hops from the settlement.
	found := false
	for _, s := range spots {
		if s.Equal(cv(2)) {
			found = true
		}
		if s.Equal(cv(1)) {
			t.Errorf("vertex %v adjacent to a building listed as legal", s)
		}
	}
	if !found {
		t.Errorf("road-connected vertex %v missing from %v", cv(2), spots)
	}
}

// TestLegalRoadSpots verifies the query matches roadConnected and excludes
// occupied edges.
func TestLegalRoadSpots(t *testing.T) {
	g := newStartedGame(t, 42, 2)
	putSettlement(t, g, 0, cv(0))
	putRoad(t, g, 0, ce(0))

	spots := g.LegalRoadSpots(0)
	if len(spots) == 0 {
		t.Fatal("no road spots despite a settlement and road")
	}
	for _, e := range spots {
		edge := g.Board.EdgeAt(e)
		if edge.HasRoad {
			t.Errorf("occupied edge %v listed as legal", e)
		}
		if !g.roadConnected(0, e) {
			t.Errorf("unconnected edge %v listed as legal", e)
		}
	}
}

// TestLegalCitySpots verifies only the player's own settlements qualify.
func TestLegalCitySpots(t *testing.T) {
	g := newStartedGame(t, 42, 2)
	putSettlement(t, g, 0, cv(0))
	putSettlement(t, g, 1, cv(2))
	putCity(t, g, 0, cv(4))

	spots := g.LegalCitySpots(0)
	if len(spots) != 1 || !spots[0].Equal(cv(0)) {
		t.Errorf("city spots for player 0 = %v, want just %v", spots, cv(0))
	}
}

// TestLegalQueriesDeterministic verifies repeated queries return identical
// ordering.
func TestLegalQueriesDeterministic(t *testing.T) {
	g := newStartedGame(t, 42, 3)
	putSettlement(t, g, 0, cv(0))
	putRoad(t, g, 0, ce(0))

	first := g.LegalRoadSpots(0)
	second := g.LegalRoadSpots(0)
	if len(first) != len(second) {
		t.Fatalf("query lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("spot %d differs between identical queries: %v vs %v", i, first[i], second[i])
		}
	}
}
