package engine

import (
	"errors"
	"testing"
)

// newStartedGame seats n players and starts the game.
func newStartedGame(t *testing.T, seed uint64, n int) *Game {
	t.Helper()
	g := NewGame(seed)
	for i := 0; i < n; i++ {
		if _, err := g.AddPlayer("p"); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g
}

// TestNewGameBoardCounts verifies the generated board has 19 hexes,
// 54 vertices and 72 edges.
func TestNewGameBoardCounts(t *testing.T) {
	g := NewGame(42)
	if got := len(g.Board.Hexes); got != 19 {
		t.Errorf("hex count = %d, want 19", got)
	}
	if got := len(g.Board.Vertices); got != 54 {
		t.Errorf("vertex count = %d, want 54", got)
	}
	if got := len(g.Board.Edges); got != 72 {
		t.Errorf("edge count = %d, want 72", got)
	}
}

// TestNewGameTerrainMultiset verifies the shuffled terrain counts.
func TestNewGameTerrainMultiset(t *testing.T) {
	g := NewGame(7)
	counts := map[Terrain]int{}
	for _, hex := range g.Board.Hexes {
		counts[hex.Terrain]++
	}
	want := map[Terrain]int{
		TerrainDesert:    1,
		TerrainForest:    4,
		TerrainHills:     3,
		TerrainFields:    4,
		TerrainPasture:   4,
		TerrainMountains: 3,
	}
	for terrain, n := range want {
		if counts[terrain] != n {
			t.Errorf("%v count = %d, want %d", terrain, counts[terrain], n)
		}
	}
}

// TestNewGameNumberTokens verifies the token multiset and the desert pin.
func TestNewGameNumberTokens(t *testing.T) {
	g := NewGame(11)
	counts := map[int]int{}
	for _, hex := range g.Board.Hexes {
		if hex.Terrain == TerrainDesert {
			if hex.Number != 0 {
				t.Errorf("desert number = %d, want 0", hex.Number)
			}
			if g.Board.Robber != hex.Coord {
				t.Errorf("robber at %v, want desert %v", g.Board.Robber, hex.Coord)
			}
			continue
		}
		if hex.Number == 7 {
			t.Errorf("hex %v has token 7", hex.Coord)
		}
		counts[hex.Number]++
	}
	want := map[int]int{2: 1, 3: 2, 4: 2, 5: 2, 6: 2, 8: 2, 9: 2, 10: 2, 11: 2, 12: 1}
	for n, c := range want {
		if counts[n] != c {
			t.Errorf("token %d count = %d, want %d", n, counts[n], c)
		}
	}
}

// TestNewGamePorts verifies nine ports with the standard kind multiset and
// landing vertices that exist on the board.
func TestNewGamePorts(t *testing.T) {
	g := NewGame(3)
	if got := len(g.Board.Ports); got != 9 {
		t.Fatalf("port count = %d, want 9", got)
	}
	counts := map[PortKind]int{}
	for _, port := range g.Board.Ports {
		counts[port.Kind]++
		for _, vc := range port.Vertices {
			if g.Board.VertexAt(vc) == nil {
				t.Errorf("port %v landing vertex %v not on board", port.Kind, vc)
			}
		}
	}
	want := map[PortKind]int{
		PortGeneric: 4, PortWood: 1, PortBrick: 1, PortWheat: 1, PortSheep: 1, PortOre: 1,
	}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("%v port count = %d, want %d", kind, counts[kind], n)
		}
	}
}

// TestBoardAccessorsCanonicalize verifies any representation of a location
// reaches the same board entry.
func TestBoardAccessorsCanonicalize(t *testing.T) {
	g := NewGame(42)
	v := VertexCoord{Hex: HexCoord{0, 0}, Dir: 0}
	for _, rep := range v.representations() {
		if g.Board.VertexAt(rep) != g.Board.VertexAt(v) {
			t.Errorf("VertexAt(%v) != VertexAt(%v)", rep, v)
		}
	}
	e := EdgeCoord{Hex: HexCoord{0, 0}, Dir: 3}
	for _, rep := range e.representations() {
		if g.Board.EdgeAt(rep) != g.Board.EdgeAt(e) {
			t.Errorf("EdgeAt(%v) != EdgeAt(%v)", rep, e)
		}
	}
}

// TestNewGameDeterministic verifies the same seed reproduces the board and
// dev deck exactly.
func TestNewGameDeterministic(t *testing.T) {
	g1 := NewGame(99)
	g2 := NewGame(99)
	for coord, hex := range g1.Board.Hexes {
		other := g2.Board.Hexes[coord]
		if other == nil || other.Terrain != hex.Terrain || other.Number != hex.Number {
			t.Errorf("hex %v differs between identically seeded games", coord)
		}
	}
	for i := range g1.Board.Ports {
		if g1.Board.Ports[i].Kind != g2.Board.Ports[i].Kind {
			t.Errorf("port %d kind differs between identically seeded games", i)
		}
	}
	if len(g1.DevDeck) != len(g2.DevDeck) {
		t.Fatalf("dev deck lengths differ: %d vs %d", len(g1.DevDeck), len(g2.DevDeck))
	}
	for i := range g1.DevDeck {
		if g1.DevDeck[i] != g2.DevDeck[i] {
			t.Errorf("dev deck card %d differs between identically seeded games", i)
		}
	}
}

// TestNewGameDifferentSeeds verifies different seeds shuffle differently.
func TestNewGameDifferentSeeds(t *testing.T) {
	g1 := NewGame(1)
	g2 := NewGame(2)
	same := true
	for coord, hex := range g1.Board.Hexes {
		if g2.Board.Hexes[coord].Terrain != hex.Terrain {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 1 and 2 produced identical terrain layouts")
	}
}

// TestNewGameSeedZero verifies seed 0 is corrected so the RNG never sticks.
func TestNewGameSeedZero(t *testing.T) {
	g := NewGame(0)
	if g.randN(1000) == g.randN(1000) && g.randN(1000) == g.randN(1000) {
		t.Error("RNG appears stuck after seed 0")
	}
}

// TestDevDeckComposition verifies the 25-card deck contents.
func TestDevDeckComposition(t *testing.T) {
	g := NewGame(5)
	if got := len(g.DevDeck); got != 25 {
		t.Fatalf("dev deck size = %d, want 25", got)
	}
	counts := map[DevCard]int{}
	for _, c := range g.DevDeck {
		counts[c]++
	}
	want := map[DevCard]int{
		DevKnight: 14, DevVictoryPoint: 5, DevRoadBuilding: 2, DevYearOfPlenty: 2, DevMonopoly: 2,
	}
	for card, n := range want {
		if counts[card] != n {
			t.Errorf("%v count = %d, want %d", card, counts[card], n)
		}
	}
}

// TestAddPlayerLimits verifies roster rules around joining and starting.
func TestAddPlayerLimits(t *testing.T) {
	g := NewGame(42)

	if err := g.Start(); err == nil {
		t.Error("Start with 0 players succeeded, want error")
	}

	for i := 0; i < MaxPlayers; i++ {
		id, err := g.AddPlayer("p")
		if err != nil {
			t.Fatalf("AddPlayer %d: %v", i, err)
		}
		if id != i {
			t.Errorf("AddPlayer returned id %d, want %d", id, i)
		}
	}
	if _, err := g.AddPlayer("extra"); err == nil {
		t.Error("AddPlayer beyond MaxPlayers succeeded, want error")
	}

	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if g.Phase != PhaseSetup {
		t.Errorf("phase after Start = %v, want %v", g.Phase, PhaseSetup)
	}
	if _, err := g.AddPlayer("late"); err == nil {
		t.Error("AddPlayer after Start succeeded, want error")
	}
	if err := g.Start(); err == nil {
		t.Error("second Start succeeded, want error")
	}
}

// TestStartBelowMinimum verifies Start is rejected with one player.
func TestStartBelowMinimum(t *testing.T) {
	g := NewGame(42)
	if _, err := g.AddPlayer("solo"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	err := g.Start()
	if err == nil {
		t.Fatal("Start with 1 player succeeded, want error")
	}
	var re *RuleError
	if !errors.As(err, &re) || re.Kind != ErrPhaseViolation {
		t.Errorf("error = %v, want RuleError kind %v", err, ErrPhaseViolation)
	}
}

// TestNewGamePlayerPools verifies fresh seats hold full piece pools.
func TestNewGamePlayerPools(t *testing.T) {
	g := newStartedGame(t, 42, 2)
	for i, p := range g.Players {
		if p.Settlements != MaxSettlements || p.Cities != MaxCities || p.Roads != MaxRoads {
			t.Errorf("player %d pools = %d/%d/%d, want %d/%d/%d",
				i, p.Settlements, p.Cities, p.Roads, MaxSettlements, MaxCities, MaxRoads)
		}
		if p.Hand.Total() != 0 {
			t.Errorf("player %d starts with %d cards, want 0", i, p.Hand.Total())
		}
	}
	if g.Winner != -1 {
		t.Errorf("Winner = %d at start, want -1", g.Winner)
	}
	if g.LongestRoadPlayer != -1 || g.LargestArmyPlayer != -1 {
		t.Error("achievement holders set at start, want unclaimed")
	}
}
