package engine

// ---------------------------------------------------------------------------
// Board layout tables
// ---------------------------------------------------------------------------

// landHexCoords lists the 19 land hexes: center plus two rings.
var landHexCoords = []HexCoord{
	{0, 0},
	// ring 1
	{1, -1}, {1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1},
	// ring 2
	{2, -2}, {2, -1}, {2, 0}, {1, 1}, {0, 2}, {-1, 2},
	{-2, 2}, {-2, 1}, {-2, 0}, {-1, -1}, {0, -2}, {1, -2},
}

// standardTerrains is the terrain multiset shuffled over the land hexes.
var standardTerrains = []Terrain{
	TerrainDesert,
	TerrainForest, TerrainForest, TerrainForest, TerrainForest,
	TerrainHills, TerrainHills, TerrainHills,
	TerrainFields, TerrainFields, TerrainFields, TerrainFields,
	TerrainPasture, TerrainPasture, TerrainPasture, TerrainPasture,
	TerrainMountains, TerrainMountains, TerrainMountains,
}

// standardNumbers is the token multiset assigned to non-desert hexes in
// layout order. The desert always takes token 0.
var standardNumbers = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// portSites are the nine fixed rim edges that carry ports. Each edge faces
// open water; its two endpoints are the port's landing vertices. Port kinds
// are shuffled over these sites at generation time.
var portSites = []EdgeCoord{
	{HexCoord{0, -2}, 0},
	{HexCoord{1, -2}, 1},
	{HexCoord{2, -2}, 1},
	{HexCoord{2, -1}, 2},
	{HexCoord{2, 0}, 2},
	{HexCoord{0, 2}, 3},
	{HexCoord{-2, 2}, 4},
	{HexCoord{-2, 0}, 5},
	{HexCoord{-1, -1}, 5},
}

// standardPortKinds is the port multiset shuffled over the sites.
var standardPortKinds = []PortKind{
	PortGeneric, PortGeneric, PortGeneric, PortGeneric,
	PortWood, PortBrick, PortWheat, PortSheep, PortOre,
}

// ---------------------------------------------------------------------------
// Board state
// ---------------------------------------------------------------------------

// Hex is one land tile.
type Hex struct {
	Coord   HexCoord `json:"coord"`
	Terrain Terrain  `json:"terrain"`
	Number  int      `json:"number"` // 0 on the desert
}

// Vertex is one board corner. Coord is always canonical.
type Vertex struct {
	Coord    VertexCoord `json:"coord"`
	Building Building    `json:"building"`
	Owner    int         `json:"owner"` // player index, -1 when unbuilt
}

// Edge is one board edge. Coord is always canonical.
type Edge struct {
	Coord   EdgeCoord `json:"coord"`
	HasRoad bool      `json:"hasRoad"`
	Owner   int       `json:"owner"` // player index, -1 when unbuilt
}

// Port grants a reduced bank trade ratio to buildings on its two vertices.
type Port struct {
	Kind     PortKind       `json:"kind"`
	Edge     EdgeCoord      `json:"edge"`
	Vertices [2]VertexCoord `json:"vertices"` // canonical landing corners
}

// Board holds the generated map. All vertex and edge maps are keyed by
// canonical coordinates; accessors canonicalize on the way in, so any
// representation of a location reaches the same entry.
type Board struct {
	Hexes    map[HexCoord]*Hex       `json:"hexes"`
	Vertices map[VertexCoord]*Vertex `json:"vertices"`
	Edges    map[EdgeCoord]*Edge     `json:"edges"`
	Ports    []Port                  `json:"ports"`
	Robber   HexCoord                `json:"robber"`
}

// HexAt returns the land hex at h, or nil for water.
func (b *Board) HexAt(h HexCoord) *Hex {
	return b.Hexes[h]
}

// VertexAt returns the vertex for any representation of v, or nil if v is
// not a corner of a land hex.
func (b *Board) VertexAt(v VertexCoord) *Vertex {
	return b.Vertices[v.Canonical()]
}

// EdgeAt returns the edge for any representation of e, or nil if e does not
// border a land hex.
func (b *Board) EdgeAt(e EdgeCoord) *Edge {
	return b.Edges[e.Canonical()]
}

// generateBoard builds a fresh board from the game's RNG: shuffled terrain,
// shuffled number tokens with the desert pinned to 0, robber on the desert,
// shuffled port kinds over the fixed rim sites.
func (g *Game) generateBoard() *Board {
	b := &Board{
		Hexes:    make(map[HexCoord]*Hex, len(landHexCoords)),
		Vertices: make(map[VertexCoord]*Vertex),
		Edges:    make(map[EdgeCoord]*Edge),
	}

	terrains := make([]Terrain, len(standardTerrains))
	copy(terrains, standardTerrains)
	shuffle(g, terrains)

	numbers := make([]int, len(standardNumbers))
	copy(numbers, standardNumbers)
	shuffle(g, numbers)

	numberIdx := 0
	for i, hc := range landHexCoords {
		hex := &Hex{Coord: hc, Terrain: terrains[i]}
		if hex.Terrain == TerrainDesert {
			hex.Number = 0
			b.Robber = hc
		} else {
			hex.Number = numbers[numberIdx]
			numberIdx++
		}
		b.Hexes[hc] = hex
	}

	// Every corner and edge of every land hex, stored once under its
	// canonical key. Revisiting a shared location is a no-op.
	for _, hc := range landHexCoords {
		for d := 0; d < 6; d++ {
			vc := (VertexCoord{Hex: hc, Dir: d}).Canonical()
			if _, ok := b.Vertices[vc]; !ok {
				b.Vertices[vc] = &Vertex{Coord: vc, Owner: -1}
			}
			ec := (EdgeCoord{Hex: hc, Dir: d}).Canonical()
			if _, ok := b.Edges[ec]; !ok {
				b.Edges[ec] = &Edge{Coord: ec, Owner: -1}
			}
		}
	}

	kinds := make([]PortKind, len(standardPortKinds))
	copy(kinds, standardPortKinds)
	shuffle(g, kinds)

	b.Ports = make([]Port, len(portSites))
	for i, site := range portSites {
		v1, v2 := site.Endpoints()
		b.Ports[i] = Port{
			Kind:     kinds[i],
			Edge:     site.Canonical(),
			Vertices: [2]VertexCoord{v1.Canonical(), v2.Canonical()},
		}
	}

	return b
}
