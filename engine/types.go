package engine

// ---------------------------------------------------------------------------
// Hex coordinates
// ---------------------------------------------------------------------------

// HexCoord addresses a hex tile in axial coordinates (q, r).
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// hexDirs holds the six axial neighbor offsets, indexed by direction 0-5.
// Direction 0 points north; indices increase clockwise.
var hexDirs = [6]HexCoord{
	{0, -1}, // 0: N
	{1, -1}, // 1: NE
	{1, 0},  // 2: SE
	{0, 1},  // 3: S
	{-1, 1}, // 4: SW
	{-1, 0}, // 5: NW
}

// normDir reduces any direction value into 0-5, handling negative input.
func normDir(d int) int {
	return ((d % 6) + 6) % 6
}

// Neighbor returns the adjacent hex in direction d.
func (h HexCoord) Neighbor(d int) HexCoord {
	dir := hexDirs[normDir(d)]
	return HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var out [6]HexCoord
	for d := 0; d < 6; d++ {
		out[d] = h.Neighbor(d)
	}
	return out
}

// Vertices returns the six corners of the hex.
func (h HexCoord) Vertices() [6]VertexCoord {
	var out [6]VertexCoord
	for d := 0; d < 6; d++ {
		out[d] = VertexCoord{Hex: h, Dir: d}
	}
	return out
}

// Edges returns the six edges of the hex.
func (h HexCoord) Edges() [6]EdgeCoord {
	var out [6]EdgeCoord
	for d := 0; d < 6; d++ {
		out[d] = EdgeCoord{Hex: h, Dir: d}
	}
	return out
}

// hexLess orders hex coordinates lexicographically by (Q, R).
func hexLess(a, b HexCoord) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

// ---------------------------------------------------------------------------
// Vertex coordinates
// ---------------------------------------------------------------------------

// VertexCoord addresses a hex corner as (hex, direction 0-5). Corner d of a
// hex is shared with up to two neighboring hexes, so one geometric vertex
// has up to three distinct encodings. Canonical collapses them; board maps
// are keyed by the canonical form only.
type VertexCoord struct {
	Hex HexCoord `json:"hex"`
	Dir int      `json:"direction"`
}

// representations returns all three encodings of the same geometric vertex.
// The triple is closed: calling representations on any member yields the
// same set.
func (v VertexCoord) representations() [3]VertexCoord {
	d := normDir(v.Dir)
	return [3]VertexCoord{
		{Hex: v.Hex, Dir: d},
		{Hex: v.Hex.Neighbor(d), Dir: normDir(d + 4)},
		{Hex: v.Hex.Neighbor(d + 5), Dir: normDir(d + 2)},
	}
}

// Canonical returns the normalized form of the vertex: the lexicographically
// smallest (q, r, direction) among its encodings.
func (v VertexCoord) Canonical() VertexCoord {
	reps := v.representations()
	best := reps[0]
	for _, r := range reps[1:] {
		if vertexRawLess(r, best) {
			best = r
		}
	}
	return best
}

// Equal reports whether two vertex coordinates address the same geometric
// point, regardless of which hex each is encoded from.
func (v VertexCoord) Equal(o VertexCoord) bool {
	return v.Canonical() == o.Canonical()
}

// AdjacentVertices returns the three vertices one edge away.
func (v VertexCoord) AdjacentVertices() [3]VertexCoord {
	d := normDir(v.Dir)
	return [3]VertexCoord{
		{Hex: v.Hex, Dir: normDir(d + 1)},
		{Hex: v.Hex, Dir: normDir(d + 5)},
		{Hex: v.Hex.Neighbor(d), Dir: normDir(d + 5)},
	}
}

// TouchingEdges returns the three edges meeting at the vertex.
func (v VertexCoord) TouchingEdges() [3]EdgeCoord {
	d := normDir(v.Dir)
	return [3]EdgeCoord{
		{Hex: v.Hex, Dir: d},
		{Hex: v.Hex, Dir: normDir(d + 5)},
		{Hex: v.Hex.Neighbor(d), Dir: normDir(d + 4)},
	}
}

// TouchingHexes returns the up-to-three hexes sharing the vertex. Rim
// vertices include ocean coordinates here; callers filter against the board.
func (v VertexCoord) TouchingHexes() [3]HexCoord {
	d := normDir(v.Dir)
	return [3]HexCoord{
		v.Hex,
		v.Hex.Neighbor(d),
		v.Hex.Neighbor(d + 5),
	}
}

// vertexRawLess orders raw (uncanonicalized) vertex encodings.
func vertexRawLess(a, b VertexCoord) bool {
	if a.Hex != b.Hex {
		return hexLess(a.Hex, b.Hex)
	}
	return a.Dir < b.Dir
}

// ---------------------------------------------------------------------------
// Edge coordinates
// ---------------------------------------------------------------------------

// EdgeCoord addresses a hex edge as (hex, direction 0-5). Edge d separates
// the hex from its neighbor in direction d, so every edge has exactly two
// encodings. Canonical collapses them.
type EdgeCoord struct {
	Hex HexCoord `json:"hex"`
	Dir int      `json:"direction"`
}

// representations returns both encodings of the same geometric edge.
func (e EdgeCoord) representations() [2]EdgeCoord {
	d := normDir(e.Dir)
	return [2]EdgeCoord{
		{Hex: e.Hex, Dir: d},
		{Hex: e.Hex.Neighbor(d), Dir: normDir(d + 3)},
	}
}

// Canonical returns the normalized form of the edge.
func (e EdgeCoord) Canonical() EdgeCoord {
	reps := e.representations()
	if edgeRawLess(reps[1], reps[0]) {
		return reps[1]
	}
	return reps[0]
}

// Equal reports whether two edge coordinates address the same geometric edge.
func (e EdgeCoord) Equal(o EdgeCoord) bool {
	return e.Canonical() == o.Canonical()
}

// Endpoints returns the two vertices the edge connects: corners d and d+1
// of the edge's hex.
func (e EdgeCoord) Endpoints() (VertexCoord, VertexCoord) {
	d := normDir(e.Dir)
	return VertexCoord{Hex: e.Hex, Dir: d}, VertexCoord{Hex: e.Hex, Dir: normDir(d + 1)}
}

// edgeRawLess orders raw (uncanonicalized) edge encodings.
func edgeRawLess(a, b EdgeCoord) bool {
	if a.Hex != b.Hex {
		return hexLess(a.Hex, b.Hex)
	}
	return a.Dir < b.Dir
}

// ---------------------------------------------------------------------------
// Terrain, resources, buildings, dev cards, ports
// ---------------------------------------------------------------------------

// Terrain is the kind of a hex tile.
type Terrain uint8

const (
	TerrainDesert Terrain = iota
	TerrainForest
	TerrainHills
	TerrainFields
	TerrainPasture
	TerrainMountains
)

// String returns the lowercase terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainDesert:
		return "desert"
	case TerrainForest:
		return "forest"
	case TerrainHills:
		return "hills"
	case TerrainFields:
		return "fields"
	case TerrainPasture:
		return "pasture"
	case TerrainMountains:
		return "mountains"
	}
	return "unknown"
}

// Resource is one of the five tradeable resource kinds, or ResourceNone.
type Resource uint8

const (
	ResourceNone Resource = iota
	ResourceWood
	ResourceBrick
	ResourceWheat
	ResourceSheep
	ResourceOre
)

// Resources lists the five real resource kinds in a fixed order.
var Resources = [5]Resource{ResourceWood, ResourceBrick, ResourceWheat, ResourceSheep, ResourceOre}

// String returns the lowercase resource name.
func (r Resource) String() string {
	switch r {
	case ResourceWood:
		return "wood"
	case ResourceBrick:
		return "brick"
	case ResourceWheat:
		return "wheat"
	case ResourceSheep:
		return "sheep"
	case ResourceOre:
		return "ore"
	}
	return "none"
}

// ParseResource maps a lowercase resource name to its Resource value.
// Unknown names map to ResourceNone.
func ParseResource(name string) Resource {
	switch name {
	case "wood":
		return ResourceWood
	case "brick":
		return ResourceBrick
	case "wheat":
		return ResourceWheat
	case "sheep":
		return ResourceSheep
	case "ore":
		return ResourceOre
	}
	return ResourceNone
}

// ResourceOf returns the resource a terrain produces. Desert produces
// nothing.
func ResourceOf(t Terrain) Resource {
	switch t {
	case TerrainForest:
		return ResourceWood
	case TerrainHills:
		return ResourceBrick
	case TerrainFields:
		return ResourceWheat
	case TerrainPasture:
		return ResourceSheep
	case TerrainMountains:
		return ResourceOre
	}
	return ResourceNone
}

// Building is the construction state of a vertex.
type Building uint8

const (
	BuildingNone Building = iota
	BuildingSettlement
	BuildingCity
)

// String returns the lowercase building name.
func (b Building) String() string {
	switch b {
	case BuildingSettlement:
		return "settlement"
	case BuildingCity:
		return "city"
	}
	return "none"
}

// DevCard is a development card kind.
type DevCard uint8

const (
	DevKnight DevCard = iota
	DevVictoryPoint
	DevRoadBuilding
	DevYearOfPlenty
	DevMonopoly
)

// String returns the snake_case dev card name.
func (d DevCard) String() string {
	switch d {
	case DevKnight:
		return "knight"
	case DevVictoryPoint:
		return "victory_point"
	case DevRoadBuilding:
		return "road_building"
	case DevYearOfPlenty:
		return "year_of_plenty"
	case DevMonopoly:
		return "monopoly"
	}
	return "unknown"
}

// PortKind is the trade ratio class a port grants.
type PortKind uint8

const (
	PortGeneric PortKind = iota // 3:1 any resource
	PortWood                    // 2:1 wood
	PortBrick                   // 2:1 brick
	PortWheat                   // 2:1 wheat
	PortSheep                   // 2:1 sheep
	PortOre                     // 2:1 ore
)

// String returns the lowercase port kind name.
func (p PortKind) String() string {
	switch p {
	case PortWood:
		return "wood"
	case PortBrick:
		return "brick"
	case PortWheat:
		return "wheat"
	case PortSheep:
		return "sheep"
	case PortOre:
		return "ore"
	}
	return "generic"
}

// portKindFor returns the 2:1 port kind matching a resource.
func portKindFor(r Resource) PortKind {
	switch r {
	case ResourceWood:
		return PortWood
	case ResourceBrick:
		return PortBrick
	case ResourceWheat:
		return PortWheat
	case ResourceSheep:
		return PortSheep
	case ResourceOre:
		return PortOre
	}
	return PortGeneric
}
