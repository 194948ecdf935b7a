package engine

import "sort"

// ---------------------------------------------------------------------------
// Placement predicates
// ---------------------------------------------------------------------------

// vertexDistanceOK reports whether v satisfies the distance rule: neither v
// nor any adjacent vertex carries a building. Adjacent vertices that fall
// off the board are ignored.
func (g *Game) vertexDistanceOK(v VertexCoord) bool {
	vert := g.Board.VertexAt(v)
	if vert == nil || vert.Building != BuildingNone {
		return false
	}
	for _, adj := range v.AdjacentVertices() {
		if n := g.Board.VertexAt(adj); n != nil && n.Building != BuildingNone {
			return false
		}
	}
	return true
}

// roadConnected reports whether player may place a road on e: one of its
// endpoints must carry the player's building or meet an edge already
// carrying the player's road. Buildings on a shared vertex never block
// placement; only longest-road scoring cares about them.
func (g *Game) roadConnected(player int, e EdgeCoord) bool {
	v1, v2 := e.Endpoints()
	for _, v := range []VertexCoord{v1, v2} {
		vert := g.Board.VertexAt(v)
		if vert == nil {
			continue
		}
		if vert.Building != BuildingNone && vert.Owner == player {
			return true
		}
		for _, te := range v.TouchingEdges() {
			if te.Equal(e) {
				continue
			}
			if edge := g.Board.EdgeAt(te); edge != nil && edge.HasRoad && edge.Owner == player {
				return true
			}
		}
	}
	return false
}

// settlementConnected reports whether player has a road meeting vertex v.
func (g *Game) settlementConnected(player int, v VertexCoord) bool {
	for _, te := range v.TouchingEdges() {
		if edge := g.Board.EdgeAt(te); edge != nil && edge.HasRoad && edge.Owner == player {
			return true
		}
	}
	return false
}

// edgeTouchesVertex reports whether v is an endpoint of e.
func edgeTouchesVertex(e EdgeCoord, v VertexCoord) bool {
	v1, v2 := e.Endpoints()
	return v1.Equal(v) || v2.Equal(v)
}

// ---------------------------------------------------------------------------
// Legal-location queries
// ---------------------------------------------------------------------------

// LegalSetupSettlementSpots returns every vertex where the current setup
// settlement may be placed: any empty vertex satisfying the distance rule.
func (g *Game) LegalSetupSettlementSpots() []VertexCoord {
	var out []VertexCoord
	for vc := range g.Board.Vertices {
		if g.vertexDistanceOK(vc) {
			out = append(out, vc)
		}
	}
	sortVertices(out)
	return out
}

// LegalSetupRoadSpots returns every edge where the current setup road may
// go: empty edges touching the settlement just placed this setup turn.
// Empty before the paired settlement exists.
func (g *Game) LegalSetupRoadSpots() []EdgeCoord {
	if g.setupSettlement == nil {
		return nil
	}
	var out []EdgeCoord
	for _, ec := range g.setupSettlement.TouchingEdges() {
		if edge := g.Board.EdgeAt(ec); edge != nil && !edge.HasRoad {
			out = append(out, edge.Coord)
		}
	}
	sortEdges(out)
	return out
}

// LegalSettlementSpots returns every vertex where player could build a
// settlement right now: empty, distance rule satisfied, and connected to
// one of the player's roads. It does not check cost or piece supply.
func (g *Game) LegalSettlementSpots(player int) []VertexCoord {
	var out []VertexCoord
	for vc := range g.Board.Vertices {
		if g.vertexDistanceOK(vc) && g.settlementConnected(player, vc) {
			out = append(out, vc)
		}
	}
	sortVertices(out)
	return out
}

// LegalRoadSpots returns every empty edge connected to player's network.
// It does not check cost or piece supply.
func (g *Game) LegalRoadSpots(player int) []EdgeCoord {
	var out []EdgeCoord
	for ec, edge := range g.Board.Edges {
		if !edge.HasRoad && g.roadConnected(player, ec) {
			out = append(out, ec)
		}
	}
	sortEdges(out)
	return out
}

// LegalCitySpots returns every vertex holding one of player's settlements.
func (g *Game) LegalCitySpots(player int) []VertexCoord {
	var out []VertexCoord
	for vc, vert := range g.Board.Vertices {
		if vert.Building == BuildingSettlement && vert.Owner == player {
			out = append(out, vc)
		}
	}
	sortVertices(out)
	return out
}

// sortVertices orders canonical vertex coordinates deterministically.
func sortVertices(s []VertexCoord) {
	sort.Slice(s, func(i, j int) bool { return vertexRawLess(s[i], s[j]) })
}

// sortEdges orders canonical edge coordinates deterministically.
func sortEdges(s []EdgeCoord) {
	sort.Slice(s, func(i, j int) bool { return edgeRawLess(s[i], s[j]) })
}
