package engine

// ---------------------------------------------------------------------------
// Longest road
// ---------------------------------------------------------------------------

// longestRoadFor returns the length of player's longest simple road path.
// An opponent's building on a vertex stops paths from passing through it.
func (g *Game) longestRoadFor(player int) int {
	starts := make(map[VertexCoord]bool)
	for _, edge := range g.Board.Edges {
		if !edge.HasRoad || edge.Owner != player {
			continue
		}
		v1, v2 := edge.Coord.Endpoints()
		starts[v1.Canonical()] = true
		starts[v2.Canonical()] = true
	}

	best := 0
	visited := make(map[EdgeCoord]bool)
	for v := range starts {
		if l := g.walkRoads(player, v, visited); l > best {
			best = l
		}
	}
	return best
}

// walkRoads returns the longest extension from vertex v over player's
// unvisited roads, backtracking so every simple path is considered. An
// opponent building blocks continuation through a vertex arrived at
// mid-path, but a path may begin at one.
func (g *Game) walkRoads(player int, v VertexCoord, visited map[EdgeCoord]bool) int {
	if len(visited) > 0 {
		if vert := g.Board.VertexAt(v); vert != nil && vert.Building != BuildingNone && vert.Owner != player {
			return 0
		}
	}
	best := 0
	for _, ec := range v.TouchingEdges() {
		edge := g.Board.EdgeAt(ec)
		if edge == nil || !edge.HasRoad || edge.Owner != player || visited[edge.Coord] {
			continue
		}
		visited[edge.Coord] = true
		v1, v2 := edge.Coord.Endpoints()
		next := v1
		if v1.Equal(v) {
			next = v2
		}
		if l := 1 + g.walkRoads(player, next, visited); l > best {
			best = l
		}
		delete(visited, edge.Coord)
	}
	return best
}

// refreshLongestRoad recomputes every player's road length and settles the
// longest-road title. Claims require strictly beating the standing record,
// so ties never transfer the title. A holder whose road is split below the
// minimum forfeits it and the record resets.
func (g *Game) refreshLongestRoad() {
	lengths := make([]int, len(g.Players))
	for i := range g.Players {
		lengths[i] = g.longestRoadFor(i)
	}

	if holder := g.LongestRoadPlayer; holder >= 0 {
		if lengths[holder] >= LongestRoadMinimum {
			g.LongestRoadLength = lengths[holder]
		} else {
			g.Players[holder].HasLongestRoad = false
			g.LongestRoadPlayer = -1
			g.LongestRoadLength = LongestRoadMinimum - 1
		}
	}

	for i, l := range lengths {
		if l > g.LongestRoadLength {
			if g.LongestRoadPlayer >= 0 {
				g.Players[g.LongestRoadPlayer].HasLongestRoad = false
			}
			g.LongestRoadPlayer = i
			g.LongestRoadLength = l
			g.Players[i].HasLongestRoad = true
		}
	}
}

// ---------------------------------------------------------------------------
// Largest army
// ---------------------------------------------------------------------------

// refreshLargestArmy settles the largest-army title after a knight play.
// Army sizes only grow, so no forfeit case exists.
func (g *Game) refreshLargestArmy() {
	for i, p := range g.Players {
		if p.KnightsPlayed > g.LargestArmySize {
			if g.LargestArmyPlayer >= 0 {
				g.Players[g.LargestArmyPlayer].HasLargestArmy = false
			}
			g.LargestArmyPlayer = i
			g.LargestArmySize = p.KnightsPlayed
			p.HasLargestArmy = true
		}
	}
}

// ---------------------------------------------------------------------------
// Victory points
// ---------------------------------------------------------------------------

// VictoryPoints totals a player's score: 1 per settlement, 2 per city,
// 2 per held title, and, when includeHidden is set, 1 per victory point
// card. Opponent-visible views pass includeHidden=false; win detection
// always includes hidden points.
func (g *Game) VictoryPoints(player int, includeHidden bool) int {
	p := g.playerByID(player)
	if p == nil {
		return 0
	}
	pts := 0
	for _, vert := range g.Board.Vertices {
		if vert.Owner != player {
			continue
		}
		switch vert.Building {
		case BuildingSettlement:
			pts++
		case BuildingCity:
			pts += 2
		}
	}
	if p.HasLongestRoad {
		pts += 2
	}
	if p.HasLargestArmy {
		pts += 2
	}
	if includeHidden {
		pts += p.devCardCount(DevVictoryPoint)
	}
	return pts
}

// VisiblePoints is the score an opponent can see.
func (g *Game) VisiblePoints(player int) int {
	return g.VictoryPoints(player, false)
}
