package engine

// checkGameEnd finishes the game if any player has reached the winning
// total, hidden victory point cards included. Seats are checked in roster
// order, so a simultaneous tie resolves to the earliest seat. Runs after
// every command that can change a total.
func (g *Game) checkGameEnd() {
	if g.Phase == PhaseFinished {
		return
	}
	for i := range g.Players {
		if g.VictoryPoints(i, true) >= WinningPoints {
			g.Winner = i
			g.Phase = PhaseFinished
			return
		}
	}
}

// Finished reports whether the game is over.
func (g *Game) Finished() bool {
	return g.Phase == PhaseFinished
}
