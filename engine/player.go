package engine

// ResourceHand counts a player's resource cards by kind. It doubles as a
// cost bundle for builds and trades.
type ResourceHand struct {
	Wood  int `json:"wood"`
	Brick int `json:"brick"`
	Wheat int `json:"wheat"`
	Sheep int `json:"sheep"`
	Ore   int `json:"ore"`
}

// Total returns the number of cards in the hand.
func (h ResourceHand) Total() int {
	return h.Wood + h.Brick + h.Wheat + h.Sheep + h.Ore
}

// Get returns the count for one resource kind.
func (h ResourceHand) Get(r Resource) int {
	switch r {
	case ResourceWood:
		return h.Wood
	case ResourceBrick:
		return h.Brick
	case ResourceWheat:
		return h.Wheat
	case ResourceSheep:
		return h.Sheep
	case ResourceOre:
		return h.Ore
	}
	return 0
}

// Add adds n cards of one resource kind. ResourceNone is a no-op.
func (h *ResourceHand) Add(r Resource, n int) {
	switch r {
	case ResourceWood:
		h.Wood += n
	case ResourceBrick:
		h.Brick += n
	case ResourceWheat:
		h.Wheat += n
	case ResourceSheep:
		h.Sheep += n
	case ResourceOre:
		h.Ore += n
	}
}

// CanAfford reports whether the hand covers every count in cost.
func (h ResourceHand) CanAfford(cost ResourceHand) bool {
	return h.Wood >= cost.Wood &&
		h.Brick >= cost.Brick &&
		h.Wheat >= cost.Wheat &&
		h.Sheep >= cost.Sheep &&
		h.Ore >= cost.Ore
}

// Subtract removes cost from the hand. Callers must check CanAfford first;
// counts never go negative in a valid game.
func (h *ResourceHand) Subtract(cost ResourceHand) {
	h.Wood -= cost.Wood
	h.Brick -= cost.Brick
	h.Wheat -= cost.Wheat
	h.Sheep -= cost.Sheep
	h.Ore -= cost.Ore
}

// Player holds one seat's state. Players are identified by dense indexes
// into Game.Players; external identity mapping lives outside the engine.
type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	Hand     ResourceHand `json:"hand"`
	DevCards []DevCard    `json:"devCards"`

	// Remaining pieces in the supply pool.
	Settlements int `json:"settlements"`
	Cities      int `json:"cities"`
	Roads       int `json:"roads"`

	KnightsPlayed  int  `json:"knightsPlayed"`
	HasLongestRoad bool `json:"hasLongestRoad"`
	HasLargestArmy bool `json:"hasLargestArmy"`
}

// newPlayer returns a seat with full piece pools.
func newPlayer(id int, name string) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		Settlements: MaxSettlements,
		Cities:      MaxCities,
		Roads:       MaxRoads,
	}
}

// devCardCount returns how many of one card kind the player holds.
func (p *Player) devCardCount(card DevCard) int {
	n := 0
	for _, c := range p.DevCards {
		if c == card {
			n++
		}
	}
	return n
}

// removeDevCard removes one instance of card from the player's hand.
// Returns false if the player holds none.
func (p *Player) removeDevCard(card DevCard) bool {
	for i, c := range p.DevCards {
		if c == card {
			p.DevCards = append(p.DevCards[:i], p.DevCards[i+1:]...)
			return true
		}
	}
	return false
}
