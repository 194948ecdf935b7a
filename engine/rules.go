package engine

// Piece pool sizes per player.
const (
	MaxSettlements = 5
	MaxCities      = 4
	MaxRoads       = 15
)

// Roster limits.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Scoring thresholds.
const (
	WinningPoints      = 10
	LongestRoadMinimum = 5 // roads needed before the title can be claimed
	LargestArmyMinimum = 3 // knights needed before the title can be claimed
)

// Build costs. Commands consult these rather than hard-coding amounts;
// exported so clients can display them.
var (
	RoadCost       = ResourceHand{Wood: 1, Brick: 1}
	SettlementCost = ResourceHand{Wood: 1, Brick: 1, Wheat: 1, Sheep: 1}
	CityCost       = ResourceHand{Wheat: 2, Ore: 3}
	DevCardCost    = ResourceHand{Wheat: 1, Sheep: 1, Ore: 1}
)

// devDeckComposition is the 25-card development deck before shuffling.
var devDeckComposition = []struct {
	card  DevCard
	count int
}{
	{DevKnight, 14},
	{DevVictoryPoint, 5},
	{DevRoadBuilding, 2},
	{DevYearOfPlenty, 2},
	{DevMonopoly, 2},
}

// newDevDeck builds the unshuffled 25-card deck.
func newDevDeck() []DevCard {
	deck := make([]DevCard, 0, 25)
	for _, entry := range devDeckComposition {
		for i := 0; i < entry.count; i++ {
			deck = append(deck, entry.card)
		}
	}
	return deck
}
