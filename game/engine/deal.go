package engine

import (
	"math"
	"math/rand"
)

// deal builds the table for e.config: fresh cards, a seeded shuffle, a
// round-robin deal onto the play decks and the difficulty bias. The same
// config always produces the same table.
func (e *GameEngine) deal() {
	cfg := e.config

	e.dealer = newDeck(Dealer, 0)
	e.freeCells = makeDecks(FreeCell, cfg.FreeCells)
	e.playCells = makeDecks(Play, cfg.Stacks)
	e.goalCells = makeDecks(Goal, cfg.Suits)
	e.seatDecks = nil
	if cfg.variant() == VariantStaircase {
		e.seatDecks = makeSeatDecks()
	}

	e.cards = createCards(e.dealer, cfg.Suits)

	rng := rand.New(rand.NewSource(cfg.Seed))
	shuffle(e.dealer, cfg.shufflePasses(), rng)

	for _, c := range e.cards {
		c.FaceUp = true
		c.Draggable = false
	}

	for i := 0; e.dealer.HasCards(); i++ {
		e.playCells[i%len(e.playCells)].Push(e.dealer.TopCard())
	}

	e.dealAdjustment = biasDifficulty(e.cards, cfg.Difficulty, cfg.Suits, rng)
}

func makeDecks(role DeckRole, n int) []*Deck {
	decks := make([]*Deck, n)
	for i := range decks {
		decks[i] = newDeck(role, i)
	}
	return decks
}

// makeSeatDecks lays out one staircase, one hand and JunkPerSeat junk
// decks for each seat.
func makeSeatDecks() []*Deck {
	var decks []*Deck
	for i, seat := range Seats {
		stair := newDeck(Staircase, i)
		hand := newDeck(Hand, i)
		stair.seat, hand.seat = seat, seat
		decks = append(decks, stair, hand)
		for j := 0; j < JunkPerSeat; j++ {
			junk := newDeck(Junk, i*JunkPerSeat+j)
			junk.seat = seat
			decks = append(decks, junk)
		}
	}
	return decks
}

// createCards puts suits*13 cards into dealer, suit by suit, Ace to King.
// Suits past the fourth repeat the cycle.
func createCards(dealer *Deck, suits int) []*Card {
	cards := make([]*Card, 0, suits*SuitLength)
	for s := 0; s < suits; s++ {
		suit := Suit(s%SuitsPerDeck + 1)
		for r := Ace; r <= King; r++ {
			c := newCard(len(cards), suit, r)
			dealer.Push(c)
			cards = append(cards, c)
		}
	}
	return cards
}

func shuffle(d *Deck, passes int, rng *rand.Rand) {
	for p := 0; p < passes; p++ {
		rng.Shuffle(len(d.cards), func(i, j int) {
			d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
		})
	}
}

// biasDifficulty shifts low cards (rank three or less) one position at a
// time. Positive difficulty buries them deeper, negative raises them
// towards the top. It runs |difficulty|*suits rounds and returns the
// shifts as one executed batch.
func biasDifficulty(cards []*Card, difficulty float64, suits int, rng *rand.Rand) *MultiMove {
	batch := Multi()
	rounds := math.Abs(difficulty) * float64(suits)
	bury := difficulty > 0

	for i := 0; float64(i) < rounds; i++ {
		var pool []*Card
		for _, c := range cards {
			if c.rank > LowRankCeiling {
				continue
			}
			if bury && c.deck.BottomCard() == c {
				continue
			}
			if !bury && c.deck.TopCard() == c {
				continue
			}
			pool = append(pool, c)
		}
		if len(pool) == 0 {
			continue
		}

		c := pool[rng.Intn(len(pool))]
		at := c.deck.IndexOf(c) + 1
		if bury {
			at = at - 2
		}
		m := Shift(c, at)
		m.Execute()
		batch.Add(m)
	}
	return batch
}
