// internal/game/scoring.go
//
// Yahtzee scoring rules.
// Responsibilities:
//   - PossibleScore: score a five-dice roll against one category.
//   - RecomputeTotals: derive the upper/lower/grand totals of a scorecard.
//
// Notes:
//   - Both functions are pure; the engine calls them and stores the results.
//   - Full house requires counts of exactly {2,3}; five of a kind does not count.

package game

const (
	upperBonusThreshold = 63
	upperBonus          = 35

	fullHouseScore     = 25
	smallStraightScore = 30
	largeStraightScore = 40
	yahtzeeScore       = 50
)

type scoreFunc func(values [NumDice]int) int

// scorers is indexed by Category.
var scorers = [NumCategories]scoreFunc{
	Ones:          upper(1),
	Twos:          upper(2),
	Threes:        upper(3),
	Fours:         upper(4),
	Fives:         upper(5),
	Sixes:         upper(6),
	ThreeOfAKind:  ofAKind(3),
	FourOfAKind:   ofAKind(4),
	FullHouse:     fullHouse,
	SmallStraight: smallStraight,
	LargeStraight: largeStraight,
	Yahtzee:       yahtzee,
	Chance:        sum,
}

// PossibleScore returns what values would score in category c.
// A category outside the 13 known boxes scores 0.
func PossibleScore(values [NumDice]int, c Category) int {
	if !c.Valid() {
		return 0
	}
	return scorers[c](values)
}

// RecomputeTotals returns sc with every derived total rebuilt from the
// category entries. Unset entries count as 0.
func RecomputeTotals(sc ScoreCard) ScoreCard {
	sc.UpperSubtotal, sc.LowerTotal = 0, 0
	for i, e := range sc.Entries {
		if e == nil {
			continue
		}
		if Category(i).Upper() {
			sc.UpperSubtotal += *e
		} else {
			sc.LowerTotal += *e
		}
	}
	sc.UpperBonus = 0
	if sc.UpperSubtotal >= upperBonusThreshold {
		sc.UpperBonus = upperBonus
	}
	sc.UpperTotal = sc.UpperSubtotal + sc.UpperBonus
	sc.GrandTotal = sc.UpperTotal + sc.LowerTotal
	return sc
}

// faceCounts returns how many dice show each face; index 0 is unused.
func faceCounts(values [NumDice]int) [7]int {
	var counts [7]int
	for _, v := range values {
		if v >= 1 && v <= 6 {
			counts[v]++
		}
	}
	return counts
}

func sum(values [NumDice]int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func upper(face int) scoreFunc {
	return func(values [NumDice]int) int {
		return faceCounts(values)[face] * face
	}
}

func ofAKind(n int) scoreFunc {
	return func(values [NumDice]int) int {
		for _, c := range faceCounts(values) {
			if c >= n {
				return sum(values)
			}
		}
		return 0
	}
}

func fullHouse(values [NumDice]int) int {
	pair, triple := false, false
	for _, c := range faceCounts(values) {
		switch c {
		case 0:
		case 2:
			pair = true
		case 3:
			triple = true
		default:
			return 0
		}
	}
	if pair && triple {
		return fullHouseScore
	}
	return 0
}

// hasRun reports whether faces start..start+length-1 all appear.
func hasRun(counts [7]int, start, length int) bool {
	for f := start; f < start+length; f++ {
		if f > 6 || counts[f] == 0 {
			return false
		}
	}
	return true
}

func smallStraight(values [NumDice]int) int {
	counts := faceCounts(values)
	for start := 1; start <= 3; start++ {
		if hasRun(counts, start, 4) {
			return smallStraightScore
		}
	}
	return 0
}

func largeStraight(values [NumDice]int) int {
	counts := faceCounts(values)
	if hasRun(counts, 1, 5) || hasRun(counts, 2, 5) {
		return largeStraightScore
	}
	return 0
}

func yahtzee(values [NumDice]int) int {
	for _, c := range faceCounts(values) {
		if c == NumDice {
			return yahtzeeScore
		}
	}
	return 0
}
