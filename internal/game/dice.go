package game

import (
	"crypto/rand"
	"math/big"
)

// Roller is the source of die faces.
// Implementations must be safe for concurrent use.
type Roller interface {
	// Intn returns a uniform int in [0, n). n > 0.
	Intn(n int) int
}

// CryptoRoller draws from crypto/rand. It is the process-wide default.
type CryptoRoller struct{}

func (CryptoRoller) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("game: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// DefaultRoller is used when callers pass a nil Roller.
var DefaultRoller Roller = CryptoRoller{}

func face(r Roller) int {
	if r == nil {
		r = DefaultRoller
	}
	return r.Intn(6) + 1
}

// rollAll re-rolls every die and clears the hold pattern.
func (d *Dice) rollAll(r Roller) {
	for i := range d.Values {
		d.Values[i] = face(r)
	}
	d.Held = [NumDice]bool{}
}

// roll re-rolls the positions not marked in held and stores held as the
// new hold pattern. A held die that was never rolled is rolled anyway.
func (d *Dice) roll(held [NumDice]bool, r Roller) {
	for i := range d.Values {
		if held[i] && d.Values[i] >= 1 && d.Values[i] <= 6 {
			continue
		}
		d.Values[i] = face(r)
	}
	d.Held = held
}
