package avsc

import (
	"math/rand"
	"time"
)

// RandomValue produces a structurally valid sample value for node, seeded
// from the current time. Use node.Random(rnd) directly with your own
// *rand.Rand for a reproducible sample.
func RandomValue(node TypeNode) Value {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return node.Random(rnd)
}
