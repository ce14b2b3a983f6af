package operators

import (
	"errors"
	"math/rand/v2"
	"strconv"
)

const (
	identifierMin         = 1000
	identifierMax         = 9999
	maxIdentifierAttempts = 1000
)

var ErrIdentifierExhausted = errors.New("unable to generate unique identifier")

// IdentifierGenerator draws random four-digit agent identifiers.
type IdentifierGenerator struct {
	intN        func(n int) int
	maxAttempts int
}

// NewIdentifierGenerator uses the process-wide random source when intN is nil.
func NewIdentifierGenerator(intN func(n int) int) *IdentifierGenerator {
	if intN == nil {
		intN = rand.IntN
	}
	return &IdentifierGenerator{intN: intN, maxAttempts: maxIdentifierAttempts}
}

// Next returns a candidate not present in taken. taken is a snapshot and only
// filters obvious collisions; the insert decides.
func (g *IdentifierGenerator) Next(taken map[string]struct{}) (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		id := strconv.Itoa(identifierMin + g.intN(identifierMax-identifierMin+1))
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}
	return "", ErrIdentifierExhausted
}
