// Package faker generates deterministic placeholder values for GraphQL
// scalars and enums.
//
// A Generator is bound to one 64-bit seed. The same seed and the same calls
// always yield the same values; nothing in this package reads global random
// state.
package faker

import (
	"fmt"
	"math"
	mathrand "math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/automock/pkg/seed"
)

// Bounds for generated Int and Float values.
const (
	MinInt = -1000
	MaxInt = 1000
)

var titleCaser = cases.Title(language.English)

// Generator produces values from one seed.
type Generator struct {
	seed uint64
	rng  *mathrand.Rand
}

// New returns a Generator for seed.
func New(s uint64) *Generator {
	return &Generator{seed: s, rng: seed.NewRand(s)}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Int returns an integer in [MinInt, MaxInt].
func (g *Generator) Int() int {
	return MinInt + g.rng.IntN(MaxInt-MinInt+1)
}

// Float returns a float in [MinInt, MaxInt) rounded to two decimals.
func (g *Generator) Float() float64 {
	f := float64(MinInt) + g.rng.Float64()*float64(MaxInt-MinInt)
	return math.Round(f*100) / 100
}

// Boolean returns the low bit of the seed.
func (g *Generator) Boolean() bool {
	return g.seed&1 == 1
}

// ID returns a version 4 UUID drawn from the seeded stream.
func (g *Generator) ID() string {
	id, err := uuid.NewRandomFromReader(rngReader{g.rng})
	if err != nil {
		// rngReader never fails; keep a stable value anyway.
		return fmt.Sprintf("%016x", g.seed)
	}
	return id.String()
}

// Enum returns values[seed mod len(values)], or "" for an empty list.
func (g *Generator) Enum(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[g.seed%uint64(len(values))]
}

// String returns a string suited to fieldName. Known names such as
// "email" or "firstName" get realistic values; anything else gets a
// placeholder like "Return String 42".
func (g *Generator) String(fieldName string) string {
	if hint := HintFor(fieldName); hint != HintNone {
		return g.Hinted(hint)
	}
	return g.Placeholder(fieldName)
}

// Placeholder returns label title-cased and followed by a number in [1, 100000].
func (g *Generator) Placeholder(label string) string {
	return fmt.Sprintf("%s %d", Title(label), g.intN(100000)+1)
}

// Title turns identifiers like "returnString" or "return_string" into
// "Return String".
func Title(label string) string {
	return titleCaser.String(humanize(label))
}

func (g *Generator) intN(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.IntN(n)
}

func (g *Generator) pick(list []string) string {
	return list[g.intN(len(list))]
}

// rngReader adapts a seeded generator to io.Reader.
type rngReader struct {
	rng *mathrand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
