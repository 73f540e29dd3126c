// Package seed derives reproducible seeds for synthesized GraphQL values.
//
// A Seeder is built from an operation name and its variables. Every response
// path below the operation then gets its own 64-bit seed, so the same
// operation with the same variables always yields the same values while
// list items and sibling fields stay distinct.
package seed

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	mathrand "math/rand/v2"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// golden is the 64-bit golden ratio, used to derive the second PCG word.
const golden = 0x9e3779b97f4a7c15

// Seeder derives per-path seeds for one operation instance. The zero value
// is usable and equals New("", nil).
type Seeder struct {
	base uint64
}

// New returns a Seeder for an operation identified by name and variables.
// Variable maps that differ only in key order produce the same Seeder, as do
// numerically equal values of different Go types.
func New(operationName string, variables map[string]interface{}) Seeder {
	d := xxhash.New()
	_, _ = d.WriteString(operationName)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(Canonical(variables))
	return Seeder{base: d.Sum64()}
}

// Base returns the operation-level seed.
func (s Seeder) Base() uint64 {
	return s.base
}

// At returns the seed for the value at path. The path uses response keys,
// so aliased fields get their own seeds.
func (s Seeder) At(path ast.Path) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], s.base)

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(path.String())
	return d.Sum64()
}

// Rand returns a generator seeded for path. Each call returns a fresh
// generator, so callers never share random state.
func (s Seeder) Rand(path ast.Path) *mathrand.Rand {
	return NewRand(s.At(path))
}

// NewRand returns a PCG generator seeded from a single 64-bit seed.
func NewRand(seed uint64) *mathrand.Rand {
	return mathrand.New(mathrand.NewPCG(seed, seed^golden))
}

// Canonical returns a stable serialization of variables: object keys are
// sorted at every level and numbers use their shortest form. A nil map and
// an empty map serialize the same. Strings that are not valid UTF-8 are
// also appended quoted after a NUL, since JSON encoding would fold them
// into U+FFFD.
func Canonical(variables map[string]interface{}) []byte {
	if len(variables) == 0 {
		return []byte("{}")
	}
	b, err := json.Marshal(variables)
	if err != nil {
		// Values JSON cannot represent still need a stable form.
		return []byte(fmt.Sprintf("%v", variables))
	}
	if raw := appendInvalidStrings(nil, variables); len(raw) > 0 {
		b = append(b, 0)
		b = append(b, raw...)
	}
	return b
}

// appendInvalidStrings appends the quoted form of every invalid UTF-8 string
// in v, map keys included, walking maps in key order.
func appendInvalidStrings(dst []byte, v interface{}) []byte {
	switch t := v.(type) {
	case string:
		if !utf8.ValidString(t) {
			dst = strconv.AppendQuote(dst, t)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dst = appendInvalidStrings(dst, k)
			dst = appendInvalidStrings(dst, t[k])
		}
	case []interface{}:
		for _, item := range t {
			dst = appendInvalidStrings(dst, item)
		}
	}
	return dst
}
