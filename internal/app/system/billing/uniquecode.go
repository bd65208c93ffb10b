// internal/app/system/billing/uniquecode.go

// Package billing derives the unique-code surcharge appended to a bill's
// base price. The surcharge makes each pending bill total distinguishable
// from other bills at the same base price, which is what lets a human match
// manual bank transfers against bills.
package billing

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"sync"
)

var (
	rngMu sync.Mutex
	rng   = mathrand.New(mathrand.NewSource(cryptoSeed()))
)

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// randomInt returns a uniform value in [min, max]. When the range is
// inverted (min > max) it collapses to min, which keeps the unique code
// deterministic for base prices whose last three digits exceed the cap
// instead of panicking on an empty range.
func randomInt(r *mathrand.Rand, min, max int64) int64 {
	if min >= max {
		return min
	}
	return min + r.Int63n(max-min+1)
}

// UniqueCode computes the unique-code value for a base price:
//
//   - basePrice < 100: basePrice plus a random value in [1,100]. The whole
//     total is returned, so UniqueCode(99) lands in [100,199]. Callers still
//     add it to the base price, matching long-standing client expectations.
//   - otherwise: with d = the last three decimal digits of basePrice, a
//     random value in [d, min(999-d, 500)], clamped to d when that range
//     is inverted.
//
// The result is always >= 0 and collisions between concurrently issued
// bills at the same base price are unlikely, not impossible.
func UniqueCode(basePrice int64) int64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return uniqueCode(rng, basePrice)
}

// uniqueCode is the deterministic core, split out so tests can drive it
// with a seeded source.
func uniqueCode(r *mathrand.Rand, basePrice int64) int64 {
	if basePrice < 100 {
		return basePrice + randomInt(r, 1, 100)
	}

	d := basePrice % 1000
	hi := 999 - d
	if hi > 500 {
		hi = 500
	}
	return randomInt(r, d, hi)
}
