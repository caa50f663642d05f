// Package seedrand provides the deterministic, seed-carrying randomness
// source used throughout the commitment and PCS layers for toy parameter
// generation (public matrices, hiding/masking randomness). It wraps
// lattigo's keyed PRNG rather than a package-level math/rand instance, so
// every sampler is an explicit argument and no global state leaks between
// runs with different seeds.
package seedrand

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"

	"greyhound/ring"
)

// Stream is a seeded byte stream used to fill ring elements and scalars
// reproducibly: the same seed always yields the same sequence.
type Stream struct {
	prng *utils.KeyedPRNG
}

// New derives a byte stream from a uint64 seed. Distinct seeds are
// independent; the same seed always replays the same stream.
func New(seed uint64) *Stream {
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed)
	prng, err := utils.NewKeyedPRNG(seedBytes[:])
	if err != nil {
		panic(fmt.Errorf("seedrand: new keyed prng: %w", err))
	}
	return &Stream{prng: prng}
}

// Uint32ModQ draws a uniform-ish uint32 reduced mod q.Q.
func (s *Stream) Uint32ModQ(q ring.ModQ) uint32 {
	var b [4]byte
	if _, err := s.prng.Read(b[:]); err != nil {
		panic(fmt.Errorf("seedrand: read: %w", err))
	}
	return binary.LittleEndian.Uint32(b[:]) % q.Q
}

// Poly draws a uniform ring element with every coefficient reduced mod q.Q.
func (s *Stream) Poly(q ring.ModQ) ring.Poly {
	var p ring.Poly
	for i := range p.C {
		p.C[i] = s.Uint32ModQ(q)
	}
	return p
}

// PolyVec draws n independent uniform ring elements.
func (s *Stream) PolyVec(n int, q ring.ModQ) []ring.Poly {
	out := make([]ring.Poly, n)
	for i := range out {
		out[i] = s.Poly(q)
	}
	return out
}

// PolyZeroConstantTerm draws a ring element with the same distribution as
// Poly but with the constant coefficient forced to zero, used for the
// Eval.P masking polynomials whose constant term must vanish.
func (s *Stream) PolyZeroConstantTerm(q ring.ModQ) ring.Poly {
	p := s.Poly(q)
	p.C[0] = 0
	return p
}
