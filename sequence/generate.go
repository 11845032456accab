// ABOUTME: Seeded random sequence generation with per-entry durations
// ABOUTME: Draws candidate indices without immediate repeats and assigns bounded durations

package sequence

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"
)

// Sequence is an ordered list of drawn entries and the seed that produced it
type Sequence struct {
	Entries []ImageEntry
	Indices []int  // Candidate index each entry was drawn from
	Seed    *int64 // nil when the sequence was not produced by Generate
}

// Len returns the number of entries
func (s Sequence) Len() int {
	return len(s.Entries)
}

// Generate draws length entries from candidates with durations in [minLength, maxLength].
// A nil seed draws a fresh one, which is recorded in the returned Sequence so the
// run can be reproduced.
func Generate(candidates []ImageEntry, minLength, maxLength, length int, seed *int64) (Sequence, error) {
	if err := checkInputs(candidates, minLength, maxLength, length); err != nil {
		return Sequence{}, err
	}

	used := drawSeed()
	if seed != nil {
		used = *seed
	}

	seq := GenerateWithRand(candidates, minLength, maxLength, length, NewRand(used))
	seq.Seed = &used

	return seq, nil
}

// NewRand returns the PRNG used for a given seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0)) //nolint:gosec // reproducibility, not security
}

// GenerateWithRand runs the selection loop over r. Inputs are assumed valid.
//
// For sequences longer than two entries the same candidate index is never drawn
// twice in a row. With a single candidate there is nothing else to draw, so the
// rule is skipped instead of retrying forever.
func GenerateWithRand(candidates []ImageEntry, minLength, maxLength, length int, r *rand.Rand) Sequence {
	seq := Sequence{
		Entries: make([]ImageEntry, 0, length),
		Indices: make([]int, 0, length),
	}

	excludeRepeats := length > 2 && len(candidates) > 1
	previous := -1

	for range length {
		i := r.IntN(len(candidates))
		for excludeRepeats && i == previous {
			i = r.IntN(len(candidates))
		}

		entry := candidates[i]
		// Span in uint64 so [0, MaxInt] does not overflow
		entry.Duration = minLength + int(r.Uint64N(uint64(maxLength-minLength)+1)) //nolint:gosec // bounded by maxLength

		seq.Entries = append(seq.Entries, entry)
		seq.Indices = append(seq.Indices, i)
		previous = i
	}

	return seq
}

// CheckBounds validates the duration bounds
func CheckBounds(minLength, maxLength int) error {
	if minLength < 0 {
		return fmt.Errorf("%w: minimum %d is negative", ErrInvalidLengthBounds, minLength)
	}

	if minLength > maxLength {
		return fmt.Errorf("%w: minimum %d is greater than maximum %d", ErrInvalidLengthBounds, minLength, maxLength)
	}

	return nil
}

func checkInputs(candidates []ImageEntry, minLength, maxLength, length int) error {
	if len(candidates) == 0 {
		return ErrNoCandidateImages
	}

	if err := CheckBounds(minLength, maxLength); err != nil {
		return err
	}

	if length < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSequenceLength, length)
	}

	return nil
}

// drawSeed returns a non-negative seed from the system entropy source
func drawSeed() int64 {
	var u uint64
	if err := binary.Read(cryptorand.Reader, binary.LittleEndian, &u); err != nil {
		return time.Now().UnixNano() & (1<<63 - 1)
	}

	return int64(u >> 1) //nolint:gosec // shifted into int64 range
}
