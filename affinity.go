package hwtopo

import "math/bits"

// wordBits is the width of one element of an AffinityMask's backing
// store.
const wordBits = 64

// AffinityMask is a growable bitset keyed by logical-processor index
// (spec.md §3). The zero value is the empty mask and is ready to use.
type AffinityMask struct {
	words []uint64
}

// NewAffinityMask returns an empty mask, equivalent to the zero value.
func NewAffinityMask() AffinityMask {
	return AffinityMask{}
}

// SingleAffinityMask returns a mask containing exactly lpID.
func SingleAffinityMask(lpID uint32) AffinityMask {
	var m AffinityMask
	m.Add(lpID)
	return m
}

// AffinityMaskFromCores returns a mask containing every id in lpIDs.
// Duplicates are harmless; order does not matter.
func AffinityMaskFromCores(lpIDs []uint32) AffinityMask {
	var m AffinityMask
	for _, id := range lpIDs {
		m.Add(id)
	}
	return m
}

func (m *AffinityMask) ensureWord(word int) {
	for len(m.words) <= word {
		m.words = append(m.words, 0)
	}
}

// Add sets lpID in the mask, growing the backing store if needed.
func (m *AffinityMask) Add(lpID uint32) {
	word, bit := int(lpID/wordBits), lpID%wordBits
	m.ensureWord(word)
	m.words[word] |= 1 << bit
}

// Remove clears lpID in the mask. Removing an ID outside the current
// backing store is a no-op.
func (m *AffinityMask) Remove(lpID uint32) {
	word, bit := int(lpID/wordBits), lpID%wordBits
	if word >= len(m.words) {
		return
	}
	m.words[word] &^= 1 << bit
}

// Contains reports whether lpID is set.
func (m AffinityMask) Contains(lpID uint32) bool {
	word, bit := int(lpID/wordBits), lpID%wordBits
	if word >= len(m.words) {
		return false
	}
	return m.words[word]&(1<<bit) != 0
}

// Count returns the number of set bits.
func (m AffinityMask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether no bit is set.
func (m AffinityMask) IsEmpty() bool {
	for _, w := range m.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Iter returns the set bits in ascending order.
func (m AffinityMask) Iter() []uint32 {
	out := make([]uint32, 0, m.Count())
	for wi, w := range m.words {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, uint32(wi*wordBits+bit))
			w &^= 1 << uint(bit)
		}
	}
	return out
}

// Union returns a new mask containing every bit set in m or other.
func (m AffinityMask) Union(other AffinityMask) AffinityMask {
	n := len(m.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	out := AffinityMask{words: make([]uint64, n)}
	for i := range out.words {
		var a, b uint64
		if i < len(m.words) {
			a = m.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		out.words[i] = a | b
	}
	return out
}

// Intersection returns a new mask containing every bit set in both m and
// other.
func (m AffinityMask) Intersection(other AffinityMask) AffinityMask {
	n := len(m.words)
	if len(other.words) < n {
		n = len(other.words)
	}
	out := AffinityMask{words: make([]uint64, n)}
	for i := range out.words {
		out.words[i] = m.words[i] & other.words[i]
	}
	return out
}

// AsRawU64 returns the low 64 bits of the mask, for OS calls (e.g.
// Windows SetThreadAffinityMask) that cap out at a single machine word.
func (m AffinityMask) AsRawU64() uint64 {
	if len(m.words) == 0 {
		return 0
	}
	return m.words[0]
}

// AsRawWords returns the full-width backing store. The returned slice
// must not be mutated by the caller.
func (m AffinityMask) AsRawWords() []uint64 {
	return m.words
}

// Equal reports whether m and other have the same set bits. Trailing
// all-zero words don't affect equality, so masks grown to different
// capacities via different call sequences still compare equal.
func (m AffinityMask) Equal(other AffinityMask) bool {
	n := len(m.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(m.words) {
			a = m.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		if a != b {
			return false
		}
	}
	return true
}
