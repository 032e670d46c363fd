package hwtopo

// CacheLevel identifies a cache's position in the memory hierarchy.
type CacheLevel uint8

const (
	CacheLevelUnknown CacheLevel = iota
	CacheLevelL1
	CacheLevelL2
	CacheLevelL3
	CacheLevelL4
)

// CacheKind identifies what a cache stores.
type CacheKind uint8

const (
	CacheKindUnknown CacheKind = iota
	CacheKindData
	CacheKindInstruction
	CacheKindUnified
	CacheKindTrace
)

// CacheDescriptor describes one cache instance attached to a core or
// socket.
//
// Invariant: if a CacheDescriptor exists at all, SizeBytes > 0 and
// LineBytes > 0, entries failing that are discarded at discovery time
// (spec.md §3), so callers never need to defend against a zeroed-out
// cache slipping through.
type CacheDescriptor struct {
	Level     CacheLevel
	Kind      CacheKind
	SizeBytes uint64
	LineBytes uint32
}

// valid reports whether d satisfies the size/line invariant required of
// every CacheDescriptor that survives discovery.
func (d CacheDescriptor) valid() bool {
	return d.SizeBytes > 0 && d.LineBytes > 0
}

// cacheKey identifies a cache instance for deduplication purposes: the
// same physical L3 visible from sixteen logical processors must collapse
// to one CacheDescriptor (spec.md §4.2).
type cacheKey struct {
	level     CacheLevel
	kind      CacheKind
	sizeBytes uint64
	lineBytes uint32
}

func (d CacheDescriptor) key() cacheKey {
	return cacheKey{d.Level, d.Kind, d.SizeBytes, d.LineBytes}
}
