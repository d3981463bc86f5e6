package alloc

import (
	"sync"

	"go.uber.org/atomic"
)

// chunkList is a per-(arena, size-class) circular doubly-linked list of
// bucketChunks with a sentinel head, as required by §4.5. The sentinel
// itself is ordinary Go-heap memory (never address-arithmetic'd into); it
// only ever serves as a pointer-identity boundary marker.
type chunkList struct {
	sentinel bucketChunk
}

const numSizeClasses = 8

// arenaT owns one free-list head per size class and the mutex that
// serializes every mutation of those lists, their chunks, and those
// chunks' bitmaps (I5).
type arenaT struct {
	mu    sync.Mutex
	lists [numSizeClasses]chunkList
}

var (
	arenas      []arenaT
	arenasOnce  sync.Once
	arenasReady atomic.Bool
)

// ensureArenas lazily builds the process-global arena array exactly once
// (§3: "initialized exactly once"), sized by the active Config.
func ensureArenas() {
	arenasOnce.Do(func() {
		cfg := currentConfig()
		arenas = make([]arenaT, cfg.ArenaCount)
		for i := range arenas {
			for c := range arenas[i].lists {
				s := &arenas[i].lists[c].sentinel
				s.prev = s
				s.next = s
				s.bucketIndex = int32(c)
				s.arenaIndex = int32(i)
			}
		}
		arenasReady.Store(true)
	})
}

func arenasInitialized() bool {
	return arenasReady.Load()
}

// acquireArenaForAlloc picks an arena for an allocate() call by trying
// arenas in round-robin order starting from the calling goroutine's
// favorite, taking the first whose lock is free (§4.6). It updates the
// favorite on success; there is no retry limit, since under total
// contention the next cycle around the fixed, small arena count always
// finds an uncontended one eventually.
func acquireArenaForAlloc() (*arenaT, int) {
	ensureArenas()
	shard := affinityShard()
	n := len(arenas)
	start := int(favoriteArena[shard].Load())
	if start < 0 || start >= n {
		start = 0
	}
	for {
		for i := 0; i < n; i++ {
			idx := (start + i) % n
			if arenas[idx].mu.TryLock() {
				favoriteArena[shard].Store(int32(idx))
				return &arenas[idx], idx
			}
		}
	}
}

// acquireArenaForFree blocking-acquires the specific arena a chunk belongs
// to; free never migrates a chunk between arenas.
func acquireArenaForFree(idx int) *arenaT {
	ensureArenas()
	a := &arenas[idx]
	a.mu.Lock()
	return a
}
