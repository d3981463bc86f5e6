package alloc

import (
	"bytes"
	"runtime"
	"strconv"

	"go.uber.org/atomic"
)

// numAffinityShards bounds the cardinality of the goroutine-ID hash below,
// trading shard collisions (two goroutines sharing a favorite-arena hint)
// for a fixed, small amount of memory. Since the favorite arena is purely
// a heuristic (§4.6: "This is a heuristic, not an invariant"), collisions
// only ever cost an extra trylock attempt, never correctness.
const numAffinityShards = 256

// favoriteArena holds, per affinity shard, the index of the arena a
// goroutine landing in that shard should try first. This is the closest
// Go equivalent of the spec's "thread-local favorite arena index" (see
// DESIGN.md C6): Go exposes no OS-thread-local storage to ordinary
// library code, so the calling goroutine's own ID stands in for thread
// identity.
var favoriteArena [numAffinityShards]atomic.Int32

// currentGoroutineID extracts the calling goroutine's numeric ID from the
// header line of runtime.Stack's output ("goroutine 123 [running]: ..."),
// the standard library's only exposed source of that identity.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]
	if sp := bytes.IndexByte(b, ' '); sp >= 0 {
		b = b[:sp]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func affinityShard() int {
	return int(currentGoroutineID() % numAffinityShards)
}
