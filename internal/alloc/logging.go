package alloc

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// log returns the package's lazily-constructed logger. A production build
// uses zap's default production encoder; tests may call SetLogger to swap
// in an observable one.
func log() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			l, err := zap.NewProduction()
			if err != nil {
				l = zap.NewNop()
			}
			logger = l
		}
	})
	return logger
}

// SetLogger overrides the package logger. It must be called before the
// first allocation; like SetConfig it panics once the arenas have been
// initialized. The logger itself is built lazily by log(), independently
// of the arenas.
func SetLogger(l *zap.Logger) {
	if arenasInitialized() {
		panic("alloc: SetLogger called after arenas were initialized")
	}
	logger = l
}

// fatalMapFailure logs the OS mapping failure named in f at Fatal level,
// which zap turns into an abort (os.Exit(1) after flushing) once the
// diagnostic is written to stderr — the spec.md §7.1 contract exactly.
func fatalMapFailure(f mmapFailure) {
	log().Fatal("alloc: failed to map memory from the operating system",
		zap.String("op", f.op),
		zap.Int("bytes", f.bytes),
		zap.Error(f.err),
	)
}

func debugChunkCreated(arenaIndex, bucketIndex int, addr uintptr) {
	if !currentConfig().Debug {
		return
	}
	log().Debug("alloc: chunk created",
		zap.Int("arena", arenaIndex),
		zap.Int("bucket", bucketIndex),
		zap.Uintptr("addr", addr),
	)
}

func debugChunkReleased(arenaIndex, bucketIndex int, addr uintptr) {
	if !currentConfig().Debug {
		return
	}
	log().Debug("alloc: chunk released",
		zap.Int("arena", arenaIndex),
		zap.Int("bucket", bucketIndex),
		zap.Uintptr("addr", addr),
	)
}

func debugLargeAlloc(bytes int) {
	cfg := currentConfig()
	if !cfg.Debug && bytes <= cfg.LargeAllocLogThreshold {
		return
	}
	log().Info("alloc: large allocation", zap.Int("bytes", bytes))
}
