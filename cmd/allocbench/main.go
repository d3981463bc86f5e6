package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tangzhangming/allocator/internal/alloc"
)

const Version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "print version information")
	showHelp := flag.Bool("help", false, "print usage information")
	configPath := flag.String("config", "", "path to a TOML config file (default built-in tuning)")
	debug := flag.Bool("debug", false, "enable verbose chunk-lifecycle logging")
	goroutines := flag.Int("goroutines", 8, "number of concurrent allocate/free workers")
	iterations := flag.Int("iterations", 100000, "allocate/free cycles per worker")
	maxSize := flag.Int("max-size", 8192, "largest requested allocation size in bytes")

	flag.Parse()

	if *showVersion {
		fmt.Printf("allocbench v%s\n", Version)
		os.Exit(0)
	}
	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	cfg := alloc.DefaultConfig()
	if *configPath != "" {
		loaded, err := alloc.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "allocbench: failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug = true
	}
	alloc.SetConfig(cfg)

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()
	alloc.SetLogger(logger)

	if err := runBench(*goroutines, *iterations, *maxSize); err != nil {
		fmt.Fprintf(os.Stderr, "allocbench: %v\n", err)
		os.Exit(1)
	}
}

// runBench drives goroutines concurrent allocate/write/free cycles
// against the package's process-global arenas, reporting wall time and
// throughput once every worker has finished.
func runBench(goroutines, iterations, maxSize int) error {
	if goroutines <= 0 || iterations <= 0 || maxSize <= 0 {
		return fmt.Errorf("goroutines, iterations, and max-size must all be positive")
	}

	start := time.Now()
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < iterations; i++ {
				n := rng.Intn(maxSize) + 1
				p := alloc.Allocate(n)
				alloc.Free(p)
			}
		}(int64(g) + 1)
	}
	wg.Wait()
	elapsed := time.Since(start)

	total := int64(goroutines) * int64(iterations)
	fmt.Printf("workers=%d iterations=%d total_ops=%d elapsed=%s ops/sec=%.0f\n",
		goroutines, iterations, total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}

func printUsage() {
	fmt.Println("allocbench - stress-test driver for the concurrent bucketed heap allocator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  allocbench [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version              print version information")
	fmt.Println("  --help                 print usage information")
	fmt.Println("  --config <file>        TOML config file (arena_count, debug, ...)")
	fmt.Println("  --debug                enable verbose chunk-lifecycle logging")
	fmt.Println("  --goroutines <n>       concurrent allocate/free workers (default 8)")
	fmt.Println("  --iterations <n>       allocate/free cycles per worker (default 100000)")
	fmt.Println("  --max-size <n>         largest requested allocation size in bytes (default 8192)")
}
