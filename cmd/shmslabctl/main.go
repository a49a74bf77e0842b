// Command shmslabctl attaches to (or creates) a backbone/slab-backed
// shared memory region and drives a small allocation/free workload
// against it, reporting pressure stats once the workload finishes. It exists to give
// the allocator packages a runnable demo and a place to wire the
// operator-facing ambient stack: structured logging, a container-aware
// GOMAXPROCS/GOMEMLIMIT, and a memory-sized default region.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/joeycumines/go-shmslab/backbone"
	"github.com/joeycumines/go-shmslab/internal/cachepad"
	"github.com/joeycumines/go-shmslab/memstat"
	"github.com/joeycumines/go-shmslab/shmregion"
	"github.com/joeycumines/go-shmslab/slab"
)

// cpuStats is a per-worker-goroutine counter block. Unlike the
// allocator's own per-CPU magazines (see slab.magazine's doc comment),
// this one lives in ordinary Go heap memory, so it is free to pad each
// slot out to its own cache line and avoid the worker goroutines
// contending over counters that have nothing to do with each other.
type cpuStats struct {
	allocs uint64
	frees  uint64
	_      cachepad.Pad
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("shmslabctl: fatal")
	}
}

func run(log zerolog.Logger) error {
	var (
		path       = flag.String("path", "", "backing file for the shared region (default: a temp-dir file)")
		sizeFrac   = flag.Float64("region-frac", 0.01, "region size, as a fraction of total system RAM")
		cpus       = flag.Int("cpus", 0, "logical CPU ids to drive concurrently (0 = use GOMAXPROCS)")
		iterations = flag.Int("iterations", 100000, "allocate/free cycles to run per CPU")
		objectSize = flag.Uint64("object-size", 64, "object size in bytes to allocate each cycle")
	)
	flag.Parse()

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug().Msgf(format, args...)
	})); err != nil {
		log.Warn().Err(err).Msg("shmslabctl: could not adjust GOMAXPROCS from cgroup quota")
	}

	if limit, err := memlimit.SetGoMemLimitWithOpts(memlimit.WithRatio(0.9)); err != nil {
		log.Debug().Err(err).Msg("shmslabctl: no container memory limit detected, GOMEMLIMIT left unset")
	} else {
		log.Info().Int64("bytes", limit).Msg("shmslabctl: GOMEMLIMIT set from cgroup limit")
	}

	regionSize := int(float64(memory.TotalMemory()) * *sizeFrac)
	if regionSize < 1<<20 {
		regionSize = 1 << 20
	}

	seg, err := shmregion.Open(shmregion.Config{Path: *path, Size: regionSize})
	if err != nil {
		return fmt.Errorf("attach region: %w", err)
	}
	defer func() {
		if err := seg.Close(); err != nil {
			log.Warn().Err(err).Msg("shmslabctl: close segment")
		}
	}()

	region, err := backbone.Init(seg.Bytes(), seg.Created(), backbone.WithLogger(log))
	if err != nil {
		return fmt.Errorf("init backbone: %w", err)
	}

	allocator, err := slab.Init(region, seg.Created(), slab.WithLogger(log))
	if err != nil {
		return fmt.Errorf("init slab: %w", err)
	}

	log.Info().
		Bool("created", seg.Created()).
		Int("region_bytes", regionSize).
		Msg("shmslabctl: region attached")

	nCPUs := *cpus
	if nCPUs <= 0 {
		nCPUs = runtime.GOMAXPROCS(0)
	}

	stats := make([]cpuStats, nCPUs)
	done := make(chan struct{}, nCPUs)
	for cpu := 0; cpu < nCPUs; cpu++ {
		go churn(allocator, cpu, *iterations, uintptr(*objectSize), &stats[cpu], done)
	}
	for i := 0; i < nCPUs; i++ {
		<-done
	}

	var totalAllocs, totalFrees uint64
	for i := range stats {
		totalAllocs += stats[i].allocs
		totalFrees += stats[i].frees
	}

	var size, used uint64
	var pressure float64
	memstat.GetSize(region, &size)
	memstat.GetUsed(region, &used)
	memstat.GetPressure(region, &pressure)

	log.Info().
		Uint64("size_bytes", size).
		Uint64("used_bytes", used).
		Float64("pressure", pressure).
		Uint64("allocs", totalAllocs).
		Uint64("frees", totalFrees).
		Msg("shmslabctl: churn complete")

	return nil
}

// churn repeatedly allocates then immediately frees one object on cpu,
// exercising the allocator's steady-state fast path.
func churn(a *slab.Allocator, cpu, iterations int, size uintptr, stats *cpuStats, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()
	for i := 0; i < iterations; i++ {
		p := a.Alloc(size, cpu)
		if p == nil {
			return
		}
		stats.allocs++
		a.Free(p, size, cpu)
		stats.frees++
	}
}
