// Package prof switches the runtime profilers on for one command run.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	rtrace "runtime/trace"
)

// Config holds profiler output paths. An empty path leaves that
// profiler off.
type Config struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Enabled reports whether any profiler is requested.
func (c Config) Enabled() bool {
	return c.CPUPath != "" || c.MemPath != "" || c.TracePath != ""
}

// Start enables the profilers cfg asks for and returns an idempotent
// stop function. The heap profile, when requested, is written by stop so
// it reflects the run's end state.
func Start(cfg Config) (func(), error) {
	var cpuFile, traceFile *os.File

	if cfg.CPUPath != "" {
		f, err := os.Create(cfg.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("start cpu profile: %w", err)
		}
		cpuFile = f
	}

	if cfg.TracePath != "" {
		f, err := os.Create(cfg.TracePath)
		if err != nil {
			stopCPU(cpuFile)
			return nil, fmt.Errorf("create runtime trace: %w", err)
		}
		if err := rtrace.Start(f); err != nil {
			_ = f.Close()
			stopCPU(cpuFile)
			return nil, fmt.Errorf("start runtime trace: %w", err)
		}
		traceFile = f
	}

	stopped := false
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		if traceFile != nil {
			rtrace.Stop()
			_ = traceFile.Close()
		}
		stopCPU(cpuFile)
		if cfg.MemPath != "" {
			if err := writeHeap(cfg.MemPath); err != nil {
				fmt.Fprintf(os.Stderr, "prof: heap profile: %v\n", err)
			}
		}
	}
	return stop, nil
}

func stopCPU(f *os.File) {
	if f == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = f.Close()
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
