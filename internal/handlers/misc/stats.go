package misc

import (
	"math"
	"runtime"
	"time"
)

var started = time.Now()

// Convert bytes to MiB rounded to two decimals
func toMiB(bytes uint64) float64 {
	return math.Round(float64(bytes)/(1<<20)*100) / 100
}

// Get basic runtime stats of the process
func getServerStats() map[string]any {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]any{
		"uptime":          time.Since(started).Round(time.Second).String(),
		"num_cpu":         runtime.NumCPU(),
		"num_goroutine":   runtime.NumGoroutine(),
		"num_gc":          m.NumGC,
		"gomaxprocs":      runtime.GOMAXPROCS(0),
		"mem_alloc_MB":    toMiB(m.Alloc),
		"mem_sys_MB":      toMiB(m.Sys),
		"mem_heap_sys_MB": toMiB(m.HeapSys),
	}
}
