package report

import (
	"bytes"
	"os"
	"runtime"
	"strconv"
)

// ResidentMemory returns the resident set size of the process in bytes. Without /proc it returns the
// memory obtained from the OS by the Go runtime.
func ResidentMemory() int64 {
	if data, err := os.ReadFile("/proc/self/statm"); err == nil {
		// size resident shared text lib data dt, in pages
		if fields := bytes.Fields(data); 2 <= len(fields) {
			if pages, err := strconv.ParseInt(string(fields[1]), 10, 64); err == nil {
				return pages * int64(os.Getpagesize())
			}
		}
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return int64(stats.Sys)
}
