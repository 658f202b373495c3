package profiling

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Per-tick CPU timing buckets. Drivers call Reset at the start of a tick and
// read Snapshot or TopN at the end.

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
	counts = make(map[string]int)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("streaming.Tick")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		counts[name]++
		mu.Unlock()
	}
}

// Reset clears the current totals.
func Reset() {
	mu.Lock()
	clear(totals)
	clear(counts)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// Count returns how many times name was tracked since the last Reset.
func Count(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return counts[name]
}

// SumWithPrefix adds up every bucket whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest buckets, e.g.
// "world.Generate:4.2ms(27), meshing.Build:2.1ms(27)".
func TopN(n int) string {
	type entry struct {
		name  string
		dur   time.Duration
		count int
	}
	mu.Lock()
	list := make([]entry, 0, len(totals))
	for k, v := range totals {
		list = append(list, entry{name: k, dur: v, count: counts[k]})
	}
	mu.Unlock()

	slices.SortFunc(list, func(a, b entry) int {
		if a.dur != b.dur {
			if a.dur > b.dur {
				return -1
			}
			return 1
		}
		return strings.Compare(a.name, b.name)
	})
	n = max(0, min(n, len(list)))
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		ms := float64(e.dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms(%d)", e.name, ms, e.count))
	}
	return strings.Join(parts, ", ")
}
