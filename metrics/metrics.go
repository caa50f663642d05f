// Package metrics provides the module's ambient instrumentation: a
// global map of named byte counters (ring elements committed, proof size)
// that call sites bump as they go, and
// a global timing log that Track entries feed, both drained by their
// own SnapshotAndReset for reporting.
package metrics

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Enabled gates whether call sites record byte counters via Global.Add;
// off by default so ordinary test runs stay quiet. Track is not gated.
var Enabled = false

type counters struct {
	mu   sync.Mutex
	vals map[string]uint64
}

// Global is the process-wide counter set.
var Global = &counters{vals: make(map[string]uint64)}

// Add bumps the named counter by n, matching the call convention of
// byte-sized measurements (n is typically a length times a per-element
// byte size, both signed ints at the call site).
func (c *counters) Add(label string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals[label] += uint64(n)
}

// SnapshotAndReset returns a copy of the counter map and clears it.
func (c *counters) SnapshotAndReset() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.vals))
	for k, v := range c.vals {
		out[k] = v
	}
	c.vals = make(map[string]uint64)
	return out
}

// BytesRingQ estimates the wire size in bytes of a degree-d ring element
// over a modulus that fits in qBits bits: d coefficients, each packed into
// ceil(qBits/8) bytes.
func BytesRingQ(d, qBits int) int64 {
	return int64(d) * int64((qBits+7)/8)
}

// Dump prints the current counters to stdout, sorted by label, without
// resetting them.
func (c *counters) Dump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	labels := make([]string, 0, len(c.vals))
	for k := range c.vals {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Printf("%-40s %d bytes\n", l, c.vals[l])
	}
}

// Entry is a single timing measurement recorded by Track.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	timingMu sync.Mutex
	timing   []Entry
)

// Track logs the duration since start under label; call sites use it as
// defer metrics.Track(time.Now(), "label") to time a function body.
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	timingMu.Lock()
	timing = append(timing, Entry{Label: label, Dur: elapsed})
	timingMu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func SnapshotAndReset() []Entry {
	timingMu.Lock()
	defer timingMu.Unlock()
	out := make([]Entry, len(timing))
	copy(out, timing)
	timing = nil
	return out
}
