package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates wall-clock time per named operation until it is reset.
// Mesh workers and the update loop record into the same recorder concurrently.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	calls  map[string]int
}

// Entry is one operation's accumulated time.
type Entry struct {
	Name  string
	Total time.Duration
	Calls int
}

// String formats the entry as "name:1.5ms(3)".
func (e Entry) String() string {
	return fmt.Sprintf("%s:%.1fms(%d)", e.Name, float64(e.Total.Microseconds())/1000, e.Calls)
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		totals: make(map[string]time.Duration),
		calls:  make(map[string]int),
	}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer rec.Track("streaming.Update")()
func (r *Recorder) Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		r.mu.Lock()
		r.totals[name] += d
		r.calls[name]++
		r.mu.Unlock()
	}
}

// Reset clears all totals.
func (r *Recorder) Reset() {
	r.mu.Lock()
	clear(r.totals)
	clear(r.calls)
	r.mu.Unlock()
}

// Entries returns the current totals, longest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	out := make([]Entry, 0, len(r.totals))
	for name, d := range r.totals {
		out = append(out, Entry{Name: name, Total: d, Calls: r.calls[name]})
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SumWithPrefix totals every entry whose name starts with prefix.
func (r *Recorder) SumWithPrefix(prefix string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total time.Duration
	for name, d := range r.totals {
		if strings.HasPrefix(name, prefix) {
			total += d
		}
	}
	return total
}

// TopN formats the n longest entries, e.g. "meshing.BuildGreedyMesh:4.2ms(12)".
func (r *Recorder) TopN(n int) string {
	entries := r.Entries()
	if n > len(entries) {
		n = len(entries)
	}
	parts := make([]string, 0, n)
	for _, e := range entries[:n] {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

var frame = NewRecorder()

// Track records into the per-frame recorder.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	return frame.Track(name)
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func ResetFrame() {
	frame.Reset()
}

// Entries returns the per-frame totals, longest first.
func Entries() []Entry {
	return frame.Entries()
}

// TopN formats the n longest per-frame entries.
func TopN(n int) string {
	return frame.TopN(n)
}

// SumWithPrefix totals the per-frame entries under prefix, e.g. "glfw.".
func SumWithPrefix(prefix string) time.Duration {
	return frame.SumWithPrefix(prefix)
}
