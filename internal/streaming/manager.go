package streaming

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"time"

	"voxelforge/internal/meshing"
	"voxelforge/internal/profiling"
	"voxelforge/internal/registry"
	"voxelforge/internal/world"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-gl/mathgl/mgl32"
)

// Options configures a Manager.
type Options struct {
	ChunkSize int
	// RenderDistance is the horizontal window radius in chunks.
	RenderDistance int
	// VerticalDistance is the vertical window radius in chunks.
	VerticalDistance int
	// UnloadMargin keeps chunks this many chunks past the window before dropping them.
	UnloadMargin int
	Workers      int
	// QueueSize bounds the jobs handed to workers at once.
	QueueSize int
	// MaxIntegrations bounds the results applied per Update; 0 means all available.
	MaxIntegrations int

	RetryInitial time.Duration
	RetryMax     time.Duration

	// Metrics receives pipeline metrics; nil creates unregistered collectors.
	Metrics *Metrics

	// OnMeshReady and OnUnload run on the Update goroutine, so a renderer can
	// upload or free GPU buffers directly from them.
	OnMeshReady func(pos world.ChunkPos, mesh *world.Mesh)
	OnUnload    func(pos world.ChunkPos)
}

// DefaultOptions returns the settings used when no config file is given.
func DefaultOptions() Options {
	return Options{
		ChunkSize:        world.DefaultChunkSize,
		RenderDistance:   8,
		VerticalDistance: 4,
		UnloadMargin:     1,
		Workers:          max(runtime.NumCPU()-1, 1),
		QueueSize:        256,
		RetryInitial:     100 * time.Millisecond,
		RetryMax:         5 * time.Second,
	}
}

func (o Options) validate() error {
	switch {
	case o.ChunkSize < 1 || o.ChunkSize > world.MaxChunkSize:
		return fmt.Errorf("chunk size %d out of range 1..%d", o.ChunkSize, world.MaxChunkSize)
	case o.RenderDistance < 0 || o.VerticalDistance < 0 || o.UnloadMargin < 0:
		return fmt.Errorf("negative distance in render=%d vertical=%d margin=%d", o.RenderDistance, o.VerticalDistance, o.UnloadMargin)
	case o.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	case o.QueueSize < 1:
		return fmt.Errorf("queue size must be at least 1, got %d", o.QueueSize)
	case o.RetryInitial <= 0 || o.RetryMax < o.RetryInitial:
		return fmt.Errorf("retry interval %v..%v is invalid", o.RetryInitial, o.RetryMax)
	}
	return nil
}

// entry tracks one chunk position. chunk is nil until generation succeeds.
type entry struct {
	chunk    *world.Chunk
	state    State
	token    uint64
	attempts int
	backoff  *backoff.ExponentialBackOff
	retryAt  time.Time
}

// Manager streams chunks around a focal point. It generates and meshes chunks on
// a worker pool and integrates the results on the goroutine that calls Update.
// Every method except Close must be called from that goroutine.
type Manager struct {
	opts    Options
	reg     *registry.Registry
	pool    *workerPool
	metrics *Metrics

	chunks   map[world.ChunkPos]*entry
	queue    *priorityQueue
	dirty    map[world.ChunkPos]struct{}
	retrying map[world.ChunkPos]struct{}
	// busy holds positions with a job at the workers, including jobs whose
	// entry was unloaded since. A position never has two jobs out at once.
	busy map[world.ChunkPos]struct{}

	center    world.ChunkPos
	hasCenter bool
	focus     mgl32.Vec3
	nextToken uint64
	closed    bool

	now func() time.Time
}

// New starts a manager and its workers.
func New(reg *registry.Registry, gen world.Generator, opts Options) (*Manager, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("streaming: %w", err)
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	m := &Manager{
		opts:     opts,
		reg:      reg,
		metrics:  opts.Metrics,
		chunks:   make(map[world.ChunkPos]*entry),
		queue:    newPriorityQueue(),
		dirty:    make(map[world.ChunkPos]struct{}),
		retrying: make(map[world.ChunkPos]struct{}),
		busy:     make(map[world.ChunkPos]struct{}),
		now:      time.Now,
	}
	m.pool = newWorkerPool(opts.Workers, opts.QueueSize, opts.ChunkSize, reg, gen)
	return m, nil
}

// Close stops the workers. Later Updates do nothing.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.pool.shutdown()
}

// Update advances streaming by one frame around focus, in world units.
func (m *Manager) Update(focus mgl32.Vec3) {
	if m.closed {
		return
	}
	defer profiling.Track("streaming.Update")()

	m.focus = focus
	m.integrate()

	center, _, _, _ := world.ChunkPosAt(
		int(math.Floor(float64(focus.X()))),
		int(math.Floor(float64(focus.Y()))),
		int(math.Floor(float64(focus.Z()))),
		m.opts.ChunkSize,
	)
	if !m.hasCenter || center != m.center {
		m.center, m.hasCenter = center, true
		m.unloadFar()
		m.loadWindow()
		m.queue.Rekey(m.distance)
	}

	m.scheduleRetries()
	m.scheduleDirty()
	m.dispatch()
	m.updateGauges()
}

// Settle runs Update at the last focus until nothing is queued, in flight or
// waiting for a retry.
func (m *Manager) Settle(ctx context.Context) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		m.Update(m.focus)
		if m.idle() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Manager) idle() bool {
	return m.queue.Len() == 0 && len(m.busy) == 0 && len(m.retrying) == 0 && len(m.dirty) == 0
}

func (m *Manager) distance(pos world.ChunkPos) int {
	return pos.DistanceSq(m.center)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (m *Manager) within(pos world.ChunkPos, margin int) bool {
	return abs(pos.X-m.center.X) <= m.opts.RenderDistance+margin &&
		abs(pos.Z-m.center.Z) <= m.opts.RenderDistance+margin &&
		abs(pos.Y-m.center.Y) <= m.opts.VerticalDistance+margin
}

func (m *Manager) unloadFar() {
	for pos, e := range m.chunks {
		if m.within(pos, m.opts.UnloadMargin) {
			continue
		}
		e.state = Unloading
		m.queue.Remove(pos)
		delete(m.dirty, pos)
		delete(m.retrying, pos)
		if m.opts.OnUnload != nil {
			m.opts.OnUnload(pos)
		}
		delete(m.chunks, pos)
		m.metrics.Unloads.Inc()
	}
}

func (m *Manager) loadWindow() {
	r, v := m.opts.RenderDistance, m.opts.VerticalDistance
	for dy := -v; dy <= v; dy++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				pos := m.center.Add(dx, dy, dz)
				if _, ok := m.chunks[pos]; ok {
					continue
				}
				m.chunks[pos] = &entry{state: Generating, backoff: m.newBackoff()}
				m.queue.Push(pos, m.distance(pos))
			}
		}
	}
}

func (m *Manager) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.opts.RetryInitial
	b.MaxInterval = m.opts.RetryMax
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (m *Manager) scheduleRetries() {
	now := m.now()
	for pos := range m.retrying {
		e := m.chunks[pos]
		if e == nil {
			delete(m.retrying, pos)
			continue
		}
		if now.Before(e.retryAt) {
			continue
		}
		delete(m.retrying, pos)
		m.queue.Push(pos, m.distance(pos))
	}
}

func (m *Manager) scheduleDirty() {
	for pos := range m.dirty {
		delete(m.dirty, pos)
		e := m.chunks[pos]
		if e == nil || m.isBusy(pos) {
			continue
		}
		if e.state == Dirty || e.state == Meshing {
			m.queue.Push(pos, m.distance(pos))
		}
	}
}

// markDirty flags a loaded chunk for re-meshing.
func (m *Manager) markDirty(pos world.ChunkPos, e *entry) {
	e.chunk.MarkDirty()
	if e.state == Ready {
		e.state = Dirty
	}
	m.dirty[pos] = struct{}{}
}

// touch marks the chunk at pos dirty if its blocks are loaded. An empty chunk
// rebuilds without a worker job.
func (m *Manager) touch(pos world.ChunkPos) {
	e := m.chunks[pos]
	if e == nil || e.chunk == nil {
		return
	}
	m.markDirty(pos, e)
}

func (m *Manager) isBusy(pos world.ChunkPos) bool {
	_, ok := m.busy[pos]
	return ok
}

func (m *Manager) snapshot(pos world.ChunkPos) *world.Snapshot {
	e := m.chunks[pos]
	if e == nil || e.chunk == nil {
		return nil
	}
	return e.chunk.Snapshot()
}

// dispatch hands queued positions to the workers, nearest first.
func (m *Manager) dispatch() {
	for len(m.busy) < m.opts.QueueSize {
		pos, ok := m.queue.Pop()
		if !ok {
			return
		}
		e := m.chunks[pos]
		// A busy position is queued again when its result comes back.
		if e == nil || m.isBusy(pos) {
			continue
		}

		var j job
		switch e.state {
		case Generating:
			j = job{kind: jobGenerate}
		case Meshing, Dirty:
			if e.chunk.IsEmpty() {
				m.publish(pos, e, &world.Mesh{})
				continue
			}
			j = job{kind: jobMesh, nb: meshing.Gather(e.chunk.Snapshot(), m.snapshot)}
			e.chunk.SetClean()
			e.state = Meshing
		default:
			continue
		}

		m.nextToken++
		j.pos, j.token = pos, m.nextToken
		if !m.pool.submit(j) {
			if j.kind == jobMesh {
				e.chunk.MarkDirty()
			}
			m.queue.Push(pos, m.distance(pos))
			return
		}
		e.token = j.token
		m.busy[pos] = struct{}{}
	}
}

// integrate applies finished results without blocking.
func (m *Manager) integrate() {
	limit := m.opts.MaxIntegrations
	for n := 0; limit <= 0 || n < limit; n++ {
		select {
		case r := <-m.pool.results:
			m.apply(r)
		default:
			return
		}
	}
}

func (m *Manager) apply(r result) {
	delete(m.busy, r.pos)
	m.metrics.Jobs.WithLabelValues(r.kind.String()).Inc()
	m.metrics.JobDuration.WithLabelValues(r.kind.String()).Observe(r.duration.Seconds())

	e := m.chunks[r.pos]
	if e == nil {
		m.metrics.StaleResults.Inc()
		return
	}
	if e.token != r.token {
		// The position was unloaded and requested again while this job ran.
		m.metrics.StaleResults.Inc()
		m.queue.Push(r.pos, m.distance(r.pos))
		return
	}

	switch r.kind {
	case jobGenerate:
		m.applyGenerated(r.pos, e, r)
	case jobMesh:
		e.chunk.SetMesh(r.mesh)
		if e.chunk.IsDirty() {
			e.state = Dirty
			m.dirty[r.pos] = struct{}{}
		} else {
			e.state = Ready
		}
		if m.opts.OnMeshReady != nil {
			m.opts.OnMeshReady(r.pos, r.mesh)
		}
	}
}

func (m *Manager) applyGenerated(pos world.ChunkPos, e *entry, r result) {
	err := r.err
	var c *world.Chunk
	if err == nil {
		c, err = world.NewChunkFromBlocks(pos, m.opts.ChunkSize, r.blocks)
	}
	if err != nil {
		e.attempts++
		delay := e.backoff.NextBackOff()
		e.retryAt = m.now().Add(delay)
		m.retrying[pos] = struct{}{}
		m.metrics.GenerateFailure.Inc()
		log.Printf("streaming: generate chunk %v failed (attempt %d), retrying in %v: %v", pos, e.attempts, delay, err)
		return
	}

	e.chunk = c
	e.attempts = 0
	e.backoff.Reset()
	e.retryAt = time.Time{}
	if c.IsEmpty() {
		m.publish(pos, e, &world.Mesh{})
		return
	}

	e.state = Meshing
	m.queue.Push(pos, m.distance(pos))
	// Neighbours meshed before this chunk existed drew their shared faces, and
	// the edge and corner ones took its cells as non-occluding for AO.
	for _, d := range neighbourOffsets {
		m.touch(pos.Add(d[0], d[1], d[2]))
	}
}

// publish installs a mesh built on this goroutine.
func (m *Manager) publish(pos world.ChunkPos, e *entry, mesh *world.Mesh) {
	e.chunk.SetClean()
	e.chunk.SetMesh(mesh)
	e.state = Ready
	if m.opts.OnMeshReady != nil {
		m.opts.OnMeshReady(pos, mesh)
	}
}

// State returns the lifecycle state of pos; Unloaded when it is not tracked.
func (m *Manager) State(pos world.ChunkPos) State {
	if e := m.chunks[pos]; e != nil {
		return e.state
	}
	return Unloaded
}

// Chunk returns the loaded chunk at pos, or nil.
func (m *Manager) Chunk(pos world.ChunkPos) *world.Chunk {
	if e := m.chunks[pos]; e != nil {
		return e.chunk
	}
	return nil
}

// Len returns the number of tracked positions.
func (m *Manager) Len() int {
	return len(m.chunks)
}

// Center returns the focal chunk of the last Update.
func (m *Manager) Center() world.ChunkPos {
	return m.center
}

// RenderDistance returns the current horizontal window radius.
func (m *Manager) RenderDistance() int {
	return m.opts.RenderDistance
}

// SetRenderDistance changes the horizontal window radius. The window is
// reloaded around the current centre on the next Update.
func (m *Manager) SetRenderDistance(r int) {
	r = max(r, 0)
	if r == m.opts.RenderDistance {
		return
	}
	m.opts.RenderDistance = r
	m.hasCenter = false
}

// Positions returns every tracked position in ascending order.
func (m *Manager) Positions() []world.ChunkPos {
	out := make([]world.ChunkPos, 0, len(m.chunks))
	for pos := range m.chunks {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Stats summarises the pipeline.
type Stats struct {
	Tracked    int
	Generating int
	Meshing    int
	Ready      int
	Dirty      int
	Empty      int
	Queued     int
	InFlight   int
	Quads      int
	Triangles  int
}

// Stats counts chunks by state and sums the cached meshes.
func (m *Manager) Stats() Stats {
	s := Stats{Tracked: len(m.chunks), Queued: m.queue.Len(), InFlight: len(m.busy)}
	for _, e := range m.chunks {
		switch e.state {
		case Generating:
			s.Generating++
		case Meshing:
			s.Meshing++
		case Ready:
			s.Ready++
		case Dirty:
			s.Dirty++
		}
		if e.chunk == nil {
			continue
		}
		if e.chunk.IsEmpty() {
			s.Empty++
		}
		mesh := e.chunk.Mesh()
		s.Quads += mesh.QuadCount()
		s.Triangles += mesh.TriangleCount()
	}
	return s
}

// ExposedFaces counts the faces a one-quad-per-face mesher would emit for the
// loaded chunks. It is the baseline the greedy quad count is compared against.
func (m *Manager) ExposedFaces() int {
	total := 0
	for _, e := range m.chunks {
		if e.chunk == nil || e.chunk.IsEmpty() {
			continue
		}
		total += meshing.CountExposedFaces(m.reg, meshing.Gather(e.chunk.Snapshot(), m.snapshot))
	}
	return total
}

func (m *Manager) updateGauges() {
	s := m.Stats()
	m.metrics.Chunks.WithLabelValues(Generating.String()).Set(float64(s.Generating))
	m.metrics.Chunks.WithLabelValues(Meshing.String()).Set(float64(s.Meshing))
	m.metrics.Chunks.WithLabelValues(Ready.String()).Set(float64(s.Ready))
	m.metrics.Chunks.WithLabelValues(Dirty.String()).Set(float64(s.Dirty))
	m.metrics.QueueDepth.Set(float64(s.Queued))
	m.metrics.InFlight.Set(float64(s.InFlight))
}
