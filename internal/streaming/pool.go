package streaming

import (
	"context"
	"fmt"
	"sync"
	"time"

	"voxelforge/internal/meshing"
	"voxelforge/internal/registry"
	"voxelforge/internal/world"
)

type jobKind int

const (
	jobGenerate jobKind = iota
	jobMesh
)

func (k jobKind) String() string {
	if k == jobMesh {
		return "mesh"
	}
	return "generate"
}

// job is one unit of worker work. Mesh jobs carry immutable snapshots only.
type job struct {
	kind  jobKind
	pos   world.ChunkPos
	token uint64
	nb    *meshing.Neighborhood
}

// result is sent back to the update goroutine. token identifies the request
// it answers; results whose token no longer matches the entry are dropped.
type result struct {
	kind     jobKind
	pos      world.ChunkPos
	token    uint64
	blocks   []world.BlockID
	mesh     *world.Mesh
	err      error
	duration time.Duration
}

// workerPool runs generation and meshing jobs on a fixed set of goroutines.
type workerPool struct {
	jobs    chan job
	results chan result
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	reg  *registry.Registry
	gen  world.Generator
	size int
}

// newWorkerPool starts workers goroutines. The caller keeps at most capacity
// jobs outstanding, so neither channel ever blocks.
func newWorkerPool(workers, capacity, size int, reg *registry.Registry, gen world.Generator) *workerPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &workerPool{
		jobs:    make(chan job, capacity),
		results: make(chan result, capacity),
		ctx:     ctx,
		cancel:  cancel,
		reg:     reg,
		gen:     gen,
		size:    size,
	}
	for range workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// submit queues a job. It reports false when the pool is shut down or full.
func (p *workerPool) submit(j job) bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
	}
	select {
	case p.jobs <- j:
		return true
	default:
		return false
	}
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case j := <-p.jobs:
			r := p.run(j)
			select {
			case p.results <- r:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *workerPool) run(j job) result {
	start := time.Now()
	r := result{kind: j.kind, pos: j.pos, token: j.token}
	switch j.kind {
	case jobGenerate:
		r.blocks, r.err = p.generate(j.pos)
	case jobMesh:
		r.mesh = meshing.BuildGreedyMesh(p.reg, j.nb)
	}
	r.duration = time.Since(start)
	return r
}

// generate calls the generator, turning a panic into an error so a bad
// generator cannot take a worker down.
func (p *workerPool) generate(pos world.ChunkPos) (blocks []world.BlockID, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			blocks, err = nil, fmt.Errorf("generator panic: %v", rec)
		}
	}()
	return p.gen.Generate(pos, p.size)
}

// shutdown stops the workers and waits for them to exit.
func (p *workerPool) shutdown() {
	p.cancel()
	p.wg.Wait()
}
