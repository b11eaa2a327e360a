package streaming

import (
	"container/heap"

	"voxelforge/internal/world"
)

type queueItem struct {
	pos   world.ChunkPos
	dist  int
	index int
}

// taskHeap orders positions nearest-first, ties broken by position.
type taskHeap []*queueItem

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].pos.Less(h[j].pos)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	it := x.(*queueItem)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// priorityQueue holds each position at most once.
type priorityQueue struct {
	heap  taskHeap
	items map[world.ChunkPos]*queueItem
}

func newPriorityQueue() *priorityQueue {
	return &priorityQueue{items: make(map[world.ChunkPos]*queueItem)}
}

func (q *priorityQueue) Len() int {
	return len(q.heap)
}

func (q *priorityQueue) Contains(pos world.ChunkPos) bool {
	_, ok := q.items[pos]
	return ok
}

// Push adds pos with the given distance; a queued position is left alone.
func (q *priorityQueue) Push(pos world.ChunkPos, dist int) {
	if q.Contains(pos) {
		return
	}
	it := &queueItem{pos: pos, dist: dist}
	q.items[pos] = it
	heap.Push(&q.heap, it)
}

// Pop removes the nearest position.
func (q *priorityQueue) Pop() (world.ChunkPos, bool) {
	if len(q.heap) == 0 {
		return world.ChunkPos{}, false
	}
	it := heap.Pop(&q.heap).(*queueItem)
	delete(q.items, it.pos)
	return it.pos, true
}

// Remove drops pos if queued.
func (q *priorityQueue) Remove(pos world.ChunkPos) {
	it, ok := q.items[pos]
	if !ok {
		return
	}
	heap.Remove(&q.heap, it.index)
	delete(q.items, pos)
}

// Rekey recomputes every distance after the focal chunk moved.
func (q *priorityQueue) Rekey(dist func(world.ChunkPos) int) {
	for _, it := range q.heap {
		it.dist = dist(it.pos)
	}
	heap.Init(&q.heap)
}
