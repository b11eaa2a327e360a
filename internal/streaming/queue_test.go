package streaming

import (
	"testing"

	"voxelforge/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(q *priorityQueue) []world.ChunkPos {
	var out []world.ChunkPos
	for {
		pos, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, pos)
	}
}

func TestPriorityQueueOrder(t *testing.T) {
	q := newPriorityQueue()
	q.Push(world.ChunkPos{X: 3}, 9)
	q.Push(world.ChunkPos{X: 1}, 1)
	q.Push(world.ChunkPos{X: -1}, 1)
	q.Push(world.ChunkPos{}, 0)
	q.Push(world.ChunkPos{X: 1}, 0) // already queued, ignored

	assert.Equal(t, 4, q.Len())
	assert.Equal(t, []world.ChunkPos{{}, {X: -1}, {X: 1}, {X: 3}}, drain(q))
	assert.Zero(t, q.Len())
}

func TestPriorityQueueRemove(t *testing.T) {
	q := newPriorityQueue()
	for i := 0; i < 5; i++ {
		q.Push(world.ChunkPos{X: i}, i)
	}
	q.Remove(world.ChunkPos{X: 2})
	q.Remove(world.ChunkPos{X: 9})
	assert.False(t, q.Contains(world.ChunkPos{X: 2}))
	assert.Equal(t, []world.ChunkPos{{X: 0}, {X: 1}, {X: 3}, {X: 4}}, drain(q))
}

func TestPriorityQueueRekey(t *testing.T) {
	q := newPriorityQueue()
	for i := 0; i < 4; i++ {
		pos := world.ChunkPos{X: i}
		q.Push(pos, pos.DistanceSq(world.ChunkPos{}))
	}
	focus := world.ChunkPos{X: 3}
	q.Rekey(func(p world.ChunkPos) int { return p.DistanceSq(focus) })

	pos, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, focus, pos)
	assert.Equal(t, []world.ChunkPos{{X: 2}, {X: 1}, {X: 0}}, drain(q))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "unloading", Unloading.String())
	assert.Equal(t, "unknown", State(42).String())
}
