package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.True(t, im.JustPressed(ActionMoveForward))

	im.PostUpdate()
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.JustPressed(ActionMoveForward))

	// Repeat keeps the key held without a new edge.
	im.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	assert.False(t, im.JustPressed(ActionMoveForward))

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, im.IsActive(ActionMoveForward))
	assert.True(t, im.JustReleased(ActionMoveForward))
}

func TestTapBetweenFrames(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyF, glfw.Press)
	im.HandleKeyEvent(glfw.KeyF, glfw.Release)
	assert.True(t, im.JustPressed(ActionToggleWireframe))
	assert.False(t, im.IsActive(ActionToggleWireframe))
}

func TestMouseButtons(t *testing.T) {
	im := NewInputManager()
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	assert.True(t, im.JustPressed(ActionPlace))
	assert.False(t, im.JustPressed(ActionBreak))
}

func TestBindings(t *testing.T) {
	im := NewInputManager()
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveForward))

	im.UnbindKey(glfw.KeyW)
	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.True(t, im.IsActive(ActionMoveForward), "unbound key must not release the action")

	im.BindKey(glfw.KeyX, ActionCount)
	assert.False(t, im.IsActive(ActionCount))
	assert.False(t, im.JustPressed(-1))
}
