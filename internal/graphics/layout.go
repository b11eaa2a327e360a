package graphics

import (
	"log"

	"voxelforge/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexAttrib is one float attribute of the interleaved chunk vertex.
type VertexAttrib struct {
	Location uint32
	Size     int32
	// Offset is in floats from the start of the vertex.
	Offset int
}

// ChunkAttribs lists the chunk vertex attributes in shader location order.
var ChunkAttribs = []VertexAttrib{
	{Location: 0, Size: 3, Offset: world.OffsetPosition},
	{Location: 1, Size: 3, Offset: world.OffsetNormal},
	{Location: 2, Size: 3, Offset: world.OffsetColor},
	{Location: 3, Size: 1, Offset: world.OffsetAO},
	{Location: 4, Size: 2, Offset: world.OffsetLocalUV},
	{Location: 5, Size: 2, Offset: world.OffsetAtlasUV},
}

// ChunkStride is the byte size of one interleaved vertex.
const ChunkStride = world.VertexFloats * 4

// BindChunkAttribs describes the interleaved layout to the bound VAO.
func BindChunkAttribs() {
	for _, a := range ChunkAttribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, ChunkStride, uintptr(a.Offset*4))
	}
}

// GLCheckError logs any pending GL error with a label.
func GLCheckError(label string) uint32 {
	err := gl.GetError()
	if err != gl.NO_ERROR {
		log.Printf("gl error %s: 0x%x", label, err)
	}
	return err
}
