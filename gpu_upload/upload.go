// Package gpu_upload flattens an evaluated instance tree into GPU-ready
// buffers: packed per-instance model matrices plus mesh vertex and index data
// for instanced draws.
package gpu_upload

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/MasterZap/render-time-instancing/common"
	"github.com/MasterZap/render-time-instancing/instancing"
)

// PackSource serializes every target of one source at a given transform
// sample index into a tightly packed buffer of GPUInstanceTransform records.
// sampleIndex is clamped into each target's sample list, so passing 0 always
// reads the placement transform and a large index reads the shutter-close
// sample.
//
// Parameters:
//   - src: the source whose targets to pack
//   - sampleIndex: which transform sample to pack per target
//
// Returns:
//   - []byte: packed matrices, 64 bytes per instance
//   - int: the number of instances packed
func PackSource(src instancing.Source, sampleIndex int) ([]byte, int) {
	if src == nil {
		return nil, 0
	}
	count := src.TargetCount()
	buf := make([]byte, 0, count*64)
	packed := 0
	for i := 0; i < count; i++ {
		target := src.Target(i)
		if target == nil {
			continue
		}
		tms := target.Transforms()
		if len(tms) == 0 {
			continue
		}
		idx := sampleIndex
		if idx < 0 {
			idx = 0
		} else if idx >= len(tms) {
			idx = len(tms) - 1
		}
		g := FromMatrix3(tms[idx])
		buf = append(buf, g.Marshal()...)
		packed++
	}
	return buf, packed
}

// PackTransforms serializes every target of every source in the current Ready
// window, in enumeration order, at the given sample index.
//
// Parameters:
//   - inst: the instancer whose tree to pack
//   - sampleIndex: which transform sample to pack per target
//
// Returns:
//   - []byte: packed matrices, 64 bytes per instance
//   - int: the number of instances packed
func PackTransforms(inst instancing.Instancer, sampleIndex int) ([]byte, int) {
	if inst == nil {
		return nil, 0
	}
	var buf []byte
	total := 0
	for i := 0; i < inst.SourceCount(); i++ {
		b, n := PackSource(inst.Source(i), sampleIndex)
		buf = append(buf, b...)
		total += n
	}
	return buf, total
}

// PackMeshVertices serializes a mesh's vertex positions for upload.
//
// Parameters:
//   - mesh: the mesh to pack
//
// Returns:
//   - []byte: packed vertex positions, 12 bytes per vertex
func PackMeshVertices(mesh *instancing.Mesh) []byte {
	if mesh == nil {
		return nil
	}
	return common.SliceToBytes(mesh.Verts)
}

// PackMeshIndices flattens a mesh's triangle faces into a uint32 index
// stream for indexed draws.
//
// Parameters:
//   - mesh: the mesh to pack
//
// Returns:
//   - []byte: packed indices, 4 bytes per index
//   - int: the index count
func PackMeshIndices(mesh *instancing.Mesh) ([]byte, int) {
	if mesh == nil || len(mesh.Faces) == 0 {
		return nil, 0
	}
	indices := make([]uint32, 0, len(mesh.Faces)*3)
	for _, f := range mesh.Faces {
		indices = append(indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return common.SliceToBytes(indices), len(indices)
}

// CreateInstanceBuffer creates a storage buffer on the device and writes the
// packed instance data into it.
//
// Parameters:
//   - device: the GPU device to allocate on
//   - queue: the queue used for the initial write
//   - label: debug label for the buffer
//   - data: packed instance data, as produced by PackTransforms
//
// Returns:
//   - *wgpu.Buffer: the created buffer
//   - error: an error if the buffer could not be created
func CreateInstanceBuffer(device *wgpu.Device, queue *wgpu.Queue, label string, data []byte) (*wgpu.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no instance data to upload for %q", label)
	}
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Instance Buffer",
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
