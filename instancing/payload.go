package instancing

import (
	"github.com/MasterZap/render-time-instancing/common"
)

// PayloadKind identifies which renderable a source hands out.
type PayloadKind int

const (
	// PayloadMesh means the source instantiates raw geometry.
	PayloadMesh PayloadKind = iota
	// PayloadNode means the source instantiates a scene node reference,
	// carrying the node's materials and object-level properties with it.
	PayloadNode
)

// String returns the lowercase name of the payload kind.
func (k PayloadKind) String() string {
	switch k {
	case PayloadMesh:
		return "mesh"
	case PayloadNode:
		return "node"
	}
	return "unknown"
}

// PayloadFlags is the bitset form of a payload description, kept for hosts
// that exchange payload metadata as packed bits. Exactly one of FlagMesh and
// FlagNode is set on any flags value derived from a well-formed Payload.
// Test bits with bitwise AND; never compare the whole word for equality,
// since the ownership bit rides in the same word.
type PayloadFlags uint32

const (
	// FlagMesh marks a mesh payload.
	FlagMesh PayloadFlags = 1 << 0
	// FlagNode marks a node payload.
	FlagNode PayloadFlags = 1 << 1
	// FlagMustDelete marks a payload whose ownership transfers to the
	// consumer, which must destroy it after the cycle.
	FlagMustDelete PayloadFlags = 1 << 31
)

// Has reports whether every bit of f is present.
func (p PayloadFlags) Has(f PayloadFlags) bool {
	return p&f == f
}

// Payload is what a source instantiates: either a mesh or a node reference,
// plus an ownership marker. The kind is explicit rather than inferred from
// which pointer happens to be non-nil.
//
// When TransferOwnership is true the consumer owns the payload for the
// duration of the cycle and must call Destroy when done with it; when false
// the producer retains ownership and the consumer must not destroy it.
type Payload struct {
	Kind              PayloadKind
	Mesh              *Mesh
	Node              *NodeRef
	TransferOwnership bool
}

// MeshPayload builds a mesh payload.
//
// Parameters:
//   - m: the mesh to instantiate
//   - transfer: true if the consumer must destroy the mesh after the cycle
//
// Returns:
//   - Payload: the payload description
func MeshPayload(m *Mesh, transfer bool) Payload {
	return Payload{Kind: PayloadMesh, Mesh: m, TransferOwnership: transfer}
}

// NodePayload builds a node-reference payload.
//
// Parameters:
//   - n: the scene node to instantiate
//   - transfer: true if the consumer must destroy the reference after the cycle
//
// Returns:
//   - Payload: the payload description
func NodePayload(n *NodeRef, transfer bool) Payload {
	return Payload{Kind: PayloadNode, Node: n, TransferOwnership: transfer}
}

// Flags returns the packed bitset equivalent of the payload description.
func (p Payload) Flags() PayloadFlags {
	var f PayloadFlags
	switch p.Kind {
	case PayloadMesh:
		f = FlagMesh
	case PayloadNode:
		f = FlagNode
	}
	if p.TransferOwnership {
		f |= FlagMustDelete
	}
	return f
}

// Destroy releases the payload's backing storage. Consumers call it exactly
// when TransferOwnership is true; it is a no-op for node payloads and safe to
// call more than once.
func (p Payload) Destroy() {
	if p.Kind == PayloadMesh && p.Mesh != nil {
		p.Mesh.Release()
	}
}

// MapChannel is one texture-mapping channel of a mesh: per-channel vertices
// and a face list indexing them. Map faces correspond one-to-one with the
// mesh's geometry faces.
type MapChannel struct {
	Verts []common.Point3
	Faces [][3]int
}

// Mesh is instanceable triangle geometry with optional mapping channels.
// Mapping channels are conventionally used for UVs, but any channel may carry
// arbitrary per-vertex data such as velocities.
type Mesh struct {
	Verts []common.Point3
	Faces [][3]int
	// Maps holds mapping channels keyed by channel index.
	Maps map[int]MapChannel
}

// MapSupport reports whether the mesh carries mapping channel index.
func (m *Mesh) MapSupport(index int) bool {
	if m == nil {
		return false
	}
	_, ok := m.Maps[index]
	return ok
}

// VertexVelocities resolves a velocity mapping channel into one velocity per
// geometry vertex, walking the map faces in parallel with the geometry faces
// so that map vertices land on the geometry vertices they annotate. Returns
// nil if the channel is missing or its face list does not line up with the
// geometry.
//
// Parameters:
//   - index: the mapping channel holding velocities
//
// Returns:
//   - []common.Point3: one velocity per geometry vertex, or nil
func (m *Mesh) VertexVelocities(index int) []common.Point3 {
	if m == nil {
		return nil
	}
	mc, ok := m.Maps[index]
	if !ok || len(mc.Faces) != len(m.Faces) {
		return nil
	}
	out := make([]common.Point3, len(m.Verts))
	for fi, face := range m.Faces {
		mapFace := mc.Faces[fi]
		for c := 0; c < 3; c++ {
			v := face[c]
			mv := mapFace[c]
			if v < 0 || v >= len(out) || mv < 0 || mv >= len(mc.Verts) {
				return nil
			}
			out[v] = mc.Verts[mv]
		}
	}
	return out
}

// Release drops the mesh's vertex, face, and mapping storage. The mesh is
// empty afterwards; releasing again is harmless.
func (m *Mesh) Release() {
	if m == nil {
		return
	}
	m.Verts = nil
	m.Faces = nil
	m.Maps = nil
}

// NodeRef identifies a scene node owned by the host.
type NodeRef struct {
	// Name is the node's scene name.
	Name string
	// Handle is the host's stable identifier for the node.
	Handle int64
}

// MaterialRef identifies a material owned by the host.
type MaterialRef struct {
	Name   string
	Handle int64
}

// MaterialIDNone is the sentinel for "no material ID override".
const MaterialIDNone = -1

// UVOverride replaces one mapping channel's value for a whole instance,
// useful for per-instance texture atlas offsets or randomized tinting.
type UVOverride struct {
	// MapChannel is the mapping channel index to override.
	MapChannel int
	// Value is the constant mapping value applied across the instance.
	Value common.Point3
}
