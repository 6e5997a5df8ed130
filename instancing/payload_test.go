package instancing

import (
	"testing"

	"github.com/MasterZap/render-time-instancing/common"
)

func TestPayloadFlagsExactlyOneKindBit(t *testing.T) {
	cases := []struct {
		name string
		p    Payload
		want PayloadFlags
	}{
		{"mesh", MeshPayload(&Mesh{}, false), FlagMesh},
		{"mesh owned", MeshPayload(&Mesh{}, true), FlagMesh | FlagMustDelete},
		{"node", NodePayload(&NodeRef{Name: "tree"}, false), FlagNode},
		{"node owned", NodePayload(&NodeRef{Name: "tree"}, true), FlagNode | FlagMustDelete},
	}
	for _, tc := range cases {
		f := tc.p.Flags()
		if f != tc.want {
			t.Errorf("%s: Flags() = %#x, want %#x", tc.name, f, tc.want)
		}
		mesh := f.Has(FlagMesh)
		node := f.Has(FlagNode)
		if mesh == node {
			t.Errorf("%s: want exactly one kind bit, got mesh=%v node=%v", tc.name, mesh, node)
		}
	}
}

func TestPayloadFlagsTestedWithAND(t *testing.T) {
	// The ownership bit rides in the same word, so whole-word equality against
	// a kind constant must not be how consumers test kind.
	f := MeshPayload(&Mesh{}, true).Flags()
	if f == FlagMesh {
		t.Error("owned mesh flags equal bare FlagMesh")
	}
	if !f.Has(FlagMesh) {
		t.Error("owned mesh flags do not contain FlagMesh")
	}
}

func TestPayloadDestroy(t *testing.T) {
	m := &Mesh{
		Verts: []common.Point3{{X: 1}},
		Faces: [][3]int{{0, 0, 0}},
	}
	p := MeshPayload(m, true)
	p.Destroy()
	if m.Verts != nil || m.Faces != nil {
		t.Error("Destroy left mesh storage in place")
	}
	p.Destroy() // second call is harmless

	NodePayload(&NodeRef{}, true).Destroy()
}

func TestMeshMapSupport(t *testing.T) {
	m := &Mesh{Maps: map[int]MapChannel{2: {}}}
	if !m.MapSupport(2) {
		t.Error("MapSupport(2) = false, want true")
	}
	if m.MapSupport(1) {
		t.Error("MapSupport(1) = true, want false")
	}
	var nilMesh *Mesh
	if nilMesh.MapSupport(0) {
		t.Error("nil mesh reports map support")
	}
}

func TestVertexVelocities(t *testing.T) {
	// Two triangles sharing vertices 1 and 2; the map channel stores one
	// velocity per map vertex, indexed through the parallel face list.
	m := &Mesh{
		Verts: []common.Point3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
		Faces: [][3]int{{0, 1, 2}, {1, 3, 2}},
		Maps: map[int]MapChannel{
			0: {
				Verts: []common.Point3{{Z: 1}, {Z: 2}, {Z: 3}, {Z: 4}},
				Faces: [][3]int{{0, 1, 2}, {1, 3, 2}},
			},
		},
	}
	vels := m.VertexVelocities(0)
	if vels == nil {
		t.Fatal("VertexVelocities = nil, want values")
	}
	want := []float32{1, 2, 3, 4}
	for i, w := range want {
		if vels[i].Z != w {
			t.Errorf("vels[%d].Z = %v, want %v", i, vels[i].Z, w)
		}
	}
}

func TestVertexVelocitiesMissingOrMisaligned(t *testing.T) {
	m := &Mesh{
		Verts: []common.Point3{{}, {X: 1}, {Y: 1}},
		Faces: [][3]int{{0, 1, 2}},
	}
	if got := m.VertexVelocities(0); got != nil {
		t.Errorf("missing channel = %v, want nil", got)
	}
	m.Maps = map[int]MapChannel{0: {
		Verts: []common.Point3{{Z: 1}},
		Faces: [][3]int{}, // face count mismatch
	}}
	if got := m.VertexVelocities(0); got != nil {
		t.Errorf("misaligned channel = %v, want nil", got)
	}
}
