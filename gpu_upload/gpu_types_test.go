package gpu_upload

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/MasterZap/render-time-instancing/common"
	"github.com/MasterZap/render-time-instancing/instancing"
	"github.com/MasterZap/render-time-instancing/producer"
)

func TestGPUInstanceTransformLayout(t *testing.T) {
	g := &GPUInstanceTransform{}
	if g.Size() != 64 {
		t.Fatalf("Size() = %d, want 64", g.Size())
	}
	for i := range g.Model {
		g.Model[i] = float32(i)
	}
	buf := g.Marshal()
	if len(buf) != 64 {
		t.Fatalf("len(Marshal()) = %d, want 64", len(buf))
	}
	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : (i+1)*4]))
		if got != float32(i) {
			t.Errorf("element %d = %v, want %v", i, got, float32(i))
		}
	}
}

func TestFromMatrix3ColumnMajor(t *testing.T) {
	m := common.TranslationMatrix(common.Point3{X: 7, Y: 8, Z: 9})
	g := FromMatrix3(m)
	// Basis columns stay the identity.
	if g.Model[0] != 1 || g.Model[5] != 1 || g.Model[10] != 1 || g.Model[15] != 1 {
		t.Errorf("diagonal = %v %v %v %v, want all 1", g.Model[0], g.Model[5], g.Model[10], g.Model[15])
	}
	// Translation occupies the fourth column.
	if g.Model[12] != 7 || g.Model[13] != 8 || g.Model[14] != 9 {
		t.Errorf("translation column = %v %v %v, want 7 8 9", g.Model[12], g.Model[13], g.Model[14])
	}
}

func TestPackTransforms(t *testing.T) {
	mesh := &instancing.Mesh{
		Verts: []common.Point3{{}, {X: 1}, {Y: 1}},
		Faces: [][3]int{{0, 1, 2}},
	}
	a := producer.NewTargetSpec(1)
	a.Transform = common.TranslationMatrix(common.Point3{X: 1})
	b := producer.NewTargetSpec(2)
	b.Transform = common.TranslationMatrix(common.Point3{X: 2})
	p := producer.New(producer.BackendTypeStatic,
		producer.WithStaticSource(instancing.MeshPayload(mesh, false), a, b),
	)
	if _, _, err := p.Update(0, instancing.NoMotionBlur(), "renderer"); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	buf, n := PackTransforms(p, 0)
	if n != 2 {
		t.Fatalf("packed %d instances, want 2", n)
	}
	if len(buf) != 2*64 {
		t.Fatalf("len(buf) = %d, want 128", len(buf))
	}
	// First instance's translation X sits at float index 12.
	x0 := math.Float32frombits(binary.LittleEndian.Uint32(buf[12*4 : 13*4]))
	x1 := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+12*4 : 64+13*4]))
	if x0 != 1 || x1 != 2 {
		t.Errorf("translations = %v, %v, want 1, 2", x0, x1)
	}

	// Out-of-range sample indices clamp instead of failing.
	clamped, n := PackTransforms(p, 99)
	if n != 2 || len(clamped) != 128 {
		t.Errorf("clamped pack = %d instances, %d bytes", n, len(clamped))
	}
}

func TestPackMesh(t *testing.T) {
	mesh := &instancing.Mesh{
		Verts: []common.Point3{{}, {X: 1}, {Y: 1}, {Z: 1}},
		Faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
	if got := PackMeshVertices(mesh); len(got) != 4*12 {
		t.Errorf("vertex bytes = %d, want 48", len(got))
	}
	buf, count := PackMeshIndices(mesh)
	if count != 6 {
		t.Fatalf("index count = %d, want 6", count)
	}
	if len(buf) != 6*4 {
		t.Fatalf("index bytes = %d, want 24", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[4*4 : 5*4]); got != 2 {
		t.Errorf("index 4 = %d, want 2", got)
	}

	if b, n := PackMeshIndices(nil); b != nil || n != 0 {
		t.Errorf("nil mesh = %v, %d, want nil, 0", b, n)
	}
}

func TestPackEmptyTree(t *testing.T) {
	p := producer.New(producer.BackendTypeStatic)
	if _, _, err := p.Update(0, instancing.NoMotionBlur(), "renderer"); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	buf, n := PackTransforms(p, 0)
	if n != 0 || len(buf) != 0 {
		t.Errorf("empty tree packed %d instances, %d bytes", n, len(buf))
	}
}
