package instancing

import (
	"testing"

	"github.com/MasterZap/render-time-instancing/common"
)

func TestResolveKnownChannels(t *testing.T) {
	s := NewChannelSet()
	age := s.Define("age", ChannelFloat)
	tint := s.Define("tint", ChannelColor)

	if got := s.Resolve("age", ChannelFloat); got != age {
		t.Errorf("Resolve(age, float) = %v, want %v", got, age)
	}
	if got := s.Resolve("tint", ChannelColor); got != tint {
		t.Errorf("Resolve(tint, color) = %v, want %v", got, tint)
	}
	if age == tint {
		t.Error("distinct channels share a token")
	}
}

func TestResolveWrongTypeIsInvalid(t *testing.T) {
	s := NewChannelSet()
	s.Define("age", ChannelFloat)
	if got := s.Resolve("age", ChannelInt); got != ChannelInvalid {
		t.Errorf("Resolve(age, int) = %v, want ChannelInvalid", got)
	}
	if got := s.Resolve("missing", ChannelFloat); got != ChannelInvalid {
		t.Errorf("Resolve(missing, float) = %v, want ChannelInvalid", got)
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	s := NewChannelSet()
	s.Define("Age", ChannelFloat)
	if got := s.Resolve("age", ChannelFloat); got != ChannelInvalid {
		t.Errorf("Resolve(age) = %v, want ChannelInvalid", got)
	}
}

func TestDefineIsIdempotent(t *testing.T) {
	s := NewChannelSet()
	a := s.Define("age", ChannelFloat)
	b := s.Define("age", ChannelFloat)
	if a != b {
		t.Errorf("redefining returned %v, want %v", b, a)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestChannelsReturnsFreshSlice(t *testing.T) {
	s := NewChannelSet()
	s.Define("age", ChannelFloat)
	s.DefineCustom("blob", 16)

	first := s.Channels()
	second := s.Channels()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("lengths = %d, %d, want 2, 2", len(first), len(second))
	}
	first[0].Name = "clobbered"
	if second[0].Name == "clobbered" || s.Channels()[0].Name == "clobbered" {
		t.Error("Channels() slices share storage")
	}
	if first[1].CustomSize != 16 {
		t.Errorf("CustomSize = %d, want 16", first[1].CustomSize)
	}
}

func TestValuesRoundTrip(t *testing.T) {
	s := NewChannelSet()
	age := s.Define("age", ChannelFloat)
	count := s.Define("count", ChannelInt)
	dir := s.Define("dir", ChannelVector)
	tint := s.Define("tint", ChannelColor)
	local := s.Define("local", ChannelTransform)
	blob := s.DefineCustom("blob", 4)

	v := MakeChannelValues(s)
	v.SetFloat(s, age, 1.5)
	v.SetInt(s, count, 42)
	v.SetVector(s, dir, common.Point3{X: 1})
	v.SetColor(s, tint, common.Color{R: 0.5})
	v.SetTM(s, local, common.TranslationMatrix(common.Point3{Z: 2}))
	v.SetData(s, blob, []byte{1, 2, 3, 4})

	if got := v.Float(s, age); got != 1.5 {
		t.Errorf("Float = %v, want 1.5", got)
	}
	if got := v.Int(s, count); got != 42 {
		t.Errorf("Int = %v, want 42", got)
	}
	if got := v.Vector(s, dir); got != (common.Point3{X: 1}) {
		t.Errorf("Vector = %v, want {1 0 0}", got)
	}
	if got := v.Color(s, tint); got != (common.Color{R: 0.5}) {
		t.Errorf("Color = %v, want {0.5 0 0}", got)
	}
	if got := v.TM(s, local); got.T.Z != 2 {
		t.Errorf("TM translation = %v, want Z=2", got.T)
	}
	if got := v.Data(s, blob); len(got) != 4 || got[0] != 1 {
		t.Errorf("Data = %v, want [1 2 3 4]", got)
	}
}

func TestValuesInvalidTokenDefaults(t *testing.T) {
	s := NewChannelSet()
	age := s.Define("age", ChannelFloat)
	v := MakeChannelValues(s)
	v.SetFloat(s, age, 9)

	if got := v.Float(s, ChannelInvalid); got != 0 {
		t.Errorf("Float(invalid) = %v, want 0", got)
	}
	if got := v.Int(s, age); got != 0 {
		t.Errorf("Int(wrong type) = %v, want 0", got)
	}
	if got := v.Vector(s, ChannelInvalid); got != common.Origin() {
		t.Errorf("Vector(invalid) = %v, want origin", got)
	}
	if got := v.Color(s, ChannelInvalid); got != (common.Color{}) {
		t.Errorf("Color(invalid) = %v, want black", got)
	}
	if got := v.TM(s, ChannelInvalid); !got.IsIdentity() {
		t.Errorf("TM(invalid) = %v, want identity", got)
	}
	if got := v.Data(s, ChannelInvalid); got != nil {
		t.Errorf("Data(invalid) = %v, want nil", got)
	}
	if v.SetFloat(s, ChannelInvalid, 1) {
		t.Error("SetFloat(invalid) = true, want false")
	}
}

func TestUnsetValuesDefault(t *testing.T) {
	s := NewChannelSet()
	local := s.Define("local", ChannelTransform)
	dir := s.Define("dir", ChannelVector)
	v := MakeChannelValues(s)

	if got := v.TM(s, local); !got.IsIdentity() {
		t.Errorf("unset TM = %v, want identity", got)
	}
	if got := v.Vector(s, dir); got != common.Origin() {
		t.Errorf("unset Vector = %v, want origin", got)
	}
}
