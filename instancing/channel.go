package instancing

import (
	"github.com/MasterZap/render-time-instancing/common"
)

// ChannelType identifies the value type of a named per-instance data channel.
type ChannelType int

const (
	// ChannelCustom is an opaque fixed-size byte payload; its size is declared
	// per channel (see ChannelInfo.CustomSize).
	ChannelCustom ChannelType = iota
	// ChannelInt is a 64-bit signed integer channel.
	ChannelInt
	// ChannelFloat is a scalar float channel.
	ChannelFloat
	// ChannelVector is a Point3 channel.
	ChannelVector
	// ChannelColor is an RGB color channel.
	ChannelColor
	// ChannelTransform is a Matrix3 channel.
	ChannelTransform
)

// String returns the lowercase name of the channel type.
func (t ChannelType) String() string {
	switch t {
	case ChannelCustom:
		return "custom"
	case ChannelInt:
		return "int"
	case ChannelFloat:
		return "float"
	case ChannelVector:
		return "vector"
	case ChannelColor:
		return "color"
	case ChannelTransform:
		return "transform"
	}
	return "unknown"
}

// ChannelID is an opaque token identifying a resolved channel. Tokens are
// stable for the duration of one Ready window only and must be re-resolved
// after every Update call.
type ChannelID int32

// ChannelInvalid is the not-found sentinel returned by Resolve. Feeding it
// (or any stale token) to a per-instance read yields the documented default
// value for the requested type, never a fault.
const ChannelInvalid ChannelID = -1

// ChannelInfo describes one channel in the current Ready window.
type ChannelInfo struct {
	// Name is the channel name. Names are case-sensitive.
	Name string
	// Type is the channel's value type.
	Type ChannelType
	// ID is the resolved token for this window.
	ID ChannelID
	// CustomSize is the byte size of values for ChannelCustom channels, 0 for
	// all other types.
	CustomSize int
}

type channelKey struct {
	name string
	typ  ChannelType
}

type channelEntry struct {
	info ChannelInfo
	slot int // index into the per-type value table
}

// ChannelSet is the channel registry for one update cycle. A producer builds
// one fresh set per Update call; consumers read it through the Instancer's
// Channels and Resolve operations. The zero value is not usable; call
// NewChannelSet.
//
// A (name, type) pair resolves to exactly one ChannelID or to ChannelInvalid.
// Resolution is an O(1) map lookup and never mutates the set, so it is safe
// to call from any number of goroutines during the Ready window.
type ChannelSet struct {
	entries []channelEntry
	index   map[channelKey]ChannelID
	slots   [6]int // next free slot per ChannelType
}

// NewChannelSet creates an empty channel registry.
//
// Returns:
//   - *ChannelSet: the new registry
func NewChannelSet() *ChannelSet {
	return &ChannelSet{index: make(map[channelKey]ChannelID)}
}

// Define registers a channel of the given name and type and returns its token.
// Defining the same (name, type) pair again returns the existing token.
// ChannelCustom channels must be registered through DefineCustom instead;
// Define treats them as zero-sized.
//
// Parameters:
//   - name: channel name (case-sensitive)
//   - typ: channel value type
//
// Returns:
//   - ChannelID: the token for this window
func (s *ChannelSet) Define(name string, typ ChannelType) ChannelID {
	return s.define(name, typ, 0)
}

// DefineCustom registers an opaque channel whose values are size bytes each.
//
// Parameters:
//   - name: channel name (case-sensitive)
//   - size: byte size of each value
//
// Returns:
//   - ChannelID: the token for this window
func (s *ChannelSet) DefineCustom(name string, size int) ChannelID {
	return s.define(name, ChannelCustom, size)
}

func (s *ChannelSet) define(name string, typ ChannelType, size int) ChannelID {
	key := channelKey{name, typ}
	if id, ok := s.index[key]; ok {
		return id
	}
	id := ChannelID(len(s.entries))
	slot := s.slots[typ]
	s.slots[typ]++
	s.entries = append(s.entries, channelEntry{
		info: ChannelInfo{Name: name, Type: typ, ID: id, CustomSize: size},
		slot: slot,
	})
	s.index[key] = id
	return id
}

// Resolve maps a (name, type) pair to its token, or ChannelInvalid if no
// channel with that exact name and type exists. Guessing the wrong type for
// an existing name yields ChannelInvalid, never a reinterpreted value.
//
// Parameters:
//   - name: channel name (case-sensitive)
//   - typ: expected channel type
//
// Returns:
//   - ChannelID: the token, or ChannelInvalid
func (s *ChannelSet) Resolve(name string, typ ChannelType) ChannelID {
	if s == nil {
		return ChannelInvalid
	}
	if id, ok := s.index[channelKey{name, typ}]; ok {
		return id
	}
	return ChannelInvalid
}

// Channels returns a fresh slice describing every channel in the set, in
// definition order. Safe to call any number of times within one window.
//
// Returns:
//   - []ChannelInfo: the channel descriptions (never nil)
func (s *ChannelSet) Channels() []ChannelInfo {
	if s == nil {
		return []ChannelInfo{}
	}
	out := make([]ChannelInfo, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.info)
	}
	return out
}

// Info returns the description of a token, reporting false for tokens that do
// not belong to this set.
//
// Parameters:
//   - id: the token to look up
//
// Returns:
//   - ChannelInfo: the channel description (zero value when not found)
//   - bool: true if the token is valid for this set
func (s *ChannelSet) Info(id ChannelID) (ChannelInfo, bool) {
	if s == nil || id < 0 || int(id) >= len(s.entries) {
		return ChannelInfo{}, false
	}
	return s.entries[id].info, true
}

// Len returns the number of channels in the set.
func (s *ChannelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// SlotCount returns how many channels of the given type exist, which is the
// required length of the matching per-target value table.
func (s *ChannelSet) SlotCount(typ ChannelType) int {
	if s == nil {
		return 0
	}
	return s.slots[typ]
}

func (s *ChannelSet) slotOf(id ChannelID, typ ChannelType) (int, bool) {
	if s == nil || id < 0 || int(id) >= len(s.entries) {
		return 0, false
	}
	e := s.entries[id]
	if e.info.Type != typ {
		return 0, false
	}
	return e.slot, true
}

// ChannelValues is the dense per-target custom value storage: one table per
// channel type, indexed by the owning ChannelSet's slot assignment. Producers
// fill it once per target at collect time; reads are index lookups with no
// allocation.
//
// All reads tolerate invalid or mismatched tokens and missing values by
// returning the documented defaults: 0 for float and int, the origin for
// vectors, black for colors, the identity for transforms, and nil for custom
// payloads.
type ChannelValues struct {
	floats     []float32
	ints       []int64
	vectors    []common.Point3
	colors     []common.Color
	transforms []common.Matrix3
	raw        [][]byte
}

// MakeChannelValues allocates value tables sized for every channel in set.
// Transform slots start as the identity; everything else starts as its
// default value.
//
// Parameters:
//   - set: the channel set the tables are indexed by
//
// Returns:
//   - ChannelValues: zero-initialized storage for one target
func MakeChannelValues(set *ChannelSet) ChannelValues {
	v := ChannelValues{
		floats:     make([]float32, set.SlotCount(ChannelFloat)),
		ints:       make([]int64, set.SlotCount(ChannelInt)),
		vectors:    make([]common.Point3, set.SlotCount(ChannelVector)),
		colors:     make([]common.Color, set.SlotCount(ChannelColor)),
		transforms: make([]common.Matrix3, set.SlotCount(ChannelTransform)),
		raw:        make([][]byte, set.SlotCount(ChannelCustom)),
	}
	for i := range v.transforms {
		v.transforms[i] = common.Identity3()
	}
	return v
}

// SetFloat stores a float value for the channel identified by id.
// Returns false (and stores nothing) if id is not a float channel of set.
func (v *ChannelValues) SetFloat(set *ChannelSet, id ChannelID, value float32) bool {
	slot, ok := set.slotOf(id, ChannelFloat)
	if !ok || slot >= len(v.floats) {
		return false
	}
	v.floats[slot] = value
	return true
}

// SetInt stores an integer value for the channel identified by id.
func (v *ChannelValues) SetInt(set *ChannelSet, id ChannelID, value int64) bool {
	slot, ok := set.slotOf(id, ChannelInt)
	if !ok || slot >= len(v.ints) {
		return false
	}
	v.ints[slot] = value
	return true
}

// SetVector stores a vector value for the channel identified by id.
func (v *ChannelValues) SetVector(set *ChannelSet, id ChannelID, value common.Point3) bool {
	slot, ok := set.slotOf(id, ChannelVector)
	if !ok || slot >= len(v.vectors) {
		return false
	}
	v.vectors[slot] = value
	return true
}

// SetColor stores a color value for the channel identified by id.
func (v *ChannelValues) SetColor(set *ChannelSet, id ChannelID, value common.Color) bool {
	slot, ok := set.slotOf(id, ChannelColor)
	if !ok || slot >= len(v.colors) {
		return false
	}
	v.colors[slot] = value
	return true
}

// SetTM stores a transform value for the channel identified by id.
func (v *ChannelValues) SetTM(set *ChannelSet, id ChannelID, value common.Matrix3) bool {
	slot, ok := set.slotOf(id, ChannelTransform)
	if !ok || slot >= len(v.transforms) {
		return false
	}
	v.transforms[slot] = value
	return true
}

// SetData stores an opaque value for the channel identified by id. The slice
// is stored as-is, not copied.
func (v *ChannelValues) SetData(set *ChannelSet, id ChannelID, value []byte) bool {
	slot, ok := set.slotOf(id, ChannelCustom)
	if !ok || slot >= len(v.raw) {
		return false
	}
	v.raw[slot] = value
	return true
}

// Float reads a float channel value, or 0.0 for any invalid token.
func (v *ChannelValues) Float(set *ChannelSet, id ChannelID) float32 {
	if slot, ok := set.slotOf(id, ChannelFloat); ok && slot < len(v.floats) {
		return v.floats[slot]
	}
	return 0
}

// Int reads an integer channel value, or 0 for any invalid token.
func (v *ChannelValues) Int(set *ChannelSet, id ChannelID) int64 {
	if slot, ok := set.slotOf(id, ChannelInt); ok && slot < len(v.ints) {
		return v.ints[slot]
	}
	return 0
}

// Vector reads a vector channel value, or the origin for any invalid token.
func (v *ChannelValues) Vector(set *ChannelSet, id ChannelID) common.Point3 {
	if slot, ok := set.slotOf(id, ChannelVector); ok && slot < len(v.vectors) {
		return v.vectors[slot]
	}
	return common.Origin()
}

// Color reads a color channel value, or black for any invalid token.
func (v *ChannelValues) Color(set *ChannelSet, id ChannelID) common.Color {
	if slot, ok := set.slotOf(id, ChannelColor); ok && slot < len(v.colors) {
		return v.colors[slot]
	}
	return common.Color{}
}

// TM reads a transform channel value, or the identity for any invalid token.
func (v *ChannelValues) TM(set *ChannelSet, id ChannelID) common.Matrix3 {
	if slot, ok := set.slotOf(id, ChannelTransform); ok && slot < len(v.transforms) {
		return v.transforms[slot]
	}
	return common.Identity3()
}

// Data reads an opaque channel value, or nil for any invalid token.
func (v *ChannelValues) Data(set *ChannelSet, id ChannelID) []byte {
	if slot, ok := set.slotOf(id, ChannelCustom); ok && slot < len(v.raw) {
		return v.raw[slot]
	}
	return nil
}
