// Package instancing defines the contract through which a geometry producer
// (a particle system, a scatter tool, a procedural generator) hands fully
// resolved instance data to a rendering consumer at render time.
//
// The exchange is a strict cycle. The consumer calls Update with an
// evaluation time and a motion blur request; the producer answers with a
// validity interval and a binding motion blur response, and exposes a
// two-level tree of Sources (shared payloads) and Targets (placements of a
// payload). The consumer reads the tree, typically fanning out across
// sources, then calls Release. Every view handed out during the window dies
// with the next Update or Release call.
//
// Per-instance data beyond the built-in fields travels through named, typed
// channels. Channel names resolve to opaque tokens that are only stable
// within one Ready window; reads through invalid or stale tokens return
// documented default values rather than failing.
package instancing

import (
	"github.com/MasterZap/render-time-instancing/common"
)

// State is the lifecycle state of an Instancer.
type State int

const (
	// StateUninitialized is the state before the first Update.
	StateUninitialized State = iota
	// StateUpdating is the transient state while Update runs.
	StateUpdating
	// StateReady is the window during which the tree may be read.
	StateReady
	// StateReleased is the state after Release; a new Update reopens the cycle.
	StateReleased
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateUpdating:
		return "updating"
	case StateReady:
		return "ready"
	case StateReleased:
		return "released"
	}
	return "unknown"
}

// Instancer is the producer side of the exchange.
//
// Update, Release, and the read operations must not be interleaved: Update
// and Release take the producer exclusively, while the read operations
// (Channels, Resolve, SourceCount, Source, and everything reachable from a
// Source) may run concurrently from any number of goroutines during the
// Ready window. Outside that window the reads degrade softly: counts are
// zero, tokens are invalid, views are empty.
type Instancer interface {
	// Update evaluates the producer at time t and opens a Ready window.
	// request carries the consumer's motion blur wishes; the returned
	// MotionBlurInfo is the producer's binding answer, which may differ from
	// the request in both sample count and representation. The returned
	// Interval tells the consumer how long the evaluated data stays valid;
	// a Forever validity means the data never changes.
	//
	// Calling Update while a window is open closes it first, invalidating
	// every previously handed-out view and token.
	Update(t TimeValue, request MotionBlurInfo, plugin string) (Interval, MotionBlurInfo, error)

	// Release closes the Ready window and drops the evaluated data. Safe to
	// call at any time, any number of times.
	Release()

	// Channels lists the channels of the current window as a fresh slice.
	Channels() []ChannelInfo

	// Resolve maps a (name, type) pair to this window's token for it, or
	// ChannelInvalid if no such channel exists.
	Resolve(name string, typ ChannelType) ChannelID

	// SourceCount returns the number of sources in the current window.
	SourceCount() int

	// Source returns the i-th source view, or nil when out of range or
	// outside a Ready window. Enumeration is restartable: any source may be
	// fetched any number of times, in any order, from any goroutine.
	Source(i int) Source

	// ReusesThreadScratch reports whether the producer reuses per-goroutine
	// scratch storage across Target reads. When true, a consumer must finish
	// reading one target's data before fetching the next on the same
	// goroutine; when false, all views remain independently valid for the
	// whole window.
	ReusesThreadScratch() bool
}

// Source is one shared payload and the set of placements instantiating it.
// Views are valid only within the Ready window that produced them.
type Source interface {
	// Payload returns what this source instantiates.
	Payload() Payload

	// VelocityMapChannel returns the mesh mapping channel carrying per-vertex
	// velocities for deforming geometry, or a negative value when the payload
	// has none.
	VelocityMapChannel() int

	// TargetCount returns the number of placements of this payload.
	TargetCount() int

	// Target returns the i-th placement view, or nil when out of range.
	// Enumeration is restartable, like Source enumeration.
	Target(i int) Target
}

// Target is one placement of a source's payload: where it sits, how it
// moves, and its per-instance overrides and custom channel values.
type Target interface {
	// BirthID is the persistent identity of the instance, stable across
	// update cycles for as long as the instance logically exists. Consumers
	// key temporal correspondences (motion vectors, caches) on it.
	BirthID() int64

	// InstanceID is a secondary identifier whose meaning belongs to the
	// producer, commonly a sub-object or variant index.
	InstanceID() int64

	// MaterialOverride returns the material replacing the payload's own, or
	// nil when the payload's material applies.
	MaterialOverride() *MaterialRef

	// MaterialIDOverride returns the face material ID forced across the
	// instance, or MaterialIDNone when no override applies.
	MaterialIDOverride() int

	// UVOverrides returns the instance's constant mapping overrides. The
	// slice is empty, never nil, when there are none.
	UVOverrides() []UVOverride

	// Transforms returns the instance's transform samples for the window,
	// ordered from shutter open to shutter close. The length always matches
	// the update's negotiated SampleCount, except that a motion-less update
	// still carries the single placement transform.
	Transforms() []common.Matrix3

	// Velocity returns the instance's velocity in units per second. Whether
	// it is authoritative or derived is told by the update's MotionFlags.
	Velocity() common.Point3

	// Spin returns the instance's angular velocity as a rotation per second.
	Spin() common.Quat

	// CustomFloat reads a float channel value for this instance; invalid
	// tokens yield 0.
	CustomFloat(id ChannelID) float32

	// CustomInt reads an integer channel value; invalid tokens yield 0.
	CustomInt(id ChannelID) int64

	// CustomVector reads a vector channel value; invalid tokens yield the
	// origin.
	CustomVector(id ChannelID) common.Point3

	// CustomColor reads a color channel value; invalid tokens yield black.
	CustomColor(id ChannelID) common.Color

	// CustomTM reads a transform channel value; invalid tokens yield the
	// identity.
	CustomTM(id ChannelID) common.Matrix3

	// CustomData reads an opaque channel value; invalid tokens yield nil.
	CustomData(id ChannelID) []byte
}
