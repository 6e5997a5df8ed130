package producer

import (
	"github.com/MasterZap/render-time-instancing/common"
	"github.com/MasterZap/render-time-instancing/instancing"
)

// BackendType selects the evaluation strategy used by a producer.
type BackendType int

const (
	// BackendTypeStatic serves hand-authored placements that do not move.
	BackendTypeStatic BackendType = iota
	// BackendTypeParticle simulates point particles with velocity and spin.
	BackendTypeParticle
)

// String returns the lowercase name of the backend type.
func (b BackendType) String() string {
	switch b {
	case BackendTypeStatic:
		return "static"
	case BackendTypeParticle:
		return "particle"
	}
	return "unknown"
}

// capabilities describes what motion a backend can express, consumed by the
// motion blur negotiation.
type capabilities struct {
	// maxTransformSamples is the largest per-target sample count the backend
	// will deliver; 1 for backends without motion.
	maxTransformSamples int
	// velocitySpin is true when the backend holds native per-target velocity
	// and spin values.
	velocitySpin bool
	// static is true when the evaluated data never changes over time.
	static bool
}

// producerBackend evaluates the configured content at a point in time.
// collect receives the already-negotiated motion blur response and must honor
// its sample count exactly.
type producerBackend interface {
	capabilities() capabilities
	collect(t instancing.TimeValue, info instancing.MotionBlurInfo, set *instancing.ChannelSet) ([]sourceData, instancing.Interval, error)
}

// sourceData is one evaluated source before view wrapping.
type sourceData struct {
	payload     instancing.Payload
	velocityMap int
	targets     []targetData
}

// targetData is one evaluated placement before view wrapping.
type targetData struct {
	birthID    int64
	instanceID int64
	material   *instancing.MaterialRef
	materialID int
	uvs        []instancing.UVOverride
	tms        []common.Matrix3
	vel        common.Point3
	spin       common.Quat
	values     instancing.ChannelValues
}

// applyChannelValues copies a name-keyed value map into dense channel storage,
// resolving each name against the channel type implied by the value's Go
// type. Entries whose name or type does not match a defined channel are
// silently skipped.
func applyChannelValues(set *instancing.ChannelSet, values *instancing.ChannelValues, m map[string]any) {
	for name, v := range m {
		switch val := v.(type) {
		case float32:
			values.SetFloat(set, set.Resolve(name, instancing.ChannelFloat), val)
		case float64:
			values.SetFloat(set, set.Resolve(name, instancing.ChannelFloat), float32(val))
		case int:
			values.SetInt(set, set.Resolve(name, instancing.ChannelInt), int64(val))
		case int64:
			values.SetInt(set, set.Resolve(name, instancing.ChannelInt), val)
		case common.Point3:
			values.SetVector(set, set.Resolve(name, instancing.ChannelVector), val)
		case common.Color:
			values.SetColor(set, set.Resolve(name, instancing.ChannelColor), val)
		case common.Matrix3:
			values.SetTM(set, set.Resolve(name, instancing.ChannelTransform), val)
		case []byte:
			values.SetData(set, set.Resolve(name, instancing.ChannelCustom), val)
		}
	}
}

// normalizeUVs guarantees the empty-not-nil contract for UV override slices.
func normalizeUVs(uvs []instancing.UVOverride) []instancing.UVOverride {
	if uvs == nil {
		return []instancing.UVOverride{}
	}
	return uvs
}
