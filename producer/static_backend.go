package producer

import (
	"github.com/MasterZap/render-time-instancing/common"
	"github.com/MasterZap/render-time-instancing/instancing"
)

// TargetSpec is one hand-authored placement for a static source.
// Build specs with NewTargetSpec so the material ID override starts at its
// no-override sentinel.
type TargetSpec struct {
	// BirthID is the persistent identity of the placement.
	BirthID int64
	// InstanceID is the producer-defined secondary identifier.
	InstanceID int64
	// Transform is the placement transform. A zero-valued transform is
	// treated as the identity.
	Transform common.Matrix3
	// MaterialOverride replaces the payload's material when non-nil.
	MaterialOverride *instancing.MaterialRef
	// MaterialIDOverride forces a face material ID across the placement;
	// instancing.MaterialIDNone means no override.
	MaterialIDOverride int
	// UVOverrides holds constant mapping overrides for the placement.
	UVOverrides []instancing.UVOverride
	// Channels carries custom channel values keyed by channel name. Values
	// must match the defined channel's type to be picked up.
	Channels map[string]any
}

// NewTargetSpec creates a placement spec with the identity transform and no
// overrides.
//
// Parameters:
//   - birthID: persistent identity of the placement
//
// Returns:
//   - TargetSpec: the initialized spec
func NewTargetSpec(birthID int64) TargetSpec {
	return TargetSpec{
		BirthID:            birthID,
		Transform:          common.Identity3(),
		MaterialIDOverride: instancing.MaterialIDNone,
	}
}

// staticSource is one payload plus its authored placements.
type staticSource struct {
	payload instancing.Payload
	specs   []TargetSpec
}

// staticBackend serves authored placements that never move. Its data is valid
// for all time, so updates answer with a Forever validity and at most one
// transform sample per target.
type staticBackend struct {
	sources []staticSource
}

var _ producerBackend = &staticBackend{}

func newStaticBackend() *staticBackend {
	return &staticBackend{}
}

func (b *staticBackend) capabilities() capabilities {
	return capabilities{maxTransformSamples: 1, static: true}
}

func (b *staticBackend) addSource(payload instancing.Payload, specs []TargetSpec) {
	b.sources = append(b.sources, staticSource{payload: payload, specs: specs})
}

func (b *staticBackend) collect(_ instancing.TimeValue, _ instancing.MotionBlurInfo, set *instancing.ChannelSet) ([]sourceData, instancing.Interval, error) {
	out := make([]sourceData, 0, len(b.sources))
	for _, src := range b.sources {
		sd := sourceData{
			payload:     src.payload,
			velocityMap: -1,
			targets:     make([]targetData, 0, len(src.specs)),
		}
		for _, spec := range src.specs {
			tm := spec.Transform
			if tm == (common.Matrix3{}) {
				tm = common.Identity3()
			}
			td := targetData{
				birthID:    spec.BirthID,
				instanceID: spec.InstanceID,
				material:   spec.MaterialOverride,
				materialID: spec.MaterialIDOverride,
				uvs:        normalizeUVs(spec.UVOverrides),
				tms:        []common.Matrix3{tm},
				spin:       common.IdentityQuat(),
				values:     instancing.MakeChannelValues(set),
			}
			applyChannelValues(set, &td.values, spec.Channels)
			sd.targets = append(sd.targets, td)
		}
		out = append(out, sd)
	}
	return out, instancing.Forever(), nil
}
