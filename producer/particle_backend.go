package producer

import (
	"fmt"

	"github.com/MasterZap/render-time-instancing/common"
	"github.com/MasterZap/render-time-instancing/instancing"
)

// defaultMaxTransformSamples bounds multi-sample answers when no explicit
// limit is configured.
const defaultMaxTransformSamples = 8

// Particle is one simulated point instancing a registered payload. Build
// particles with NewParticle so scale and the material ID override start at
// their neutral values.
type Particle struct {
	// BirthID is the persistent identity of the particle across cycles.
	BirthID int64
	// InstanceID is the producer-defined secondary identifier.
	InstanceID int64
	// SourceIndex picks the registered payload this particle instantiates.
	SourceIndex int
	// Position is the particle position at the evaluation time.
	Position common.Point3
	// Velocity is the linear velocity in units per second.
	Velocity common.Point3
	// Spin is the angular velocity as a rotation per second.
	Spin common.Quat
	// Rotation is the orientation at the evaluation time.
	Rotation common.Quat
	// Scale is the per-axis scale. A zero scale is treated as unit scale.
	Scale common.Point3
	// MaterialOverride replaces the payload's material when non-nil.
	MaterialOverride *instancing.MaterialRef
	// MaterialIDOverride forces a face material ID across the instance;
	// instancing.MaterialIDNone means no override.
	MaterialIDOverride int
	// UVOverrides holds constant mapping overrides for the instance.
	UVOverrides []instancing.UVOverride
	// Channels carries custom channel values keyed by channel name.
	Channels map[string]any
}

// NewParticle creates a particle at the origin with unit scale, identity
// orientation, and no overrides.
//
// Parameters:
//   - birthID: persistent identity of the particle
//
// Returns:
//   - Particle: the initialized particle
func NewParticle(birthID int64) Particle {
	return Particle{
		BirthID:            birthID,
		Spin:               common.IdentityQuat(),
		Rotation:           common.IdentityQuat(),
		Scale:              common.Point3{X: 1, Y: 1, Z: 1},
		MaterialIDOverride: instancing.MaterialIDNone,
	}
}

// particleSource is one registered payload particles can instantiate.
type particleSource struct {
	payload     instancing.Payload
	velocityMap int
}

// particleBackend extrapolates particle motion around the evaluation time
// using each particle's velocity and spin. It can answer multi-sample
// requests by integrating positions and orientations across the shutter, or
// single-sample requests with authoritative velocities.
type particleBackend struct {
	sources    []particleSource
	particles  []Particle
	maxSamples int
}

var _ producerBackend = &particleBackend{}

func newParticleBackend() *particleBackend {
	return &particleBackend{maxSamples: defaultMaxTransformSamples}
}

func (b *particleBackend) capabilities() capabilities {
	return capabilities{maxTransformSamples: b.maxSamples, velocitySpin: true}
}

func (b *particleBackend) addSource(payload instancing.Payload, velocityMap int) {
	b.sources = append(b.sources, particleSource{payload: payload, velocityMap: velocityMap})
}

func (b *particleBackend) addParticles(ps []Particle) {
	b.particles = append(b.particles, ps...)
}

func (b *particleBackend) collect(t instancing.TimeValue, info instancing.MotionBlurInfo, set *instancing.ChannelSet) ([]sourceData, instancing.Interval, error) {
	out := make([]sourceData, len(b.sources))
	for i, src := range b.sources {
		out[i] = sourceData{payload: src.payload, velocityMap: src.velocityMap}
	}

	var times []instancing.TimeValue
	if info.SampleCount >= 2 {
		times = instancing.SampleTimes(info.Shutter, info.SampleCount)
		if times == nil {
			return nil, instancing.Never(), fmt.Errorf("cannot place %d samples in shutter %v", info.SampleCount, info.Shutter)
		}
	}

	static := true
	for pi := range b.particles {
		p := &b.particles[pi]
		if p.SourceIndex < 0 || p.SourceIndex >= len(b.sources) {
			return nil, instancing.Never(), fmt.Errorf("particle %d references source %d of %d", p.BirthID, p.SourceIndex, len(b.sources))
		}
		moving := !p.Velocity.IsZero() || !p.Spin.IsIdentity()
		if moving {
			static = false
		}

		td := targetData{
			birthID:    p.BirthID,
			instanceID: p.InstanceID,
			material:   p.MaterialOverride,
			materialID: p.MaterialIDOverride,
			uvs:        normalizeUVs(p.UVOverrides),
			spin:       common.IdentityQuat(),
			values:     instancing.MakeChannelValues(set),
		}
		applyChannelValues(set, &td.values, p.Channels)

		switch {
		case info.SampleCount >= 2:
			td.tms = make([]common.Matrix3, len(times))
			for si, st := range times {
				td.tms[si] = particleTransform(p, t, st)
			}
			// Velocities ride along for convenience; the samples are the
			// ground truth.
			td.vel = p.Velocity
			td.spin = p.Spin
		case info.SampleCount == 1:
			td.tms = []common.Matrix3{particleTransform(p, t, t)}
			td.vel = p.Velocity
			td.spin = p.Spin
		default:
			// Motion skipped; the single placement transform remains.
			td.tms = []common.Matrix3{particleTransform(p, t, t)}
		}
		out[p.SourceIndex].targets = append(out[p.SourceIndex].targets, td)
	}

	if static {
		return out, instancing.Forever(), nil
	}
	return out, instancing.At(t), nil
}

// particleTransform extrapolates a particle's placement from the evaluation
// time t to the sample time st.
func particleTransform(p *Particle, t, st instancing.TimeValue) common.Matrix3 {
	dt := float32(st - t)
	pos := p.Position.Add(p.Velocity.Scale(dt))
	rot := p.Spin.Fraction(dt).Mul(p.Rotation)
	scale := p.Scale
	if scale.IsZero() {
		scale = common.Point3{X: 1, Y: 1, Z: 1}
	}
	return common.ComposeMatrix(rot, scale, pos)
}
