package producer

import (
	"log/slog"

	"github.com/MasterZap/render-time-instancing/instancing"
)

// BuilderOption is a functional option for configuring a producer during
// construction.
type BuilderOption func(*producer)

// ChannelDef declares one custom channel the producer will publish every
// update cycle.
type ChannelDef struct {
	// Name is the channel name consumers resolve.
	Name string
	// Type is the channel's value type.
	Type instancing.ChannelType
	// Size is the per-value byte size for ChannelCustom channels, ignored for
	// all other types.
	Size int
}

// WithChannels is an option builder that declares the producer's custom
// channels. Channels are republished, with fresh tokens, on every update.
//
// Parameters:
//   - defs: the channel declarations
//
// Returns:
//   - BuilderOption: a function that applies the channel declarations to a producer
func WithChannels(defs ...ChannelDef) BuilderOption {
	return func(p *producer) {
		p.channelDefs = append(p.channelDefs, defs...)
	}
}

// WithLogger is an option builder that routes the producer's structured log
// output to l. Without it the producer is silent.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - BuilderOption: a function that applies the logger to a producer
func WithLogger(l *slog.Logger) BuilderOption {
	return func(p *producer) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStaticSource is an option builder that adds a payload and its authored
// placements to a static producer. No-op on particle backends.
//
// Parameters:
//   - payload: what the source instantiates
//   - targets: the authored placements
//
// Returns:
//   - BuilderOption: a function that applies the source to a producer
func WithStaticSource(payload instancing.Payload, targets ...TargetSpec) BuilderOption {
	return func(p *producer) {
		if b, ok := p.backend.(*staticBackend); ok {
			b.addSource(payload, targets)
		}
	}
}

// WithParticleSource is an option builder that registers a payload particles
// can instantiate, in SourceIndex order. No-op on static backends.
//
// Parameters:
//   - payload: what the source instantiates
//   - velocityMapChannel: the mesh mapping channel carrying per-vertex
//     velocities, or a negative value for none
//
// Returns:
//   - BuilderOption: a function that applies the source to a producer
func WithParticleSource(payload instancing.Payload, velocityMapChannel int) BuilderOption {
	return func(p *producer) {
		if b, ok := p.backend.(*particleBackend); ok {
			b.addSource(payload, velocityMapChannel)
		}
	}
}

// WithParticles is an option builder that adds particles to a particle
// producer. No-op on static backends.
//
// Parameters:
//   - particles: the particles to add
//
// Returns:
//   - BuilderOption: a function that applies the particles to a producer
func WithParticles(particles ...Particle) BuilderOption {
	return func(p *producer) {
		if b, ok := p.backend.(*particleBackend); ok {
			b.addParticles(particles)
		}
	}
}

// WithMaxTransformSamples is an option builder that caps how many transform
// samples a particle producer will agree to deliver per target. Requests past
// the cap fall back to single-sample velocity motion. No-op on static
// backends; values below one are ignored.
//
// Parameters:
//   - n: the largest sample count to honor
//
// Returns:
//   - BuilderOption: a function that applies the cap to a producer
func WithMaxTransformSamples(n int) BuilderOption {
	return func(p *producer) {
		if b, ok := p.backend.(*particleBackend); ok && n >= 1 {
			b.maxSamples = n
		}
	}
}
