// Package producer implements the producer side of the instancing contract:
// a lifecycle-managed Instancer evaluating either hand-authored static
// placements or a particle set with velocity and spin, negotiating motion
// blur per update and exposing the evaluated instance tree through read-only
// views.
package producer

import (
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/MasterZap/render-time-instancing/instancing"
)

// producer is the implementation of the instancing.Instancer interface.
// Update and Release take the write lock; the read operations share the read
// lock, so any number of consumer goroutines may walk the tree concurrently
// during a Ready window.
type producer struct {
	mu          sync.RWMutex
	state       instancing.State
	backendType BackendType
	backend     producerBackend
	channelDefs []ChannelDef
	set         *instancing.ChannelSet
	sources     []sourceView
	logger      *slog.Logger
}

// Ensure producer implements the Instancer interface.
var _ instancing.Instancer = &producer{}

// New creates an Instancer with the given backend type.
//
// Methods specific to a particular backend type no-op when configured on a
// producer using a different backend: WithStaticSource does nothing on a
// particle producer, and WithParticleSource, WithParticles, and
// WithMaxTransformSamples do nothing on a static producer.
//
// Parameters:
//   - backendType: the evaluation strategy (BackendTypeStatic or BackendTypeParticle)
//   - options: optional configuration
//
// Returns:
//   - instancing.Instancer: the configured producer, in the uninitialized state
func New(backendType BackendType, options ...BuilderOption) instancing.Instancer {
	p := &producer{
		backendType: backendType,
		state:       instancing.StateUninitialized,
		logger:      slog.New(slog.DiscardHandler),
	}
	switch backendType {
	case BackendTypeParticle:
		p.backend = newParticleBackend()
	case BackendTypeStatic:
		fallthrough
	default:
		p.backend = newStaticBackend()
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *producer) Update(t instancing.TimeValue, request instancing.MotionBlurInfo, plugin string) (instancing.Interval, instancing.MotionBlurInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// A new update closes any open window before evaluating.
	p.state = instancing.StateUpdating
	p.set = nil
	p.sources = nil

	plugin = strings.ToLower(plugin)
	response := negotiate(request, p.backend.capabilities())

	set := instancing.NewChannelSet()
	for _, def := range p.channelDefs {
		if def.Type == instancing.ChannelCustom {
			set.DefineCustom(def.Name, def.Size)
		} else {
			set.Define(def.Name, def.Type)
		}
	}

	data, validity, err := p.backend.collect(t, response, set)
	if err != nil {
		p.state = instancing.StateReleased
		p.logger.Error("instance update failed", "backend", p.backendType, "plugin", plugin, "error", err)
		return instancing.Never(), response, err
	}

	p.set = set
	p.sources = buildViews(data, set)
	p.state = instancing.StateReady

	targets := 0
	for i := range p.sources {
		targets += p.sources[i].TargetCount()
	}
	p.logger.Debug("instance update",
		"backend", p.backendType,
		"plugin", plugin,
		"time", float64(t),
		"sources", len(p.sources),
		"targets", targets,
		"samples", response.SampleCount,
		"channels", set.Len(),
	)
	return validity, response, nil
}

func (p *producer) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set = nil
	p.sources = nil
	p.state = instancing.StateReleased
}

func (p *producer) Channels() []instancing.ChannelInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.set.Channels()
}

func (p *producer) Resolve(name string, typ instancing.ChannelType) instancing.ChannelID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.set.Resolve(name, typ)
}

func (p *producer) SourceCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sources)
}

func (p *producer) Source(i int) instancing.Source {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.sources) {
		return nil
	}
	return &p.sources[i]
}

func (p *producer) ReusesThreadScratch() bool {
	// Views point into data materialized per update, not per-goroutine
	// scratch, so consumers may hold any number of them at once.
	return false
}

// negotiate turns a consumer's motion blur request into the producer's
// binding answer given what the backend can express.
//
// The rules, in order:
//   - A disabled shutter (Never or non-finite) or a zero sample count skips
//     motion entirely: zero samples, transforms only.
//   - A motion-less backend always answers with a single transform sample.
//   - A single-sample request against a moving backend answers with one
//     transform plus authoritative velocity and spin.
//   - SampleCountAny picks the backend's natural form: two samples when it
//     can deliver them, otherwise the single-sample velocity form.
//   - An exact request of N >= 2 is honored when N is within the backend's
//     limit; past the limit the producer falls back to the velocity form
//     rather than thinning samples.
func negotiate(request instancing.MotionBlurInfo, caps capabilities) instancing.MotionBlurInfo {
	response := instancing.MotionBlurInfo{
		Shutter: request.Shutter,
		Flags:   instancing.MotionTransforms,
	}

	blurOff := request.SampleCount == instancing.SampleCountNone ||
		request.Shutter.IsNever() ||
		math.IsInf(float64(request.Shutter.Start), 0) ||
		math.IsInf(float64(request.Shutter.End), 0)
	if blurOff {
		response.SampleCount = 0
		return response
	}

	if caps.static || !caps.velocitySpin {
		response.SampleCount = 1
		return response
	}

	velocityForm := func() instancing.MotionBlurInfo {
		response.SampleCount = 1
		response.Flags = instancing.MotionTransforms |
			instancing.MotionVelocitySpin |
			instancing.MotionVelocityAuthoritative
		return response
	}

	switch {
	case request.SampleCount == 1:
		return velocityForm()
	case request.SampleCount == instancing.SampleCountAny:
		if caps.maxTransformSamples < 2 {
			return velocityForm()
		}
		response.SampleCount = 2
	case request.SampleCount > caps.maxTransformSamples:
		return velocityForm()
	default:
		response.SampleCount = request.SampleCount
	}
	response.Flags = instancing.MotionTransforms | instancing.MotionVelocitySpin
	return response
}
