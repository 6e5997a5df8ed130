package main

import (
	"log/slog"
	"math"
	"math/rand"
	"os"

	"github.com/MasterZap/render-time-instancing/common"
	"github.com/MasterZap/render-time-instancing/instancing"
	"github.com/MasterZap/render-time-instancing/producer"
)

// demoSeed keeps the demo content identical across runs so dumps can be
// compared.
const demoSeed = 1

// demoMesh is a unit quad with one UV mapping channel.
func demoMesh() *instancing.Mesh {
	return &instancing.Mesh{
		Verts: []common.Point3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		Faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
		Maps: map[int]instancing.MapChannel{
			1: {
				Verts: []common.Point3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
				Faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
			},
		},
	}
}

// demoProducer builds a particle producer with count scattered, drifting,
// spinning particles carrying age, seed, and tint channels.
func demoProducer(count int) instancing.Instancer {
	rng := rand.New(rand.NewSource(demoSeed))
	ps := make([]producer.Particle, 0, count)
	for i := 0; i < count; i++ {
		pt := producer.NewParticle(int64(1000 + i))
		pt.InstanceID = int64(i)
		pt.Position = common.Point3{
			X: rng.Float32()*20 - 10,
			Y: rng.Float32()*20 - 10,
			Z: rng.Float32() * 5,
		}
		pt.Velocity = common.Point3{
			X: rng.Float32()*4 - 2,
			Y: rng.Float32()*4 - 2,
		}
		pt.Spin = common.AxisAngle(common.Point3{Z: 1}, rng.Float32()*2*float32(math.Pi))
		pt.Channels = map[string]any{
			"age":  rng.Float32() * 10,
			"seed": int64(rng.Int31()),
			"tint": common.Color{R: rng.Float32(), G: rng.Float32(), B: rng.Float32()},
		}
		ps = append(ps, pt)
	}

	opts := []producer.BuilderOption{
		producer.WithChannels(
			producer.ChannelDef{Name: "age", Type: instancing.ChannelFloat},
			producer.ChannelDef{Name: "seed", Type: instancing.ChannelInt},
			producer.ChannelDef{Name: "tint", Type: instancing.ChannelColor},
		),
		producer.WithParticleSource(instancing.MeshPayload(demoMesh(), false), -1),
		producer.WithParticles(ps...),
	}
	if verbose {
		opts = append(opts, producer.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	return producer.New(producer.BackendTypeParticle, opts...)
}
