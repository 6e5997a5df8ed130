package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MasterZap/render-time-instancing/gpu_upload"
	"github.com/MasterZap/render-time-instancing/instancing"
	"github.com/MasterZap/render-time-instancing/profiler"
)

var (
	dumpSamples int
	dumpShutter float64
	dumpMax     int
	dumpBench   int
	dumpWorkers int
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Update the demo producer and print its instance tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := demoProducer(particles)
		defer p.Release()

		t := instancing.TimeValue(evalTime)
		request := instancing.MotionBlurInfo{
			Shutter: instancing.Interval{
				Start: t - instancing.TimeValue(dumpShutter)/2,
				End:   t + instancing.TimeValue(dumpShutter)/2,
			},
			SampleCount: dumpSamples,
		}
		if dumpShutter <= 0 {
			request = instancing.NoMotionBlur()
		}

		if dumpBench > 0 {
			return bench(p, t, request)
		}

		validity, resp, err := p.Update(t, request, plugin)
		if err != nil {
			return err
		}
		fmt.Printf("t=%g plugin=%s\n", evalTime, plugin)
		fmt.Printf("validity: %v\n", validity)
		fmt.Printf("response: samples=%d flags=%#x shutter=%v\n", resp.SampleCount, resp.Flags, resp.Shutter)

		age := p.Resolve("age", instancing.ChannelFloat)
		tint := p.Resolve("tint", instancing.ChannelColor)

		walker := instancing.NewWalker(dumpWorkers)
		err = walker.ForEachSource(p, func(i int, src instancing.Source) error {
			pl := src.Payload()
			fmt.Printf("source %d: kind=%v flags=%#x targets=%d velocityMap=%d\n",
				i, pl.Kind, pl.Flags(), src.TargetCount(), src.VelocityMapChannel())
			limit := src.TargetCount()
			if dumpMax > 0 && limit > dumpMax {
				limit = dumpMax
			}
			for j := 0; j < limit; j++ {
				tgt := src.Target(j)
				tms := tgt.Transforms()
				pos := tms[0].T
				fmt.Printf("  target %d: birth=%d instance=%d samples=%d pos=(%.2f %.2f %.2f) vel=(%.2f %.2f %.2f) age=%.2f tint=(%.2f %.2f %.2f)\n",
					j, tgt.BirthID(), tgt.InstanceID(), len(tms),
					pos.X, pos.Y, pos.Z,
					tgt.Velocity().X, tgt.Velocity().Y, tgt.Velocity().Z,
					tgt.CustomFloat(age),
					tgt.CustomColor(tint).R, tgt.CustomColor(tint).G, tgt.CustomColor(tint).B)
			}
			if limit < src.TargetCount() {
				fmt.Printf("  ... %d more target(s)\n", src.TargetCount()-limit)
			}
			return nil
		})
		if err != nil {
			return err
		}

		packed, n := gpu_upload.PackTransforms(p, 0)
		fmt.Printf("gpu pack: %d instance(s), %d bytes\n", n, len(packed))
		return nil
	},
}

// bench runs repeated update/release cycles and lets the profiler report
// throughput once per second.
func bench(p instancing.Instancer, t instancing.TimeValue, request instancing.MotionBlurInfo) error {
	prof := profiler.NewProfiler()
	for i := 0; i < dumpBench; i++ {
		if _, _, err := p.Update(t, request, plugin); err != nil {
			return err
		}
		instances := 0
		for s := 0; s < p.SourceCount(); s++ {
			instances += p.Source(s).TargetCount()
		}
		p.Release()
		prof.Tick(instances)
	}
	fmt.Printf("ran %d update/release cycle(s)\n", dumpBench)
	return nil
}

func init() {
	dumpCmd.Flags().IntVar(&dumpSamples, "samples", instancing.SampleCountAny, "Requested transform samples (-1 any, 0 none, N exact)")
	dumpCmd.Flags().Float64Var(&dumpShutter, "shutter", 0.04, "Shutter open duration in seconds, centered on --time (0 disables blur)")
	dumpCmd.Flags().IntVar(&dumpMax, "max", 8, "Max targets to print per source (0 = all)")
	dumpCmd.Flags().IntVar(&dumpBench, "bench", 0, "Run N update/release cycles instead of dumping")
	dumpCmd.Flags().IntVar(&dumpWorkers, "workers", 0, "Walker worker count (0 = CPUs-1)")
	rootCmd.AddCommand(dumpCmd)
}
