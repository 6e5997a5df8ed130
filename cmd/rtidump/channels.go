package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MasterZap/render-time-instancing/instancing"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List the custom channels published by the demo producer",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := demoProducer(particles)
		defer p.Release()
		if _, _, err := p.Update(instancing.TimeValue(evalTime), instancing.NoMotionBlur(), plugin); err != nil {
			return err
		}

		infos := p.Channels()
		fmt.Printf("%d channel(s) at t=%g:\n", len(infos), evalTime)
		for _, info := range infos {
			if info.Type == instancing.ChannelCustom {
				fmt.Printf("  %-12s %-10s token=%d size=%d\n", info.Name, info.Type, info.ID, info.CustomSize)
				continue
			}
			fmt.Printf("  %-12s %-10s token=%d\n", info.Name, info.Type, info.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}
