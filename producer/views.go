package producer

import (
	"github.com/MasterZap/render-time-instancing/common"
	"github.com/MasterZap/render-time-instancing/instancing"
)

// sourceView adapts one evaluated source to the instancing.Source interface.
// Views are plain readers over data materialized during Update; Target
// returns pointers into a dense slice, so repeated enumeration allocates
// nothing and every view stays valid for the whole window.
type sourceView struct {
	data    sourceData
	targets []targetView
}

var _ instancing.Source = &sourceView{}

func (s *sourceView) Payload() instancing.Payload {
	return s.data.payload
}

func (s *sourceView) VelocityMapChannel() int {
	return s.data.velocityMap
}

func (s *sourceView) TargetCount() int {
	return len(s.targets)
}

func (s *sourceView) Target(i int) instancing.Target {
	if i < 0 || i >= len(s.targets) {
		return nil
	}
	return &s.targets[i]
}

// targetView adapts one evaluated placement to the instancing.Target
// interface.
type targetView struct {
	data *targetData
	set  *instancing.ChannelSet
}

var _ instancing.Target = &targetView{}

func (tv *targetView) BirthID() int64 {
	return tv.data.birthID
}

func (tv *targetView) InstanceID() int64 {
	return tv.data.instanceID
}

func (tv *targetView) MaterialOverride() *instancing.MaterialRef {
	return tv.data.material
}

func (tv *targetView) MaterialIDOverride() int {
	return tv.data.materialID
}

func (tv *targetView) UVOverrides() []instancing.UVOverride {
	return tv.data.uvs
}

func (tv *targetView) Transforms() []common.Matrix3 {
	return tv.data.tms
}

func (tv *targetView) Velocity() common.Point3 {
	return tv.data.vel
}

func (tv *targetView) Spin() common.Quat {
	return tv.data.spin
}

func (tv *targetView) CustomFloat(id instancing.ChannelID) float32 {
	return tv.data.values.Float(tv.set, id)
}

func (tv *targetView) CustomInt(id instancing.ChannelID) int64 {
	return tv.data.values.Int(tv.set, id)
}

func (tv *targetView) CustomVector(id instancing.ChannelID) common.Point3 {
	return tv.data.values.Vector(tv.set, id)
}

func (tv *targetView) CustomColor(id instancing.ChannelID) common.Color {
	return tv.data.values.Color(tv.set, id)
}

func (tv *targetView) CustomTM(id instancing.ChannelID) common.Matrix3 {
	return tv.data.values.TM(tv.set, id)
}

func (tv *targetView) CustomData(id instancing.ChannelID) []byte {
	return tv.data.values.Data(tv.set, id)
}

// buildViews wraps evaluated source data in views bound to the window's
// channel set.
func buildViews(data []sourceData, set *instancing.ChannelSet) []sourceView {
	views := make([]sourceView, len(data))
	for i := range data {
		views[i].data = data[i]
		views[i].targets = make([]targetView, len(views[i].data.targets))
		for j := range views[i].data.targets {
			views[i].targets[j] = targetView{data: &views[i].data.targets[j], set: set}
		}
	}
	return views
}
