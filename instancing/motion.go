package instancing

import "math"

// TimeValue is a scene time in seconds.
type TimeValue float64

// Interval is a closed time range [Start, End]. Two sentinel values exist:
// Forever (valid for all time) and Never (valid for no time). Validity
// intervals returned by Update and shutter intervals carried in motion blur
// requests are both expressed as Intervals.
type Interval struct {
	Start, End TimeValue
}

// Forever returns the interval covering all of time. A producer whose data
// never changes returns it as the validity of every update, letting hosts
// skip redundant update cycles.
//
// Returns:
//   - Interval: the all-of-time interval
func Forever() Interval {
	return Interval{
		Start: TimeValue(math.Inf(-1)),
		End:   TimeValue(math.Inf(1)),
	}
}

// Never returns the empty interval. A request carrying a Never shutter means
// motion blur is disabled for the cycle.
//
// Returns:
//   - Interval: the empty interval
func Never() Interval {
	return Interval{
		Start: TimeValue(math.Inf(1)),
		End:   TimeValue(math.Inf(-1)),
	}
}

// At returns the instantaneous interval [t, t].
func At(t TimeValue) Interval {
	return Interval{Start: t, End: t}
}

// IsForever reports whether the interval covers all of time.
func (iv Interval) IsForever() bool {
	return math.IsInf(float64(iv.Start), -1) && math.IsInf(float64(iv.End), 1)
}

// IsNever reports whether the interval is empty.
func (iv Interval) IsNever() bool {
	return iv.Start > iv.End
}

// Contains reports whether t lies inside the interval.
func (iv Interval) Contains(t TimeValue) bool {
	return t >= iv.Start && t <= iv.End
}

// Duration returns End - Start, or 0 for an empty interval.
func (iv Interval) Duration() TimeValue {
	if iv.IsNever() {
		return 0
	}
	return iv.End - iv.Start
}

// MotionFlags describes which motion representations an update carries and
// which of them is authoritative.
type MotionFlags uint32

const (
	// MotionTransforms is set when targets carry per-sample transform lists.
	// It is set on every successful update; a single entry is the static
	// placement transform.
	MotionTransforms MotionFlags = 1 << 0
	// MotionVelocitySpin is set when targets carry velocity and spin values,
	// whether authoritative or merely derived for convenience.
	MotionVelocitySpin MotionFlags = 1 << 1
	// MotionVelocityAuthoritative is set when velocity and spin are the ground
	// truth for motion and the transform list holds a single sample. When it
	// is clear and MotionVelocitySpin is set, the velocities are derived from
	// the transform samples and the samples are authoritative.
	MotionVelocityAuthoritative MotionFlags = 1 << 2
)

// Has reports whether every bit of f is present.
func (m MotionFlags) Has(f MotionFlags) bool {
	return m&f == f
}

// Sample count sentinels used in motion blur requests. Any value >= 2 means
// exactly that many transform samples, spread evenly over the shutter.
const (
	// SampleCountAny lets the producer pick its natural motion representation.
	SampleCountAny = -1
	// SampleCountNone disables motion computation for the cycle; targets still
	// carry their single placement transform.
	SampleCountNone = 0
)

// MotionBlurInfo is both sides of the motion blur negotiation. The consumer
// passes one as the request to Update; the producer returns another as the
// binding response. Consumers must interpret the update according to the
// response, never the request: a producer may legitimately answer a multi-
// sample request with a single sample plus authoritative velocities, or the
// other way around.
type MotionBlurInfo struct {
	// Shutter is the blur interval in scene time. Never disables blur.
	Shutter Interval
	// Flags describes the motion representations present (response only;
	// ignored in requests).
	Flags MotionFlags
	// SampleCount is the requested or delivered transform sample count. In a
	// request, SampleCountAny and SampleCountNone are the sentinels described
	// above; in a response, 0 means motion was skipped, 1 means a single
	// transform (check Flags for authoritative velocities), and N >= 2 means
	// exactly N evenly spaced samples per target.
	SampleCount int
}

// NoMotionBlur returns the request for an update without motion blur.
//
// Returns:
//   - MotionBlurInfo: a request with a Never shutter and zero samples
func NoMotionBlur() MotionBlurInfo {
	return MotionBlurInfo{Shutter: Never(), SampleCount: SampleCountNone}
}

// SampleTimes returns k sample times spread evenly over shutter, first sample
// at Start and last at End. A single sample lands on Start; k <= 0 yields nil.
// Degenerate shutters (empty or infinite) also yield nil, since no finite
// spacing exists.
//
// Parameters:
//   - shutter: the blur interval to sample
//   - k: number of samples
//
// Returns:
//   - []TimeValue: the sample times, or nil
func SampleTimes(shutter Interval, k int) []TimeValue {
	if k <= 0 || shutter.IsNever() {
		return nil
	}
	if math.IsInf(float64(shutter.Start), 0) || math.IsInf(float64(shutter.End), 0) {
		return nil
	}
	times := make([]TimeValue, k)
	if k == 1 {
		times[0] = shutter.Start
		return times
	}
	step := shutter.Duration() / TimeValue(k-1)
	for i := range times {
		times[i] = shutter.Start + TimeValue(i)*step
	}
	// Land the last sample exactly on End regardless of rounding.
	times[k-1] = shutter.End
	return times
}
