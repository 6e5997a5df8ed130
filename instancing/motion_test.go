package instancing

import (
	"math"
	"testing"
)

func TestIntervalSentinels(t *testing.T) {
	if !Forever().IsForever() {
		t.Error("Forever() is not forever")
	}
	if Forever().IsNever() {
		t.Error("Forever() reports never")
	}
	if !Never().IsNever() {
		t.Error("Never() is not never")
	}
	if Never().Contains(0) {
		t.Error("Never() contains 0")
	}
	if !Forever().Contains(1e12) {
		t.Error("Forever() misses a finite time")
	}
}

func TestIntervalAt(t *testing.T) {
	iv := At(2.5)
	if !iv.Contains(2.5) {
		t.Error("At(2.5) does not contain 2.5")
	}
	if iv.Contains(2.6) {
		t.Error("At(2.5) contains 2.6")
	}
	if iv.Duration() != 0 {
		t.Errorf("Duration = %v, want 0", iv.Duration())
	}
}

func TestSampleTimesEvenSpacing(t *testing.T) {
	shutter := Interval{Start: 1.0, End: 2.0}
	times := SampleTimes(shutter, 5)
	if len(times) != 5 {
		t.Fatalf("len = %d, want 5", len(times))
	}
	if times[0] != 1.0 || times[4] != 2.0 {
		t.Errorf("endpoints = %v, %v, want 1.0, 2.0", times[0], times[4])
	}
	for i := 1; i < len(times); i++ {
		step := float64(times[i] - times[i-1])
		if math.Abs(step-0.25) > 1e-12 {
			t.Errorf("step %d = %v, want 0.25", i, step)
		}
	}
}

func TestSampleTimesDegenerate(t *testing.T) {
	if got := SampleTimes(Interval{Start: 0, End: 1}, 0); got != nil {
		t.Errorf("k=0 = %v, want nil", got)
	}
	if got := SampleTimes(Never(), 4); got != nil {
		t.Errorf("never shutter = %v, want nil", got)
	}
	if got := SampleTimes(Forever(), 4); got != nil {
		t.Errorf("forever shutter = %v, want nil", got)
	}
	one := SampleTimes(Interval{Start: 3, End: 4}, 1)
	if len(one) != 1 || one[0] != 3 {
		t.Errorf("k=1 = %v, want [3]", one)
	}
}

func TestSampleTimesZeroLengthShutter(t *testing.T) {
	times := SampleTimes(At(5), 3)
	if len(times) != 3 {
		t.Fatalf("len = %d, want 3", len(times))
	}
	for i, tv := range times {
		if tv != 5 {
			t.Errorf("times[%d] = %v, want 5", i, tv)
		}
	}
}

func TestMotionFlagsHas(t *testing.T) {
	f := MotionTransforms | MotionVelocitySpin
	if !f.Has(MotionTransforms) {
		t.Error("missing MotionTransforms")
	}
	if f.Has(MotionVelocityAuthoritative) {
		t.Error("reports MotionVelocityAuthoritative")
	}
	if !f.Has(MotionTransforms | MotionVelocitySpin) {
		t.Error("Has fails on multi-bit query")
	}
}

func TestNoMotionBlur(t *testing.T) {
	req := NoMotionBlur()
	if !req.Shutter.IsNever() {
		t.Error("shutter is not Never")
	}
	if req.SampleCount != SampleCountNone {
		t.Errorf("SampleCount = %d, want %d", req.SampleCount, SampleCountNone)
	}
}
