package audio

import (
	"math"
	"testing"
)

func TestResamplerUnityRatioPassesThroughApproximately(t *testing.T) {
	r := NewResampler(1)
	r.SetRatio(1.0)

	radius := r.KernelRadius()
	const frames = 64

	input := make([]int16, (frames+radius*2)*1)
	for i := radius; i < radius+frames; i++ {
		// A simple ramp, well within kernel radius of both edges.
		input[i] = int16((i - radius) * 100)
	}

	output := make([]int16, frames)
	_, written := r.Resample(input, frames, output)

	if written == 0 {
		t.Fatalf("expected resampler to produce output frames")
	}

	// Well inside the buffer (away from the zero-padded edges), a unity
	// ratio resample should closely reproduce the original ramp.
	for i := radius + 2; i < frames-radius-2 && i < written; i++ {
		want := float64(i * 100)
		got := float64(output[i])
		if math.Abs(got-want) > 50 {
			t.Fatalf("frame %d: want ~%v got %v", i, want, got)
		}
	}
}

func TestBufferedResamplerDownsampleProducesFewerFrames(t *testing.T) {
	b := NewBufferedResampler(1, 2.0) // downsample by 2x

	const inputFrames = 200
	input := make([]int16, inputFrames)
	for i := range input {
		input[i] = int16(1000)
	}

	output := make([]int16, inputFrames)
	written := b.Resample(input, inputFrames, output)

	if written == 0 {
		t.Fatalf("expected some output frames")
	}
	if written >= inputFrames {
		t.Fatalf("expected downsampling to produce fewer frames than input, got %d from %d", written, inputFrames)
	}
}

func TestMixerProducesInterleavedStereoFrames(t *testing.T) {
	m := NewMixer(48000, 24000, 48000)

	fmSamples := make([]int32, 100)
	for i := range fmSamples {
		fmSamples[i] = 1000
	}
	psgSamples := make([]float32, 50)
	for i := range psgSamples {
		psgSamples[i] = 0.5
	}

	var got []int16
	m.Mix(fmSamples, psgSamples, func(frames []int16) {
		got = frames
	})

	if len(got) == 0 {
		t.Fatalf("expected mixer to produce output frames")
	}
	if len(got)%2 != 0 {
		t.Fatalf("expected interleaved stereo output (even length), got %d", len(got))
	}
}

func TestMixerLowPassFilterWidensKernel(t *testing.T) {
	m := NewMixer(48000, 24000, 48000)
	radiusBefore := m.fm.low.KernelRadius()

	m.SetLowPassFilter(true)
	radiusAfter := m.fm.low.KernelRadius()

	if radiusAfter <= radiusBefore {
		t.Fatalf("expected low-pass filter to widen the FM resampler's kernel radius: before=%d after=%d", radiusBefore, radiusAfter)
	}
}
