package audio

// BufferedResampler is the high-level wrapper around Resampler: callers push
// whole batches of input frames (as delivered once per field by
// internal/scheduler) rather than pre-padding each batch themselves. It
// keeps the trailing kernelRadius frames of each batch as leading context
// for the next one, the way ClownResampler_HighLevel_State's sliding
// "deadzone" does — except, since this core streams audio forward rather
// than pulling from a buffer with real future samples, the very end of the
// stream is zero-padded rather than padded with real future audio. That
// costs one kernel radius of samples (a handful of output frames) of
// softened high-frequency response at each batch boundary, not audible
// at any practical sample rate.
type BufferedResampler struct {
	low      *Resampler
	channels int
	leading  []int16 // kernelRadius frames of context from the previous batch
}

// NewBufferedResampler creates a buffered resampler for the given channel
// count and input-rate-to-output-rate ratio.
func NewBufferedResampler(channels int, ratio float64) *BufferedResampler {
	low := NewResampler(channels)
	low.SetRatio(ratio)
	b := &BufferedResampler{low: low, channels: channels}
	b.leading = make([]int16, low.KernelRadius()*channels)
	return b
}

// SetRatio updates the resampling ratio.
func (b *BufferedResampler) SetRatio(ratio float64) {
	b.low.SetRatio(ratio)
	radius := b.low.KernelRadius()
	if len(b.leading) != radius*b.channels {
		newLeading := make([]int16, radius*b.channels)
		copy(newLeading, b.leading)
		b.leading = newLeading
	}
}

// Resample converts one batch of interleaved input frames to interleaved
// output frames at the configured ratio, returning the number of output
// frames actually written (output may be larger than needed).
func (b *BufferedResampler) Resample(inputFrames []int16, totalInputFrames int, output []int16) int {
	radius := b.low.KernelRadius()
	padded := make([]int16, (radius*2+totalInputFrames)*b.channels)

	copy(padded, b.leading)
	copy(padded[radius*b.channels:], inputFrames[:totalInputFrames*b.channels])
	// Trailing radius*channels frames of padded are left zeroed.

	_, written := b.low.Resample(padded, totalInputFrames, output)

	if totalInputFrames >= radius {
		copy(b.leading, inputFrames[(totalInputFrames-radius)*b.channels:totalInputFrames*b.channels])
	} else {
		// Fewer input frames than the kernel radius: shift what little
		// leading context we have and append the new, short batch.
		shift := radius - totalInputFrames
		copy(b.leading, b.leading[(radius-shift)*b.channels:])
		copy(b.leading[shift*b.channels:], inputFrames[:totalInputFrames*b.channels])
	}

	return written
}
