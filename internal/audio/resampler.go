// Package audio implements the windowed-sinc resampler and FM/PSG mixer
// that turn internal/scheduler's per-field sample buffers into interleaved
// 16-bit stereo frames at a host-requested rate. Grounded on
// original_source/frontend/clownresampler.h (the Lanczos kernel math) and
// frontend/mixer.c/.h (one resampler per chip, high-level buffered API,
// final interleaved 16-bit output).
package audio

import "math"

// kernelRadius is the number of Lanczos kernel lobes, matching
// CLOWNRESAMPLER_KERNEL_RADIUS's default of 3.
const kernelRadius = 3

func lanczosKernel(x float64) float64 {
	if x == 0 {
		return 1
	}
	xPi := x * math.Pi
	xPiOverRadius := xPi / kernelRadius
	return (math.Sin(xPi) * math.Sin(xPiOverRadius)) / (xPi * xPiOverRadius)
}

// Resampler is the low-level windowed-sinc resampler: it converts a stream
// of input frames (pre-padded by kernelRadius frames of silence or context
// at both ends) to an arbitrary output rate. Grounded on
// ClownResampler_LowLevel_State/_Resample.
type Resampler struct {
	channels  int
	position  float64
	increment float64

	stretchedKernelRadius        float64
	integerStretchedKernelRadius int
	inverseKernelScale           float64
}

// NewResampler creates a resampler for the given channel count with an
// initial 1:1 ratio.
func NewResampler(channels int) *Resampler {
	r := &Resampler{channels: channels}
	r.SetRatio(1.0)
	return r
}

// SetRatio sets the resampler's input-rate-to-output-rate ratio (2.0 means
// the input is twice the output rate, i.e. downsampling by 2x). Ratios
// above 1 (downsampling) stretch the kernel to act as a low-pass filter;
// ratios at or below 1 (upsampling) use a unity-width kernel.
func (r *Resampler) SetRatio(ratio float64) {
	kernelScale := math.Max(ratio, 1.0)

	r.position -= float64(r.integerStretchedKernelRadius)

	r.increment = ratio
	r.stretchedKernelRadius = kernelRadius * kernelScale
	r.integerStretchedKernelRadius = int(math.Ceil(r.stretchedKernelRadius))
	r.inverseKernelScale = 1.0 / kernelScale

	r.position += float64(r.integerStretchedKernelRadius)
}

// KernelRadius returns the number of padding frames required at each end of
// the input buffer passed to Resample.
func (r *Resampler) KernelRadius() int {
	return r.integerStretchedKernelRadius
}

// Resample consumes as much of input (frames, pre-padded by KernelRadius()
// silent/context frames at each end — so index 0 of "real" audio starts at
// input[KernelRadius()*channels]) as needed to fill output, and returns the
// number of input and output frames actually consumed/produced.
func (r *Resampler) Resample(input []int16, totalInputFrames int, output []int16) (inputFramesConsumed, outputFramesWritten int) {
	maxPosition := float64(totalInputFrames + r.integerStretchedKernelRadius)
	outputFrameCapacity := len(output) / r.channels

	outIndex := 0
	for {
		positionInteger := int(r.position)
		positionFractional := r.position - float64(positionInteger)

		if float64(positionInteger) >= maxPosition {
			r.position -= float64(totalInputFrames)
			return totalInputFrames, outIndex
		}
		if outIndex >= outputFrameCapacity {
			positionMinusBias := positionInteger - r.integerStretchedKernelRadius
			r.position -= float64(positionMinusBias)
			return totalInputFrames - positionMinusBias, outIndex
		}

		if positionFractional == 0 {
			for ch := 0; ch < r.channels; ch++ {
				output[outIndex*r.channels+ch] = input[positionInteger*r.channels+ch]
			}
		} else {
			samples := make([]float64, r.channels)

			min := int(r.position - r.stretchedKernelRadius + 1.0)
			max := int(r.position + r.stretchedKernelRadius)

			for i := min; i <= max; i++ {
				kernelValue := lanczosKernel((float64(i) - r.position) * r.inverseKernelScale)
				for ch := 0; ch < r.channels; ch++ {
					samples[ch] += float64(input[i*r.channels+ch]) * kernelValue
				}
			}

			for ch := 0; ch < r.channels; ch++ {
				output[outIndex*r.channels+ch] = clampToInt16(samples[ch])
			}
		}

		outIndex++
		r.position += r.increment
	}
}

func clampToInt16(v float64) int16 {
	if v > 32767.0 {
		return 32767
	}
	if v < -32768.0 {
		return -32768
	}
	return int16(v)
}
