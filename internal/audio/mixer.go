package audio

// Mixer combines one field's worth of FM and PSG samples (as delivered by
// internal/scheduler's AudioFunc) into interleaved 16-bit stereo frames at
// the host-requested output rate. Grounded on
// original_source/frontend/mixer.c's Mixer_State: one resampler per chip,
// fed independently, summed into one output buffer.
type Mixer struct {
	fm  *BufferedResampler
	psg *BufferedResampler

	lowPassFilter bool
	fmRate        float64
	psgRate       float64
	outputRate    float64
}

// NewMixer creates a mixer converting FM samples (interleaved stereo,
// already panned per channel by internal/fm's register 0xB4 handling) at
// fmRate and PSG samples (mono, per spec's single-DAC PSG) at psgRate to
// interleaved stereo output at outputRate.
func NewMixer(fmRate, psgRate, outputRate uint64) *Mixer {
	m := &Mixer{
		fmRate:     float64(fmRate),
		psgRate:    float64(psgRate),
		outputRate: float64(outputRate),
	}
	m.fm = NewBufferedResampler(2, m.fmRate/m.outputRate)
	m.psg = NewBufferedResampler(2, m.psgRate/m.outputRate)
	return m
}

// SetLowPassFilter enables or disables the optional ~22kHz low-pass
// approximation of the Mega Drive's analog output filter, implemented by
// widening the resampling kernel beyond what the raw rate ratio would
// otherwise need.
func (m *Mixer) SetLowPassFilter(enabled bool) {
	m.lowPassFilter = enabled
	m.applyRatios()
}

func (m *Mixer) applyRatios() {
	const lowPassCutoffHz = 22000.0

	fmRatio := m.fmRate / m.outputRate
	psgRatio := m.psgRate / m.outputRate

	if m.lowPassFilter {
		// Forcing the ratio up to outputRate/lowPassCutoffHz (when that's
		// larger than the rate's natural ratio) stretches the kernel as if
		// downsampling to lowPassCutoffHz, producing a low-pass response
		// even when the natural input:output ratio wouldn't otherwise
		// require it.
		forced := m.outputRate / lowPassCutoffHz
		if forced > fmRatio {
			fmRatio = forced
		}
		if forced > psgRatio {
			psgRatio = forced
		}
	}

	m.fm.SetRatio(fmRatio)
	m.psg.SetRatio(psgRatio)
}

// Mix converts one field's FM and PSG samples to interleaved stereo int16
// frames and invokes callback with the result. fmSamples is the YM2612's
// interleaved left/right output (internal/fm.Chip.Clock's return values,
// already panned per channel by register 0xB4); psgSamples is its per-sample
// float32 output, scaled to int16 and duplicated across both channels per
// spec's mono-PSG-upsampled-to-stereo rule.
func (m *Mixer) Mix(fmSamples []int32, psgSamples []float32, callback func(frames []int16)) {
	fmFrames := len(fmSamples) / 2
	fmInput := make([]int16, fmFrames*2)
	for i := 0; i < fmFrames; i++ {
		fmInput[i*2] = clampToInt16(float64(fmSamples[i*2]))
		fmInput[i*2+1] = clampToInt16(float64(fmSamples[i*2+1]))
	}

	psgInput := make([]int16, len(psgSamples)*2)
	for i, s := range psgSamples {
		v := clampToInt16(float64(s) * 32767.0)
		psgInput[i*2] = v
		psgInput[i*2+1] = v
	}

	fmOutputCapacity := fmFrames + m.fm.low.KernelRadius() + 1
	fmOutput := make([]int16, fmOutputCapacity*2)
	fmWritten := m.fm.Resample(fmInput, fmFrames, fmOutput)

	psgOutputCapacity := len(psgSamples) + m.psg.low.KernelRadius() + 1
	psgOutput := make([]int16, psgOutputCapacity*2)
	psgWritten := m.psg.Resample(psgInput, len(psgSamples), psgOutput)

	frames := fmWritten
	if psgWritten < frames {
		frames = psgWritten
	}

	mixed := make([]int16, frames*2)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			sum := int32(fmOutput[i*2+ch]) + int32(psgOutput[i*2+ch])
			mixed[i*2+ch] = clampToInt16(float64(sum))
		}
	}

	callback(mixed)
}
