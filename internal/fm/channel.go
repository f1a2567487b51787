package fm

// channel is one of the YM2612's six FM channels: four operators wired
// together by one of eight algorithms, plus feedback on the first operator.
// Grounded on original_source/fm-channel.c's FM_Channel_GetSample.
type channel struct {
	operators [4]*operator

	feedback  uint16
	algorithm uint16

	// panLeft/panRight are register 0xB4 bits 7/6: the channel's output
	// enable flags for the left and right speaker. Both start false, same
	// as the real chip's power-on register state (a channel stays silent
	// on both sides until something explicitly enables it).
	panLeft  bool
	panRight bool

	// operator1PreviousSamples holds operator 1's previous two output
	// samples, used to compute its self-feedback modulation.
	operator1PreviousSamples [2]int32
}

func newChannel() *channel {
	ch := &channel{}
	for i := range ch.operators {
		ch.operators[i] = newOperator()
	}
	return ch
}

func (c *channel) setFeedbackAndAlgorithm(feedback, algorithm uint16) {
	c.feedback = feedback
	c.algorithm = algorithm
}

// setPanning latches register 0xB4's per-channel L/R output-enable flags.
func (c *channel) setPanning(left, right bool) {
	c.panLeft = left
	c.panRight = right
}

// getSample computes one sample for the channel, wiring its four operators
// together per the selected algorithm.
//
// The operator indices are deliberately swapped relative to register-file
// order: operator 2 is register-slot 3, and operator 3 is register-slot 2.
// This mirrors the real chip's internal wiring and fm-channel.c's comment
// ("Yes, these really are swapped").
func (c *channel) getSample() int32 {
	operator1 := c.operators[0]
	operator2 := c.operators[2]
	operator3 := c.operators[1]
	operator4 := c.operators[3]

	feedbackDivisor := uint(0)
	if c.feedback != 0 {
		feedbackDivisor = uint(9 - c.feedback)
	}

	var feedbackModulation int32
	if c.feedback != 0 {
		feedbackModulation = (c.operator1PreviousSamples[0] + c.operator1PreviousSamples[1]) >> feedbackDivisor
	}

	operator1Sample := operator1.process(feedbackModulation)

	var sample int32

	switch c.algorithm {
	case 0:
		s2 := operator2.process(operator1Sample)
		s3 := operator3.process(s2)
		sample = operator4.process(s3)

	case 1:
		s2 := operator2.process(0)
		sum12 := operator1Sample + s2
		s3 := operator3.process(sum12)
		sample = operator4.process(s3)

	case 2:
		s2 := operator2.process(0)
		s3 := operator3.process(s2)
		sample = operator4.process(s3 + operator1Sample)

	case 3:
		s2 := operator2.process(operator1Sample)
		s3 := operator3.process(0)
		sample = operator4.process(s2 + s3)

	case 4:
		s2 := operator2.process(operator1Sample)
		s3 := operator3.process(0)
		s4 := operator4.process(s3)
		sample = s2 + s4

	case 5:
		s2 := operator2.process(operator1Sample)
		s3 := operator3.process(operator1Sample)
		s4 := operator4.process(operator1Sample)
		sample = s2 + s3 + s4

	case 6:
		s2 := operator2.process(operator1Sample)
		s3 := operator3.process(0)
		s4 := operator4.process(0)
		sample = s2 + s3 + s4

	case 7:
		s2 := operator2.process(0)
		s3 := operator3.process(0)
		s4 := operator4.process(0)
		sample = operator1Sample + s2 + s3 + s4
	}

	c.operator1PreviousSamples[1] = c.operator1PreviousSamples[0]
	c.operator1PreviousSamples[0] = operator1Sample

	if sample > 0x1FFF {
		sample = 0x1FFF
	} else if sample < -0x1FFF {
		sample = -0x1FFF
	}

	return sample
}
