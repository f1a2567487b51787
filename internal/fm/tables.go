package fm

import "math"

// keyCodes maps the top nibble of an f-number to a detune key code.
// Grounded on original_source/fm-phase.c's key_codes table.
var keyCodes = [0x10]uint16{0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 3, 3, 3, 3, 3, 3}

// detuneLookup[block][keyCode][detune%4] gives the phase-step detune
// offset. Transcribed verbatim from fm-phase.c.
var detuneLookup = [8][4][4]uint16{
	{{0, 0, 1, 2}, {0, 0, 1, 2}, {0, 0, 1, 2}, {0, 0, 1, 2}},
	{{0, 1, 2, 2}, {0, 1, 2, 3}, {0, 1, 2, 3}, {0, 1, 2, 3}},
	{{0, 1, 2, 4}, {0, 1, 3, 4}, {0, 1, 3, 4}, {0, 1, 3, 5}},
	{{0, 2, 4, 5}, {0, 2, 4, 6}, {0, 2, 4, 6}, {0, 2, 5, 7}},
	{{0, 2, 5, 8}, {0, 3, 6, 8}, {0, 3, 6, 9}, {0, 3, 7, 10}},
	{{0, 4, 8, 11}, {0, 4, 8, 12}, {0, 4, 9, 13}, {0, 5, 10, 14}},
	{{0, 5, 11, 16}, {0, 6, 12, 17}, {0, 6, 13, 19}, {0, 7, 14, 20}},
	{{0, 8, 16, 22}, {0, 8, 16, 22}, {0, 8, 16, 22}, {0, 8, 16, 22}},
}

// cycleBitmasks[rate/4] gates how often the envelope's per-rate update
// actually fires: update only when (cycleCounter & mask) == 0. Grounded on
// fm-operator.c's cycle_bitmasks (identical in fm-envelope.c).
var cycleBitmasks = [16]uint16{
	(1 << 11) - 1, (1 << 10) - 1, (1 << 9) - 1, (1 << 8) - 1,
	(1 << 7) - 1, (1 << 6) - 1, (1 << 5) - 1, (1 << 4) - 1,
	(1 << 3) - 1, (1 << 2) - 1, (1 << 1) - 1, (1 << 0) - 1,
	(1 << 0) - 1, (1 << 0) - 1, (1 << 0) - 1, (1 << 0) - 1,
}

// deltas[rate][phase 0-7] gives the per-update envelope delta. Transcribed
// verbatim from fm-operator.c, the variant actually wired into
// FM_Channel_GetSample (not the similar-but-diverging table in the unused
// fm-envelope.c draft — see DESIGN.md).
var deltas = [64][8]uint16{
	{0, 0, 0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 0, 1, 0, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 0, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 0, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{0, 1, 0, 1, 0, 1, 0, 1}, {0, 1, 0, 1, 1, 1, 0, 1},
	{0, 1, 1, 1, 0, 1, 1, 1}, {0, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1}, {1, 1, 1, 2, 1, 1, 1, 2},
	{1, 2, 1, 2, 1, 2, 1, 2}, {1, 2, 2, 2, 1, 2, 2, 2},
	{2, 2, 2, 2, 2, 2, 2, 2}, {2, 2, 2, 3, 2, 2, 2, 3},
	{2, 3, 2, 3, 2, 3, 2, 3}, {2, 3, 3, 3, 2, 3, 3, 3},
	{3, 3, 3, 3, 3, 3, 3, 3}, {3, 3, 3, 4, 3, 3, 3, 4},
	{3, 4, 3, 4, 3, 4, 3, 4}, {3, 4, 4, 4, 3, 4, 4, 4},
	{4, 4, 4, 4, 4, 4, 4, 4}, {4, 4, 4, 4, 4, 4, 4, 4},
	{4, 4, 4, 4, 4, 4, 4, 4}, {4, 4, 4, 4, 4, 4, 4, 4},
}

const sineTableLength = 256
const powTableLength = 256

// logarithmicAttenuationSineTable triples as a sine table, a logarithm
// table, and an attenuation table, in 4.8 fixed-point format. Built the way
// fm-operator.c's FM_Operator_Constant_Initialise builds it.
var logarithmicAttenuationSineTable [sineTableLength]uint16

// powerTable converts a 5.8 fixed-point attenuation back to a linear 11-bit
// magnitude. Built the way fm-operator.c's FM_Operator_Constant_Initialise
// builds it.
var powerTable [powTableLength]uint16

func init() {
	log2 := math.Log(2.0)

	for i := 0; i < sineTableLength; i++ {
		phaseNormalised := float64(i<<1+1) / float64(sineTableLength<<1)
		sinResultNormalised := math.Sin(phaseNormalised * (math.Pi / 2.0))
		sinResultAsAttenuation := -math.Log(sinResultNormalised) / log2
		logarithmicAttenuationSineTable[i] = uint16(sinResultAsAttenuation*256.0 + 0.5)
	}

	for i := 0; i < powTableLength; i++ {
		entryNormalised := float64(i+1) / float64(powTableLength)
		resultNormalised := math.Pow(2.0, -entryNormalised)
		powerTable[i] = uint16(resultNormalised*2048.0 + 0.5)
	}
}

// inversePow2 converts a 5.8 fixed-point attenuation to a linear magnitude.
func inversePow2(value uint16) uint16 {
	whole := value >> 8
	fraction := value & 0xFF
	return (powerTable[fraction] << 2) >> whole
}
