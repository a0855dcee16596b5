// Package tern defines the commonly used data structures for the ternary
// perceptron accelerator.
package tern

// Network dimensions of the fixed-function accelerator. The device computes
// a two-layer perceptron over an 8x8 image of 2-bit pixels.
const (
	NumPixels     = 64
	NumHidden     = 48
	NumClasses    = 10
	PixelsPerWord = 4

	// LoadTicks is the number of cycles the pixel loading phase takes.
	LoadTicks = NumPixels / PixelsPerWord
)

// Output widths of the two neuron engine configurations, in bits. The
// accumulator is truncated to this width before the bias add, and the bias
// add wraps at this width.
const (
	HiddenSumBits = 7
	LogitBits     = 6
)

// A Weight is a ternary weight restricted to {-1, 0, +1}.
type Weight int8

const (
	WeightZero     Weight = 0
	WeightPlusOne  Weight = 1
	WeightMinusOne Weight = -1
)

// DecodeWeight decodes the 2-bit weight encoding used by the constant
// tables. The unused encoding 0b10 decodes to zero.
func DecodeWeight(code uint8) Weight {
	switch code & 0x3 {
	case 0b01:
		return WeightPlusOne
	case 0b11:
		return WeightMinusOne
	default:
		return WeightZero
	}
}

// An Activation is a layer-1 output value, ternary without zero.
type Activation int8

const (
	ActivationPlusOne  Activation = 1
	ActivationMinusOne Activation = -1
)

// A Ternarizer converts a raw neuron sum into a ternary activation. The
// threshold policy is a property of the trained model, not of the control
// logic, so it is injected into the layer-1 engine.
type Ternarizer interface {
	Ternarize(sum int32) Activation
}

// NonNegTernarizer maps non-negative sums to +1 and negative sums to -1.
type NonNegTernarizer struct{}

// Ternarize implements the Ternarizer interface.
func (NonNegTernarizer) Ternarize(sum int32) Activation {
	if sum >= 0 {
		return ActivationPlusOne
	}
	return ActivationMinusOne
}

// UnpackPixelWord splits one byte of the input stream into four 2-bit
// pixels, low bits first: bits[1:0] is pixel k, bits[7:6] is pixel k+3.
func UnpackPixelWord(word uint8) [PixelsPerWord]uint8 {
	var pixels [PixelsPerWord]uint8
	for i := range pixels {
		pixels[i] = (word >> (2 * i)) & 0x3
	}
	return pixels
}

// PackPixelWord packs four 2-bit pixels into one byte of the input stream.
// Pixel values above 3 are rejected.
func PackPixelWord(pixels [PixelsPerWord]uint8) uint8 {
	var word uint8
	for i, p := range pixels {
		if p > 3 {
			panic("pixel value out of the 2-bit range")
		}
		word |= p << (2 * i)
	}
	return word
}

// PackPixels packs a full 64-pixel image into the 16 words the loading
// phase consumes, one word per tick.
func PackPixels(pixels []uint8) [LoadTicks]uint8 {
	if len(pixels) != NumPixels {
		panic("an image must have exactly 64 pixels")
	}

	var words [LoadTicks]uint8
	for w := range words {
		words[w] = PackPixelWord(
			[PixelsPerWord]uint8(pixels[w*PixelsPerWord : (w+1)*PixelsPerWord]))
	}
	return words
}
