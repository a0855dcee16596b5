// Some helpers using closures to generate pixel images for tests and
// samples.
package pixgen

import "github.com/sarchlab/ternmac/tern"

// MakeConstGen returns a generator that yields the same 2-bit pixel value
// forever.
func MakeConstGen(constant uint8) func() uint8 {
	return func() uint8 {
		return constant & 0x3
	}
}

// MakeCyclingGen returns a generator that cycles through the 2-bit pixel
// range starting at start.
func MakeCyclingGen(start uint8) func() uint8 {
	current := start
	return func() uint8 {
		v := current & 0x3
		current++
		return v
	}
}

// Image materializes one 64-pixel image from a generator.
func Image(gen func() uint8) []uint8 {
	pixels := make([]uint8, tern.NumPixels)
	for i := range pixels {
		pixels[i] = gen()
	}
	return pixels
}
