// Package core implements the cycle-accurate computation engine of the
// ternary perceptron accelerator: the MAC primitive, the neuron engine and
// layer sequencer state machines, the top-level pipeline, and the argmax
// unit. One call to a Cycle method models one clock edge.
package core

import "github.com/sarchlab/ternmac/tern"

// macUnit is the sole arithmetic primitive. The multiply is combinational;
// the add lands in the output register on the clock edge.
type macUnit struct {
	out int32
}

// Cycle performs one MAC step. When enabled, the output register captures
// accIn + operand*weight; otherwise it holds its previous value.
func (m *macUnit) Cycle(enable bool, operand int8, weight tern.Weight, accIn int32) {
	if !enable {
		return
	}
	m.out = accIn + int32(operand)*int32(weight)
}

// Out returns the registered accumulator output.
func (m *macUnit) Out() int32 {
	return m.out
}

// truncSigned wraps v into the two's-complement range of the given bit
// width. Fixed-width hardware arithmetic wraps, never saturates.
func truncSigned(v int32, bits uint) int32 {
	shift := 32 - bits
	return (v << shift) >> shift
}
