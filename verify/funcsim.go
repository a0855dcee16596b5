// Package verify provides internal debugging tools for the accelerator.
//
// The functional simulator computes the perceptron forward pass directly,
// without cycle-accurate timing, but with the same fixed-width arithmetic
// the hardware pipeline uses (accumulator truncation before the bias add,
// wrapping bias add, injected sign policy, lowest-index argmax). It is the
// reference the timing simulator is checked against: a result mismatch
// isolates a sequencing bug from an arithmetic one.
package verify

import (
	"github.com/sarchlab/ternmac/model"
	"github.com/sarchlab/ternmac/tern"
)

// A Result is the full set of intermediate and final values of one
// functional forward pass.
type Result struct {
	Activations [tern.NumHidden]tern.Activation
	Logits      [tern.NumClasses]int32
	Class       uint8
}

// FuncSim evaluates the perceptron without modeling time.
type FuncSim struct {
	model     *model.Model
	ternarize tern.Ternarizer
}

// NewFuncSim builds a functional simulator over a validated model. A nil
// ternarizer selects the default non-negative policy, matching the
// pipeline builder.
func NewFuncSim(m *model.Model, ternarize tern.Ternarizer) *FuncSim {
	if err := m.Validate(); err != nil {
		panic(err)
	}
	if ternarize == nil {
		ternarize = tern.NonNegTernarizer{}
	}

	return &FuncSim{model: m, ternarize: ternarize}
}

// Run computes one forward pass over a 64-pixel image.
func (f *FuncSim) Run(pixels []uint8) Result {
	if len(pixels) != tern.NumPixels {
		panic("an image must have exactly 64 pixels")
	}

	var res Result

	for n := 0; n < tern.NumHidden; n++ {
		sum := neuronSum(&f.model.Hidden, n, tern.HiddenSumBits,
			func(k int) int8 { return int8(pixels[k]) })
		res.Activations[n] = f.ternarize.Ternarize(sum)
	}

	for n := 0; n < tern.NumClasses; n++ {
		res.Logits[n] = neuronSum(&f.model.Output, n, tern.LogitBits,
			func(k int) int8 { return int8(res.Activations[k]) })
	}

	res.Class = argmax(res.Logits[:])

	return res
}

// neuronSum reproduces the neuron engine arithmetic: a full-width MAC
// accumulation, truncation to the declared output width, then a wrapping
// bias add at that width.
func neuronSum(
	p *model.LayerParams,
	n int,
	bits uint,
	input func(k int) int8,
) int32 {
	var acc int32
	for k := 0; k < p.NumInputs; k++ {
		acc += int32(input(k)) * int32(p.Weight(n, k))
	}

	sum := truncSigned(acc, bits)
	return truncSigned(sum+int32(p.Bias(n)), bits)
}

func truncSigned(v int32, bits uint) int32 {
	shift := 32 - bits
	return (v << shift) >> shift
}

// argmax mirrors the tie-break unit: lowest index wins ties.
func argmax(values []int32) uint8 {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return uint8(best)
}
