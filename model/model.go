// Package model holds the constant weight and bias tables of the
// accelerator. The tables are opaque to the control logic: the core only
// reads them through neuron-major addressing.
package model

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/ternmac/tern"
)

// LayerParams is the constant table of one layer: ternary weights in
// neuron-major layout plus one signed 4-bit bias per neuron.
type LayerParams struct {
	NumNeurons int
	NumInputs  int

	// Weights holds NumNeurons*NumInputs entries. The weight of
	// (neuron n, input k) lives at n*NumInputs + k.
	Weights []tern.Weight

	// Biases holds NumNeurons entries in [-8, 7].
	Biases []int8
}

// Weight returns the weight of input k of neuron n.
func (p *LayerParams) Weight(n, k int) tern.Weight {
	return p.Weights[n*p.NumInputs+k]
}

// Bias returns the bias of neuron n.
func (p *LayerParams) Bias(n int) int8 {
	return p.Biases[n]
}

func (p *LayerParams) validate(name string) error {
	if want := p.NumNeurons * p.NumInputs; len(p.Weights) != want {
		return fmt.Errorf("%s layer: want %d weights, have %d",
			name, want, len(p.Weights))
	}

	if len(p.Biases) != p.NumNeurons {
		return fmt.Errorf("%s layer: want %d biases, have %d",
			name, p.NumNeurons, len(p.Biases))
	}

	for i, b := range p.Biases {
		if b < -8 || b > 7 {
			return fmt.Errorf("%s layer: bias %d is %d, outside [-8, 7]",
				name, i, b)
		}
	}

	return nil
}

// Model is the full constant table set of the two-layer perceptron.
type Model struct {
	Hidden LayerParams
	Output LayerParams
}

// Validate checks that both layers have the dimensions the device is built
// for and that all biases fit their 4-bit field.
func (m *Model) Validate() error {
	if m.Hidden.NumNeurons != tern.NumHidden ||
		m.Hidden.NumInputs != tern.NumPixels {
		return fmt.Errorf("hidden layer must be %dx%d, is %dx%d",
			tern.NumHidden, tern.NumPixels,
			m.Hidden.NumNeurons, m.Hidden.NumInputs)
	}

	if m.Output.NumNeurons != tern.NumClasses ||
		m.Output.NumInputs != tern.NumHidden {
		return fmt.Errorf("output layer must be %dx%d, is %dx%d",
			tern.NumClasses, tern.NumHidden,
			m.Output.NumNeurons, m.Output.NumInputs)
	}

	if err := m.Hidden.validate("hidden"); err != nil {
		return err
	}

	return m.Output.validate("output")
}

// Empty returns a model of the right dimensions with all weights and
// biases zero.
func Empty() *Model {
	return &Model{
		Hidden: LayerParams{
			NumNeurons: tern.NumHidden,
			NumInputs:  tern.NumPixels,
			Weights:    make([]tern.Weight, tern.NumHidden*tern.NumPixels),
			Biases:     make([]int8, tern.NumHidden),
		},
		Output: LayerParams{
			NumNeurons: tern.NumClasses,
			NumInputs:  tern.NumHidden,
			Weights:    make([]tern.Weight, tern.NumClasses*tern.NumHidden),
			Biases:     make([]int8, tern.NumClasses),
		},
	}
}

// Generate fills a model with pseudo-random ternary weights and 4-bit
// biases. Samples and integration tests use it in place of a trained model.
func Generate(r *rand.Rand) *Model {
	m := Empty()
	fillLayer(r, &m.Hidden)
	fillLayer(r, &m.Output)
	return m
}

func fillLayer(r *rand.Rand, p *LayerParams) {
	weights := []tern.Weight{
		tern.WeightZero, tern.WeightPlusOne, tern.WeightMinusOne,
	}
	for i := range p.Weights {
		p.Weights[i] = weights[r.Intn(len(weights))]
	}
	for i := range p.Biases {
		p.Biases[i] = int8(r.Intn(16) - 8)
	}
}
