package core

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ternmac/model"
	"github.com/sarchlab/ternmac/tern"
)

func randomLayerParams(r *rand.Rand, neurons, inputs int) *model.LayerParams {
	p := &model.LayerParams{
		NumNeurons: neurons,
		NumInputs:  inputs,
		Weights:    make([]tern.Weight, neurons*inputs),
		Biases:     make([]int8, neurons),
	}
	choices := []tern.Weight{
		tern.WeightZero, tern.WeightPlusOne, tern.WeightMinusOne,
	}
	for i := range p.Weights {
		p.Weights[i] = choices[r.Intn(len(choices))]
	}
	for i := range p.Biases {
		p.Biases[i] = int8(r.Intn(16) - 8)
	}
	return p
}

// runLayer clocks the sequencer with start held high until done, returning
// the tick count.
func runLayer(l *layerSequencer) int {
	ticks := 0
	for !l.Done() {
		l.Cycle(true)
		ticks++

		if ticks > 100*l.params.NumNeurons*l.params.NumInputs {
			panic("layer sequencer never finished")
		}
	}
	return ticks
}

var _ = Describe("Layer Sequencer", func() {
	It("should store one result per neuron", func() {
		p := &model.LayerParams{
			NumNeurons: 4,
			NumInputs:  2,
			Weights: []tern.Weight{
				// Neuron n weights input n%2 with sign alternating.
				tern.WeightPlusOne, tern.WeightZero,
				tern.WeightZero, tern.WeightPlusOne,
				tern.WeightMinusOne, tern.WeightZero,
				tern.WeightZero, tern.WeightMinusOne,
			},
			Biases: []int8{0, 1, 2, 3},
		}
		inputs := []int8{2, 3}
		l := newLayerSequencer(p,
			func(step int) int8 { return inputs[step] },
			newNeuronEngine(2, 6, nil))

		runLayer(l)

		Expect(l.Result(0)).To(Equal(int32(2)))
		Expect(l.Result(1)).To(Equal(int32(4)))
		Expect(l.Result(2)).To(Equal(int32(0)))
		Expect(l.Result(3)).To(Equal(int32(0)))
	})

	It("should address the weight table neuron-major", func() {
		// Neuron n has a single +1 weight at input n, so a wrong address
		// mapping shows up as a wrong result.
		const n = 5
		p := &model.LayerParams{
			NumNeurons: n,
			NumInputs:  n,
			Weights:    make([]tern.Weight, n*n),
			Biases:     make([]int8, n),
		}
		for i := 0; i < n; i++ {
			p.Weights[i*n+i] = tern.WeightPlusOne
		}
		inputs := []int8{0, 1, 2, 3, 1}
		l := newLayerSequencer(p,
			func(step int) int8 { return inputs[step] },
			newNeuronEngine(n, 6, nil))

		runLayer(l)

		for i := 0; i < n; i++ {
			Expect(l.Result(i)).To(Equal(int32(inputs[i])))
		}
	})

	It("should take exactly M*(N+3) ticks", func() {
		r := rand.New(rand.NewSource(1))
		p := randomLayerParams(r, 6, 9)
		inputs := make([]int8, 9)
		l := newLayerSequencer(p,
			func(step int) int8 { return inputs[step] },
			newNeuronEngine(9, 7, nil))

		ticks := runLayer(l)

		Expect(ticks).To(Equal(6 * (9 + 3)))
	})

	It("should panic when an output is read before done", func() {
		p := randomLayerParams(rand.New(rand.NewSource(2)), 2, 2)
		l := newLayerSequencer(p,
			func(step int) int8 { return 0 },
			newNeuronEngine(2, 6, nil))

		l.Cycle(true)

		Expect(func() { l.Result(0) }).To(Panic())
	})

	It("should produce identical results when re-run", func() {
		r := rand.New(rand.NewSource(3))
		p := randomLayerParams(r, 3, 5)
		inputs := []int8{3, 1, 0, 2, 1}
		l := newLayerSequencer(p,
			func(step int) int8 { return inputs[step] },
			newNeuronEngine(5, 7, nil))

		runLayer(l)
		first := make([]int32, 3)
		for i := range first {
			first[i] = l.Result(i)
		}

		l.Cycle(false)
		ticks := runLayer(l)

		Expect(ticks).To(Equal(3 * (5 + 3)))
		for i := range first {
			Expect(l.Result(i)).To(Equal(first[i]))
		}
	})

	It("should read its input fresh on every tick", func() {
		// The producer fills the input buffer one slot per tick while the
		// layer consumes one step per tick, for several relative lead
		// offsets of the producer. Any lead >= 0 from a same-tick trigger
		// (producer ordered first) must match the preloaded reference.
		r := rand.New(rand.NewSource(4))
		const neurons, inputs = 3, 8
		p := randomLayerParams(r, neurons, inputs)

		src := make([]int8, inputs)
		for i := range src {
			src[i] = int8(r.Intn(3) - 1)
		}

		ref := newLayerSequencer(p,
			func(step int) int8 { return src[step] },
			newNeuronEngine(inputs, 7, nil))
		runLayer(ref)

		for _, lead := range []int{0, 1, 4} {
			buf := make([]int8, inputs)
			l := newLayerSequencer(p,
				func(step int) int8 { return buf[step] },
				newNeuronEngine(inputs, 7, nil))

			fillIdx := 0
			for tick := 0; !l.Done(); tick++ {
				if fillIdx < inputs {
					buf[fillIdx] = src[fillIdx]
					fillIdx++
				}
				if tick >= lead {
					l.Cycle(true)
				}
			}

			for i := 0; i < neurons; i++ {
				Expect(l.Result(i)).To(Equal(ref.Result(i)),
					"lead %d, neuron %d", lead, i)
			}
		}
	})
})
