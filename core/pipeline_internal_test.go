package core

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ternmac/model"
	"github.com/sarchlab/ternmac/tern"
	pixgen "github.com/sarchlab/ternmac/util"
	"github.com/sarchlab/ternmac/verify"
)

// inferenceTicks is the fixed cost of one run: the start-acceptance tick,
// 16 loading ticks, both layers, 10 logit reads, and the argmax latch.
const inferenceTicks = 1 +
	tern.LoadTicks +
	tern.NumHidden*(tern.NumPixels+3) +
	tern.NumClasses*(tern.NumHidden+3) +
	tern.NumClasses + 1

// runInference holds start high and clocks the pipeline until done,
// feeding one pixel word per loading tick. It leaves the pipeline in
// DONE with start still asserted.
func runInference(p *Pipeline, pixels []uint8) (CycleOut, int) {
	words := tern.PackPixels(pixels)
	wordIdx := 0
	ticks := 0

	for {
		in := CycleIn{Start: true}
		if p.Loading() {
			in.PixelWord = words[wordIdx]
			wordIdx++
		}

		out := p.Cycle(in)
		ticks++

		if out.Done {
			return out, ticks
		}

		if ticks > 2*inferenceTicks {
			panic("pipeline never finished")
		}
	}
}

var _ = Describe("Pipeline", func() {
	It("should predict class 0 for an all-zero model and image", func() {
		p := NewPipeline(model.Empty(), nil)

		out, _ := runInference(p, pixgen.Image(pixgen.MakeConstGen(0)))

		Expect(out.Prediction).To(Equal(uint8(0)))
	})

	It("should follow a single dominant logit regardless of pixels", func() {
		m := model.Empty()
		m.Output.Biases[7] = 7
		p := NewPipeline(m, nil)

		out, _ := runInference(p, pixgen.Image(pixgen.MakeCyclingGen(1)))

		Expect(out.Prediction).To(Equal(uint8(7)))
	})

	It("should finish in the fixed tick count", func() {
		p := NewPipeline(model.Generate(rand.New(rand.NewSource(10))), nil)

		out, ticks := runInference(p, pixgen.Image(pixgen.MakeCyclingGen(0)))

		Expect(ticks).To(Equal(inferenceTicks))
		Expect(out.Cycles).To(Equal(inferenceTicks))
	})

	It("should fill every pixel slot across the 16 loading ticks", func() {
		p := NewPipeline(model.Empty(), nil)
		pixels := pixgen.Image(pixgen.MakeCyclingGen(2))
		words := tern.PackPixels(pixels)

		p.Cycle(CycleIn{Start: true})
		for w := 0; w < tern.LoadTicks; w++ {
			Expect(p.Loading()).To(BeTrue())
			p.Cycle(CycleIn{Start: true, PixelWord: words[w]})
		}

		// The tick that wrote offsets 60..63 also left the loading phase.
		Expect(p.Loading()).To(BeFalse())
		for i, want := range pixels {
			Expect(p.pixels[i]).To(Equal(want))
		}
	})

	It("should hold done and the prediction until start is released", func() {
		p := NewPipeline(model.Empty(), nil)
		out, _ := runInference(p, pixgen.Image(pixgen.MakeConstGen(0)))

		held := p.Cycle(CycleIn{Start: true})

		Expect(held.Done).To(BeTrue())
		Expect(held.Prediction).To(Equal(out.Prediction))

		released := p.Cycle(CycleIn{Start: false})

		Expect(released.Done).To(BeFalse())
		Expect(p.Idle()).To(BeTrue())
	})

	It("should produce identical back-to-back runs", func() {
		m := model.Generate(rand.New(rand.NewSource(11)))
		p := NewPipeline(m, nil)
		pixels := pixgen.Image(pixgen.MakeCyclingGen(3))

		first, firstTicks := runInference(p, pixels)
		p.Cycle(CycleIn{Start: false})
		second, secondTicks := runInference(p, pixels)

		Expect(second.Prediction).To(Equal(first.Prediction))
		Expect(secondTicks).To(Equal(firstTicks))
	})

	It("should match the functional reference on random models", func() {
		r := rand.New(rand.NewSource(12))

		for trial := 0; trial < 5; trial++ {
			m := model.Generate(r)
			pixels := make([]uint8, tern.NumPixels)
			for i := range pixels {
				pixels[i] = uint8(r.Intn(4))
			}

			ref := verify.NewFuncSim(m, nil).Run(pixels)

			p := NewPipeline(m, nil)
			out, _ := runInference(p, pixels)

			Expect(out.Prediction).To(Equal(ref.Class), "trial %d", trial)
			Expect(p.logits).To(Equal(ref.Logits), "trial %d", trial)
		}
	})
})
