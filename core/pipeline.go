package core

import (
	"github.com/sarchlab/ternmac/model"
	"github.com/sarchlab/ternmac/tern"
)

type pipelineState int

const (
	pipeIdle pipelineState = iota
	pipeLoadPixels
	pipeLayer1
	pipeLayer2
	pipeArgmax
	pipeDone
)

func (s pipelineState) name() string {
	switch s {
	case pipeIdle:
		return "IDLE"
	case pipeLoadPixels:
		return "LOAD_PIXELS"
	case pipeLayer1:
		return "LAYER1"
	case pipeLayer2:
		return "LAYER2"
	case pipeArgmax:
		return "ARGMAX"
	case pipeDone:
		return "DONE"
	default:
		panic("invalid pipeline state")
	}
}

// CycleIn carries the input pins of one clock edge. PixelWord is only
// consumed during the loading phase, four packed pixels per tick.
type CycleIn struct {
	Start     bool
	PixelWord uint8
}

// CycleOut carries the output pins after one clock edge. Prediction is
// only valid while Done is asserted.
type CycleOut struct {
	Busy       bool
	Done       bool
	Prediction uint8

	// Cycles is the tick count of the current run, from start acceptance
	// through the tick that asserted done.
	Cycles int
}

// Pipeline is the top-level orchestrator: a five-state machine that chains
// pixel loading, layer 1, the streamed layer-1-to-layer-2 hand-off, and
// result selection. One Cycle call models one clock edge; a full inference
// run takes a fixed, deterministic number of ticks.
type Pipeline struct {
	hidden *layerSequencer
	output *layerSequencer

	state     pipelineState
	pixels    [tern.NumPixels]uint8
	acts      [tern.NumHidden]int8
	logits    [tern.NumClasses]int32
	loadCount int
	copyIdx   int
	readIdx   int

	prediction uint8
	busy       bool
	done       bool
	cycles     int
}

// NewPipeline builds the orchestrator around a validated model. The
// ternarizer is the injected sign-decision policy of the layer-1 engines;
// nil selects the default non-negative policy.
func NewPipeline(m *model.Model, ternarize tern.Ternarizer) *Pipeline {
	if err := m.Validate(); err != nil {
		panic(err)
	}
	if ternarize == nil {
		ternarize = tern.NonNegTernarizer{}
	}

	p := &Pipeline{}
	p.hidden = newLayerSequencer(
		&m.Hidden,
		func(step int) int8 { return int8(p.pixels[step]) },
		newNeuronEngine(tern.NumPixels, tern.HiddenSumBits, ternarize),
	)
	p.output = newLayerSequencer(
		&m.Output,
		func(step int) int8 { return p.acts[step] },
		newNeuronEngine(tern.NumHidden, tern.LogitBits, nil),
	)

	return p
}

// Loading reports whether the next Cycle consumes a pixel word.
func (p *Pipeline) Loading() bool {
	return p.state == pipeLoadPixels
}

// Idle reports whether the pipeline is waiting for a start pulse.
func (p *Pipeline) Idle() bool {
	return p.state == pipeIdle
}

// Cycle advances the pipeline by one clock edge.
func (p *Pipeline) Cycle(in CycleIn) CycleOut {
	switch p.state {
	case pipeIdle:
		if in.Start {
			p.busy = true
			p.done = false
			p.loadCount = 0
			p.cycles = 1
			p.setState(pipeLoadPixels)
		}

	case pipeLoadPixels:
		p.cycles++
		word := tern.UnpackPixelWord(in.PixelWord)
		base := p.loadCount * tern.PixelsPerWord
		copy(p.pixels[base:base+tern.PixelsPerWord], word[:])
		p.loadCount++
		if p.loadCount == tern.LoadTicks {
			p.setState(pipeLayer1)
		}

	case pipeLayer1:
		p.cycles++
		p.hidden.Cycle(true)
		if p.hidden.Done() {
			p.copyIdx = 0
			p.setState(pipeLayer2)
		}

	case pipeLayer2:
		p.cycles++
		// One activation slot is copied per tick, and layer 2 starts on
		// the very tick slot 0 lands. The copy and the consumer both
		// advance one step per tick from the same trigger, so slot i is
		// written before the first neuron requests step i.
		if p.copyIdx < tern.NumHidden {
			p.acts[p.copyIdx] = int8(p.hidden.Result(p.copyIdx))
			p.copyIdx++
		}
		p.output.Cycle(true)
		if p.output.Done() {
			p.readIdx = 0
			p.setState(pipeArgmax)
		}

	case pipeArgmax:
		p.cycles++
		if p.readIdx < tern.NumClasses {
			p.logits[p.readIdx] = p.output.Result(p.readIdx)
			p.readIdx++
		} else {
			p.prediction = uint8(Argmax(p.logits[:]))
			p.done = true
			p.busy = false
			p.setState(pipeDone)
		}

	case pipeDone:
		// Held until the caller releases start, so a start pulse that is
		// still high cannot re-trigger a run. The release tick also
		// retires both layer sequencers.
		if !in.Start {
			p.hidden.Cycle(false)
			p.output.Cycle(false)
			p.done = false
			p.setState(pipeIdle)
		}
	}

	return CycleOut{
		Busy:       p.busy,
		Done:       p.done,
		Prediction: p.prediction,
		Cycles:     p.cycles,
	}
}

func (p *Pipeline) setState(next pipelineState) {
	Trace("PipelineState",
		"From", p.state.name(),
		"To", next.name(),
		"Cycle", p.cycles,
	)
	p.state = next
}
