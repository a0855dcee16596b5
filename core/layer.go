package core

import (
	"github.com/sarchlab/ternmac/model"
)

type layerState int

const (
	layerIdle layerState = iota
	layerCompute
	layerStore
	layerRetire
	layerDone
)

// layerSequencer drives the neuron engine once per logical output unit of
// one network layer. The weight, bias, and input for the engine's current
// step are looked up combinationally every tick; the engine's results are
// collected into an output buffer that is readable once the layer is done.
//
// Per neuron: COMPUTE takes numInputs+1 ticks (the bias tick included),
// STORE one tick, RETIRE one tick to release the engine handshake. A layer
// of M neurons with N inputs each therefore takes exactly M*(N+3) ticks.
type layerSequencer struct {
	params *model.LayerParams

	// input supplies the operand for a MAC step, re-evaluated every tick.
	// Layer 1 reads the pixel buffer; layer 2 reads the activation buffer
	// that the pipeline fills while the layer runs.
	input func(step int) int8

	neuron *neuronEngine
	state  layerState
	idx    int
	out    []int32
}

func newLayerSequencer(
	params *model.LayerParams,
	input func(step int) int8,
	neuron *neuronEngine,
) *layerSequencer {
	return &layerSequencer{
		params: params,
		input:  input,
		neuron: neuron,
		out:    make([]int32, params.NumNeurons),
	}
}

// Done reports whether all neurons of the layer have been computed and
// stored for the current run.
func (l *layerSequencer) Done() bool {
	return l.state == layerDone
}

// Result returns output slot i. It is only meaningful once Done reports
// true; earlier reads are a caller contract violation.
func (l *layerSequencer) Result(i int) int32 {
	if l.state != layerDone {
		panic("layer output read before done")
	}
	return l.out[i]
}

// Cycle advances the sequencer by one clock edge. Start must be held high
// through the whole layer and released afterwards to return to IDLE.
func (l *layerSequencer) Cycle(start bool) {
	switch l.state {
	case layerIdle:
		if !start {
			return
		}
		l.idx = 0
		l.driveNeuron(true)
		l.state = layerCompute

	case layerCompute:
		l.driveNeuron(true)
		if l.neuron.Done() {
			l.state = layerStore
		}

	case layerStore:
		l.out[l.idx] = l.neuron.Result()
		l.state = layerRetire

	case layerRetire:
		l.driveNeuron(false)
		if l.idx == l.params.NumNeurons-1 {
			l.state = layerDone
		} else {
			l.idx++
			l.state = layerCompute
		}

	case layerDone:
		if !start {
			l.state = layerIdle
		}
	}
}

// driveNeuron clocks the neuron engine with the operands for its current
// step. The weight-table address is idx*NumInputs+step on every tick the
// engine consumes, including the last step.
func (l *layerSequencer) driveNeuron(start bool) {
	step := l.neuron.StepIndex()
	l.neuron.Cycle(
		start,
		l.input(step),
		l.params.Weight(l.idx, step),
		l.params.Bias(l.idx),
	)
}
