package core

import "github.com/sarchlab/ternmac/tern"

type neuronState int

const (
	neuronIdle neuronState = iota
	neuronCompute
	neuronAddBias
	neuronDone
)

// neuronEngine sequences the MAC unit through one neuron's weighted sum.
// It is generic over the input count, the declared output width, and the
// presence of an activation stage. The caller supplies the operand and
// weight for the step index the engine exposes, combinationally, every
// tick.
type neuronEngine struct {
	numInputs int
	sumBits   uint
	ternarize tern.Ternarizer // nil means the raw sum is the result

	mac    macUnit
	state  neuronState
	step   int
	result int32
}

func newNeuronEngine(numInputs int, sumBits uint, ternarize tern.Ternarizer) *neuronEngine {
	if numInputs < 1 {
		panic("a neuron needs at least one input")
	}
	return &neuronEngine{
		numInputs: numInputs,
		sumBits:   sumBits,
		ternarize: ternarize,
	}
}

// StepIndex is the MAC step the engine will consume on the next Cycle.
// It stays within [0, numInputs-1] so the caller's weight-table address
// n*numInputs+step is in range on every tick, including the last step.
func (e *neuronEngine) StepIndex() int {
	return e.step
}

// Done reports whether the engine holds a completed result. The result
// stays valid until the caller releases start.
func (e *neuronEngine) Done() bool {
	return e.state == neuronDone
}

// Result returns the neuron's output: the ternarized activation for
// layer-1 engines, the raw truncated sum for layer-2 engines.
func (e *neuronEngine) Result() int32 {
	if e.state != neuronDone {
		panic("neuron result read before done")
	}
	return e.result
}

// Cycle advances the engine by one clock edge. While start is high in
// IDLE, the MAC enable is pre-armed so step 0 executes on the same edge
// that enters COMPUTE: N inputs take exactly N ticks. One more tick adds
// the sign-extended bias to the width-truncated accumulator. DONE holds
// until start is released; a start pulse during DONE is ignored.
func (e *neuronEngine) Cycle(start bool, operand int8, weight tern.Weight, bias int8) {
	switch e.state {
	case neuronIdle:
		if !start {
			return
		}
		e.mac.Cycle(true, operand, weight, 0)
		if e.numInputs == 1 {
			e.state = neuronAddBias
		} else {
			e.step = 1
			e.state = neuronCompute
		}

	case neuronCompute:
		e.mac.Cycle(true, operand, weight, e.mac.Out())
		if e.step == e.numInputs-1 {
			e.state = neuronAddBias
		} else {
			e.step++
		}

	case neuronAddBias:
		sum := truncSigned(e.mac.Out(), e.sumBits)
		sum = truncSigned(sum+int32(bias), e.sumBits)
		if e.ternarize != nil {
			e.result = int32(e.ternarize.Ternarize(sum))
		} else {
			e.result = sum
		}
		e.state = neuronDone

	case neuronDone:
		if !start {
			e.state = neuronIdle
			e.step = 0
		}
	}
}
