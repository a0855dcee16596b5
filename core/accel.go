package core

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/ternmac/tern"
)

// Accel wraps the pipeline as a simulation component. Every tick advances
// the pipeline by one clock edge; pixel words arrive through the Top port
// and the prediction of each run is sent back the same way.
//
// The first pixel word of a stream doubles as the start pulse. The
// component holds the pipeline's start level high through the run and
// releases it once the prediction has been handed off, which retires the
// DONE state and re-arms the device for the next run.
type Accel struct {
	*sim.TickingComponent

	pipeline *Pipeline
	topPort  sim.Port
	remote   sim.RemotePort

	startLevel    bool
	resultPending bool
	result        CycleOut
}

// SetRemotePort tells the accelerator where predictions go.
func (a *Accel) SetRemotePort(remote sim.RemotePort) {
	a.remote = remote
}

// Tick runs the accelerator for one cycle.
func (a *Accel) Tick() (madeProgress bool) {
	madeProgress = a.trySendResult() || madeProgress
	madeProgress = a.runPipeline() || madeProgress

	return madeProgress
}

func (a *Accel) runPipeline() bool {
	in := CycleIn{Start: a.startLevel}
	madeProgress := false

	if !a.startLevel && !a.resultPending &&
		a.topPort.PeekIncoming() != nil {
		// A waiting pixel word is the start pulse. It stays queued; the
		// loading phase consumes it on the next tick.
		a.startLevel = true
		in.Start = true
		madeProgress = true
	}

	if a.pipeline.Loading() {
		item := a.topPort.RetrieveIncoming()
		if item == nil {
			panic("pixel stream underrun: the loader needs one word per tick")
		}
		in.PixelWord = item.(*tern.PixelWordMsg).Word
		madeProgress = true
	}

	out := a.pipeline.Cycle(in)

	if out.Done && a.startLevel {
		a.result = out
		a.resultPending = true
		a.startLevel = false

		Trace("InferenceDone",
			"Accel", a.Name(),
			"Prediction", out.Prediction,
			"Cycles", out.Cycles,
		)
	}

	if !a.pipeline.Idle() {
		madeProgress = true
	}

	return madeProgress
}

func (a *Accel) trySendResult() bool {
	if !a.resultPending {
		return false
	}

	msg := tern.PredictionMsgBuilder{}.
		WithSrc(a.topPort.AsRemote()).
		WithDst(a.remote).
		WithClass(a.result.Prediction).
		WithCycles(a.result.Cycles).
		Build()

	if err := a.topPort.Send(msg); err != nil {
		return false
	}

	a.resultPending = false

	return true
}
