// Package api defines the driver API for the ternary perceptron
// accelerator.
package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"

	"github.com/sarchlab/ternmac/core"
	"github.com/sarchlab/ternmac/tern"
)

// A Prediction is the outcome of one inference run.
type Prediction struct {
	Class  uint8
	Cycles int
}

// Driver provides the interface to control an accelerator.
type Driver interface {
	// RegisterAccel connects the driver to the accelerator.
	RegisterAccel(accel *core.Accel)

	// Infer queues one 64-pixel image for inference. Queued images run
	// back to back: the next stream only starts after the previous
	// prediction has been collected.
	Infer(pixels []uint8)

	// Predictions returns the results collected so far, in queue order.
	Predictions() []Prediction

	// Run will run all the inferences that have been queued.
	Run()
}

type inferTask struct {
	words [tern.LoadTicks]uint8
	round int
}

func (t *inferTask) streamed() bool {
	return t.round >= tern.LoadTicks
}

type driverImpl struct {
	*sim.TickingComponent

	port   sim.Port
	remote sim.RemotePort

	tasks   []*inferTask
	results []Prediction
}

// Tick runs the driver for one cycle. The pixel stream is paced at one
// word per tick, matching the loader's four-pixels-per-tick contract.
func (d *driverImpl) Tick() (madeProgress bool) {
	madeProgress = d.doCollect() || madeProgress
	madeProgress = d.doFeedIn() || madeProgress

	return madeProgress
}

func (d *driverImpl) doFeedIn() bool {
	if len(d.tasks) == 0 {
		return false
	}

	task := d.tasks[0]
	if task.streamed() {
		// Start must stay released until the prediction comes back.
		return false
	}

	msg := tern.PixelWordMsgBuilder{}.
		WithSrc(d.port.AsRemote()).
		WithDst(d.remote).
		WithWord(task.words[task.round]).
		Build()

	if err := d.port.Send(msg); err != nil {
		return false
	}

	task.round++

	return true
}

func (d *driverImpl) doCollect() bool {
	item := d.port.PeekIncoming()
	if item == nil {
		return false
	}

	msg := item.(*tern.PredictionMsg)

	if len(d.tasks) == 0 || !d.tasks[0].streamed() {
		panic("prediction arrived without a pending inference")
	}

	d.results = append(d.results, Prediction{
		Class:  msg.Class,
		Cycles: msg.Cycles,
	})
	d.tasks = d.tasks[1:]
	d.port.RetrieveIncoming()

	core.Trace("PredictionCollected",
		"Driver", d.Name(),
		"Class", msg.Class,
		"Cycles", msg.Cycles,
	)

	return true
}

// RegisterAccel connects the driver to the accelerator.
func (d *driverImpl) RegisterAccel(accel *core.Accel) {
	accelPort := accel.GetPortByName("Top")

	conn := directconnection.MakeBuilder().
		WithEngine(d.Engine).
		WithFreq(d.Freq).
		Build(d.Name() + ".ToAccel")
	conn.PlugIn(d.port)
	conn.PlugIn(accelPort)

	d.remote = accelPort.AsRemote()
	accel.SetRemotePort(d.port.AsRemote())
}

// Infer queues one image.
func (d *driverImpl) Infer(pixels []uint8) {
	task := &inferTask{words: tern.PackPixels(pixels)}
	d.tasks = append(d.tasks, task)
}

// Predictions returns the results collected so far.
func (d *driverImpl) Predictions() []Prediction {
	return d.results
}

// Run runs all the queued inferences.
func (d *driverImpl) Run() {
	d.TickNow()

	if err := d.Engine.Run(); err != nil {
		panic(err)
	}
}
