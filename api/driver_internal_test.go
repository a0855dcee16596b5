package api

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"

	"github.com/sarchlab/ternmac/core"
	"github.com/sarchlab/ternmac/tern"
	pixgen "github.com/sarchlab/ternmac/util"
)

var _ = Describe("Driver", func() {
	var (
		engine sim.Engine
		driver *driverImpl
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()

		driver = &driverImpl{}
		driver.TickingComponent =
			sim.NewTickingComponent("Driver", engine, 1*sim.GHz, driver)
		driver.port = core.NewPort(driver, 4, 2*tern.LoadTicks,
			"Driver.ToAccel")
		driver.remote = "Accel.Top"

		conn := directconnection.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Conn")
		conn.PlugIn(driver.port)
	})

	It("should pack queued images into pixel words", func() {
		pixels := pixgen.Image(pixgen.MakeCyclingGen(0))

		driver.Infer(pixels)

		Expect(driver.tasks).To(HaveLen(1))
		Expect(driver.tasks[0].words).To(Equal(tern.PackPixels(pixels)))
	})

	It("should stream one pixel word per tick", func() {
		pixels := pixgen.Image(pixgen.MakeCyclingGen(1))
		words := tern.PackPixels(pixels)
		driver.Infer(pixels)

		driver.Tick()

		Expect(driver.tasks[0].round).To(Equal(1))
		sent := driver.port.PeekOutgoing().(*tern.PixelWordMsg)
		Expect(sent.Word).To(Equal(words[0]))

		driver.Tick()

		Expect(driver.tasks[0].round).To(Equal(2))
	})

	It("should hold the next start until the prediction returns", func() {
		driver.Infer(pixgen.Image(pixgen.MakeConstGen(0)))
		driver.Infer(pixgen.Image(pixgen.MakeConstGen(1)))

		for i := 0; i < tern.LoadTicks; i++ {
			driver.Tick()
		}

		Expect(driver.tasks[0].streamed()).To(BeTrue())
		Expect(driver.Tick()).To(BeFalse())
		Expect(driver.tasks).To(HaveLen(2))
	})

	It("should collect predictions in queue order", func() {
		driver.Infer(pixgen.Image(pixgen.MakeConstGen(0)))
		driver.tasks[0].round = tern.LoadTicks

		msg := tern.PredictionMsgBuilder{}.
			WithSrc("Accel.Top").
			WithDst(driver.port.AsRemote()).
			WithClass(7).
			WithCycles(3754).
			Build()
		driver.port.Deliver(msg)

		driver.Tick()

		Expect(driver.tasks).To(BeEmpty())
		Expect(driver.Predictions()).To(Equal([]Prediction{
			{Class: 7, Cycles: 3754},
		}))
	})

	It("should panic on a prediction without a pending inference", func() {
		msg := tern.PredictionMsgBuilder{}.
			WithSrc("Accel.Top").
			WithDst(driver.port.AsRemote()).
			WithClass(1).
			Build()
		driver.port.Deliver(msg)

		Expect(func() { driver.Tick() }).To(Panic())
	})
})
