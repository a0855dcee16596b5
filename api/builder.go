package api

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/ternmac/core"
	"github.com/sarchlab/ternmac/tern"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine sim.Engine
	freq   sim.Freq
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	d := &driverImpl{}

	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	d.port = core.NewPort(d, 2, 2*tern.LoadTicks, name+".ToAccel")
	d.AddPort("ToAccel", d.port)

	return d
}
