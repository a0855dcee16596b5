package core

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/ternmac/model"
	"github.com/sarchlab/ternmac/tern"
)

// Builder can create accelerators.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	model     *model.Model
	ternarize tern.Ternarizer
}

// NewBuilder returns a builder with the default sign-decision policy.
func NewBuilder() Builder {
	return Builder{
		ternarize: tern.NonNegTernarizer{},
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the accelerator.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithModel sets the constant weight and bias tables.
func (b Builder) WithModel(m *model.Model) Builder {
	b.model = m
	return b
}

// WithTernarizer overrides the layer-1 sign-decision policy.
func (b Builder) WithTernarizer(t tern.Ternarizer) Builder {
	b.ternarize = t
	return b
}

// Build creates an accelerator.
func (b Builder) Build(name string) *Accel {
	if b.model == nil {
		panic("an accelerator needs a model")
	}

	a := &Accel{}
	a.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, a)
	a.pipeline = NewPipeline(b.model, b.ternarize)

	a.topPort = NewPort(a, 2*tern.LoadTicks, 1, name+".Top")
	a.AddPort("Top", a.topPort)

	return a
}
