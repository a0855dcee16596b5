package tern

import "github.com/sarchlab/akita/v4/sim"

// PixelWordMsg carries one byte of the pixel stream, four 2-bit pixels
// packed low-to-high. The first word of a stream doubles as the start
// pulse of an inference run.
type PixelWordMsg struct {
	sim.MsgMeta

	Word uint8
}

// Meta returns the meta data of the msg.
func (m *PixelWordMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the msg with a new ID.
func (m *PixelWordMsg) Clone() sim.Msg {
	clone := *m
	clone.ID = sim.GetIDGenerator().Generate()
	return &clone
}

// PixelWordMsgBuilder is a factory for PixelWordMsg.
type PixelWordMsgBuilder struct {
	src, dst sim.RemotePort
	word     uint8
}

// WithSrc sets the source port of the msg.
func (m PixelWordMsgBuilder) WithSrc(src sim.RemotePort) PixelWordMsgBuilder {
	m.src = src
	return m
}

// WithDst sets the destination port of the msg.
func (m PixelWordMsgBuilder) WithDst(dst sim.RemotePort) PixelWordMsgBuilder {
	m.dst = dst
	return m
}

// WithWord sets the packed pixel word of the msg.
func (m PixelWordMsgBuilder) WithWord(word uint8) PixelWordMsgBuilder {
	m.word = word
	return m
}

// Build creates a PixelWordMsg.
func (m PixelWordMsgBuilder) Build() *PixelWordMsg {
	return &PixelWordMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: m.src,
			Dst: m.dst,
		},
		Word: m.word,
	}
}

// PredictionMsg reports the class index selected by one inference run,
// together with the cycle count the run took.
type PredictionMsg struct {
	sim.MsgMeta

	Class  uint8
	Cycles int
}

// Meta returns the meta data of the msg.
func (m *PredictionMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone creates a copy of the msg with a new ID.
func (m *PredictionMsg) Clone() sim.Msg {
	clone := *m
	clone.ID = sim.GetIDGenerator().Generate()
	return &clone
}

// PredictionMsgBuilder is a factory for PredictionMsg.
type PredictionMsgBuilder struct {
	src, dst sim.RemotePort
	class    uint8
	cycles   int
}

// WithSrc sets the source port of the msg.
func (m PredictionMsgBuilder) WithSrc(src sim.RemotePort) PredictionMsgBuilder {
	m.src = src
	return m
}

// WithDst sets the destination port of the msg.
func (m PredictionMsgBuilder) WithDst(dst sim.RemotePort) PredictionMsgBuilder {
	m.dst = dst
	return m
}

// WithClass sets the predicted class index of the msg.
func (m PredictionMsgBuilder) WithClass(class uint8) PredictionMsgBuilder {
	m.class = class
	return m
}

// WithCycles sets the cycle count of the msg.
func (m PredictionMsgBuilder) WithCycles(cycles int) PredictionMsgBuilder {
	m.cycles = cycles
	return m
}

// Build creates a PredictionMsg.
func (m PredictionMsgBuilder) Build() *PredictionMsg {
	return &PredictionMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: m.src,
			Dst: m.dst,
		},
		Class:  m.class,
		Cycles: m.cycles,
	}
}
