package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/ternmac/tern"
)

type layerYAML struct {
	Neurons int     `yaml:"neurons"`
	Inputs  int     `yaml:"inputs"`
	Weights []uint8 `yaml:"weights"`
	Biases  []int8  `yaml:"biases"`
}

type modelYAML struct {
	Hidden layerYAML `yaml:"hidden"`
	Output layerYAML `yaml:"output"`
}

// LoadYAML parses a model from its YAML form. Weights are stored as raw
// 2-bit encodings in neuron-major order; the unused encoding decodes to
// zero like the hardware tables do.
func LoadYAML(data []byte) (*Model, error) {
	var raw modelYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}

	m := &Model{
		Hidden: layerFromYAML(raw.Hidden),
		Output: layerFromYAML(raw.Output),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// LoadFile reads a YAML model from disk.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}

	return LoadYAML(data)
}

func layerFromYAML(raw layerYAML) LayerParams {
	p := LayerParams{
		NumNeurons: raw.Neurons,
		NumInputs:  raw.Inputs,
		Weights:    make([]tern.Weight, len(raw.Weights)),
		Biases:     raw.Biases,
	}

	for i, code := range raw.Weights {
		p.Weights[i] = tern.DecodeWeight(code)
	}

	return p
}
