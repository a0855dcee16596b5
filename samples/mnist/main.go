package main

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/ternmac/api"
	"github.com/sarchlab/ternmac/core"
	"github.com/sarchlab/ternmac/model"
	"github.com/sarchlab/ternmac/tern"
	"github.com/sarchlab/ternmac/verify"
)

//go:embed model.yaml
var modelYAML []byte

//go:embed image.txt
var imageText string

// parseImage reads a test-vector image: one pixel value per line, '#'
// lines are comments.
func parseImage(text string) []uint8 {
	pixels := make([]uint8, 0, tern.NumPixels)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		v, err := strconv.Atoi(line)
		if err != nil {
			panic(fmt.Sprintf("bad pixel line %q: %v", line, err))
		}
		pixels = append(pixels, uint8(v))
	}

	if len(pixels) != tern.NumPixels {
		panic(fmt.Sprintf("expected %d pixels, got %d",
			tern.NumPixels, len(pixels)))
	}

	return pixels
}

func main() {
	m, err := model.LoadYAML(modelYAML)
	if err != nil {
		panic(err)
	}

	pixels := parseImage(imageText)

	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Driver")

	accel := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithModel(m).
		Build("Accel")

	driver.RegisterAccel(accel)

	// Two back-to-back runs of the same image exercise the start/done
	// handshake re-arm path.
	driver.Infer(pixels)
	driver.Infer(pixels)

	driver.Run()

	ref := verify.NewFuncSim(m, nil).Run(pixels)

	report := &verify.Report{}
	for i, p := range driver.Predictions() {
		report.Add(verify.Sample{
			Index:    i,
			Expected: ref.Class,
			Got:      p.Class,
			Cycles:   p.Cycles,
		})
	}
	report.Write(os.Stdout)

	if !report.OK() {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
