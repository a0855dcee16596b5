package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	PrintToggle            = false
	LevelTrace  slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState dumps the pipeline buffers for debugging. Gated behind
// PrintToggle so production runs stay quiet.
func PrintState(p *Pipeline) {
	if !PrintToggle {
		return
	}

	fmt.Printf("==============Pipeline@%s==============\n", p.state.name())

	pixTable := table.NewWriter()
	pixTable.SetTitle("Pixel Buffer (8x8, 2-bit)")
	for row := 0; row < 8; row++ {
		pixRow := make(table.Row, 8)
		for col := 0; col < 8; col++ {
			pixRow[col] = p.pixels[row*8+col]
		}
		pixTable.AppendRow(pixRow)
	}
	fmt.Println(pixTable.Render())

	actTable := table.NewWriter()
	actTable.SetTitle("Layer-1 Activations (copied so far)")
	actRow := make(table.Row, 0, p.copyIdx)
	for i := 0; i < p.copyIdx; i++ {
		actRow = append(actRow, p.acts[i])
	}
	if len(actRow) > 0 {
		actTable.AppendRow(actRow)
	}
	fmt.Println(actTable.Render())

	logitTable := table.NewWriter()
	logitTable.SetTitle("Logits (read so far)")
	logitRow := make(table.Row, 0, p.readIdx)
	for i := 0; i < p.readIdx; i++ {
		logitRow = append(logitRow, p.logits[i])
	}
	if len(logitRow) > 0 {
		logitTable.AppendRow(logitRow)
	}
	fmt.Println(logitTable.Render())
	fmt.Println("================================================")
}
