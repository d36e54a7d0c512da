package ui

import (
	"io"
	"os"

	"github.com/fatih/color"

	"subx/internal/api"
)

// Console is a Notifier that prints the outcome as a colored line
type Console struct {
	Out io.Writer
}

// NewConsole creates a console notifier writing to stdout
func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

func (c *Console) Notify(result api.Result) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	if result.OK() {
		_, _ = color.New(color.FgGreen).Fprintln(out, result.Message())
		return
	}
	_, _ = color.New(color.FgRed).Fprintln(out, result.Message())
}
