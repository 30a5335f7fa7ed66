package interpreter

import (
	"fmt"
	"io"

	"fwjs/engine/runtime"
)

// Sink receives every value a program prints, in program order.
type Sink interface {
	Print(v runtime.Value) error
}

// LineSink writes one value per line.
type LineSink struct {
	W io.Writer
}

var _ Sink = LineSink{}

func (s LineSink) Print(v runtime.Value) error {
	_, err := fmt.Fprintln(s.W, v.String())
	return err
}
