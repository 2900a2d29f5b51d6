package ui

import (
	"errors"
	"io"
)

// Bell is the audio cue: the terminal bell character written to Out.
type Bell struct {
	Out io.Writer
}

func (b Bell) Play() error {
	if b.Out == nil {
		return errors.New("bell: no output")
	}
	_, err := io.WriteString(b.Out, "\a")
	return err
}
