package commands

import (
	"os"

	"remindo/internal/tracker"
	"remindo/internal/ui"
)

func runUI(configPath string) error {
	e, err := open(configPath, ui.ResolveTheme, tracker.WithCue(bell()))
	if err != nil {
		return err
	}
	defer e.Close()
	defer e.flushMetrics()

	return ui.Run(e.tracker, e.cfg, e.log)
}

// bell rings on stderr; the renderer owns stdout and writes to it from its
// own goroutine.
func bell() ui.Bell {
	return ui.Bell{Out: os.Stderr}
}
