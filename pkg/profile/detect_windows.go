//go:build windows

package profile

import (
	"io"

	"golang.org/x/sys/windows"
)

// detectLegacy reports a console that cannot process escape sequences.
// Virtual terminal processing is switched on when the console allows it.
func detectLegacy(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) != nil
}
