package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"
)

// stopTimeout bounds how long Stop waits for the program to exit.
const stopTimeout = 500 * time.Millisecond

// Enabled reports whether w is a terminal worth animating on.
func Enabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// indicator runs a single-line bubbletea program on out.
type indicator struct {
	out     io.Writer
	program *tea.Program
	done    chan struct{}
}

func (in *indicator) start(model tea.Model) {
	in.done = make(chan struct{})
	in.program = tea.NewProgram(model,
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(in.out),
	)
	go func() {
		_, _ = in.program.Run()
		close(in.done)
	}()
}

func (in *indicator) stop() {
	if in.program == nil {
		return
	}
	in.program.Quit()
	select {
	case <-in.done:
	case <-time.After(stopTimeout):
	}
	fmt.Fprint(in.out, "\r\033[K")
}
