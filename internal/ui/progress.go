package ui

import (
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"erlt/internal/domain"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an indeterminate progress indicator while rebar and erl run
type Spinner struct {
	out  io.Writer
	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a Spinner drawing to out
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

// Observe follows runner state transitions: it spins while compiling and running and clears on a terminal state
func (s *Spinner) Observe(state domain.State) {
	switch state {
	case domain.StateCompiling:
		s.start(color.CyanString("Compiling sources and tests"))
	case domain.StateRunning:
		s.start(color.CyanString("Running test"))
	default:
		if state.Terminal() {
			s.Stop()
		}
	}
}

func (s *Spinner) start(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar != nil {
		s.bar.Describe(description)
		return
	}

	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(s.bar, s.stop, s.done)
}

// Stop clears the spinner; it is safe to call when nothing is spinning
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar == nil {
		return
	}
	close(s.stop)
	<-s.done
	_ = s.bar.Finish()
	s.bar = nil
}
