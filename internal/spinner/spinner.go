// Package spinner provides a terminal progress indicator for long grading
// runs.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner animates a progress message on one terminal line. When the
// writer is not a terminal it stays silent apart from the final clear.
type Spinner struct {
	frames  []string
	delay   time.Duration
	writer  io.Writer
	active  bool
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	message string
	wg      sync.WaitGroup
}

// New creates a spinner writing to w. ctx cancels the animation goroutine.
func New(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames:  []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		delay:   100 * time.Millisecond,
		writer:  w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
	}
}

// Start begins the animation. Starting twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.wg.Add(1)
	go s.run()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	if f, ok := s.writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// UpdateMessage replaces the progress message mid-run.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) run() {
	defer s.wg.Done()

	if f, ok := s.writer.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		<-s.ctx.Done()
		return
	}

	frameIndex := 0
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			frame := s.frames[frameIndex%len(s.frames)]
			message := s.message
			s.mu.RUnlock()

			fmt.Fprintf(s.writer, "\r%s %s", frame, message)
			frameIndex++
		}
	}
}
