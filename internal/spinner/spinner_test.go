package spinner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestStartStop(t *testing.T) {
	var buf bytes.Buffer
	s := New(context.Background(), &buf, "Grading sentences...")

	if s.IsActive() {
		t.Error("spinner active before Start()")
	}

	s.Start()
	if !s.IsActive() {
		t.Error("spinner not active after Start()")
	}

	time.Sleep(250 * time.Millisecond)
	s.Stop()

	if s.IsActive() {
		t.Error("spinner active after Stop()")
	}

	output := buf.String()
	if !strings.Contains(output, "Grading sentences...") {
		t.Error("message missing from output")
	}
	if !strings.HasSuffix(output, "\r") {
		t.Error("non-terminal output should end with carriage return")
	}

	hasFrame := false
	for _, frame := range s.frames {
		if strings.Contains(output, frame) {
			hasFrame = true
			break
		}
	}
	if !hasFrame {
		t.Error("no spinner frame in output")
	}
}

func TestUpdateMessage(t *testing.T) {
	var buf bytes.Buffer
	s := New(context.Background(), &buf, "first")
	s.UpdateMessage("second")
	if s.message != "second" {
		t.Errorf("message = %q, want second", s.message)
	}
}

func TestIdempotentStartStop(t *testing.T) {
	var buf bytes.Buffer
	s := New(context.Background(), &buf, "working")

	s.Start()
	s.Start() // second start is a no-op
	if !s.IsActive() {
		t.Error("spinner not active after double Start()")
	}

	s.Stop()
	s.Stop() // second stop is a no-op
	if s.IsActive() {
		t.Error("spinner active after double Stop()")
	}
}

func TestStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	s := New(context.Background(), &buf, "idle")
	s.Stop()
	if s.IsActive() {
		t.Error("spinner active after Stop() without Start()")
	}
}
