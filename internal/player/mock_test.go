package player

import (
	"errors"
	"testing"
	"time"
)

func TestMock_StateTransitions(t *testing.T) {
	t.Run("Stopped to Playing via Play", func(t *testing.T) {
		m := NewMock()
		if m.State() != Stopped {
			t.Fatalf("initial state = %v, want Stopped", m.State())
		}

		_ = m.SetSource("/test.mp3")
		_ = m.Play()

		if m.State() != Playing {
			t.Errorf("state after Play = %v, want Playing", m.State())
		}
	})

	t.Run("Playing to Paused via Pause", func(t *testing.T) {
		m := NewMock()
		_ = m.SetSource("/test.mp3")
		_ = m.Play()

		_ = m.Pause()

		if m.State() != Paused {
			t.Errorf("state after Pause = %v, want Paused", m.State())
		}
	})

	t.Run("Paused to Stopped via Stop", func(t *testing.T) {
		m := NewMock()
		_ = m.SetSource("/test.mp3")
		_ = m.Play()
		_ = m.Pause()

		_ = m.Stop()

		if m.State() != Stopped {
			t.Errorf("state after Stop = %v, want Stopped", m.State())
		}
	})

	t.Run("Pause when Stopped is no-op", func(t *testing.T) {
		m := NewMock()

		_ = m.Pause()

		if m.State() != Stopped {
			t.Errorf("state = %v, want Stopped", m.State())
		}
	})
}

func TestMock_RecordsCalls(t *testing.T) {
	m := NewMock()

	_ = m.SetSource("/a.mp3")
	_ = m.Play()
	_ = m.SetPosition(1500 * time.Millisecond)
	_ = m.Stop()

	want := []string{"setSource", "play", "setPosition", "stop"}
	got := m.Calls()
	if len(got) != len(want) {
		t.Fatalf("Calls() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Calls()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if seeks := m.SeekCalls(); len(seeks) != 1 || seeks[0] != 1500*time.Millisecond {
		t.Errorf("SeekCalls() = %v, want [1.5s]", seeks)
	}

	m.ResetCalls()
	if len(m.Calls()) != 0 || len(m.SourceCalls()) != 0 {
		t.Error("ResetCalls() did not clear recorded calls")
	}
}

func TestMock_Errors(t *testing.T) {
	m := NewMock()
	errBoom := errors.New("boom")
	m.SetSourceError(errBoom)

	if err := m.SetSource("/a.mp3"); !errors.Is(err, errBoom) {
		t.Errorf("SetSource() error = %v, want %v", err, errBoom)
	}
	if m.Source() != "" {
		t.Errorf("Source() = %q, want empty after failure", m.Source())
	}
}

func TestMock_Emit(t *testing.T) {
	m := NewMock()

	m.Emit(PositionEvent(2 * time.Second))

	select {
	case ev := <-m.Events():
		if ev.Kind != PositionChanged || ev.Position != 2*time.Second {
			t.Errorf("event = %+v, want position 2s", ev)
		}
	default:
		t.Fatal("expected an event")
	}
}

func TestMock_EmitDropsWhenFull(t *testing.T) {
	m := NewMock()

	for range mockEventBuffer + 10 {
		m.Emit(PositionEvent(0))
	}

	if got := len(m.Events()); got != mockEventBuffer {
		t.Errorf("buffered events = %d, want %d", got, mockEventBuffer)
	}
}
