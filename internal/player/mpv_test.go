package player

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMessage(t *testing.T, line string) ipcMessage {
	t.Helper()
	var msg ipcMessage
	require.NoError(t, json.Unmarshal([]byte(line), &msg))
	return msg
}

func TestMPVTranslator_Properties(t *testing.T) {
	var tr mpvTranslator

	events := tr.translate(parseMessage(t, `{"event":"property-change","id":1,"name":"time-pos","data":12.3456}`))
	require.Len(t, events, 1)
	assert.Equal(t, PositionChanged, events[0].Kind)
	assert.Equal(t, 12346*time.Millisecond, events[0].Position)

	events = tr.translate(parseMessage(t, `{"event":"property-change","id":2,"name":"duration","data":90}`))
	require.Len(t, events, 1)
	assert.Equal(t, DurationChanged, events[0].Kind)
	assert.Equal(t, 90*time.Second, events[0].Duration)

	assert.Empty(t, tr.translate(parseMessage(t, `{"event":"property-change","id":1,"name":"time-pos","data":null}`)))
	assert.Empty(t, tr.translate(parseMessage(t, `{"event":"property-change","id":1,"name":"time-pos"}`)))
}

func TestMPVTranslator_StateFollowsPauseAndIdle(t *testing.T) {
	var tr mpvTranslator

	// Pause changes before a file is loaded are not transport changes.
	assert.Empty(t, tr.translate(parseMessage(t, `{"event":"property-change","name":"pause","data":true}`)))

	assert.Empty(t, tr.translate(parseMessage(t, `{"event":"file-loaded"}`)))

	events := tr.translate(parseMessage(t, `{"event":"property-change","name":"pause","data":false}`))
	require.Len(t, events, 1)
	assert.Equal(t, StateEvent(Playing), events[0])

	events = tr.translate(parseMessage(t, `{"event":"property-change","name":"pause","data":true}`))
	require.Len(t, events, 1)
	assert.Equal(t, StateEvent(Paused), events[0])

	events = tr.translate(parseMessage(t, `{"event":"property-change","name":"idle-active","data":true}`))
	require.Len(t, events, 1)
	assert.Equal(t, StateEvent(Stopped), events[0])
}

func TestMPVTranslator_UnpausedBeforeLoad(t *testing.T) {
	var tr mpvTranslator

	assert.Empty(t, tr.translate(parseMessage(t, `{"event":"property-change","name":"pause","data":false}`)))

	events := tr.translate(parseMessage(t, `{"event":"file-loaded"}`))
	require.Len(t, events, 1)
	assert.Equal(t, StateEvent(Playing), events[0])
}

func TestMPVTranslator_EndFileError(t *testing.T) {
	tr := mpvTranslator{loaded: true, state: Playing}

	events := tr.translate(parseMessage(t, `{"event":"end-file","reason":"error","file_error":"unrecognized file format"}`))

	require.Len(t, events, 2)
	assert.Equal(t, ErrorOccurred, events[0].Kind)
	assert.Equal(t, ErrFormat, Classify(events[0].Err))
	assert.Equal(t, StateEvent(Stopped), events[1])
}

func TestMPVTranslator_Replies(t *testing.T) {
	var tr mpvTranslator

	assert.Empty(t, tr.translate(parseMessage(t, `{"error":"success","request_id":0}`)))

	events := tr.translate(parseMessage(t, `{"error":"property unavailable"}`))
	require.Len(t, events, 1)
	assert.Equal(t, ErrorOccurred, events[0].Kind)
}

func TestFileError(t *testing.T) {
	tests := []struct {
		reason string
		want   ErrorKind
	}{
		{"loading failed", ErrFormat},
		{"No such file or directory", ErrResource},
		{"Permission denied", ErrAccessDenied},
		{"network error", ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(fileError(tt.reason)))
		})
	}
}

func TestMPVTranslator_EndFileReasons(t *testing.T) {
	tests := []struct {
		reason string
		want   []Event
	}{
		{"eof", []Event{StateEvent(Stopped)}},
		{"quit", []Event{StateEvent(Stopped)}},
		{"stop", nil},
		{"redirect", nil},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			tr := mpvTranslator{loaded: true, state: Playing}
			got := tr.translate(ipcMessage{Event: "end-file", Reason: tt.reason})
			assert.Equal(t, tt.want, got)
		})
	}
}
