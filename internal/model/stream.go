package model

// StreamEventType is the kind of a shell stream event.
type StreamEventType string

const (
	StreamEventStdout  StreamEventType = "stdout"
	StreamEventStderr  StreamEventType = "stderr"
	StreamEventWaiting StreamEventType = "waiting"
	StreamEventTimeout StreamEventType = "timeout"
	StreamEventEnd     StreamEventType = "end"
)

// StreamEvent is a single decoded event of a streaming shell session.
type StreamEvent struct {
	Type StreamEventType
	// Data is the decoded text payload, empty for waiting and end events.
	Data string
}
