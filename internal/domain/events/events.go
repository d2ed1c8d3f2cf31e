package events

import (
	"time"

	"github.com/kelindar/event"
)

// Event types
const (
	ToolsListedEventType    uint32 = 1
	ToolExecutedEventType   uint32 = 2
	ToolConfiguredEventType uint32 = 3
)

// ToolsListedEventData is emitted after every listing attempt.
type ToolsListedEventData struct {
	Count int
	Err   error
}

// ToolExecutedEventData is emitted when an execution call returns.
type ToolExecutedEventData struct {
	ToolName string
	Duration time.Duration
	Err      error
}

// ToolConfiguredEventData is emitted when a configuration save returns.
type ToolConfiguredEventData struct {
	ToolName string
	Err      error
}

// Type implements the Event interface
func (e ToolsListedEventData) Type() uint32 {
	return ToolsListedEventType
}

// Type implements the Event interface
func (e ToolExecutedEventData) Type() uint32 {
	return ToolExecutedEventType
}

// Type implements the Event interface
func (e ToolConfiguredEventData) Type() uint32 {
	return ToolConfiguredEventType
}

func PublishToolsListed(count int, err error) {
	event.Emit(ToolsListedEventData{Count: count, Err: err})
}

func SubscribeToToolsListed(handler func(data ToolsListedEventData)) func() {
	return event.On(handler)
}

func PublishToolExecuted(toolName string, duration time.Duration, err error) {
	event.Emit(ToolExecutedEventData{ToolName: toolName, Duration: duration, Err: err})
}

func SubscribeToToolExecuted(handler func(data ToolExecutedEventData)) func() {
	return event.On(handler)
}

func PublishToolConfigured(toolName string, err error) {
	event.Emit(ToolConfiguredEventData{ToolName: toolName, Err: err})
}

func SubscribeToToolConfigured(handler func(data ToolConfiguredEventData)) func() {
	return event.On(handler)
}
