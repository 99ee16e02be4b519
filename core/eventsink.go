package core

import "pkt.systems/envforge/schema"

// EventSink receives output, job and console events from the core service.
type EventSink interface {
	OnOutput(event schema.OutputEvent)
	OnJobDone(event schema.JobEvent)
	OnLog(event schema.LogEvent)
}

// NopSink discards all events.
type NopSink struct{}

// OnOutput implements EventSink.
func (NopSink) OnOutput(schema.OutputEvent) {}

// OnJobDone implements EventSink.
func (NopSink) OnJobDone(schema.JobEvent) {}

// OnLog implements EventSink.
func (NopSink) OnLog(schema.LogEvent) {}
