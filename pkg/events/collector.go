package events

import "slices"

// EventCollector buffers the events an aggregate raises until the repository
// that stores the aggregate moves them to the outbox. The zero value is ready
// to use.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Events returns a copy of the queued events. Mutating it does not affect the
// collector.
func (c *EventCollector) Events() []DomainEvent {
	return slices.Clone(c.pending)
}

// ClearEvents hands over the queued events and empties the collector.
func (c *EventCollector) ClearEvents() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
