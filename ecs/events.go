package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventDialogRequest is pushed by systems that want the scheduler to open a
// dialog session. Data holds the requesting character Entity.
const EventDialogRequest = "dialog_request"

// EventQueue is a simple FIFO queue. Events pushed during a frame survive until
// someone drains them.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many events are pending.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
