package service

import "gorm.io/gorm"

// EventType names a domain event emitted by a mutation.
type EventType string

const (
	EventFriendRequestAccepted EventType = "friend_request.accepted"
	EventPostCommented         EventType = "wall_post.commented"
	EventPostLiked             EventType = "wall_post.liked"
)

// Event carries the facts a listener needs to react to a mutation.
// ActorID is the user who performed the action, TargetUserID the user the
// side effect concerns (e.g. the notification recipient).
type Event struct {
	Type         EventType
	ActorID      uint
	TargetUserID uint
	PostID       uint
}

// EventHandler reacts to a published event. Handlers must not fail the
// triggering request: errors are the handler's own problem.
type EventHandler func(db *gorm.DB, e Event)

// Dispatcher is a synchronous in-process registry of event handlers.
// Mutations publish after their transaction commits; listeners create
// notification rows and fire best-effort mail.
type Dispatcher struct {
	handlers map[EventType][]EventHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType][]EventHandler)}
}

// Subscribe registers a handler for an event type.
func (d *Dispatcher) Subscribe(t EventType, h EventHandler) {
	d.handlers[t] = append(d.handlers[t], h)
}

// Publish invokes all handlers registered for the event's type.
func (d *Dispatcher) Publish(db *gorm.DB, e Event) {
	for _, h := range d.handlers[e.Type] {
		h(db, e)
	}
}

// Events is the dispatcher mutations publish to. main wires the
// notification listener onto it at startup; tests swap in their own.
var Events = NewDispatcher()
