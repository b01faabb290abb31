package events

import "time"

type Kind string

// ServerEvent is one decoded inbound event from the realtime channel.
type ServerEvent interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and local receipt time shared by all server
// events.
type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
