package shared

import "time"

// DomainEvent is implemented by events published to downstream consumers.
// The concrete struct defines the wire shape through its JSON tags; the
// publisher only needs the type tag and emission time.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}
