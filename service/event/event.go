package event

import (
	"time"

	"github.com/rowflux/rowflux/internal/idgen"
)

// Event wraps a payload with its envelope.
type Event[T any] struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Data      T         `json:"data"`
}

// New creates an event for the supplied payload.
func New[T any](data T) *Event[T] {
	return &Event[T]{
		ID:   idgen.New(),
		Data: data,
	}
}
