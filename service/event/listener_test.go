package event

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowflux/rowflux/service/messaging/memory"
)

func TestPublisherListener(t *testing.T) {
	queue := memory.NewQueue[Event[int]](memory.DefaultConfig())
	publisher := NewPublisher[int](queue)

	var mu sync.Mutex
	var seen []int
	received := make(chan struct{}, 10)

	listener := NewListener(publisher, func(e *Event[int]) {
		mu.Lock()
		seen = append(seen, e.Data)
		mu.Unlock()
		received <- struct{}{}
	})
	listener.Start()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		assert.NoError(t, publisher.Publish(ctx, i))
	}
	for i := 0; i < 3; i++ {
		<-received
	}
	listener.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2}, seen)
}
